package diagfmt

import (
	"encoding/json"
	"io"

	"opforge/internal/diag"
)

// SiteJSON is the machine-readable form of a diagnostic site.
type SiteJSON struct {
	Manifest string `json:"manifest,omitempty"`
	Type     string `json:"type,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// NoteJSON is the machine-readable form of a secondary note.
type NoteJSON struct {
	Message string    `json:"message"`
	Site    *SiteJSON `json:"site,omitempty"`
}

// DiagnosticJSON is the machine-readable form of one diagnostic.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	CodeName string     `json:"code_name"`
	Message  string     `json:"message"`
	Site     *SiteJSON  `json:"site,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// Output is the root structure of JSON diagnostics output.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeSite(s diag.Site) *SiteJSON {
	if s.IsZero() {
		return nil
	}
	return &SiteJSON{Manifest: s.Manifest, Type: s.Type, Detail: s.Detail}
}

// JSON writes the bag as a single JSON document.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	items := bag.Items()
	out := Output{Count: len(items)}
	max := opts.Max
	if max <= 0 || max > len(items) {
		max = len(items)
	}
	out.Diagnostics = make([]DiagnosticJSON, 0, max)
	for _, d := range items[:max] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			CodeName: d.Code.String(),
			Message:  d.Message,
			Site:     makeSite(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Site: makeSite(n.Site)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

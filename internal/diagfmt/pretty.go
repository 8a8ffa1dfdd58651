// Package diagfmt renders diagnostic bags for humans (colored text)
// and machines (JSON).
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"opforge/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	siteColor = color.New(color.Bold)
	noteColor = color.New(color.Faint)
)

// Pretty formats diagnostics in a human-readable form, one per line:
//
//	<site>: <SEV> <CODE>: <message>
//	    note: <message>
//
// Call bag.Sort() beforehand for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	prev := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = prev }()

	for _, d := range bag.Items() {
		sev := severityPainter(d.Severity).Sprint(d.Severity.String())
		site := ""
		if !d.Primary.IsZero() {
			site = siteColor.Sprint(d.Primary.String()) + ": "
		}
		fmt.Fprintf(w, "%s%s %s: %s\n", site, sev, d.Code.ID(), d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			msg := n.Msg
			if !n.Site.IsZero() {
				msg = n.Site.String() + ": " + msg
			}
			fmt.Fprintf(w, "    %s\n", noteColor.Sprint("note: "+msg))
		}
	}
}

func severityPainter(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"opforge/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	site := diag.Site{Manifest: "opforge.toml", Type: "Meters"}
	diag.Error(rep, diag.DefMissingPrimitive, site, "type Meters lacks primitive Meters < Meters").
		WithNote(diag.NoSite, "required by family less_than_comparable").
		Emit()
	diag.Warning(rep, diag.ManBadAttach, diag.NoSite, "odd attach entry").Emit()
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{ShowNotes: true})
	out := buf.String()

	wantLines := []string{
		"opforge.toml: type Meters: ERROR OPF3003: type Meters lacks primitive Meters < Meters",
		"    note: required by family less_than_comparable",
		"WARNING OPF1007: odd attach entry",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color escapes present without Color option")
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes rendered despite ShowNotes=false:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d with %d diagnostics", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "OPF3003" || first.CodeName != "DefMissingPrimitive" || first.Severity != "ERROR" {
		t.Errorf("first = %+v", first)
	}
	if first.Site == nil || first.Site.Type != "Meters" {
		t.Errorf("site = %+v", first.Site)
	}
	if len(first.Notes) != 1 || first.Notes[0].Site != nil {
		t.Errorf("notes = %+v", first.Notes)
	}
	if out.Diagnostics[1].Site != nil {
		t.Errorf("zero site must be omitted, got %+v", out.Diagnostics[1].Site)
	}
}

func TestJSONMax(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The count still reports the full bag, only the listing is capped.
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Errorf("count = %d with %d diagnostics", out.Count, len(out.Diagnostics))
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes included despite IncludeNotes=false: %+v", out.Diagnostics[0].Notes)
	}
}

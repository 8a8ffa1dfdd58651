package diag

import "testing"

func d(code Code, sev Severity, site Site) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: code.String(), Primary: site}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(d(DefUnknownFamily, SevError, NoSite)) {
		t.Fatal("first Add dropped")
	}
	if !bag.Add(d(DefUnknownGroup, SevError, NoSite)) {
		t.Fatal("second Add dropped")
	}
	if bag.Add(d(DefMissingPrimitive, SevError, NoSite)) {
		t.Fatal("Add above the limit accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(0)
	bag.Add(d(ManInfo, SevInfo, NoSite))
	if bag.HasWarnings() || bag.HasErrors() {
		t.Error("info-only bag reports warnings or errors")
	}
	bag.Add(d(ManBadAttach, SevWarning, NoSite))
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Error("warning bag misreported")
	}
	bag.Add(d(DefMissingPrimitive, SevError, NoSite))
	if !bag.HasErrors() {
		t.Error("error not seen")
	}
	counts := bag.CountBySeverity()
	if counts[SevInfo] != 1 || counts[SevWarning] != 1 || counts[SevError] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if got := bag.Summary(); got != "1 error(s), 1 warning(s)" {
		t.Errorf("Summary = %q", got)
	}
}

func TestBagSort(t *testing.T) {
	siteA := Site{Type: "Apples"}
	siteB := Site{Type: "Bananas"}
	bag := NewBag(0)
	bag.Add(d(DefUnknownFamily, SevError, siteB))
	bag.Add(d(ManBadAttach, SevWarning, siteA))
	bag.Add(d(DefMissingPrimitive, SevError, siteA))
	bag.Sort()

	items := bag.Items()
	// Site first, then severity (most severe first), then code.
	if items[0].Primary != siteA || items[0].Code != DefMissingPrimitive {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Primary != siteA || items[1].Code != ManBadAttach {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[2].Primary != siteB {
		t.Errorf("items[2] = %+v", items[2])
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(0)
	a.Add(d(ManInfo, SevInfo, NoSite))
	b := NewBag(0)
	b.Add(d(DefMissingPrimitive, SevError, NoSite))
	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 2 || !a.HasErrors() {
		t.Errorf("merged bag: len=%d errors=%v", a.Len(), a.HasErrors())
	}
}

func TestReportBuilder(t *testing.T) {
	bag := NewBag(0)
	site := Site{Manifest: "opforge.toml", Type: "Meters"}
	Error(BagReporter{Bag: bag}, DefMissingPrimitive, site, "type %s lacks primitive %s", "Meters", "Meters < Meters").
		WithNote(NoSite, "required by family %s", "less_than_comparable").
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	got := bag.Items()[0]
	if got.Code != DefMissingPrimitive || got.Severity != SevError {
		t.Errorf("diagnostic = %+v", got)
	}
	if got.Message != "type Meters lacks primitive Meters < Meters" {
		t.Errorf("message = %q", got.Message)
	}
	if len(got.Notes) != 1 || got.Notes[0].Msg != "required by family less_than_comparable" {
		t.Errorf("notes = %v", got.Notes)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(0)
	b := Warning(BagReporter{Bag: bag}, ManBadAttach, NoSite, "odd entry")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Errorf("Len = %d, want 1", bag.Len())
	}
}

func TestMultiReporter(t *testing.T) {
	a, b := NewBag(0), NewBag(0)
	rep := MultiReporter{BagReporter{Bag: a}, BagReporter{Bag: b}, NopReporter{}}
	Info(rep, ManInfo, NoSite, "loaded").Emit()
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("fan-out: %d, %d", a.Len(), b.Len())
	}
}

func TestSiteString(t *testing.T) {
	tests := []struct {
		site Site
		want string
	}{
		{NoSite, "<no site>"},
		{Site{Type: "Meters"}, "type Meters"},
		{Site{Manifest: "opforge.toml", Type: "Meters", Detail: "attach ring"}, "opforge.toml: type Meters: attach ring"},
	}
	for _, tt := range tests {
		if got := tt.site.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCodeID(t *testing.T) {
	if got := DefMissingPrimitive.ID(); got != "OPF3003" {
		t.Errorf("ID = %q", got)
	}
	if got := ManUnreadable.String(); got != "ManUnreadable" {
		t.Errorf("String = %q", got)
	}
}

package diag

import "fmt"

// Reporter is the minimal contract for receiving diagnostics from
// checking phases. Implementations: BagReporter (collects into a Bag),
// NopReporter (discards), MultiReporter (fan-out).
type Reporter interface {
	Report(code Code, sev Severity, primary Site, msg string, notes []Note)
}

// BagReporter collects diagnostics into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(code Code, sev Severity, primary Site, msg string, notes []Note) {
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Site, string, []Note) {}

// MultiReporter fans a diagnostic out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, primary Site, msg string, notes []Note) {
	for _, r := range m {
		r.Report(code, sev, primary, msg, notes)
	}
}

// ReportBuilder accumulates diagnostic details before emitting.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to a reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary Site, format string, args ...any) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			Primary:  primary,
		},
	}
}

// Error is a shortcut for SevError diagnostics.
func Error(r Reporter, code Code, primary Site, format string, args ...any) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, format, args...)
}

// Warning is a shortcut for SevWarning diagnostics.
func Warning(r Reporter, code Code, primary Site, format string, args ...any) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, format, args...)
}

// Info is a shortcut for SevInfo diagnostics.
func Info(r Reporter, code Code, primary Site, format string, args ...any) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, format, args...)
}

// WithNote appends a note.
func (b *ReportBuilder) WithNote(site Site, format string, args ...any) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Site: site, Msg: fmt.Sprintf(format, args...)})
	return b
}

// Emit sends the diagnostic to the reporter. Emitting twice is a no-op.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted || b.reporter == nil {
		return
	}
	b.emitted = true
	b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
}

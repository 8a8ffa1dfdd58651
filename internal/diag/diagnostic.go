package diag

// Note attaches secondary context to a diagnostic, e.g. the site of a
// previous provider of a colliding signature.
type Note struct {
	Site Site
	Msg  string
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Site
	Notes    []Note
}

// WithNote returns a copy of the diagnostic with an extra note.
func (d Diagnostic) WithNote(site Site, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	notes = append(notes, Note{Site: site, Msg: msg})
	d.Notes = notes
	return d
}

package diag

import "frtypo/internal/source"

// Record is one observed or applied correction, or a structural problem.
type Record struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Pos      source.LineCol
	Before   string
	After    string
}

// New builds a record without before/after text.
func New(sev Severity, code Code, primary source.Span, msg string) Record {
	return Record{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// WithChange returns a copy carrying the replaced text and its replacement.
func (r Record) WithChange(before, after string) Record {
	r.Before = before
	r.After = after
	return r
}

// At returns a copy positioned at pos.
func (r Record) At(pos source.LineCol) Record {
	r.Pos = pos
	return r
}

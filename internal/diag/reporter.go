package diag

import "frtypo/internal/source"

// Reporter: минимальный контракт получения записей от классификатора и правил.
type Reporter interface {
	Report(r Record)
}

// ReportBuilder accumulates record details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	rec      Record
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		rec:      New(sev, code, primary, msg),
	}
}

// ReportWarning is a shortcut for SevWarning records.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// ReportError is a shortcut for SevError records.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// WithChange sets the before/after text.
func (b *ReportBuilder) WithChange(before, after string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.rec = b.rec.WithChange(before, after)
	return b
}

// At sets the resolved position.
func (b *ReportBuilder) At(pos source.LineCol) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.rec = b.rec.At(pos)
	return b
}

// Emit sends the record to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.rec)
	}
	b.emitted = true
}

// Record returns the accumulated record without emitting.
func (b *ReportBuilder) Record() Record {
	if b == nil {
		return Record{}
	}
	return b.rec
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(rec Record) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(rec)
}

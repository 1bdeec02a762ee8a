package diag

import "ic10lsp/internal/source"

// Reporter receives diagnostics from an analysis pass.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder assembles one diagnostic. Emit hands it to the reporter.
//
//	diag.ReportWarning(r, diag.LintAbsoluteJump, span, "Absolute jump to line number").
//		WithFix(fix).
//		WithData("jr").
//		Emit()
type ReportBuilder struct {
	r    Reporter
	d    Diagnostic
	sent bool
}

// ReportError starts an error diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevError, code, primary, msg)}
}

// ReportWarning starts a warning diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevWarning, code, primary, msg)}
}

// ReportInfo starts an informational diagnostic.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevInfo, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

func (b *ReportBuilder) WithFix(fix Fix) *ReportBuilder {
	b.d = b.d.WithFix(fix)
	return b
}

// WithData sets the payload code actions read back from the client.
func (b *ReportBuilder) WithData(data string) *ReportBuilder {
	b.d = b.d.WithData(data)
	return b
}

// Emit reports the diagnostic. Later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b.sent || b.r == nil {
		return
	}
	b.sent = true
	b.r.Report(b.d)
}

// SliceReporter keeps diagnostics in emission order.
type SliceReporter struct{ Items []Diagnostic }

func (r *SliceReporter) Report(d Diagnostic) {
	r.Items = append(r.Items, d)
}

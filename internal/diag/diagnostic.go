package diag

import (
	"ic10lsp/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. A non-empty OldText guards the edit:
// the fix engine refuses to apply it when the current text differs.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability describes how confident a producer is in a fix.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
	// Data is a machine-readable payload for quick fixes, e.g. the
	// replacement mnemonic of an absolute jump.
	Data string
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

func (d Diagnostic) WithData(data string) Diagnostic {
	d.Data = data
	return d
}

// Replace builds a single-edit, always-safe fix.
func Replace(title string, span source.Span, oldText, newText string) Fix {
	return Fix{
		Title:         title,
		Applicability: FixApplicabilityAlwaysSafe,
		IsPreferred:   true,
		Edits:         []TextEdit{{Span: span, NewText: newText, OldText: oldText}},
	}
}

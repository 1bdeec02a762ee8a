package diagfmt

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// LocationJSON is a span with byte offsets and, optionally, 1-based
// line/column positions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is one replacement. BeforeLines and AfterLines hold the
// affected source lines when previews are requested.
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON mirrors diag.Diagnostic. Data carries the quick-fix
// payload of lint diagnostics.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Data     string       `json:"data,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by `check --format json`.
// Errors and Warnings count the emitted diagnostics.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

// BuildDiagnosticsOutput converts the bag without encoding it. opts.Max
// caps the number of diagnostics when positive.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for i := range items {
		d := &items[i]
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
		Data:     d.Data,
	}
	if b.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		// Preferred fixes first, then safer ones.
		fixes := slices.Clone(d.Fixes)
		slices.SortStableFunc(fixes, func(x, y diag.Fix) int {
			if x.IsPreferred != y.IsPreferred {
				if x.IsPreferred {
					return -1
				}
				return 1
			}
			return cmp.Or(
				cmp.Compare(x.Applicability, y.Applicability),
				cmp.Compare(x.Title, y.Title),
				cmp.Compare(x.ID, y.ID),
			)
		})
		for _, f := range fixes {
			out.Fixes = append(out.Fixes, b.fix(f))
		}
	}
	return out
}

func (b jsonBuilder) fix(f diag.Fix) FixJSON {
	out := FixJSON{
		ID:            f.ID,
		Title:         f.Title,
		Applicability: f.Applicability.String(),
		IsPreferred:   f.IsPreferred,
	}
	for _, e := range f.Edits {
		edit := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText, OldText: e.OldText}
		if b.opts.IncludePreviews {
			if p, err := buildFixEditPreview(b.fs, e); err == nil {
				edit.BeforeLines, edit.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, edit)
	}
	return out
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	f := b.fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, b.fs, b.opts.PathMode)
	if b.opts.IncludePositions {
		start, end := f.LineCol(span.Start), f.LineCol(span.End)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

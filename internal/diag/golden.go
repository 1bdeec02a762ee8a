package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"ic10lsp/internal/source"
)

// shortLine is one row of the short format.
type shortLine struct {
	label   string
	code    string
	path    string
	pos     source.LineCol
	message string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.message)
}

// FormatShortDiagnostics renders one "label CODE path:line:col message"
// row per diagnostic, plus one "note" row per note when includeNotes is
// set. Rows are sorted by path, position, label, code and message, and
// joined without a trailing newline. Spans outside fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	for i := range diags {
		d := &diags[i]
		code := d.Code.ID()
		if l, ok := shortRow(fs, d.Primary, SeverityLabel(d.Severity), code, d.Message); ok {
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortRow(fs, n.Span, "note", code, n.Msg); ok {
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.label, b.label),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.message, b.message),
		)
	})
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

func shortRow(fs *source.FileSet, span source.Span, label, code, msg string) (shortLine, bool) {
	f := fs.Get(span.File)
	if f == nil {
		return shortLine{}, false
	}
	path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	return shortLine{
		label:   label,
		code:    code,
		path:    strings.TrimPrefix(path, "./"),
		pos:     f.LineCol(span.Start),
		message: strings.Join(strings.Fields(msg), " "),
	}, true
}

// SeverityLabel is the lowercase form used in short output.
func SeverityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

type palette struct {
	err, warn, info, note, bold, gutter, caret, add, del *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		bold:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		add:    mk(color.FgGreen),
		del:    mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes bag in compiler style, one block per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line underlined with ^~~~ and any notes. The bag
// is printed in its current order; sort it first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		pos := file.LineCol(d.Primary.Start)
		fmt.Fprintf(w, "%s: %s %s\n",
			pal.bold.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), pos.Line, pos.Col),
			pal.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
			pal.bold.Sprint(d.Message),
		)
		writeSnippet(w, pal, file, d.Primary, tab)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Span.File)
				np := nf.LineCol(n.Span.Start)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), np.Line, np.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), f.Title)
				if !opts.ShowPreview {
					continue
				}
				for _, e := range f.Edits {
					preview, err := buildFixEditPreview(fs, e)
					if err != nil {
						continue
					}
					for _, l := range preview.before {
						fmt.Fprintf(w, "    %s\n", pal.del.Sprint("- "+l))
					}
					for _, l := range preview.after {
						fmt.Fprintf(w, "    %s\n", pal.add.Sprint("+ "+l))
					}
				}
			}
		}
	}
}

// writeSnippet prints the first line of span with a caret underline. The
// underline is measured in terminal cells so wide runes stay aligned.
func writeSnippet(w io.Writer, pal palette, file *source.File, span source.Span, tab int) {
	start := file.PointAt(span.Start)
	lineStart := file.LineStart(start.Row)
	lineEnd := file.LineEnd(start.Row)
	line := file.Line(start.Row)

	end := min(max(span.End, span.Start), lineEnd)
	prefix := expandTabs(string(file.Content[lineStart:span.Start]), tab, 0)
	covered := expandTabs(string(file.Content[span.Start:end]), tab, runewidth.StringWidth(prefix))

	num := strconv.FormatUint(uint64(start.Row)+1, 10)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), expandTabs(line, tab, 0))

	width := max(runewidth.StringWidth(covered), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", runewidth.StringWidth(prefix)), pal.caret.Sprint(underline))
}

// expandTabs replaces tabs with spaces up to the next stop, counting from
// column col.
func expandTabs(s string, tab, col int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			n := tab - col%tab
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// Summary prints the error and warning counts of bag.
func Summary(w io.Writer, bag *diag.Bag, files int, useColor bool) {
	pal := newPalette(useColor)
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	line := fmt.Sprintf("%d %s, %d %s in %d %s",
		errs, plural(errs, "error"), warns, plural(warns, "warning"), files, plural(files, "file"))
	switch {
	case errs > 0:
		line = pal.err.Sprint(line)
	case warns > 0:
		line = pal.warn.Sprint(line)
	}
	fmt.Fprintln(w, line)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

func absJump(fs *source.FileSet) *diag.Bag {
	id := fs.AddVirtual("/home/user/project/src/loop.ic10", []byte("yield\nj 5\n"))
	op := source.Span{File: id, Start: 6, End: 7}
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LintAbsoluteJump, source.Span{File: id, Start: 6, End: 9}, "Absolute jump to line number").
		WithData("jr").
		WithNote(op, "jump instruction").
		WithFix(diag.Replace("Replace with jr", op, "j", "jr")))
	return bag
}

func TestPrettyLayout(t *testing.T) {
	fs := source.NewFileSet()
	bag := absJump(fs)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true, ShowPreview: true})

	want := strings.Join([]string{
		"loop.ic10:2:1: WARNING L001: Absolute jump to line number",
		"2 | j 5",
		"  | ^~~",
		"  note: loop.ic10:2:1: jump instruction",
		"  fix: Replace with jr",
		"    - j 5",
		"    + jr 5",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	bag := absJump(fs)

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/loop.ic10:2:1"},
		{PathModeRelative, "src/loop.ic10:2:1"},
		{PathModeBasename, "loop.ic10:2:1"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
		if !strings.HasPrefix(buf.String(), tt.want+":") {
			t.Fatalf("mode %d: got %q", tt.mode, buf.String())
		}
	}
}

func TestCaretAlignment(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		start  uint32
		end    uint32
		indent int
		caret  string
	}{
		{"tab", "\tmove r0 x\n", 9, 10, 12, "^"},
		{"wide runes before", "# 日本 x\n", 9, 10, 7, "^"},
		{"empty span", "yield\n", 5, 5, 5, "^"},
		{"wide runes covered", "j 0 # 日本語\n", 6, 15, 6, "^~~~~~"},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		id := fs.AddVirtual("t.ic10", []byte(tt.src))
		bag := diag.NewBag(1)
		bag.Add(diag.NewError(diag.TypUnknownIdentifier, source.Span{File: id, Start: tt.start, End: tt.end}, "x"))

		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{})
		lines := strings.Split(buf.String(), "\n")
		want := "  | " + strings.Repeat(" ", tt.indent) + tt.caret
		if len(lines) < 3 || lines[2] != want {
			t.Fatalf("%s: caret line %q, want %q", tt.name, lines[2], want)
		}
	}
}

func TestSummary(t *testing.T) {
	fs := source.NewFileSet()
	bag := absJump(fs)
	var buf bytes.Buffer
	Summary(&buf, bag, 1, false)
	if got := buf.String(); got != "0 errors, 1 warning in 1 file\n" {
		t.Fatalf("Summary = %q", got)
	}
}

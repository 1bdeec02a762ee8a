package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileAppendsNewline(t *testing.T) {
	f := NewFile(0, "a.ic10", []byte("yield"), FileVirtual)
	if string(f.Content) != "yield\n" {
		t.Fatalf("expected trailing newline, got %q", f.Content)
	}
	if f.Flags&FileAddedNewline == 0 {
		t.Fatalf("expected FileAddedNewline flag")
	}

	g := NewFile(0, "b.ic10", []byte("yield\n"), FileVirtual)
	if g.Flags&FileAddedNewline != 0 {
		t.Fatalf("did not expect FileAddedNewline for terminated content")
	}
}

func TestNewFileNormalizesCRLFAndBOM(t *testing.T) {
	f := NewFile(0, "a.ic10", []byte("\xEF\xBB\xBFmove r0 1\r\nyield\r\n"), 0)
	if string(f.Content) != "move r0 1\nyield\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if f.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", f.LineCount())
	}
}

func TestPointRoundTrip(t *testing.T) {
	f := NewFile(0, "a.ic10", []byte("move r0 1\n\nj 0\n"), 0)
	tests := []struct {
		off  uint32
		want Point
	}{
		{0, Point{0, 0}},
		{5, Point{0, 5}},
		{9, Point{0, 9}},
		{10, Point{1, 0}},
		{11, Point{2, 0}},
		{13, Point{2, 2}},
	}
	for _, tt := range tests {
		got := f.PointAt(tt.off)
		if got != tt.want {
			t.Fatalf("PointAt(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
		if back := f.OffsetAt(got); back != tt.off {
			t.Fatalf("OffsetAt(%+v) = %d, want %d", got, back, tt.off)
		}
	}
}

func TestOffsetAtClampsColumn(t *testing.T) {
	f := NewFile(0, "a.ic10", []byte("j 0\nyield\n"), 0)
	if got := f.OffsetAt(Point{Row: 0, Col: 100}); got != 3 {
		t.Fatalf("expected clamp to line end 3, got %d", got)
	}
	if got := f.Line(1); got != "yield" {
		t.Fatalf("Line(1) = %q", got)
	}
	if got := f.LineCol(4); got != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("LineCol(4) = %+v", got)
	}
}

func TestFileSetLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ic10")
	if err := os.WriteFile(path, []byte("yield"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f, ok := fs.GetByPath(path)
	if !ok || f.ID != id {
		t.Fatalf("GetByPath did not return loaded file")
	}
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 5})
	if start != (LineCol{1, 1}) || end != (LineCol{1, 6}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.ic10")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{Start: 4, End: 8}
	b := Span{Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if !a.Contains(8) || a.Contains(9) || a.Contains(3) {
		t.Fatalf("Contains boundaries wrong")
	}
	if got := a.WithStart(6); got != (Span{Start: 6, End: 8}) {
		t.Fatalf("WithStart = %v", got)
	}
}

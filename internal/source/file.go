package source

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"fortio.org/safecast"
)

// NewFile builds a standalone file from raw editor or disk content.
// CRLF and BOM are normalized and a trailing newline is appended when
// missing, so the last line always terminates.
func NewFile(id FileID, path string, content []byte, flags FileFlags) *File {
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if len(content) == 0 || content[len(content)-1] != '\n' {
		content = append(slices.Clip(content), '\n')
		flags |= FileAddedNewline
	}
	return &File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// LineCount returns the number of newline-terminated rows.
func (f *File) LineCount() int {
	return len(f.LineIdx)
}

// LineStart returns the offset of the first byte of row.
func (f *File) LineStart(row uint32) uint32 {
	if row == 0 {
		return 0
	}
	if int(row) > len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[row-1] + 1
}

// LineEnd returns the offset of the '\n' terminating row, or the content
// length for an unterminated tail.
func (f *File) LineEnd(row uint32) uint32 {
	if int(row) < len(f.LineIdx) {
		return f.LineIdx[row]
	}
	return f.Len()
}

// Line returns the text of row without its terminator.
func (f *File) Line(row uint32) string {
	start, end := f.LineStart(row), f.LineEnd(row)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// PointAt converts a byte offset into a zero-based row/column.
func (f *File) PointAt(off uint32) Point {
	row := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	r, err := safecast.Conv[uint32](row)
	if err != nil {
		panic(fmt.Errorf("row overflow: %w", err))
	}
	return Point{Row: r, Col: off - f.LineStart(r)}
}

// OffsetAt converts a row/column back into a byte offset, clamping the
// column to the end of the row.
func (f *File) OffsetAt(p Point) uint32 {
	start, end := f.LineStart(p.Row), f.LineEnd(p.Row)
	if start+p.Col > end {
		return end
	}
	return start + p.Col
}

// LineCol returns the 1-based position of off for human output.
func (f *File) LineCol(off uint32) LineCol {
	p := f.PointAt(off)
	return LineCol{Line: p.Row + 1, Col: p.Col + 1}
}

// Text returns the content covered by span.
func (f *File) Text(span Span) string {
	end := min(span.End, f.Len())
	if span.Start >= end {
		return ""
	}
	return string(f.Content[span.Start:end])
}

// FormatPath renders the path for output. mode is one of "absolute",
// "relative" (to baseDir, falling back to the stored path outside it),
// "basename" or "auto", which shortens long absolute paths to their base.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			return f.Path
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil && !startsWithDotDot(rel) {
			return normalizePath(rel)
		}
		return f.Path
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}

func startsWithDotDot(p string) bool {
	return p == ".." || len(p) > 2 && p[:3] == "../"
}

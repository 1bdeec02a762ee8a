package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"ic10lsp/internal/source"
)

// positionEncoding is the unit of position.character agreed at initialize.
type positionEncoding uint8

const (
	encodingUTF16 positionEncoding = iota
	encodingUTF8
)

func (e positionEncoding) String() string {
	if e == encodingUTF8 {
		return "utf-8"
	}
	return "utf-16"
}

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// columnOffset converts a character count on line into a byte offset,
// clamped to the line length.
func columnOffset(line string, character int, enc positionEncoding) int {
	if character <= 0 {
		return 0
	}
	if enc == encodingUTF8 {
		return min(character, len(line))
	}
	units := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > character {
			break
		}
		units += need
		i += size
		if units == character {
			break
		}
	}
	return i
}

// columnUnits is the inverse of columnOffset.
func columnUnits(line string, byteCol int, enc positionEncoding) int {
	byteCol = min(max(byteCol, 0), len(line))
	if enc == encodingUTF8 {
		return byteCol
	}
	units := 0
	for i := 0; i < byteCol; {
		r, size := utf8.DecodeRuneInString(line[i:byteCol])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

func offsetForPosition(file *source.File, pos position, enc positionEncoding) uint32 {
	if file == nil || pos.Line < 0 {
		return 0
	}
	if pos.Line >= file.LineCount() {
		return file.Len()
	}
	row := safeUint32(pos.Line)
	start := file.LineStart(row)
	return start + safeUint32(columnOffset(file.Line(row), pos.Character, enc))
}

func positionForOffset(file *source.File, off uint32, enc positionEncoding) position {
	if file == nil {
		return position{}
	}
	off = min(off, file.Len())
	p := file.PointAt(off)
	line := file.Line(p.Row)
	return position{
		Line:      int(p.Row),
		Character: columnUnits(line, int(p.Col), enc),
	}
}

func rangeForSpan(file *source.File, span source.Span, enc positionEncoding) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffset(file, span.Start, enc),
		End:   positionForOffset(file, span.End, enc),
	}
}

package source

import "strconv"

// Span is a half-open byte range [Start, End) of one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// String renders file:start-end, for logs and test failures.
func (s Span) String() string {
	b := strconv.AppendUint(nil, uint64(s.File), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(s.Start), 10)
	b = append(b, '-')
	return string(strconv.AppendUint(b, uint64(s.End), 10))
}

// Contains includes End, so a cursor just past a token still hits it.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off <= s.End
}

// Cover grows s to include other. Spans of different files leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

// WithStart moves the start to off, dragging End along if it would cross.
func (s Span) WithStart(off uint32) Span {
	s.Start, s.End = off, max(s.End, off)
	return s
}

package lsp

import "strings"

// applyChanges replays the content changes of one didChange notification.
// A change without a range replaces the whole text.
func applyChanges(text string, changes []textDocumentContentChangeEvent, enc positionEncoding) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetInText(text, change.Range.Start, enc)
		end := max(offsetInText(text, change.Range.End, enc), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func offsetInText(text string, pos position, enc positionEncoding) int {
	if pos.Line < 0 {
		return 0
	}
	start := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return len(text)
		}
		start += nl + 1
	}
	end := len(text)
	if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 {
		end = start + nl
	}
	return start + columnOffset(text[start:end], pos.Character, enc)
}

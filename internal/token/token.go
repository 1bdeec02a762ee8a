// Package token defines the lexical token kinds of IC10 source.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Spaces and tabs are never tokens; newlines always are.
//   - Registers, devices, vocabulary names and mnemonics are all Word tokens.
//     Their classification belongs to the parser, not the lexer.
package token

import (
	"fmt"

	"ic10lsp/internal/source"
)

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates bytes that start no valid token, or a malformed one.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a line.
	Newline
	// Word is a letter or '_' followed by letters, digits and '_'.
	Word
	// Number is a decimal, $hex or %binary literal.
	Number
	// String is a double-quoted literal, used only inside HASH/STR.
	String
	// Comment runs from '#' to the end of the line.
	Comment
	Colon
	LParen
	RParen
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Newline:
		return "newline"
	case Word:
		return "word"
	case Number:
		return "number"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Colon:
		return "':'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Adjacent reports whether next starts exactly where t ends.
func (t Token) Adjacent(next Token) bool {
	return t.Span.End == next.Span.Start
}

// Is reports whether t has kind k.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

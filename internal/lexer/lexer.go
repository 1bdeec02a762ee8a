// Package lexer splits IC10 source into tokens. It never fails: bytes that
// start no token come out as token.Invalid and the parser turns them into
// syntax errors.
package lexer

import (
	"unicode/utf8"

	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

// Lexer produces tokens for one file on demand.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token
}

func New(file *source.File) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file)}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.cursor.BumpWhile(isBlank)
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var kind token.Kind

	switch {
	case ch == '\n':
		lx.cursor.Bump()
		kind = token.Newline
	case ch == '#':
		lx.cursor.BumpWhile(func(b byte) bool { return b != '\n' })
		kind = token.Comment
	case isWordStart(ch):
		lx.cursor.BumpWhile(isWordContinue)
		kind = token.Word
	case isDec(ch) || ch == '$' || ch == '%' || ch == '-' || ch == '.':
		kind = lx.scanNumber()
	case ch == '"':
		kind = lx.scanString()
	case ch == ':':
		lx.cursor.Bump()
		kind = token.Colon
	case ch == '(':
		lx.cursor.Bump()
		kind = token.LParen
	case ch == ')':
		lx.cursor.Bump()
		kind = token.RParen
	default:
		lx.bumpRune()
		kind = token.Invalid
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the rest of the file, EOF included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 256)
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// bumpRune skips one whole UTF-8 sequence so Invalid tokens never split a rune.
func (lx *Lexer) bumpRune() {
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		lx.cursor.Bump()
		return
	}
	_, size := utf8.DecodeRune(lx.cursor.rest())
	for range size {
		lx.cursor.Bump()
	}
}

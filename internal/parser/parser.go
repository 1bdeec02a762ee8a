// Package parser builds the concrete syntax tree of an IC10 program.
//
// The grammar is line oriented:
//
//	line        = [ label | instruction ] [ comment ] newline
//	label       = identifier ":"
//	instruction = operation { operand } | invalid_instruction
//	operand     = register | device | number | logictype | identifier
//
// Tokens that fit nowhere become ERROR nodes; parsing itself only fails
// for oversized input or a cancelled context.
package parser

import (
	"context"
	"errors"
	"fmt"

	"ic10lsp/internal/lexer"
	"ic10lsp/internal/source"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/token"
)

// MaxSourceSize bounds the input accepted by Parse.
const MaxSourceSize = 1 << 20

// ErrTooLarge is returned for sources above MaxSourceSize.
var ErrTooLarge = errors.New("source too large")

// Options supply the word sets a grammar would otherwise hardcode.
type Options struct {
	// IsOperation reports whether a line-leading word is a mnemonic. With a
	// nil func every leading word is accepted as an operation.
	IsOperation func(word string) bool
	// IsVocabulary reports whether a word is a vocabulary name and should
	// become a logictype node instead of an identifier.
	IsVocabulary func(word string) bool
}

// Parse tokenizes and parses f.
func Parse(ctx context.Context, f *source.File, opts Options) (*syntax.Tree, error) {
	if len(f.Content) > MaxSourceSize {
		return nil, fmt.Errorf("%s: %d bytes: %w", f.Path, len(f.Content), ErrTooLarge)
	}
	p := &parser{
		file: f,
		opts: opts,
		toks: lexer.New(f).All(),
	}
	root := syntax.NewNode(syntax.KindProgram, source.Span{File: f.ID, End: f.Len()})
	for !p.at(token.EOF) {
		if len(root.Children)%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("parse %s: %w", f.Path, err)
			}
		}
		root.Append(p.parseLine())
	}
	return &syntax.Tree{File: f, Root: root}, nil
}

type parser struct {
	file *source.File
	opts Options
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// atLineEnd reports whether the remaining tokens of the line are at most a
// comment.
func (p *parser) atLineEnd() bool {
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.Comment:
		return true
	}
	return false
}

func (p *parser) parseLine() *syntax.Node {
	start := p.file.LineStart(p.file.PointAt(p.peek().Span.Start).Row)
	line := syntax.NewNode(syntax.KindLine, source.Span{File: p.file.ID, Start: start})

	first := p.peek()
	switch {
	case p.atLineEnd():
	case first.Kind == token.Word && p.peekN(1).Kind == token.Colon && first.Adjacent(p.peekN(1)):
		line.Append(p.parseLabel())
	case first.Kind == token.Word:
		line.Append(p.parseInstruction())
	}
	if !p.atLineEnd() {
		line.Append(p.errorUntilLineEnd())
	}
	if p.at(token.Comment) {
		t := p.next()
		line.Append(syntax.NewNode(syntax.KindComment, t.Span))
	}
	if p.at(token.Newline) {
		t := p.next()
		line.Append(syntax.NewNode(syntax.KindNewline, t.Span))
	}
	line.Span.End = max(p.toks[max(p.pos-1, 0)].Span.End, start)
	return line
}

func (p *parser) parseLabel() *syntax.Node {
	name := p.next()
	colon := p.next()
	ident := syntax.NewNode(syntax.KindIdentifier, name.Span)
	return syntax.NewNode(syntax.KindLabel, name.Span.Cover(colon.Span), ident)
}

func (p *parser) parseInstruction() *syntax.Node {
	word := p.peek()
	instr := syntax.NewNode(syntax.KindInstruction, word.Span)

	if p.opts.IsOperation != nil && !p.opts.IsOperation(word.Text) {
		span := word.Span
		for !p.atLineEnd() {
			span = span.Cover(p.next().Span)
		}
		instr.Append(syntax.NewNode(syntax.KindInvalidInstruction, span))
		instr.Span = span
		return instr
	}

	p.next()
	op := syntax.NewNode(syntax.KindOperation, word.Span)
	op.Field = syntax.FieldOperation
	instr.Append(op)

	for !p.atLineEnd() {
		child := p.parseOperand()
		instr.Append(child)
		instr.Span = instr.Span.Cover(child.Span)
	}
	return instr
}

// parseOperand consumes one operand, or one stray token wrapped in ERROR.
func (p *parser) parseOperand() *syntax.Node {
	t := p.peek()
	var value *syntax.Node

	switch t.Kind {
	case token.Number:
		p.next()
		value = syntax.NewNode(syntax.KindNumber, t.Span)
	case token.Word:
		if (t.Text == "HASH" || t.Text == "STR") && p.peekN(1).Kind == token.LParen {
			return p.wrapOperand(p.parsePreproc())
		}
		p.next()
		value = p.classifyWord(t)
	default:
		p.next()
		return syntax.NewNode(syntax.KindError, t.Span)
	}
	return p.wrapOperand(value)
}

func (p *parser) wrapOperand(value *syntax.Node) *syntax.Node {
	if value.Kind == syntax.KindError {
		return value
	}
	operand := syntax.NewNode(syntax.KindOperand, value.Span, value)
	operand.Field = syntax.FieldOperand
	return operand
}

// classifyWord decides the node kind of a bare word operand. A device may
// carry a channel suffix written as d0:1, lexed as three adjacent tokens.
func (p *parser) classifyWord(t token.Token) *syntax.Node {
	switch {
	case isRegister(t.Text):
		return syntax.NewNode(syntax.KindRegister, t.Span)
	case isDevice(t.Text):
		span := t.Span
		colon, num := p.peek(), p.peekN(1)
		if colon.Kind == token.Colon && num.Kind == token.Number && t.Adjacent(colon) && colon.Adjacent(num) && isChannel(num.Text) {
			p.next()
			p.next()
			span = span.Cover(num.Span)
		}
		return syntax.NewNode(syntax.KindDevice, span)
	case p.opts.IsVocabulary != nil && p.opts.IsVocabulary(t.Text):
		return syntax.NewNode(syntax.KindLogicType, t.Span)
	default:
		return syntax.NewNode(syntax.KindIdentifier, t.Span)
	}
}

// parsePreproc parses HASH("...") or STR("...") into a number node holding
// a preproc_string child for the quoted text. An incomplete call still
// yields the number node so completion works mid-typing; the missing
// pieces are reported as an ERROR child.
func (p *parser) parsePreproc() *syntax.Node {
	name := p.next()
	lparen := p.next()
	num := syntax.NewNode(syntax.KindNumber, name.Span.Cover(lparen.Span))

	if !p.at(token.String) {
		num.Append(syntax.NewNode(syntax.KindError, source.Span{File: p.file.ID, Start: lparen.Span.End, End: lparen.Span.End}))
		return num
	}
	str := p.next()
	num.Span = num.Span.Cover(str.Span)
	inner := str.Span
	inner.Start++
	closed := len(str.Text) >= 2 && str.Text[len(str.Text)-1] == '"'
	if closed {
		inner.End--
	}
	num.Append(syntax.NewNode(syntax.KindPreprocString, inner))

	if closed && p.at(token.RParen) {
		num.Span = num.Span.Cover(p.next().Span)
		return num
	}
	num.Append(syntax.NewNode(syntax.KindError, source.Span{File: p.file.ID, Start: str.Span.End, End: str.Span.End}))
	return num
}

func (p *parser) errorUntilLineEnd() *syntax.Node {
	span := p.next().Span
	for !p.atLineEnd() {
		span = span.Cover(p.next().Span)
	}
	return syntax.NewNode(syntax.KindError, span)
}

package lexer

import "ic10lsp/internal/token"

// scanNumber handles -12, 1.5, 2e-3, $FF, %1010. Anything glued to the end
// of the literal (5abc, $xyz) makes the whole run Invalid.
func (lx *Lexer) scanNumber() token.Kind {
	c := &lx.cursor
	ok := true

	switch c.Peek() {
	case '$':
		c.Bump()
		ok = c.BumpWhile(func(b byte) bool { return isHex(b) || b == '_' }) > 0
	case '%':
		c.Bump()
		ok = c.BumpWhile(func(b byte) bool { return b == '0' || b == '1' || b == '_' }) > 0
	default:
		c.Eat('-')
		intDigits := c.BumpWhile(isDec)
		fracDigits := 0
		if c.Peek() == '.' {
			c.Bump()
			fracDigits = c.BumpWhile(isDec)
		}
		ok = intDigits > 0 || fracDigits > 0
		if ok && (c.Peek() == 'e' || c.Peek() == 'E') {
			mark := c.Mark()
			c.Bump()
			if c.Peek() == '+' || c.Peek() == '-' {
				c.Bump()
			}
			if c.BumpWhile(isDec) == 0 {
				c.Reset(mark)
			}
		}
	}

	if c.BumpWhile(isWordContinue) > 0 || c.Peek() == '.' {
		c.BumpWhile(func(b byte) bool { return isWordContinue(b) || b == '.' })
		ok = false
	}
	if !ok {
		return token.Invalid
	}
	return token.Number
}

// scanString reads "..." up to the closing quote. An unterminated string
// stops at the end of the line and still yields a String token so that
// HASH(" can be completed while it is being typed; the parser reports it.
func (lx *Lexer) scanString() token.Kind {
	c := &lx.cursor
	c.Bump() // opening quote
	c.BumpWhile(func(b byte) bool { return b != '"' && b != '\n' })
	c.Eat('"')
	return token.String
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isWordStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isWordContinue(b byte) bool {
	return isWordStart(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

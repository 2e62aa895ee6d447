package lexer

import "detemplate/internal/token"

// scanNumber scans an integer or floating constant: decimal, 0x/0X hex,
// 0b/0B binary, 0 octal, with an optional fractional part, exponent, and
// a trailing u/U/l/L/ll/LL suffix combination. It never fails outright on
// a malformed literal; it returns the best span it can, without reporting, so the
// enclosing best-effort scan keeps moving.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	isFloat := false

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		isFloat = true
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.scanExponent(&isFloat)
		return lx.emitNumber(start, isFloat)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			for lx.cursor.Peek() == '0' || lx.cursor.Peek() == '1' {
				lx.cursor.Bump()
			}
			return lx.emitNumber(start, false)
		case 'x', 'X':
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.emitNumber(start, false)
		default:
			for lx.cursor.Peek() >= '0' && lx.cursor.Peek() <= '7' {
				lx.cursor.Bump()
			}
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		isFloat = true
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	lx.scanExponent(&isFloat)

	return lx.emitNumber(start, isFloat)
}

func (lx *Lexer) scanExponent(isFloat *bool) {
	if lx.cursor.Peek() != 'e' && lx.cursor.Peek() != 'E' {
		return
	}
	*isFloat = true
	lx.cursor.Bump()
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emitNumber(start Mark, isFloat bool) token.Token {
	flags := token.NumberFlags(0)
	if !isFloat {
		flags |= token.NumInteger
	}
	sawU, sawL := false, false
	for {
		switch lx.cursor.Peek() {
		case 'u', 'U':
			if sawU {
				goto done
			}
			sawU = true
			lx.cursor.Bump()
		case 'l', 'L':
			sawL = true
			lx.cursor.Bump()
		case 'f', 'F':
			if isFloat {
				lx.cursor.Bump()
			}
			goto done
		default:
			goto done
		}
	}
done:
	if sawU {
		flags |= token.NumUnsigned
	}
	if sawL {
		flags |= token.NumLong
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:     token.KindNumber,
		NumFlags: flags,
		Span:     sp,
		Text:     string(lx.file.Content[sp.Start:sp.End]),
	}
}

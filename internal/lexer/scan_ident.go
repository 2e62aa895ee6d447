package lexer

import (
	"detemplate/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* or a Unicode identifier.
// C++ keywords ("template", "class", "typename", ...) are not their own
// token kind here: they come back as plain KindName tokens, and callers
// compare Text directly, exactly as the pattern engine's %var%/literal
// opcodes expect.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.KindInvalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !isASCII(text) {
		// Two source files can spell the same identifier with different
		// Unicode normal forms; canonicalize so downstream name comparisons
		// (match.SimpleMatch, declaration lookup) see them as equal.
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.KindName, Span: sp, Text: text}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return false
		}
	}
	return true
}

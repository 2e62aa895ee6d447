// Package lexer tokenizes a C++ source file into a detemplate/internal/token
// stream. It is a small, self-contained single-pass loop scanner: the
// template simplifier downstream never sees raw source text again, only
// token.List. Treat this package as the black-box producer of that list.
package lexer

import (
	"detemplate/internal/source"
	"detemplate/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token with its Leading trivia already
// attached. Once EOF is reached it keeps returning an EOF token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.KindEOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\'':
		tok = lx.scanCharLiteral()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Tokenize scans file in full and appends every token to list, pairing
// '(','[','{' with their closers via token.CreateMutualLinks as it goes.
// It never establishes '<'/'>' links: those are the simplifier's job,
// since only it can tell a template-argument angle bracket from a pair of
// comparison operators.
func Tokenize(list *token.List, file *source.File, opts Options) {
	lx := New(file, opts)
	var stack []*token.Token

	for {
		raw := lx.Next()
		if raw.Kind == token.KindEOF {
			list.Append("", token.KindEOF, raw.Span)
			break
		}

		tok := list.Append(raw.Text, raw.Kind, raw.Span)
		tok.NumFlags = raw.NumFlags
		tok.Leading = raw.Leading

		switch tok.Text {
		case "(", "[", "{":
			stack = append(stack, tok)
		case ")", "]", "}":
			if n := len(stack); n > 0 {
				open := stack[n-1]
				stack = stack[:n-1]
				if bracketsMatch(open.Text, tok.Text) {
					token.CreateMutualLinks(open, tok)
				}
			}
		}
	}
}

func bracketsMatch(open, close string) bool {
	switch open {
	case "(":
		return close == ")"
	case "[":
		return close == "]"
	case "{":
		return close == "}"
	}
	return false
}

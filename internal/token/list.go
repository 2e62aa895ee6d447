package token

import "detemplate/internal/source"

// List owns a sequence of Tokens. It exposes the primitives the enclosing
// tokenizer is documented to provide: a head token, append, splice, an
// erase-range and mutual-link creation. The simplifier never allocates a
// Token outside of these methods so that every token it produces is owned
// by exactly one List.
type List struct {
	Files *source.FileSet

	head *Token
	back *Token
}

// NewList creates an empty list backed by the given FileSet. fs may be nil
// for lists built purely for unit testing token shape, in which case
// LineNumber-based diagnostics degrade to zero.
func NewList(fs *source.FileSet) *List {
	return &List{Files: fs}
}

// Front returns the first token, or nil for an empty list.
func (l *List) Front() *Token { return l.head }

// Back returns the last token appended so far.
func (l *List) Back() *Token { return l.back }

// Append creates a new token at the tail of the list and returns it.
func (l *List) Append(text string, kind Kind, span source.Span) *Token {
	tok := &Token{Text: text, Kind: kind, Span: span}
	l.linkAtTail(tok)
	return tok
}

// AppendCopy appends a fresh token that copies src's Text, Kind, NumFlags,
// Span and OriginalName, but not its Prev/Next/Link. Used by the
// declaration copier (S4) so that generated monomorphs keep the line/file
// of the declaration they were cloned from.
func (l *List) AppendCopy(src *Token) *Token {
	if src == nil {
		return nil
	}
	tok := &Token{
		Text:         src.Text,
		Kind:         src.Kind,
		NumFlags:     src.NumFlags,
		OriginalName: src.OriginalName,
		Span:         src.Span,
	}
	l.linkAtTail(tok)
	return tok
}

func (l *List) linkAtTail(tok *Token) {
	if l.back == nil {
		l.head = tok
		l.back = tok
		return
	}
	tok.Prev = l.back
	l.back.Next = tok
	l.back = tok
}

// InsertAfter splices a freshly built token immediately after at, without
// touching at's Link. Used by default-argument propagation to splice
// cloned default-value ranges into a use site's argument list.
func (l *List) InsertAfter(at *Token, text string, kind Kind, span source.Span) *Token {
	tok := &Token{Text: text, Kind: kind, Span: span}
	l.spliceAfter(at, tok)
	return tok
}

// InsertCopyAfter is InsertAfter's AppendCopy counterpart.
func (l *List) InsertCopyAfter(at, src *Token) *Token {
	if src == nil {
		return nil
	}
	tok := &Token{
		Text:         src.Text,
		Kind:         src.Kind,
		NumFlags:     src.NumFlags,
		OriginalName: src.OriginalName,
		Span:         src.Span,
	}
	l.spliceAfter(at, tok)
	return tok
}

func (l *List) spliceAfter(at, tok *Token) {
	if at == nil {
		l.linkAtTail(tok)
		return
	}
	next := at.Next
	tok.Prev = at
	tok.Next = next
	at.Next = tok
	if next != nil {
		next.Prev = tok
	} else {
		l.back = tok
	}
}

// DeleteThis removes a single token from the chain, relinking its
// neighbors. It does not follow or clear Link on either side; callers that
// delete a bracket token are responsible for the bracket's partner.
func (l *List) DeleteThis(tok *Token) {
	if tok == nil {
		return
	}
	prev, next := tok.Prev, tok.Next
	if prev != nil {
		prev.Next = next
	} else {
		l.head = next
	}
	if next != nil {
		next.Prev = prev
	} else {
		l.back = prev
	}
	tok.Prev, tok.Next = nil, nil
}

// EraseTokens deletes the half-open range (from, to]: every token strictly
// after from, up to and including to. from may be nil to erase from the
// head of the list. to must be reachable from from via Next.
func (l *List) EraseTokens(from, to *Token) {
	var cur *Token
	if from == nil {
		cur = l.head
	} else {
		cur = from.Next
	}
	for cur != nil {
		next := cur.Next
		l.DeleteThis(cur)
		if cur == to {
			break
		}
		cur = next
	}
}

// CreateMutualLinks pairs two bracket tokens so each is reachable from the
// other via Link. Used both by the lexer for the initial '(' '[' '{'
// pairing and by the declaration copier when cloning brackets into a
// monomorph body.
func CreateMutualLinks(open, close *Token) {
	if open == nil || close == nil {
		return
	}
	open.Link = close
	close.Link = open
}

// FindClosingBracket advances from a '<' token to its matching '>',
// honoring nested '(', '[', '{' via their own Link and splitting a
// closing ">>" logically into two '>' tokens when the depth only needs
// one of them. Returns nil if the stream ends first.
func FindClosingBracket(l *List, lt *Token) *Token {
	if lt == nil || lt.Text != "<" {
		return nil
	}
	depth := 0
	for tok := lt; tok != nil; tok = tok.Next {
		switch {
		case tok.Text == "(" || tok.Text == "[" || tok.Text == "{":
			if tok.Link != nil {
				tok = tok.Link
				continue
			}
			return nil
		case tok.Text == ")" || tok.Text == "]" || tok.Text == "}":
			return nil
		case tok.Text == "<":
			depth++
		case tok.Text == ">":
			depth--
			if depth == 0 {
				return tok
			}
		case tok.Text == ">>":
			depth -= 2
			if depth == 0 {
				return tok
			}
			if depth == -1 {
				return splitRightShift(l, tok)
			}
		case tok.Text == ";" && depth > 0:
			return nil
		}
	}
	return nil
}

// splitRightShift rewrites a ">>" token in place into two adjacent ">"
// tokens so that a bracket walk which only needed one '>' to close its
// outermost template-argument list can still see the second '>' as the
// start of whatever follows (e.g. another closing angle, or a plain
// right-shift operator once both sides are consumed). It returns the first
// '>', the one that closes the walk.
func splitRightShift(l *List, tok *Token) *Token {
	tok.Text = ">"
	tok.Kind = KindPunctuator
	l.InsertAfter(tok, ">", KindPunctuator, tok.Span)
	return tok
}

// FindMatchingOpen walks backward from a '>' to the '<' that opens it,
// mirroring FindClosingBracket. Returns nil if none balances.
func FindMatchingOpen(gt *Token) *Token {
	if gt == nil || gt.Text != ">" {
		return nil
	}
	depth := 0
	for tok := gt; tok != nil; tok = tok.Prev {
		switch {
		case tok.Text == ")" || tok.Text == "]" || tok.Text == "}":
			if tok.Link != nil {
				tok = tok.Link
				continue
			}
			return nil
		case tok.Text == "(" || tok.Text == "[" || tok.Text == "{":
			return nil
		case tok.Text == ">":
			depth++
		case tok.Text == "<":
			depth--
			if depth == 0 {
				return tok
			}
		}
	}
	return nil
}

// CheckLinks walks the whole list and reports whether every '(', '[', '{'
// has a valid Link to a later ')', ']', '}' and vice versa. Exercised by
// the invariant checks in internal/templatesimplifier/invariants.go.
func (l *List) CheckLinks() bool {
	for tok := l.head; tok != nil; tok = tok.Next {
		if !isBracket(tok.Text) {
			continue
		}
		if tok.Link == nil || tok.Link.Link != tok {
			return false
		}
		if isOpenBracket(tok.Text) && !seenBefore(tok, tok.Link) {
			return false
		}
	}
	return true
}

func isBracket(s string) bool {
	switch s {
	case "(", ")", "[", "]", "{", "}":
		return true
	default:
		return false
	}
}

func isOpenBracket(s string) bool {
	return s == "(" || s == "[" || s == "{"
}

func seenBefore(open, close *Token) bool {
	for tok := open; tok != nil; tok = tok.Next {
		if tok == close {
			return true
		}
	}
	return false
}

package token

import "detemplate/internal/source"

// Token is one element of a doubly-linked stream. Ownership of a Token is
// exclusive to the List that produced it; callers never share a Token
// between two lists.
type Token struct {
	Text string
	Kind Kind

	// NumFlags is only meaningful when Kind == KindNumber.
	NumFlags NumberFlags

	// OriginalName preserves an alternate lexeme across a rewrite, e.g. a
	// digraph spelling ("<%") kept for diagnostics even after the token's
	// Text has been normalized to the canonical form ("{").
	OriginalName string

	Span source.Span

	Leading []Trivia

	Prev *Token
	Next *Token

	// Link pairs this token with its matching bracket. Set for every
	// '('/')' , '['/']' and '{'/'}' pair. Set for '<'/'>' only where a
	// scanner has confidently recognized a template-argument list.
	Link *Token
}

// FileIndex reports the source file this token was lexed from, or was
// stamped with when copied during monomorphization.
func (t *Token) FileIndex() source.FileID {
	if t == nil {
		return 0
	}
	return t.Span.File
}

func (t *Token) IsName() bool  { return t != nil && t.Kind == KindName }
func (t *Token) IsNumber() bool { return t != nil && t.Kind == KindNumber }
func (t *Token) IsString() bool { return t != nil && t.Kind == KindString }
func (t *Token) IsOp() bool    { return t != nil && t.Kind == KindOperator }
func (t *Token) IsPunct() bool { return t != nil && t.Kind == KindPunctuator }
func (t *Token) IsEOF() bool   { return t == nil || t.Kind == KindEOF }

func (t *Token) IsInt() bool      { return t.IsNumber() && t.NumFlags.Has(NumInteger) }
func (t *Token) IsChar() bool     { return t.IsNumber() && t.NumFlags.Has(NumChar) }
func (t *Token) IsLong() bool     { return t.IsNumber() && t.NumFlags.Has(NumLong) }
func (t *Token) IsSigned() bool   { return t.IsNumber() && t.NumFlags.Has(NumSigned) }
func (t *Token) IsUnsigned() bool { return t.IsNumber() && t.NumFlags.Has(NumUnsigned) }

// Str is a cppcheck-flavored alias for Text, used pervasively by the
// pattern engine and the simplifier so call sites read like the mini
// pattern language they implement.
func (t *Token) Str() string {
	if t == nil {
		return ""
	}
	return t.Text
}

// StrAt walks forward (positive n) or backward (negative n) n tokens and
// returns the text found there, or "" past either end.
func (t *Token) StrAt(n int) string {
	tok := t.At(n)
	if tok == nil {
		return ""
	}
	return tok.Text
}

// At walks forward (positive n) or backward (negative n) n tokens.
func (t *Token) At(n int) *Token {
	cur := t
	for ; n > 0 && cur != nil; n-- {
		cur = cur.Next
	}
	for ; n < 0 && cur != nil; n++ {
		cur = cur.Prev
	}
	return cur
}

// LineNumber resolves this token's 1-based source line via the FileSet
// that produced its Span. Copies made during monomorphization keep the
// Span of the token they were cloned from, so lines stay meaningful.
func (t *Token) LineNumber(fs *source.FileSet) uint32 {
	if t == nil || fs == nil {
		return 0
	}
	pos, _ := fs.Resolve(t.Span)
	return pos.Line
}

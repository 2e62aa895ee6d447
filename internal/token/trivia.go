package token

import "detemplate/internal/source"

//go:generate stringer -type=TriviaKind -trimprefix=Trivia

// TriviaKind classifies non-significant material the lexer skips while
// scanning. The core template simplifier never inspects trivia; it exists
// so the CLI's pretty-printer can echo comments verbatim when dumping
// tokens for a human.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Space"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

package diagfmt

import (
	"bufio"
	"io"

	"detemplate/internal/token"
)

// FormatSourcePretty re-renders list as C++ source text: each token's
// leading trivia (whitespace, newlines, comments) is written verbatim,
// followed by the token's own text. Comments attached to an erased token
// are lost along with it, which is the expected trade-off of a token
// stream that has been simplified in place.
func FormatSourcePretty(w io.Writer, list *token.List) error {
	bw := bufio.NewWriter(w)
	for tok := list.Front(); tok != nil; tok = tok.Next {
		for _, trivia := range tok.Leading {
			if _, err := bw.WriteString(trivia.Text); err != nil {
				return err
			}
		}
		if tok.IsEOF() {
			break
		}
		if _, err := bw.WriteString(tok.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

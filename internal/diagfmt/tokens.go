package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"detemplate/internal/source"
	"detemplate/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty dumps a token.List in human-readable form, one token
// per line, for the "detemplate tokenize" debug subcommand.
func FormatTokensPretty(w io.Writer, list *token.List, fs *source.FileSet) error {
	i := 0
	for tok := list.Front(); tok != nil; tok = tok.Next {
		i++
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		fmt.Fprintf(w, "%4d: %-11s", i, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Link != nil {
			linkPos, _ := fs.Resolve(tok.Link.Span)
			fmt.Fprintf(w, " link=%d:%d", linkPos.Line, linkPos.Col)
		}
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON dumps a token.List as a JSON array, one object per token.
func FormatTokensJSON(w io.Writer, list *token.List) error {
	var output []TokenOutput
	for tok := list.Front(); tok != nil; tok = tok.Next {
		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leading,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

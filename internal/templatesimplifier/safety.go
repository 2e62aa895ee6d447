package templatesimplifier

import (
	"detemplate/internal/diag"
	"detemplate/internal/token"
)

// CheckAngleBalance is a standalone safety predicate guarding template
// simplification. Starting from a statement-leading "Type <" candidate,
// it tracks '<'/'>'/'>>' depth
// using the usual open-angle heuristics (a following standard-type
// keyword, a following "typename", or a name already seen as a template
// type earlier in the same statement) while skipping executable scopes
// via their '(' '[' '{' links, and returns the first token at which the
// angle brackets are unbalanced, or nil if everything balances. Callers
// use a non-nil result to decide to leave that statement alone rather
// than risk mis-simplifying it.
func CheckAngleBalance(list *token.List, from *token.Token) *token.Token {
	seenTemplateTypes := map[string]bool{}

	for tok := from; tok != nil; tok = tok.Next {
		switch tok.Text {
		case "(", "[", "{":
			if tok.Link != nil {
				tok = tok.Link
				continue
			}
			return tok
		case ")", "]", "}":
			return tok
		case ";":
			seenTemplateTypes = map[string]bool{}
			continue
		}

		if !looksLikeOpenAngle(tok, seenTemplateTypes) {
			continue
		}

		nameBeforeAngle := tok.Prev
		if nameBeforeAngle != nil && nameBeforeAngle.IsName() {
			seenTemplateTypes[nameBeforeAngle.Text] = true
		}

		gt := token.FindClosingBracket(list, tok)
		if gt == nil {
			return tok
		}
		tok = gt
	}
	return nil
}

// looksLikeOpenAngle decides whether tok ('<') is plausibly opening a
// template-argument list rather than the less-than operator: the
// preceding name must be a built-in type keyword, "typename", or a name
// already recorded as a template type earlier in the statement.
func looksLikeOpenAngle(tok *token.Token, seen map[string]bool) bool {
	if tok.Text != "<" {
		return false
	}
	prev := tok.Prev
	if prev == nil || !prev.IsName() {
		return false
	}
	if prev.Text == "typename" {
		return true
	}
	if builtinTypeKeyword(prev.Text) {
		return true
	}
	return seen[prev.Text]
}

func builtinTypeKeyword(s string) bool {
	switch s {
	case "void", "bool", "char", "wchar_t", "short", "int", "long",
		"float", "double", "signed", "unsigned", "auto":
		return true
	}
	return false
}

// filterUnbalancedSites drops every site whose enclosing statement fails
// CheckAngleBalance, so S4 never attempts to monomorphize a use site that
// sits inside a statement too malformed to trust. It reports a debug event
// per dropped site rather than silently discarding it.
func filterUnbalancedSites(list *token.List, sites []*instantiation, settings Settings, reporter diag.Reporter) []*instantiation {
	for _, site := range sites {
		if site == nil || site.name == nil {
			continue
		}
		start := statementStart(site.name)
		end := statementEnd(site.name)
		if bad := CheckAngleBalance(list, start); bad != nil && withinStatement(start, bad, end) {
			debugEventCode(reporter, settings, diag.TplExpandSkipped, site.name.Span, "statement has unbalanced angle brackets")
			site.name = nil
		}
	}
	return sites
}

// statementStart walks back from tok to the token just after the nearest
// preceding top-level ';', '{' or '}', or to the front of the list.
func statementStart(tok *token.Token) *token.Token {
	cur := tok
	for cur.Prev != nil {
		switch cur.Prev.Text {
		case ";", "{", "}":
			return cur
		}
		cur = cur.Prev
	}
	return cur
}

// statementEnd walks forward from tok to the nearest top-level ';', '{' or
// '}', or nil if the list ends first.
func statementEnd(tok *token.Token) *token.Token {
	for cur := tok; cur != nil; cur = cur.Next {
		switch cur.Text {
		case ";", "{", "}":
			return cur
		}
	}
	return nil
}

// withinStatement reports whether tok lies on [start, end] (end may be nil
// for "through the end of the list").
func withinStatement(start, tok, end *token.Token) bool {
	for cur := start; cur != nil; cur = cur.Next {
		if cur == tok {
			return true
		}
		if cur == end {
			return false
		}
	}
	return false
}

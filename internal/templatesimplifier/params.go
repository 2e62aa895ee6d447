package templatesimplifier

import "detemplate/internal/token"

// templateParameters counts the top-level template arguments starting at
// lt, a '<' token. It returns 0 whenever the list is malformed or is not
// actually a template-argument list. Callers must not distinguish "empty
// list" from "not a list" any other way.
//
// Per argument it accepts, in order: an optional "const", an optional
// "struct"/"union", an optional reference "&", an optional leading "::", a
// qualified-name path (identifier or "::" repeated, ending in an
// identifier, number or char literal), optional trailing "*"/"&"/"const"
// modifiers, an optional function-pointer or array trailer navigated via
// bracket Link, and an optional nested "<...>". A comma at depth zero
// advances to the next argument; '>' or the '>' half of a split '>>' at
// depth zero ends the list successfully.
func templateParameters(list *token.List, lt *token.Token) int {
	if lt == nil || lt.Text != "<" {
		return 0
	}
	tok := lt.Next
	count := 0
	for {
		ok, after := scanOneArgument(list, tok)
		if !ok {
			return 0
		}
		count++
		tok = after
		if tok == nil {
			return 0
		}
		switch tok.Text {
		case ",":
			tok = tok.Next
			continue
		case ">":
			return count
		default:
			return 0
		}
	}
}

// scanOneArgument consumes a single template argument starting at tok and
// returns the first token after it (a ',' or top-level '>'), or ok=false
// on structural failure. It never reads past a top-level ';', '{' or '}'.
func scanOneArgument(list *token.List, tok *token.Token) (ok bool, after *token.Token) {
	if tok == nil || tok.Text == ";" || tok.Text == "{" || tok.Text == "}" {
		return false, nil
	}

	if tok.Text == "const" {
		tok = tok.Next
	}
	if tok != nil && (tok.Text == "struct" || tok.Text == "union") {
		tok = tok.Next
	}
	if tok != nil && tok.Text == "&" {
		tok = tok.Next
	}
	if tok != nil && tok.Text == "::" {
		tok = tok.Next
	}

	if tok == nil {
		return false, nil
	}
	if !tok.IsName() && !tok.IsNumber() {
		return false, nil
	}
	tok = tok.Next
	for tok != nil && tok.Text == "::" {
		tok = tok.Next
		if tok == nil || !tok.IsName() {
			return false, nil
		}
		tok = tok.Next
	}

	for tok != nil {
		switch tok.Text {
		case "*", "&":
			tok = tok.Next
			continue
		case "const":
			tok = tok.Next
			continue
		}
		break
	}

	if tok != nil && (tok.Text == "(" || tok.Text == "[") {
		if tok.Link == nil {
			return false, nil
		}
		tok = tok.Link.Next
	}

	if tok != nil && tok.Text == "<" {
		closing := token.FindClosingBracket(list, tok)
		if closing == nil {
			return false, nil
		}
		tok = closing.Next
	}

	if tok == nil || (tok.Text != "," && tok.Text != ">") {
		return false, nil
	}
	return true, tok
}

// extractTypeParameters walks a "template <...>" header (lt is the '<')
// and returns the ordered list of formal parameter name tokens: those
// matched by "identifier ,|>", optionally preceded by "class"/"typename"
// or "int"-style value-parameter keywords.
func extractTypeParameters(lt *token.Token) []*token.Token {
	if lt == nil || lt.Text != "<" {
		return nil
	}
	var names []*token.Token
	depth := 0
	for tok := lt.Next; tok != nil; tok = tok.Next {
		switch tok.Text {
		case "<":
			depth++
		case ">":
			if depth == 0 {
				return names
			}
			depth--
		case ",":
			// handled implicitly: next identifier at depth 0 is the next param
		default:
			if depth == 0 && tok.IsName() && !isParamKeyword(tok.Text) {
				if n := tok.Next; n != nil && (n.Text == "," || n.Text == ">" || n.Text == "=") {
					names = append(names, tok)
				}
			}
		}
	}
	return names
}

func isParamKeyword(s string) bool {
	switch s {
	case "class", "typename", "struct", "int", "unsigned", "signed", "long",
		"short", "char", "bool", "const", "typename...", "...":
		return true
	}
	return false
}

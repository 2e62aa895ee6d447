package templatesimplifier

import "detemplate/internal/token"

// declaration is a discovered "template <...> ... { ... }" definition.
type declaration struct {
	head    *token.Token // the "template" keyword
	angleLT *token.Token // the '<' opening the template parameter list
	angleGT *token.Token // its matching '>'
	body    *token.Token // the '{' opening the definition body, nil for a bare declaration

	baseName  *token.Token // resolved class/function name token, nil if unresolved
	params    []*token.Token
	monomorph bool // at least one monomorph has been generated from this declaration
}

// discoverDeclarations is S2: it scans the whole list, opaquely skipping
// namespace bodies (namespaced templates are a documented limitation, not
// monomorphized), and records one declaration per top-level
// "template <...>" that ends in a definition body. Bare declarations
// (ending in ';') are not recorded here, since they contain no body to
// monomorphize, and no later stage removes them: their "template <...>"
// header stays in the stream even when a sibling definition produced a
// monomorph.
//
// It also reports whether the input contains any template at all,
// independent of whether any declaration parses successfully.
func discoverDeclarations(list *token.List) (decls []*declaration, containsTemplates bool) {
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if tok.Text == "namespace" {
			if body := skipNamespace(tok); body != nil {
				tok = body
				continue
			}
		}
		if tok.Text != "template" {
			continue
		}
		next := tok.Next
		if next == nil || next.Text != "<" {
			continue
		}
		containsTemplates = true

		gt := token.FindClosingBracket(list, next)
		if gt == nil {
			continue
		}

		end := gt.Next
		switch {
		case end == nil:
			continue
		case end.Text == ";":
			continue
		default:
			body := findDefinitionBody(end)
			if body == nil {
				continue
			}
			decls = append(decls, &declaration{
				head:     tok,
				angleLT:  next,
				angleGT:  gt,
				body:     body,
				params:   extractTypeParameters(next),
				baseName: resolveNamePosition(gt),
			})
		}
	}
	return decls, containsTemplates
}

// skipNamespace returns the '}' closing tok's namespace body, or nil if
// tok is not followed by zero or more names and a '{' with a valid Link
// (an unusual namespace form we leave for the caller to inspect token by
// token instead of skipping).
func skipNamespace(tok *token.Token) *token.Token {
	cur := tok.Next
	for cur != nil && cur.IsName() && cur.Text != "{" {
		cur = cur.Next
	}
	if cur == nil || cur.Text != "{" || cur.Link == nil {
		return nil
	}
	return cur.Link
}

// findDefinitionBody scans forward from the token after a template
// header's '>' for the '{' that opens the definition, honoring nested
// brackets. It stops at the first top-level ';' (a bare declaration).
func findDefinitionBody(from *token.Token) *token.Token {
	for tok := from; tok != nil; tok = tok.Next {
		switch tok.Text {
		case ";":
			return nil
		case "{":
			return tok
		case "(", "[":
			if tok.Link == nil {
				return nil
			}
			tok = tok.Link
		}
	}
	return nil
}

// resolveNamePosition locates a declaration's class/function name
// following the structural table: "class|struct Name {|:" at offset 2,
// "Type (*|&)? Name (" at offset 2 (3 with a second type qualifier), and
// "Type Type (*|&)? Name (" at offset 3. A leading '*' or '&' advances the
// offset by one. Returns nil when none of the shapes match.
func resolveNamePosition(gt *token.Token) *token.Token {
	t1 := gt.At(1)
	t2 := gt.At(2)

	if t1 != nil && (t1.Text == "class" || t1.Text == "struct") {
		if t2 != nil && t2.IsName() {
			if n := t2.Next; n != nil && (n.Text == "{" || n.Text == ":") {
				return t2
			}
		}
	}

	// Skip leading '*'/'&' before attempting the Type-based shapes.
	off := 1
	cur := gt.At(off)
	for cur != nil && (cur.Text == "*" || cur.Text == "&") {
		off++
		cur = gt.At(off)
	}

	if cur != nil && isTypeWord(cur.Text) {
		nxt := gt.At(off + 1)
		if nxt != nil && (nxt.Text == "*" || nxt.Text == "&") {
			off++
			nxt = gt.At(off + 1)
		}
		if nxt != nil && nxt.IsName() {
			if paren := nxt.Next; paren != nil && paren.Text == "(" {
				return nxt
			}
		}
		if nxt != nil && isTypeWord(nxt.Text) {
			off2 := off + 1
			cur2 := gt.At(off2 + 1)
			if cur2 != nil && (cur2.Text == "*" || cur2.Text == "&") {
				off2++
				cur2 = gt.At(off2 + 1)
			}
			if cur2 != nil && cur2.IsName() {
				if paren := cur2.Next; paren != nil && paren.Text == "(" {
					return cur2
				}
			}
		}
	}

	return nil
}

func isTypeWord(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

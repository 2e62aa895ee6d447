package templatesimplifier

import "detemplate/internal/token"

// removeDeclarations is S5's first half. For every declaration that
// produced at least one monomorph, it runs the header-removal state
// machine from the declaration's head token and deletes whatever the
// machine determines is the template header (and sometimes the whole
// declaration).
func removeDeclarations(list *token.List, decls []*declaration) {
	for _, d := range decls {
		if d.monomorph {
			removeTemplateHeader(list, d.head)
		}
	}
}

// removeTemplateHeader implements a small state machine: Scanning,
// InAngles(depth), InBody. head is the "template" keyword; its '<' and
// matching '>' are assumed already known to the caller via d.angleLT/GT,
// but the machine re-derives them so it stays a standalone primitive
// usable from a bare head token.
func removeTemplateHeader(list *token.List, head *token.Token) {
	if head == nil || head.Text != "template" {
		return
	}
	lt := head.Next
	if lt == nil || lt.Text != "<" {
		return
	}

	depth := 0
	for tok := lt; tok != nil; tok = tok.Next {
		switch {
		case tok.Text == "(":
			if tok.Link == nil {
				list.EraseTokens(head.Prev, tok)
				return
			}
			tok = tok.Link
			continue
		case tok.Text == ")":
			list.EraseTokens(head.Prev, tok)
			return
		case tok.Text == "{":
			if tok.Link == nil {
				return
			}
			closer := tok.Link
			end := closer
			if n := closer.Next; n != nil && n.Text == ";" {
				end = n
			}
			list.EraseTokens(head.Prev, end)
			return
		case tok.Text == "}":
			list.EraseTokens(head.Prev, tok)
			return
		case tok.Text == ";":
			list.EraseTokens(head.Prev, tok)
			return
		case tok.Text == "explicit":
			list.EraseTokens(head.Prev, tok.Prev)
			return
		case tok.Text == "<":
			depth++
		case tok.Text == ">":
			if depth >= 2 {
				depth--
				continue
			}
			if depth == 1 && isConstructorAfterAngle(tok) {
				list.EraseTokens(head.Prev, tok)
				return
			}
			if depth == 1 && isNestedTemplateParamAfterAngle(tok) {
				list.EraseTokens(head.Prev, tok)
				return
			}
			depth--
		}
	}
}

// isConstructorAfterAngle recognizes "> Type ( ) {" immediately after the
// template header's closing '>': a constructor pattern where only the
// header should be dropped, not the body.
func isConstructorAfterAngle(gt *token.Token) bool {
	t1 := gt.At(1)
	t2 := gt.At(2)
	if t1 == nil || !t1.IsName() || t2 == nil || t2.Text != "(" {
		return false
	}
	if t2.Link == nil {
		return false
	}
	after := t2.Link.Next
	return after != nil && after.Text == "{"
}

// isNestedTemplateParamAfterAngle recognizes "> class|struct ident [,)]":
// a template-template parameter nested inside an outer header, where only
// the inner header token run should be dropped.
func isNestedTemplateParamAfterAngle(gt *token.Token) bool {
	t1 := gt.At(1)
	t2 := gt.At(2)
	t3 := gt.At(3)
	if t1 == nil || (t1.Text != "class" && t1.Text != "struct") {
		return false
	}
	if t2 == nil || !t2.IsName() {
		return false
	}
	return t3 != nil && (t3.Text == "," || t3.Text == ")")
}

package templatesimplifier

import "detemplate/internal/token"

// copyDeclaration clones a template declaration's body into a monomorph.
// It walks d's definition body (the
// tokens from just after the template header's '>' through the closing
// '}' of the body, plus a trailing ';' if one follows), appending one
// clone per input token to the tail of list, except:
//
//   - a name matching one of d's formal parameters is replaced by a clone
//     of the corresponding actual argument's token range;
//   - a name matching d's base name, when not itself followed by '<', is
//     replaced by the mangled name.
//
// It then rescans the whole list for member functions defined outside the
// class body ("BaseName < Args > :: ~? ident (") and splices each one's
// body into the same monomorph, the way the inline body was spliced.
//
// Every copied '{', '(', '[' is tracked on a bracket stack so its closer
// can be given a fresh mutual Link once cloned; every "Type <" seen in the
// copied stream is pushed onto the returned instantiation list, since the
// copy may reference other templates.
func copyDeclaration(list *token.List, d *declaration, args []argument, mangled string) []*instantiation {
	formalToActual := map[string]argument{}
	for i, p := range d.params {
		if i < len(args) {
			formalToActual[p.Text] = args[i]
		}
	}

	start := d.angleGT.Next
	end := d.body
	if end != nil {
		end = end.Link
	}
	if end == nil {
		return nil
	}
	if afterEnd := end.Next; afterEnd != nil && afterEnd.Text == ";" {
		end = afterEnd
	}

	newSites, last := copyBody(list, formalToActual, d.baseName.Text, mangled, start, end, list.Back())
	newSites = append(newSites, copyOutOfClassMembers(list, d, formalToActual, mangled, last)...)
	return newSites
}

// copyOutOfClassMembers finds every member function defined outside d's
// class body - "BaseName < Args > :: ~? ident (" with Args of the same
// arity as d's formal parameters - and clones each one's body onto the
// tail of list, substituting formals for actuals exactly as the inline
// body is substituted. last is the current tail to append after; it
// advances with every clone produced.
func copyOutOfClassMembers(list *token.List, d *declaration, formalToActual map[string]argument, mangled string, last *token.Token) []*instantiation {
	var newSites []*instantiation

	for tok := list.Front(); tok != nil; tok = tok.Next {
		if !tok.IsName() || tok.Text != d.baseName.Text {
			continue
		}
		if tok.Next == nil || tok.Next.Text != "<" {
			continue
		}
		gt := token.FindClosingBracket(list, tok.Next)
		if gt == nil || templateParameters(list, tok.Next) != len(d.params) {
			continue
		}
		colon := gt.Next
		if !matchesMemberHeader(colon) {
			continue
		}
		body := findDefinitionBody(colon)
		if body == nil || body.Link == nil {
			continue
		}
		end := body.Link

		clone := list.InsertCopyAfter(last, tok)
		clone.Text = mangled
		last = clone

		var sites []*instantiation
		sites, last = copyBody(list, formalToActual, d.baseName.Text, mangled, colon, end, last)
		newSites = append(newSites, sites...)
	}

	return newSites
}

// matchesMemberHeader reports whether tok opens "::  ~? ident (", the
// member-function-out-of-class header that follows a class name's
// template-argument list.
func matchesMemberHeader(tok *token.Token) bool {
	if tok == nil || tok.Text != "::" {
		return false
	}
	name := tok.Next
	if name != nil && name.Text == "~" {
		name = name.Next
	}
	return name != nil && name.IsName() && name.Next != nil && name.Next.Text == "("
}

// copyBody clones every token from start through end inclusive onto the
// tail of list immediately after last, substituting a name matching a key
// of formalToActual with a clone of the corresponding actual-argument
// range, and a name equal to baseName, when not itself followed by '<',
// with mangled. Returns any new template use sites discovered among the
// copied tokens and the new tail.
func copyBody(list *token.List, formalToActual map[string]argument, baseName, mangled string, start, end, last *token.Token) ([]*instantiation, *token.Token) {
	var newSites []*instantiation
	var openOrig, openClone []*token.Token

copyLoop:
	for tok := start; tok != nil; tok = tok.Next {
		if tok.IsName() {
			if actual, ok := formalToActual[tok.Text]; ok {
				last = cloneRangeAfter(list, last, actual.first, actual.last)
				if tok == end {
					break copyLoop
				}
				continue
			}
		}

		var clone *token.Token
		if tok.Text == baseName && !(tok.Next != nil && tok.Next.Text == "<") {
			clone = list.InsertCopyAfter(last, tok)
			clone.Text = mangled
		} else {
			clone = list.InsertCopyAfter(last, tok)
		}
		last = clone

		switch tok.Text {
		case "{", "(", "[":
			openOrig = append(openOrig, tok)
			openClone = append(openClone, clone)
		case "}", ")", "]":
			if n := len(openOrig); n > 0 && openOrig[n-1].Link == tok {
				token.CreateMutualLinks(openClone[n-1], clone)
				openOrig = openOrig[:n-1]
				openClone = openClone[:n-1]
			}
		}

		if clone.IsName() && tok.Next != nil && tok.Next.Text == "<" && templateParameters(list, tok.Next) > 0 {
			newSites = append(newSites, &instantiation{name: clone})
		}

		if tok == end {
			break copyLoop
		}
	}

	return newSites, last
}

package templatesimplifier

import "detemplate/internal/token"

// instantiation is a use site: a name token immediately followed by a '<'
// that opens a template-argument list.
type instantiation struct {
	name *token.Token
}

var accessSpecifiers = map[string]bool{"private": true, "protected": true, "public": true}

// discoverInstantiations is S3's scan half. It walks the whole list,
// jumping over declaration headers via their recorded '<'..'>' span so a
// declaration's own parameter list is never mistaken for a use site, and
// recognizes a use site wherever a name immediately precedes a '<' that
// opens a well-formed argument list and the name is preceded by one of
// '( { } ; = ,', by "Type ident", or by "[,:] (private|protected|public)
// ident".
//
// For every candidate it scans the argument list for nested "< ident <"
// and ", ident <" uses, pushing those first, so nested-most
// instantiations sort before the outer one that contains them: outer
// arguments only need a mangled name once the inner use has already been
// rewritten to one.
func discoverInstantiations(list *token.List, decls []*declaration) []*instantiation {
	inDecl := make(map[*token.Token]*token.Token, len(decls))
	for _, d := range decls {
		inDecl[d.angleLT] = d.angleGT
	}

	var sites []*instantiation
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if tok.Text == "<" {
			if gt, ok := inDecl[tok]; ok {
				tok = gt
				continue
			}
		}
		if !tok.IsName() || tok.Next == nil || tok.Next.Text != "<" {
			continue
		}
		if !precedesUseSite(tok) {
			continue
		}
		// Counting first lets a nested list split a closing ">>" before the
		// outer '>' is looked up.
		if templateParameters(list, tok.Next) == 0 {
			continue
		}
		gt := token.FindClosingBracket(list, tok.Next)
		if gt == nil {
			continue
		}

		sites = append(sites, collectNestedFirst(list, tok, gt)...)
	}
	return sites
}

func precedesUseSite(name *token.Token) bool {
	p := name.Prev
	if p == nil {
		return false
	}
	switch p.Text {
	case "(", "{", "}", ";", "=", ",":
		return true
	}
	if accessSpecifiers[p.Text] {
		if pp := p.Prev; pp != nil && (pp.Text == "," || pp.Text == ":") {
			return true
		}
	}
	if p.IsName() && !isParamKeyword(p.Text) {
		// "Type ident": any name other than a parameter keyword counts as
		// Type; the token before it is not inspected.
		return true
	}
	return false
}

// collectNestedFirst returns the instantiation for name<..gt> together
// with the nested "ident <...>" instantiations that start an argument
// inside the range (right after its '<' or a ','), innermost first.
func collectNestedFirst(list *token.List, name, gt *token.Token) []*instantiation {
	var nested []*instantiation
	for tok := name.Next; tok != nil && tok != gt; tok = tok.Next {
		if (tok.Text == "," || tok.Text == "<") && tok.Next.IsName() && tok.Next.Next != nil && tok.Next.Next.Text == "<" {
			innerName := tok.Next
			if templateParameters(list, innerName.Next) == 0 {
				continue
			}
			innerGT := token.FindClosingBracket(list, innerName.Next)
			if innerGT != nil && innerGT != gt {
				nested = append(nested, collectNestedFirst(list, innerName, innerGT)...)
				tok = innerGT
			}
		}
	}
	return append(nested, &instantiation{name: name})
}

// propagateDefaultArguments fills in template default arguments. For every declaration with a
// resolved base name and at least one '=' inside its parameter list, it
// counts the declared parameters, and for every instantiation of that
// class name supplying fewer arguments than declared, splices copies of
// the missing default-value ranges after the last supplied argument.
// Instantiation records consumed by a default-value expression (a nested
// use inside a default) are removed from sites, since they now belong to
// the declaration rather than being an independent use.
func propagateDefaultArguments(list *token.List, decls []*declaration, sites []*instantiation) []*instantiation {
	for _, d := range decls {
		if d.baseName == nil {
			continue
		}
		defaults := collectDefaults(d.angleLT, d.angleGT)
		if len(defaults) == 0 {
			continue
		}
		declaredCount := len(d.params)

		for _, site := range sites {
			if site == nil || site.name.Text != d.baseName.Text {
				continue
			}
			lt := site.name.Next
			gt := token.FindClosingBracket(list, lt)
			if gt == nil {
				continue
			}
			supplied := templateParameters(list, lt)
			if supplied == 0 || supplied >= declaredCount {
				continue
			}
			insertAt := gt.Prev
			for i := supplied; i < declaredCount; i++ {
				def, ok := defaults[i]
				if !ok {
					break
				}
				sep := list.InsertAfter(insertAt, ",", token.KindPunctuator, insertAt.Span)
				insertAt = cloneRangeAfter(list, sep, def.from, def.to)
			}
		}

		for _, r := range defaults {
			eq := r.from.Prev
			list.EraseTokens(eq.Prev, r.to)
		}
	}

	sites = removeConsumedSites(sites, decls)
	return sites
}

type defaultRange struct{ from, to *token.Token }

// collectDefaults returns, per zero-based parameter index, the token
// range of its default value (the tokens from '=' up to the terminating
// ',' or '>' at depth zero, exclusive of both).
func collectDefaults(lt, gt *token.Token) map[int]defaultRange {
	out := map[int]defaultRange{}
	idx := 0
	depth := 0
	for tok := lt.Next; tok != nil && tok != gt; tok = tok.Next {
		switch tok.Text {
		case "<":
			depth++
		case ">":
			depth--
		case ",":
			if depth == 0 {
				idx++
			}
		case "=":
			if depth == 0 {
				from := tok.Next
				to := from
				d := 0
				for to != nil && to != gt {
					if to.Text == "<" {
						d++
					} else if to.Text == ">" {
						if d == 0 {
							break
						}
						d--
					} else if to.Text == "," && d == 0 {
						break
					}
					to = to.Next
				}
				if to != nil {
					out[idx] = defaultRange{from: from, to: to.Prev}
				}
			}
		}
	}
	return out
}

// cloneRangeAfter appends copies of every token from `from` through `to`
// inclusive immediately after at, recreating mutual bracket links among
// the clones, and returns the last clone appended.
func cloneRangeAfter(list *token.List, at, from, to *token.Token) *token.Token {
	var stack []*token.Token
	var openClones []*token.Token
	last := at
	for tok := from; tok != nil; tok = tok.Next {
		clone := list.InsertCopyAfter(last, tok)
		last = clone
		switch tok.Text {
		case "(", "[", "{":
			stack = append(stack, tok)
			openClones = append(openClones, clone)
		case ")", "]", "}":
			if n := len(stack); n > 0 && stack[n-1].Link == tok {
				token.CreateMutualLinks(openClones[n-1], clone)
				stack = stack[:n-1]
				openClones = openClones[:n-1]
			}
		}
		if tok == to {
			break
		}
	}
	return last
}

func removeConsumedSites(sites []*instantiation, decls []*declaration) []*instantiation {
	consumed := map[*token.Token]bool{}
	for _, d := range decls {
		if d.baseName == nil {
			continue
		}
		defaults := collectDefaults(d.angleLT, d.angleGT)
		for _, r := range defaults {
			for tok := r.from; tok != nil; tok = tok.Next {
				consumed[tok] = true
				if tok == r.to {
					break
				}
			}
		}
	}
	out := sites[:0]
	for _, s := range sites {
		if s != nil && !consumed[s.name] {
			out = append(out, s)
		}
	}
	return out
}

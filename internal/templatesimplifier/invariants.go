package templatesimplifier

import "detemplate/internal/token"

// CheckPostconditions verifies the properties a caller should be able to
// rely on after Run returns: bracket links are intact, no "template <"
// remains for a declaration that produced a monomorph, and every generated
// monomorph name appears as an identifier somewhere in the final stream. It
// returns the first violation found, or "" if none. Intended for tests and
// for callers running in a debug build, not for production error handling:
// Run itself never fails, it degrades to a best-effort partial result.
func CheckPostconditions(list *token.List, result Result) string {
	if !list.CheckLinks() {
		return "bracket links are inconsistent"
	}

	if result.ContainsTemplates {
		for tok := list.Front(); tok != nil; tok = tok.Next {
			if tok.Text != "template" || tok.Next == nil || tok.Next.Text != "<" {
				continue
			}
			if declarationWasMonomorphized(list, tok, result.Monomorphs) {
				return "template header remains after monomorphization: " + tok.Text
			}
		}
	}

	seen := make(map[string]bool, len(result.Monomorphs))
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if tok.IsName() {
			seen[tok.Text] = true
		}
	}
	for name := range result.Monomorphs {
		if !seen[name] {
			return "monomorph name never appears in the final stream: " + name
		}
	}

	return ""
}

// declarationWasMonomorphized reports whether any name in monomorphs shares
// baseName's identifier prefix, i.e. this "template <" header belongs to a
// declaration that S4 actually instantiated. A header whose declaration was
// never used (dead template) is legitimately left in place, so this must
// not flag it.
func declarationWasMonomorphized(list *token.List, head *token.Token, monomorphs map[string]bool) bool {
	gt := token.FindClosingBracket(list, head.Next)
	if gt == nil {
		return false
	}
	name := resolveNamePosition(gt)
	if name == nil {
		return false
	}
	prefix := name.Text + "<"
	for mangled := range monomorphs {
		if len(mangled) > len(prefix) && mangled[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// CheckIdempotent reports whether running Run a second time over an
// already-simplified list left it alone: the token count is unchanged and,
// when both runs saw templates, the second generated no more monomorphs
// than the first. ContainsTemplates itself is not compared. Callers pass
// the Result from the first Run and a fresh Result from a second Run over
// the same list.
func CheckIdempotent(first, second Result, list *token.List, tokenCountBefore int) string {
	if first.ContainsTemplates && second.ContainsTemplates && len(second.Monomorphs) > len(first.Monomorphs) {
		return "second run generated new monomorphs"
	}
	if countTokens(list) != tokenCountBefore {
		return "second run changed token count"
	}
	return ""
}

func countTokens(list *token.List) int {
	n := 0
	for tok := list.Front(); tok != nil; tok = tok.Next {
		n++
	}
	return n
}

package templatesimplifier

import "detemplate/internal/token"

// cleanupResidualAngles runs after declaration removal. It walks the stream looking
// for "Type < Type,Type,...,Type >" runs where every interior token is a
// type or number and the run ends with "> (", and collapses the whole
// angled run into the leading Type token's text, mangled the same way a
// monomorph name is. This normalizes library-style generic names the
// core chose not to monomorphize (no declaration was ever found for
// them) so later passes see one identifier instead of an angle-bracket
// run.
func cleanupResidualAngles(list *token.List) {
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if !tok.IsName() || tok.Next == nil || tok.Next.Text != "<" {
			continue
		}
		lt := tok.Next
		gt := token.FindClosingBracket(list, lt)
		if gt == nil || gt.Next == nil || gt.Next.Text != "(" {
			continue
		}
		if !isCleanAngleRun(lt, gt) {
			continue
		}
		tok.Text = mangleRange(tok, gt)
		list.EraseTokens(tok, gt)
	}
}

func isCleanAngleRun(lt, gt *token.Token) bool {
	for tok := lt.Next; tok != nil && tok != gt; tok = tok.Next {
		switch {
		case tok.Text == ",":
			continue
		case tok.IsName() || tok.IsNumber():
			continue
		default:
			return false
		}
	}
	return true
}

package templatesimplifier

import (
	"detemplate/internal/match"
	"detemplate/internal/token"
)

// expandSpecializations is S1. For every "template <>" prefix it finds a
// name immediately followed by a well-formed template-argument list and a
// '(', builds the mangled name by concatenating the name through the
// matching '>' with no interior whitespace, rewrites that occurrence's
// name token to the mangled string and erases the argument-list tokens,
// deletes the "template <>" prefix, and rewrites every subsequent
// occurrence of the same "name < args > (" shape identically. Every
// mangled name it produces is recorded in the monomorph set so S4 will
// not try to generate a duplicate copy.
func expandSpecializations(list *token.List, monomorphs map[string]bool) {
	for tok := list.Front(); tok != nil; {
		next := tok.Next
		if match.SimpleMatch(tok, "template < >") {
			handleOneSpecialization(list, tok, monomorphs)
			next = tok.Next
		}
		tok = next
	}
}

func handleOneSpecialization(list *token.List, head *token.Token, monomorphs map[string]bool) {
	closeAngle := head.Next.Next // the '>' of "template <>"
	nameTok := findSpecializedName(closeAngle.Next)
	if nameTok == nil {
		list.EraseTokens(head.Prev, closeAngle)
		return
	}

	lt := nameTok.Next
	gt := token.FindClosingBracket(list, lt)
	if gt == nil || gt.Next == nil || gt.Next.Text != "(" {
		list.EraseTokens(head.Prev, closeAngle)
		return
	}

	mangled := mangleRange(nameTok, gt)
	baseName := nameTok.Text

	rewriteSpecializationSite(list, nameTok, lt, gt, mangled)
	monomorphs[mangled] = true

	list.EraseTokens(head.Prev, closeAngle)

	for tok := list.Front(); tok != nil; tok = tok.Next {
		if !tok.IsName() || tok.Text != baseName || tok == nameTok {
			continue
		}
		if tok.Next == nil || tok.Next.Text != "<" {
			continue
		}
		siteGT := token.FindClosingBracket(list, tok.Next)
		if siteGT == nil || siteGT.Next == nil || siteGT.Next.Text != "(" {
			continue
		}
		if mangleRange(tok, siteGT) != mangled {
			continue
		}
		rewriteSpecializationSite(list, tok, tok.Next, siteGT, mangled)
	}
}

// findSpecializedName walks forward past return-type tokens looking for a
// name immediately followed by '<'.
func findSpecializedName(from *token.Token) *token.Token {
	for tok := from; tok != nil; tok = tok.Next {
		if tok.Text == ";" || tok.Text == "{" {
			return nil
		}
		if tok.IsName() && tok.Next != nil && tok.Next.Text == "<" {
			return tok
		}
	}
	return nil
}

func rewriteSpecializationSite(list *token.List, name, lt, gt *token.Token, mangled string) {
	name.Text = mangled
	list.EraseTokens(name, gt)
}

// mangleRange concatenates the text of every token from name through gt
// inclusive with no interior whitespace, rendering NumberFlags qualifiers
// ahead of any numeric literal's text.
func mangleRange(name, gt *token.Token) string {
	out := name.Text
	for tok := name.Next; tok != nil; tok = tok.Next {
		if tok.IsNumber() {
			out += tok.NumFlags.QualifierPrefix()
		}
		out += tok.Text
		if tok == gt {
			break
		}
	}
	return out
}

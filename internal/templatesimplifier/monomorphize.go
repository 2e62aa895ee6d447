package templatesimplifier

import (
	"detemplate/internal/diag"
	"detemplate/internal/numfold"
	"detemplate/internal/source"
	"detemplate/internal/token"
)

// maxDivergence caps the number of monomorphization rounds. Copying a
// declaration can introduce new use sites (a monomorph body may itself
// reference other templates), so the loop re-scans until it stabilizes or
// this many rounds have run, whichever comes first. It's the only recursion
// guard the pass has.
const maxDivergence = 100

// argument is one parsed template-argument: pointers to its first and
// last token (typesUsedInInstantiation) and its qualifier signature (the
// unsigned/signed/long prefix carried by a numeric literal argument, or
// "" for a type argument) used to disambiguate monomorphs that share a
// base name and argument count but differ in numeric qualifiers.
type argument struct {
	first, last *token.Token
	qualifiers  string
}

// monomorphize is S4. It processes declarations in reverse discovery
// order (outer declarations may nest inner ones, so inner is monomorphized
// first) and, for each, every matching use site in sites.
func monomorphize(list *token.List, decls []*declaration, sites []*instantiation, monomorphs map[string]bool, settings Settings, reporter diag.Reporter) []*instantiation {
	for i := len(decls) - 1; i >= 0; i-- {
		d := decls[i]
		if d.baseName == nil {
			debugEvent(reporter, settings, d.head.Span, "template declaration has unresolvable name position")
			continue
		}

		round := 0
		for {
			round++
			if round > maxDivergence {
				debugEventCode(reporter, settings, diag.TplDivergenceCap, d.head.Span, "monomorphization divergence guard reached")
				break
			}
			grew := false
			for _, site := range sites {
				if site == nil || site.name == nil || site.name.Text != d.baseName.Text || site.name == d.baseName {
					continue
				}
				before := len(sites)
				sites = processUseSite(list, d, site, sites, monomorphs, settings, reporter)
				if len(sites) > before {
					grew = true
				}
			}
			for pass := 0; pass < maxDivergence && numfold.Fold(list); pass++ {
			}
			if !grew {
				break
			}
		}
	}
	return sites
}

// processUseSite handles one candidate use of d's base name: it validates
// argument count, parses the argument list, generates the monomorph body
// on first sight of a given mangled name, and rewrites every occurrence
// in the stream carrying the same mangled name.
func processUseSite(list *token.List, d *declaration, site *instantiation, sites []*instantiation, monomorphs map[string]bool, settings Settings, reporter diag.Reporter) []*instantiation {
	lt := site.name.Next
	gt := token.FindClosingBracket(list, lt)
	if gt == nil {
		return sites
	}

	argCount := templateParameters(list, lt)
	if argCount != len(d.params) {
		debugEventCode(reporter, settings, diag.TplExpandSkipped, site.name.Span, "template argument count does not match declared parameter count")
		return sites
	}

	args, ok := parseArguments(list, lt, gt)
	if !ok {
		return sites
	}

	mangled := mangleRange(site.name, gt)

	if !monomorphs[mangled] {
		newSites := copyDeclaration(list, d, args, mangled)
		monomorphs[mangled] = true
		d.monomorph = true
		sites = append(sites, newSites...)
	}

	rewriteMatchingSites(list, d.baseName.Text, argCount, args, mangled, sites)
	return sites
}

// parseArguments walks the argument list between lt and gt at depth zero,
// splitting on top-level commas, and returns one argument per slot. It
// fails if any argument's range contains a '(' or '[' without a valid
// Link, which means the use site can't be resolved and must be abandoned.
func parseArguments(list *token.List, lt, gt *token.Token) ([]argument, bool) {
	var args []argument
	tok := lt.Next
	for tok != nil && tok != gt {
		first := tok
		last := tok
		qualifiers := ""
		depth := 0
		for tok != nil && tok != gt {
			if tok.Text == "(" || tok.Text == "[" {
				if tok.Link == nil {
					return nil, false
				}
			}
			if tok.Text == "<" {
				depth++
			} else if tok.Text == ">" {
				depth--
			}
			if tok.IsNumber() && qualifiers == "" {
				qualifiers = tok.NumFlags.QualifierPrefix()
			}
			last = tok
			if depth == 0 && (tok.Next == gt || (tok.Next != nil && tok.Next.Text == ",")) {
				tok = tok.Next
				break
			}
			tok = tok.Next
		}
		args = append(args, argument{first: first, last: last, qualifiers: qualifiers})
		if tok != nil && tok.Text == "," {
			tok = tok.Next
		}
	}
	return args, true
}

// rewriteMatchingSites scans the whole list for occurrences of
// "baseName < ... >" whose argument count and per-argument qualifier
// signature match args and whose own mangled form equals mangled, and
// collapses each into a single mangled identifier token. Interior name
// tokens are dropped from sites, since a rewritten site can no longer be
// instantiated independently.
func rewriteMatchingSites(list *token.List, baseName string, argCount int, args []argument, mangled string, sites []*instantiation) {
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if !tok.IsName() || tok.Text != baseName {
			continue
		}
		if tok.Next == nil || tok.Next.Text != "<" {
			continue
		}
		lt := tok.Next
		gt := token.FindClosingBracket(list, lt)
		if gt == nil {
			continue
		}
		if templateParameters(list, lt) != argCount {
			continue
		}
		candidate, ok := parseArguments(list, lt, gt)
		if !ok || !qualifiersMatch(candidate, args) || mangleRange(tok, gt) != mangled {
			continue
		}

		for _, s := range sites {
			if s != nil && s.name != nil && s.name != tok {
				for inner := lt.Next; inner != nil && inner != gt; inner = inner.Next {
					if s.name == inner {
						s.name = nil
					}
				}
			}
		}

		tok.Text = mangled
		list.EraseTokens(tok, gt)
	}
}

func qualifiersMatch(a, b []argument) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].qualifiers != b[i].qualifiers {
			return false
		}
	}
	return true
}

func debugEvent(reporter diag.Reporter, settings Settings, span source.Span, msg string) {
	debugEventCode(reporter, settings, diag.TplDeclMalformed, span, msg)
}

func debugEventCode(reporter diag.Reporter, settings Settings, code diag.Code, span source.Span, msg string) {
	if !settings.DebugWarnings || reporter == nil {
		return
	}
	reporter.Report(code, diag.SevDebug, span, msg, nil, nil)
}

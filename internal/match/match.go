package match

import "detemplate/internal/token"

// Match reports whether the run of tokens starting at tok satisfies
// pattern. pattern is compiled once (see Compile) and cached by its
// literal string, matching the design guidance that this engine is a
// compiled-opcode matcher rather than a per-call string interpreter.
func Match(tok *token.Token, pattern string) bool {
	return MatchCompiled(tok, Compile(pattern))
}

// MatchCompiled runs an already-compiled Pattern against the stream
// starting at tok. Hot call sites (the inner loops of templateParameters
// and expandTemplate) should hold onto the *Pattern and call this
// directly to skip the cache lookup.
func MatchCompiled(tok *token.Token, p *Pattern) bool {
	cur := tok
	for _, op := range p.ops {
		if cur == nil {
			return false
		}
		if !matchOne(cur, op) {
			return false
		}
		cur = cur.Next
	}
	return true
}

func matchOne(tok *token.Token, op opcode) bool {
	switch op.kind {
	case opLiteral:
		return tok.Text == op.literal
	case opVar:
		return tok.IsName()
	case opType:
		return tok.IsName() && (builtinTypeWords[tok.Text] || !isReservedNonType(tok.Text))
	case opNum:
		return tok.IsNumber()
	case opAny:
		return true
	case opOp:
		return tok.IsOp()
	case opCop:
		return tok.IsOp() && comparisonOps[tok.Text]
	case opOror:
		return tok.Text == "||"
	case opCharClass:
		return len(tok.Text) == 1 && containsByte(op.classes, tok.Text[0])
	case opNegate:
		return tok.Text != op.literal
	default:
		return false
	}
}

// isReservedNonType filters keyword-shaped words that are never a type,
// so %type% doesn't accidentally swallow control-flow keywords when it
// walks past a malformed argument list. Not exhaustive: the simplifier
// is best-effort and only needs to reject words it would otherwise loop
// forever trying to treat as a type.
func isReservedNonType(text string) bool {
	switch text {
	case "template", "class", "struct", "union", "typename", "namespace",
		"return", "if", "else", "while", "for", "do", "switch", "case",
		"public", "private", "protected", "explicit", "virtual", "static",
		"const", "friend", "operator", "new", "delete", "sizeof":
		return true
	default:
		return false
	}
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// SimpleMatch is the literal-only variant: every space-separated word in
// pattern must equal, verbatim, the text of the corresponding token in
// the run starting at tok. No meta-tokens are recognized.
func SimpleMatch(tok *token.Token, pattern string) bool {
	cur := tok
	for _, word := range fields(pattern) {
		if cur == nil || cur.Text != word {
			return false
		}
		cur = cur.Next
	}
	return true
}

func fields(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

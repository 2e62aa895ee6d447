package numfold

import (
	"strconv"
	"strings"

	"detemplate/internal/token"
)

// Fold runs one bounded left-to-right pass over list, folding:
//
//   - num op num for the binary operators + - * / % & | ^ << >>, subject to
//     the associativity guard in legalToFold.
//   - num cmp num for == != < > <= >= into 0 or 1.
//   - short-circuit 0 && ... and 1 || ..., eliding the right operand up to
//     the next top-level , ; ? or unmatched ).
//   - ( single-token ) removal around a bare identifier or literal.
//   - the identity simplifications * 1, 1 *, + 0, - 0, | 0, 0 + , 0 | , 0 * ,
//     1 || .
//
// It reports whether it changed anything, so callers can loop until a pass
// is a no-op (callers are responsible for capping that loop; this package
// has no iteration counter of its own).
func Fold(list *token.List) bool {
	changed := false
	for tok := list.Front(); tok != nil; {
		next := tok.Next
		if foldBinary(list, tok) {
			changed = true
			tok = list.Front()
			continue
		}
		if foldIdentity(list, tok) {
			changed = true
			tok = list.Front()
			continue
		}
		if foldParen(list, tok) {
			changed = true
			tok = list.Front()
			continue
		}
		if foldShortCircuit(list, tok) {
			changed = true
			tok = list.Front()
			continue
		}
		tok = next
	}
	return changed
}

func isIntLiteral(t *token.Token) bool {
	return t != nil && t.IsNumber() && t.IsInt()
}

func parseInt(t *token.Token) (int64, bool) {
	text := strings.TrimRight(t.Text, "uUlL")
	text = strings.TrimPrefix(text, "0x")
	base := 10
	switch {
	case strings.HasPrefix(t.Text, "0x") || strings.HasPrefix(t.Text, "0X"):
		base = 16
	case strings.HasPrefix(t.Text, "0b") || strings.HasPrefix(t.Text, "0B"):
		base = 2
		text = strings.TrimPrefix(strings.TrimPrefix(t.Text, "0b"), "0B")
	case len(t.Text) > 1 && t.Text[0] == '0':
		base = 8
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// foldBinary folds "num op num" centered on tok as the operator.
func foldBinary(list *token.List, tok *token.Token) bool {
	if !tok.IsOp() {
		return false
	}
	left, right := tok.Prev, tok.Next
	if !isIntLiteral(left) || !isIntLiteral(right) {
		return false
	}
	if !legalToFold(left, tok, right) {
		return false
	}

	a, ok1 := parseInt(left)
	b, ok2 := parseInt(right)
	if !ok1 || !ok2 {
		return false
	}

	result, ok := evalBinary(tok.Text, a, b)
	if !ok {
		return false
	}

	replaceRun(list, left, right, strconv.FormatInt(result, 10))
	return true
}

// legalToFold rejects folds where an adjacent operator on either side
// would change the mathematical meaning of collapsing left op right first
// (e.g. it must not fold "a + b * c" at the "+" before "*" has had its
// chance, since "*" binds tighter).
func legalToFold(left, op, right *token.Token) bool {
	if lp := left.Prev; lp != nil && lp.IsOp() && precedence(lp.Text) > precedence(op.Text) {
		return false
	}
	if rn := right.Next; rn != nil && rn.IsOp() && precedence(rn.Text) > precedence(op.Text) {
		return false
	}
	return true
}

func precedence(op string) int {
	switch op {
	case "*", "/", "%":
		return 5
	case "+", "-":
		return 4
	case "<<", ">>":
		return 3
	case "<", ">", "<=", ">=":
		return 2
	case "==", "!=":
		return 2
	case "&":
		return 1
	case "^":
		return 1
	case "|":
		return 0
	default:
		return -1
	}
}

func evalBinary(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case "%":
		if b == 0 {
			return 0, false
		}
		return a % b, true
	case "&":
		return a & b, true
	case "|":
		return a | b, true
	case "^":
		return a ^ b, true
	case "<<":
		if b <= 0 {
			return 0, false
		}
		result := a << uint(b)
		if a != 0 && result>>uint(b) != a {
			return 0, false
		}
		return result, true
	case ">>":
		if b <= 0 {
			return 0, false
		}
		return a >> uint(b), true
	case "==":
		return boolInt(a == b), true
	case "!=":
		return boolInt(a != b), true
	case "<":
		return boolInt(a < b), true
	case ">":
		return boolInt(a > b), true
	case "<=":
		return boolInt(a <= b), true
	case ">=":
		return boolInt(a >= b), true
	default:
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// isIntLiteralValue reports whether t is an integer literal equal to v.
func isIntLiteralValue(t *token.Token, v int64) bool {
	if !isIntLiteral(t) {
		return false
	}
	n, ok := parseInt(t)
	return ok && n == v
}

// eraseLeftOperand drops left and op, leaving right as the surviving value.
func eraseLeftOperand(list *token.List, left, op *token.Token) {
	list.EraseTokens(left.Prev, op)
}

// eraseRightOperand drops op and right, leaving left as the surviving value.
func eraseRightOperand(list *token.List, op, right *token.Token) {
	list.EraseTokens(op.Prev, right)
}

// foldIdentity drops an identity operand when exactly one side of a binary
// operator is the integer literal 0 or 1 and the other side is not itself
// a literal: "X * 1" and "1 * X" fold to X, "X + 0", "X - 0" and "X | 0"
// fold to X, "0 + X" and "0 | X" fold to X, and "0 * X" folds to 0.
// Unlike foldBinary, which requires both operands to be literals, this is
// what lets template value-arguments like "N*1" and "N" canonicalize to
// the same mangled name.
func foldIdentity(list *token.List, tok *token.Token) bool {
	if !tok.IsOp() {
		return false
	}
	left, right := tok.Prev, tok.Next
	if left == nil || right == nil {
		return false
	}
	if !legalToFold(left, tok, right) {
		return false
	}

	switch tok.Text {
	case "*":
		switch {
		case isIntLiteralValue(right, 1) && !isIntLiteral(left):
			eraseRightOperand(list, tok, right)
			return true
		case isIntLiteralValue(left, 1) && !isIntLiteral(right):
			eraseLeftOperand(list, left, tok)
			return true
		case isIntLiteralValue(left, 0) && !isIntLiteral(right):
			eraseRightOperand(list, tok, right)
			return true
		}
	case "+":
		switch {
		case isIntLiteralValue(right, 0) && !isIntLiteral(left):
			eraseRightOperand(list, tok, right)
			return true
		case isIntLiteralValue(left, 0) && !isIntLiteral(right):
			eraseLeftOperand(list, left, tok)
			return true
		}
	case "-":
		if isIntLiteralValue(right, 0) && !isIntLiteral(left) {
			eraseRightOperand(list, tok, right)
			return true
		}
	case "|":
		switch {
		case isIntLiteralValue(right, 0) && !isIntLiteral(left):
			eraseRightOperand(list, tok, right)
			return true
		case isIntLiteralValue(left, 0) && !isIntLiteral(right):
			eraseLeftOperand(list, left, tok)
			return true
		}
	}
	return false
}

// foldParen strips a "( X )" wrapper when X is a single identifier or
// literal and the parenthesis is not part of a function-call or cast
// context, approximated here by requiring the token preceding "(" to not
// itself be a name (a cast or call would have one).
func foldParen(list *token.List, tok *token.Token) bool {
	if tok.Text != "(" || tok.Link == nil {
		return false
	}
	inner := tok.Next
	if inner == nil || inner.Next != tok.Link {
		return false
	}
	if !inner.IsName() && !inner.IsNumber() {
		return false
	}
	if prev := tok.Prev; prev != nil && (prev.IsName() || prev.IsNumber()) {
		return false
	}

	list.DeleteThis(tok.Link)
	list.DeleteThis(tok)
	return true
}

// foldShortCircuit elides the right operand of "0 &&" or "1 ||" up to the
// next top-level ',', ';', '?' or unmatched ')'.
func foldShortCircuit(list *token.List, tok *token.Token) bool {
	if !tok.IsNumber() {
		return false
	}
	op := tok.Next
	if op == nil || !op.IsOp() {
		return false
	}
	var short bool
	switch {
	case tok.Text == "0" && op.Text == "&&":
		short = true
	case tok.Text == "1" && op.Text == "||":
		short = true
	default:
		return false
	}
	if !short {
		return false
	}

	end := op.Next
	depth := 0
	for end != nil {
		switch end.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth == 0 {
				goto erase
			}
			depth--
		case ",", ";", "?":
			if depth == 0 {
				goto erase
			}
		}
		end = end.Next
	}
erase:
	stop := op
	if end != nil {
		stop = end.Prev
	} else if list.Back() != nil {
		stop = list.Back()
	}
	if stop == op {
		return false
	}
	replaceRun(list, tok, stop, tok.Text)
	return true
}

// replaceRun collapses the run from `from` through `to` inclusive into a
// single literal token, by rewriting `from` in place and erasing
// everything after it up to and including `to`. Rewriting in place avoids
// needing a prepend primitive when `from` is the head of the list.
func replaceRun(list *token.List, from, to *token.Token, text string) {
	list.EraseTokens(from, to)
	from.Text = text
	from.Kind = token.KindNumber
	from.NumFlags = token.NumInteger
	from.Link = nil
}

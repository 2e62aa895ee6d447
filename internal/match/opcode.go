package match

type opKind uint8

const (
	opLiteral opKind = iota
	opVar
	opType
	opNum
	opAny
	opOp
	opCop
	opOror
	opCharClass
	opNegate
)

type opcode struct {
	kind    opKind
	literal string // opLiteral, opNegate: exact text to (not) match
	classes string // opCharClass: the characters between the brackets
}

// Pattern is a compiled sequence of opcodes, one per space-separated word
// in the source pattern string.
type Pattern struct {
	ops []opcode
}

// comparisonOps is the %cop% alternation.
var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

// builtinTypeWords extends %type% beyond plain identifiers to cover the
// C++ built-in type keywords, which the lexer classifies as KindName like
// any other word.
var builtinTypeWords = map[string]bool{
	"void": true, "bool": true, "char": true, "wchar_t": true,
	"short": true, "int": true, "long": true, "float": true, "double": true,
	"signed": true, "unsigned": true, "auto": true,
}

func compileWord(word string) opcode {
	switch {
	case word == "%var%":
		return opcode{kind: opVar}
	case word == "%type%":
		return opcode{kind: opType}
	case word == "%num%":
		return opcode{kind: opNum}
	case word == "%any%":
		return opcode{kind: opAny}
	case word == "%op%":
		return opcode{kind: opOp}
	case word == "%cop%":
		return opcode{kind: opCop}
	case word == "%oror%":
		return opcode{kind: opOror}
	case len(word) >= 2 && word[0] == '!' && word[1] == '!':
		return opcode{kind: opNegate, literal: word[2:]}
	case len(word) >= 2 && word[0] == '[' && word[len(word)-1] == ']':
		return opcode{kind: opCharClass, classes: word[1 : len(word)-1]}
	default:
		return opcode{kind: opLiteral, literal: word}
	}
}

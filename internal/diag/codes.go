package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Bracket / link integrity, surfaced when the input defeats the
	// best-effort matcher instead of being treated as a hard error.
	TplUnbalancedBracket    Code = 2001
	TplUnbalancedAngle      Code = 2002
	TplLinkInvariantBroken  Code = 2003

	// Declaration discovery (S2)
	TplDeclFound          Code = 3001
	TplDeclNamespaceSkip  Code = 3002
	TplDeclMalformed      Code = 3003

	// Specialization expansion (S1)
	TplSpecializationFound Code = 3101
	TplSpecializationBad   Code = 3102

	// Instantiation discovery (S3)
	TplInstantiationFound   Code = 3201
	TplDefaultArgApplied    Code = 3202
	TplDefaultArgMissing    Code = 3203

	// Monomorphization loop (S4)
	TplExpandStart    Code = 3301
	TplExpandDone     Code = 3302
	TplExpandSkipped  Code = 3303
	TplDivergenceCap  Code = 3304

	// Declaration removal / cleanup (S5)
	TplDeclRemoved  Code = 3401
	TplCleanupMerge Code = 3402

	// Numeric folding
	TplFoldApplied      Code = 3501
	TplFoldDivByZero    Code = 3502
	TplFoldShiftInvalid Code = 3503

	// I/O
	IOLoadFileError Code = 4001

	// Config
	CfgNotFound     Code = 5001
	CfgParseError   Code = 5002
	CfgInvalidValue Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexTokenTooLong:             "Token too long",
	TplUnbalancedBracket:        "Unbalanced bracket, template simplification skipped for this region",
	TplUnbalancedAngle:          "Unbalanced angle bracket in template argument list",
	TplLinkInvariantBroken:      "Bracket link invariant violated",
	TplDeclFound:                "Template declaration found",
	TplDeclNamespaceSkip:        "Namespaced template body skipped",
	TplDeclMalformed:            "Malformed template declaration, skipped",
	TplSpecializationFound:      "Explicit specialization recognized",
	TplSpecializationBad:        "Malformed explicit specialization, skipped",
	TplInstantiationFound:       "Template instantiation use found",
	TplDefaultArgApplied:        "Default template argument applied",
	TplDefaultArgMissing:        "Template argument list underfilled, instantiation skipped",
	TplExpandStart:              "Monomorphization pass starting",
	TplExpandDone:               "Monomorphization pass converged",
	TplExpandSkipped:            "Instantiation skipped, declaration unavailable",
	TplDivergenceCap:            "Monomorphization loop hit the iteration cap",
	TplDeclRemoved:              "Template declaration removed from output",
	TplCleanupMerge:             "Mangled-name residue merged into a single token",
	TplFoldApplied:              "Constant expression folded",
	TplFoldDivByZero:            "Division by zero in constant expression, left unfolded",
	TplFoldShiftInvalid:         "Invalid shift amount in constant expression, left unfolded",
	IOLoadFileError:             "I/O load file error",
	CfgNotFound:                 "Configuration file not found",
	CfgParseError:               "Configuration file parse error",
	CfgInvalidValue:             "Invalid configuration value",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNK%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TPL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

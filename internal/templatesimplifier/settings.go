package templatesimplifier

// Settings mirrors the small slice of the enclosing analyzer's settings
// this pass actually reads. Everything else, warning levels, include
// paths, per-check toggles, is none of its business.
type Settings struct {
	// DebugWarnings, when true, makes Run emit SevDebug events for its
	// bail-outs: unknown name position, parameter/argument count mismatch,
	// a use site dropped for unbalanced angle brackets, and the divergence
	// cap. An argument list with an unlinked '(' or '[' is skipped without
	// an event. When false, Run stays silent and simply leaves the
	// offending construct in place.
	DebugWarnings bool
}

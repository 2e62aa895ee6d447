// Package templatesimplifier eliminates C++ templates from a token.List by
// monomorphization: it discovers generic declarations, discovers the
// concrete instantiations used elsewhere in the same list, generates one
// copy of each declaration per distinct argument tuple with the formal type
// parameters substituted by the actual argument tokens, and rewrites every
// use site to name the generated copy. Downstream passes never see a
// "template" token again.
//
// The package is strictly single-threaded and non-reentrant: Run owns the
// list exclusively for the duration of the call, mutates it in place, and
// returns without leaving any goroutine or background state behind. All
// scratch state (declaration list, instantiation list, monomorph set) is
// local to the call frame; nothing here is safe to share between
// concurrent calls to Run against the same list.
//
// Run is best-effort. Malformed template syntax is skipped or erased
// rather than propagated as an error: see Settings and the debug events it
// gates for the only observable trace of a skipped construct.
package templatesimplifier

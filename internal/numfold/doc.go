// Package numfold implements the bounded constant-expression folder the
// template simplifier re-runs over the token stream after every
// monomorphization step, so value template arguments like "N+1" canonicalize
// to a single numeric token before they are used to build a mangled name.
// It is not a general expression evaluator: it only folds the shapes listed
// in Fold's doc comment, and it never crashes or panics on malformed or
// overflowing input, it just leaves the tokens alone.
package numfold

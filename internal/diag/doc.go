// Package diag defines the diagnostic model shared by the lexer and the
// template simplifier.
//
// Diagnostic carries a Severity (severity.go), a stable numeric Code
// (codes.go), a human message, a primary source.Span, optional Notes for
// secondary context, and optional Fixes. Severity stops at SevDebug for
// internal trace output gated behind the debugwarnings setting: the
// simplifier's error philosophy is best-effort partial success, so it
// never reports anything above SevWarning for malformed template input
// it chose to skip rather than crash on.
//
// Producers use a Reporter to decouple emission from storage; BagReporter
// adapts a Reporter onto a Bag, which supports sorting and
// deduplication. Rendering lives in internal/diagfmt.
package diag

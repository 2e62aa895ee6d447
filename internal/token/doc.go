// Package token defines the token model shared by the lexer and the
// template simplifier: a doubly-linked stream of tokens with optional
// bracket links.
//
// Invariants:
//   - Every '(', '[', '{' token has a Link to its matching closer and
//     vice versa, at every stage boundary the simplifier promises to leave
//     intact. '<'/'>' links are established selectively, only where a
//     scanner has confidently recognized a template-argument list.
//   - Prev/Next form a single global chain owned exclusively by one List.
//   - OriginalName is only set when a rewrite replaces Text with something
//     other than what the source actually said (mangled names, digraphs).
package token

// Package match implements the space-separated mini pattern language the
// template simplifier uses to recognize local token shapes without a
// parse tree: meta-tokens like %var%, %type%, %num%, character classes
// such as "[,:]", and the "!!x" negation. A pattern string is compiled
// once into a small opcode vector and cached, so repeated calls at a hot
// call site do not re-parse the pattern text.
package match

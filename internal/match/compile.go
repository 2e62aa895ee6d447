package match

import (
	"strings"
	"sync"
)

var (
	cacheMu sync.Mutex
	cache   = map[string]*Pattern{}
)

// Compile parses a space-separated pattern string into a Pattern once and
// caches it, so subsequent calls with the same literal pattern string
// reuse the parsed opcode vector instead of splitting and re-classifying
// it every time.
func Compile(pattern string) *Pattern {
	cacheMu.Lock()
	if p, ok := cache[pattern]; ok {
		cacheMu.Unlock()
		return p
	}
	cacheMu.Unlock()

	words := strings.Fields(pattern)
	ops := make([]opcode, 0, len(words))
	for _, w := range words {
		ops = append(ops, compileWord(w))
	}
	p := &Pattern{ops: ops}

	cacheMu.Lock()
	cache[pattern] = p
	cacheMu.Unlock()
	return p
}

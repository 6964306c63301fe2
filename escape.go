package rex

import (
	"strings"
	"sync"
)

// escapeCacheCap bounds the escape memo. Escaping is pure, so when the map
// fills up an arbitrary entry is dropped to make room; no ordering is
// tracked.
const escapeCacheCap = 128

var escapeCache = struct {
	sync.Mutex
	m map[string]string
}{m: make(map[string]string, escapeCacheCap)}

const specialChars = `.^$*+?{}[]\|()`

// Escape returns s with every regex metacharacter backslash-escaped, so the
// result matches s literally. Results are memoized.
func Escape(s string) string {
	escapeCache.Lock()
	if cached, ok := escapeCache.m[s]; ok {
		escapeCache.Unlock()
		return cached
	}
	escapeCache.Unlock()

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(specialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	escaped := b.String()

	escapeCache.Lock()
	if len(escapeCache.m) >= escapeCacheCap {
		for k := range escapeCache.m {
			delete(escapeCache.m, k)
			break
		}
	}
	escapeCache.m[s] = escaped
	escapeCache.Unlock()
	return escaped
}

// IsValid reports whether pattern parses under the given flags.
func IsValid(pattern string, flags Flags) bool {
	_, err := Parse(pattern, flags)
	return err == nil
}

var (
	redundantGroups  = MustCompile(`\(\?:[^()]+\)`)
	redundantClasses = MustCompile(`\[([a-zA-Z0-9])\]`)
	repeatedStars    = MustCompile(`\*+`)
	repeatedPluses   = MustCompile(`\++`)
	repeatedMarks    = MustCompile(`\?+`)
)

// Simplify rewrites a pattern into an equivalent shorter form: non-capturing
// groups that wrap nothing structural are unwrapped, single-character classes
// become plain characters, and runs of the same quantifier collapse to one.
// The input is treated as pattern text only; it is never compiled.
func Simplify(pattern string) string {
	pattern = redundantGroups.ReplaceAllStringFunc(pattern, func(m string) string {
		return m[3 : len(m)-1]
	})
	pattern = redundantClasses.ReplaceAllString(pattern, "$1")
	pattern = repeatedStars.ReplaceAllLiteralString(pattern, "*")
	pattern = repeatedPluses.ReplaceAllLiteralString(pattern, "+")
	pattern = repeatedMarks.ReplaceAllLiteralString(pattern, "?")
	return pattern
}

package rex

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// A prefilter skips start positions that cannot begin a match. It exists
// only when every match of the pattern must start with one of a finite set
// of literal byte strings, so a nil candidate means the search is over.
type prefilter interface {
	// next returns the earliest candidate start position >= at, or -1.
	next(haystack []byte, at int) int
}

// maxPrefilterLiterals caps the prefix set; alternations wider than this
// fall back to the plain scan.
const maxPrefilterLiterals = 64

// newPrefilter inspects the AST for a required literal prefix set. A single
// prefix scans with bytes.Index; several build an Aho-Corasick automaton.
func newPrefilter(node Node) prefilter {
	prefixes, ok := requiredPrefixes(node)
	if !ok || len(prefixes) == 0 {
		return nil
	}

	// Truncate everything to the shortest prefix so all candidates have
	// equal length; the automaton's first match is then the earliest
	// possible start, never a later overlapping one.
	min := len(prefixes[0])
	for _, p := range prefixes[1:] {
		if len(p) < min {
			min = len(p)
		}
	}
	if min == 0 {
		return nil
	}
	seen := make(map[string]bool, len(prefixes))
	trimmed := prefixes[:0]
	for _, p := range prefixes {
		p = p[:min]
		if !seen[p] {
			seen[p] = true
			trimmed = append(trimmed, p)
		}
	}

	if len(trimmed) == 1 {
		return &literalPrefilter{lit: []byte(trimmed[0])}
	}

	builder := ahocorasick.NewBuilder()
	for _, p := range trimmed {
		builder.AddPattern([]byte(p))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &acPrefilter{auto: auto}
}

// requiredPrefixes returns the set of literal strings one of which must
// begin any match. ok is false when no such finite set exists (e.g. the
// pattern can start with a class, a dot, or can match empty).
func requiredPrefixes(node Node) (prefixes []string, ok bool) {
	switch n := node.(type) {
	case *Literal:
		if n.FoldCase || len(n.Runes) == 0 {
			return nil, false
		}
		return []string{string(n.Runes)}, true

	case *Concat:
		for _, sub := range n.Nodes {
			if zeroWidth(sub) {
				continue
			}
			return requiredPrefixes(sub)
		}
		return nil, false

	case *Group:
		return requiredPrefixes(n.Body)

	case *Alternate:
		var all []string
		for _, sub := range n.Nodes {
			ps, ok := requiredPrefixes(sub)
			if !ok {
				return nil, false
			}
			all = append(all, ps...)
			if len(all) > maxPrefilterLiterals {
				return nil, false
			}
		}
		return all, true

	case *Repeat:
		if n.Min < 1 {
			return nil, false
		}
		return requiredPrefixes(n.Body)
	}
	return nil, false
}

func zeroWidth(node Node) bool {
	switch node.(type) {
	case *Anchor, *Lookaround:
		return true
	case *Literal:
		return len(node.(*Literal).Runes) == 0
	}
	return false
}

type literalPrefilter struct {
	lit []byte
}

func (p *literalPrefilter) next(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[at:], p.lit)
	if idx == -1 {
		return -1
	}
	return at + idx
}

type acPrefilter struct {
	auto *ahocorasick.Automaton
}

func (p *acPrefilter) next(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}

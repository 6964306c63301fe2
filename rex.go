// Package rex is a self-contained regular-expression engine: a recursive
// descent parser produces an AST, a compiler lowers it to a backtracking VM
// program, and the matcher runs that program for anchored matches,
// unanchored searches, iteration and replacement. Alternation is
// leftmost-first and quantifiers are greedy unless suffixed with ?.
package rex

import (
	"fmt"
	"io"
)

// Regexp is a compiled pattern. It is immutable and safe for concurrent use;
// every match attempt runs on its own register file.
type Regexp struct {
	expr        string
	flags       Flags
	prog        *Prog
	subexpNames []string
	pre         prefilter
	anchored    bool // pattern starts with a non-multiline ^
}

// Compile parses and compiles a pattern with no flags set.
func Compile(expr string) (*Regexp, error) {
	return CompileFlags(expr, 0)
}

// CompileFlags parses and compiles a pattern under the given flags. All
// syntax errors surface here; a compiled Regexp never fails at match time.
func CompileFlags(expr string, flags Flags) (*Regexp, error) {
	parser := NewParser(expr, flags)
	node, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	prog := NewCompiler().Compile(node, parser.NumCaptures())

	names := make([]string, parser.NumCaptures()+1)
	for name, idx := range parser.GroupNames() {
		if idx < len(names) {
			names[idx] = name
		}
	}

	return &Regexp{
		expr:        expr,
		flags:       flags,
		prog:        prog,
		subexpNames: names,
		pre:         newPrefilter(node),
		anchored:    startAnchored(node),
	}, nil
}

// MustCompile is Compile but panics on error, for patterns known at build
// time.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("rex: Compile(%q): %v", expr, err))
	}
	return re
}

// MustCompileFlags is CompileFlags but panics on error.
func MustCompileFlags(expr string, flags Flags) *Regexp {
	re, err := CompileFlags(expr, flags)
	if err != nil {
		panic(fmt.Sprintf("rex: CompileFlags(%q, %v): %v", expr, flags, err))
	}
	return re
}

// String returns the source text used to compile the pattern.
func (re *Regexp) String() string { return re.expr }

// Flags returns the flags the pattern was compiled with.
func (re *Regexp) Flags() Flags { return re.flags }

// NumSubexp returns the number of capturing groups in the pattern.
func (re *Regexp) NumSubexp() int { return len(re.subexpNames) - 1 }

// SubexpNames returns the group names by index. Index 0 is the whole match
// and is always unnamed; unnamed groups are empty strings.
func (re *Regexp) SubexpNames() []string { return re.subexpNames }

// SubexpIndex returns the index of the group with the given name, or -1.
func (re *Regexp) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range re.subexpNames {
		if n == name {
			return i
		}
	}
	return -1
}

// MatchAt attempts an anchored match beginning exactly at byte offset pos.
// It returns nil when the pattern does not match there.
func (re *Regexp) MatchAt(s string, pos int) *Match {
	if pos < 0 || pos > len(s) {
		return nil
	}
	input := NewStringInput(s)
	vm := NewVM(re.prog, input)
	ok, regs := vm.Run(pos)
	if !ok {
		return nil
	}
	m := newMatch(s, regs, re.prog.NumCap, re.subexpNames)
	regsPool.Put(regs)
	return m
}

// Find scans for the leftmost match in s. It returns nil when there is no
// match; absence of a match is not an error.
func (re *Regexp) Find(s string) *Match {
	regs, ok, _ := re.search(NewStringInput(s), 0)
	if !ok {
		return nil
	}
	m := newMatch(s, regs, re.prog.NumCap, re.subexpNames)
	regsPool.Put(regs)
	return m
}

// FindRequired is Find for callers that require a match to exist: when the
// pattern is absent it returns an error carrying the pattern and the input.
// A miss caused by the backtracking step budget running out is reported as
// a distinct timeout error, since the pattern might still match.
func (re *Regexp) FindRequired(s string) (*Match, error) {
	regs, ok, truncated := re.search(NewStringInput(s), 0)
	if !ok {
		if truncated {
			return nil, timeoutError(re.expr, s)
		}
		return nil, notFoundError(re.expr, s)
	}
	m := newMatch(s, regs, re.prog.NumCap, re.subexpNames)
	regsPool.Put(regs)
	return m, nil
}

// MatchString reports whether s contains any match of the pattern.
func (re *Regexp) MatchString(s string) bool {
	return re.searchDiscard(NewStringInput(s))
}

// MatchReader reports whether the text read from r contains any match.
func (re *Regexp) MatchReader(r io.Reader) (bool, error) {
	input, err := NewReaderInput(r)
	if err != nil {
		return false, err
	}
	return re.searchDiscard(input), nil
}

func (re *Regexp) searchDiscard(input Input) bool {
	regs, ok, _ := re.search(input, 0)
	if ok {
		regsPool.Put(regs)
	}
	return ok
}

// search runs the unanchored scan: try an anchored match at each position
// from pos upward until one succeeds or input is exhausted. The prefilter,
// when present, skips positions that cannot start a match; a leading ^ stops
// the scan after position 0. The returned register file is pool-owned; the
// caller must return it via regsPool. truncated reports whether any failed
// attempt gave up on the step budget, making a miss inconclusive.
func (re *Regexp) search(input Input, pos int) (regs []int, ok, truncated bool) {
	inputLen := input.Len()
	for pos <= inputLen {
		if re.anchored && pos > 0 {
			return nil, false, truncated
		}
		if re.pre != nil && pos < inputLen {
			cand := re.pre.next(input.Bytes(), pos)
			if cand == -1 {
				return nil, false, truncated
			}
			pos = cand
		}

		vm := NewVM(re.prog, input)
		if ok, regs := vm.Run(pos); ok {
			return regs, true, truncated
		}
		if vm.truncated {
			truncated = true
		}

		_, w := input.Step(pos)
		if w == 0 {
			break
		}
		pos += w
	}
	return nil, false, truncated
}

// startAnchored reports whether every match must begin at offset 0 because
// the pattern opens with a non-multiline ^.
func startAnchored(node Node) bool {
	switch n := node.(type) {
	case *Anchor:
		return n.Kind == AnchorStartText && !n.Multiline
	case *Concat:
		if len(n.Nodes) > 0 {
			return startAnchored(n.Nodes[0])
		}
	case *Group:
		return startAnchored(n.Body)
	case *Alternate:
		for _, sub := range n.Nodes {
			if !startAnchored(sub) {
				return false
			}
		}
		return len(n.Nodes) > 0
	}
	return false
}

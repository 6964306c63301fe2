package rex

import (
	"sync"
	"unicode"
)

// Register files are pooled to keep backtracking splits from hammering the
// allocator.
var regsPool = sync.Pool{
	New: func() interface{} {
		return make([]int, 0, 24)
	},
}

// defaultMaxSteps bounds a single match attempt. Pathological patterns
// (nested unbounded quantifiers) backtrack exponentially; when the budget is
// exhausted the attempt is abandoned: boolean lookups report no match, and
// FindRequired surfaces the truncation as a distinct error.
const defaultMaxSteps = 1 << 21

// VM executes a compiled program against an input by explicit backtracking:
// each OpSplit is a choice point, tried in order, with the register file
// copied so a failed branch cannot leak capture writes.
type VM struct {
	prog      *Prog
	input     Input
	steps     int
	maxSteps  int
	truncated bool // the last Run gave up because the budget ran out
}

func NewVM(prog *Prog, input Input) *VM {
	return &VM{prog: prog, input: input, maxSteps: defaultMaxSteps}
}

// Run attempts an anchored match starting exactly at pos. On success it
// returns the register file; the first NumCap entries are capture offsets
// (pairs of start/end, -1 when a group did not participate).
func (vm *VM) Run(pos int) (bool, []int) {
	regs := newRegs(vm.prog.NumRegs())
	vm.steps = 0

	if _, ok := vm.match(vm.prog.Start, pos, regs); ok {
		return true, regs
	}
	regsPool.Put(regs)
	return false, nil
}

func newRegs(n int) []int {
	regs := regsPool.Get().([]int)
	if cap(regs) < n {
		regs = make([]int, n)
	} else {
		regs = regs[:n]
	}
	for i := range regs {
		regs[i] = -1
	}
	return regs
}

// match runs instructions from pc with the text cursor at pos. It returns
// the cursor position after the match. Split alternatives recurse; all other
// opcodes advance iteratively.
func (vm *VM) match(pc, pos int, regs []int) (int, bool) {
	for {
		vm.steps++
		if vm.steps > vm.maxSteps {
			vm.truncated = true
			return -1, false
		}
		if pc >= len(vm.prog.Insts) {
			return -1, false
		}

		inst := vm.prog.Insts[pc]

		switch inst.Op {
		case OpMatch:
			return pos, true

		case OpChar:
			r, w := vm.input.Step(pos)
			if w == 0 || !runeEq(r, inst.Val, inst.Fold) {
				return -1, false
			}
			pos += w
			pc++

		case OpCharClass:
			r, w := vm.input.Step(pos)
			if w == 0 || !matchClass(r, inst.Ranges, inst.Negated, inst.Fold) {
				return -1, false
			}
			pos += w
			pc++

		case OpAny:
			r, w := vm.input.Step(pos)
			if w == 0 {
				return -1, false
			}
			if r == '\n' && !inst.DotAll {
				return -1, false
			}
			pos += w
			pc++

		case OpJmp:
			pc = inst.Out

		case OpSplit:
			saved := newRegs(len(regs))
			copy(saved, regs)

			if endPos, ok := vm.match(inst.Out, pos, saved); ok {
				copy(regs, saved)
				regsPool.Put(saved)
				return endPos, true
			}
			regsPool.Put(saved)

			pc = inst.Out1

		case OpSave:
			regs[inst.Idx] = pos
			pc++

		case OpSetPos:
			regs[inst.Idx] = pos
			pc++

		case OpProgress:
			if pos > regs[inst.Idx] {
				pc = inst.Out
			} else {
				pc = inst.Out1
			}

		case OpAssert:
			if !vm.checkAssertion(inst.Assert, inst.Multiline, pos) {
				return -1, false
			}
			pc++

		case OpBackref:
			end, ok := vm.matchBackref(inst, pos, regs)
			if !ok {
				return -1, false
			}
			pos = end
			pc++

		case OpLookaround:
			if !vm.checkLookaround(inst, pos) {
				return -1, false
			}
			pc++

		default:
			return -1, false
		}
	}
}

// matchBackref re-matches the text captured by group inst.Idx. A reference
// to a group that did not participate fails the branch.
func (vm *VM) matchBackref(inst Inst, pos int, regs []int) (int, bool) {
	start, end := regs[2*inst.Idx], regs[2*inst.Idx+1]
	if start < 0 || end < start {
		return -1, false
	}
	for i := start; i < end; {
		cr, cw := vm.input.Step(i)
		r, w := vm.input.Step(pos)
		if w == 0 || !runeEq(r, cr, inst.Fold) {
			return -1, false
		}
		i += cw
		pos += w
	}
	return pos, true
}

func (vm *VM) checkLookaround(inst Inst, pos int) bool {
	sub := NewVM(inst.Prog, vm.input)
	matched := false

	if inst.LookBehind {
		// Variable-length lookbehind: try every start position that could
		// end exactly here.
		for i := 0; i <= pos; i++ {
			regs := newRegs(inst.Prog.NumRegs())
			endPos, ok := sub.match(inst.Prog.Start, i, regs)
			regsPool.Put(regs)
			if ok && endPos == pos {
				matched = true
				break
			}
		}
	} else {
		regs := newRegs(inst.Prog.NumRegs())
		_, matched = sub.match(inst.Prog.Start, pos, regs)
		regsPool.Put(regs)
	}

	if inst.LookNeg {
		return !matched
	}
	return matched
}

// matchClass reports whether r is in the range set. Ranges are sorted by Lo
// at compile time; the common single-range classes take the fast path.
func matchClass(r rune, ranges []RuneRange, negated, fold bool) bool {
	in := inRanges(r, ranges)
	if !in && fold {
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if inRanges(f, ranges) {
				in = true
				break
			}
		}
	}
	if negated {
		return !in
	}
	return in
}

func inRanges(r rune, ranges []RuneRange) bool {
	if len(ranges) == 1 {
		return r >= ranges[0].Lo && r <= ranges[0].Hi
	}
	for _, rng := range ranges {
		if r < rng.Lo {
			return false
		}
		if r <= rng.Hi {
			return true
		}
	}
	return false
}

func runeEq(r, v rune, fold bool) bool {
	if r == v {
		return true
	}
	if !fold {
		return false
	}
	for f := unicode.SimpleFold(v); f != v; f = unicode.SimpleFold(f) {
		if f == r {
			return true
		}
	}
	return false
}

func (vm *VM) checkAssertion(kind AnchorKind, multiline bool, pos int) bool {
	switch kind {
	case AnchorStartText:
		if pos == 0 {
			return true
		}
		if multiline {
			prev, _ := vm.input.Context(pos)
			return prev == '\n'
		}
		return false
	case AnchorEndText:
		_, w := vm.input.Step(pos)
		if w == 0 {
			return true
		}
		if multiline {
			r, _ := vm.input.Step(pos)
			return r == '\n'
		}
		return false
	case AnchorWordBoundary:
		return vm.isWordBoundary(pos)
	case AnchorNotWordBoundary:
		return !vm.isWordBoundary(pos)
	}
	return true
}

func (vm *VM) isWordBoundary(pos int) bool {
	prev, _ := vm.input.Context(pos)
	curr, w := vm.input.Step(pos)

	prevIsWord := isWordChar(prev)
	currIsWord := w != 0 && isWordChar(curr)
	return prevIsWord != currIsWord
}

func isWordChar(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '_'
}

package rex

import "sort"

// Compiler lowers an AST into a VM program. Compilation is total: any tree
// the parser accepts compiles.
type Compiler struct {
	insts  []Inst
	numCap int
	loops  int
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile builds the program for node. numGroups is the number of capturing
// groups the parser assigned; capture register pairs are laid out first,
// loop-progress registers after them.
func (c *Compiler) Compile(node Node, numGroups int) *Prog {
	c.insts = nil
	c.numCap = 2 * (numGroups + 1)
	c.loops = 0

	// Implicit capture 0 brackets the whole match.
	c.emit(Inst{Op: OpSave, Idx: 0})
	c.compileNode(node)
	c.emit(Inst{Op: OpSave, Idx: 1})
	c.emit(Inst{Op: OpMatch})

	return &Prog{
		Insts:   c.insts,
		Start:   0,
		NumCap:  c.numCap,
		NumLoop: c.loops,
	}
}

func (c *Compiler) emit(i Inst) int {
	c.insts = append(c.insts, i)
	return len(c.insts) - 1
}

func (c *Compiler) compileNode(node Node) {
	switch n := node.(type) {
	case *Literal:
		for _, r := range n.Runes {
			c.emit(Inst{Op: OpChar, Val: r, Fold: n.FoldCase})
		}

	case *AnyChar:
		c.emit(Inst{Op: OpAny, DotAll: n.DotAll})

	case *CharClass:
		c.emit(Inst{
			Op:      OpCharClass,
			Ranges:  sortedRanges(n.Ranges),
			Negated: n.Negated,
			Fold:    n.FoldCase,
		})

	case *Concat:
		for _, sub := range n.Nodes {
			c.compileNode(sub)
		}

	case *Alternate:
		c.compileAlternate(n.Nodes)

	case *Repeat:
		c.compileRepeat(n)

	case *Group:
		c.emit(Inst{Op: OpSave, Idx: 2 * n.Index})
		c.compileNode(n.Body)
		c.emit(Inst{Op: OpSave, Idx: 2*n.Index + 1})

	case *Anchor:
		c.emit(Inst{Op: OpAssert, Assert: n.Kind, Multiline: n.Multiline})

	case *Backreference:
		c.emit(Inst{Op: OpBackref, Idx: n.Index, Fold: n.FoldCase})

	case *Lookaround:
		sub := NewCompiler().Compile(n.Body, (c.numCap-2)/2)
		c.emit(Inst{
			Op:         OpLookaround,
			Prog:       sub,
			LookNeg:    n.Negative,
			LookBehind: n.Behind,
		})
	}
}

// compileAlternate emits branches left to right; the first branch that lets
// the overall match succeed wins (leftmost-first, not leftmost-longest).
func (c *Compiler) compileAlternate(nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	if len(nodes) == 1 {
		c.compileNode(nodes[0])
		return
	}

	split := c.emit(Inst{Op: OpSplit})
	c.insts[split].Out = len(c.insts)
	c.compileNode(nodes[0])
	jmp := c.emit(Inst{Op: OpJmp})
	c.insts[split].Out1 = len(c.insts)
	c.compileAlternate(nodes[1:])
	c.insts[jmp].Out = len(c.insts)
}

// compileRepeat emits min mandatory copies of the body followed by either an
// unbounded loop or a chain of optional copies. The unbounded loop records
// its entry position in a loop register and exits when an iteration consumes
// nothing, so zero-width bodies cannot spin.
func (c *Compiler) compileRepeat(n *Repeat) {
	for i := 0; i < n.Min; i++ {
		c.compileNode(n.Body)
	}

	if n.Max < 0 {
		slot := c.numCap + c.loops
		c.loops++

		head := c.emit(Inst{Op: OpSetPos, Idx: slot})
		split := c.emit(Inst{Op: OpSplit})
		bodyStart := len(c.insts)
		c.compileNode(n.Body)
		progress := c.emit(Inst{Op: OpProgress, Idx: slot, Out: head})
		exit := len(c.insts)

		if n.Greedy {
			c.insts[split].Out = bodyStart
			c.insts[split].Out1 = exit
		} else {
			c.insts[split].Out = exit
			c.insts[split].Out1 = bodyStart
		}
		c.insts[progress].Out1 = exit
		return
	}

	// Bounded tail: each optional copy may be declined independently, and
	// declining skips all the remaining copies.
	var splits []int
	for i := n.Min; i < n.Max; i++ {
		split := c.emit(Inst{Op: OpSplit})
		splits = append(splits, split)
		if n.Greedy {
			c.insts[split].Out = len(c.insts)
		} else {
			c.insts[split].Out1 = len(c.insts)
		}
		c.compileNode(n.Body)
	}
	exit := len(c.insts)
	for _, split := range splits {
		if n.Greedy {
			c.insts[split].Out1 = exit
		} else {
			c.insts[split].Out = exit
		}
	}
}

func sortedRanges(ranges []RuneRange) []RuneRange {
	out := make([]RuneRange, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return out
}

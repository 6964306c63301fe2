package rex

import "fmt"

type OpCode int

const (
	OpMatch      OpCode = iota // terminate success
	OpChar                     // match one specific rune
	OpCharClass                // match one rune against a range set
	OpAny                      // match any rune (. — newline per DotAll)
	OpJmp                      // jump to Out
	OpSplit                    // try Out, else Out1
	OpSave                     // save position to capture register Idx
	OpAssert                   // zero-width anchor/boundary test
	OpBackref                  // match text of capture group Idx again
	OpSetPos                   // record position in loop register Idx
	OpProgress                 // loop back to Out if position advanced past register Idx, else fall through to Out1
	OpLookaround               // run sub-program as a zero-width test
)

type Inst struct {
	Op         OpCode
	Val        rune        // OpChar
	Fold       bool        // OpChar, OpCharClass, OpBackref: case-insensitive
	Ranges     []RuneRange // OpCharClass
	Negated    bool        // OpCharClass
	DotAll     bool        // OpAny: also match newline
	Out        int         // primary jump target
	Out1       int         // alternative target (OpSplit, OpProgress)
	Idx        int         // register index (OpSave, OpSetPos, OpProgress) or group index (OpBackref)
	Assert     AnchorKind  // OpAssert
	Multiline  bool        // OpAssert: ^/$ hold at line boundaries too
	Prog       *Prog       // OpLookaround sub-program
	LookNeg    bool
	LookBehind bool
}

// Prog is a compiled pattern: a flat instruction list executed by the
// backtracking VM. A Prog is immutable once built and safe to share.
type Prog struct {
	Insts   []Inst
	Start   int
	NumCap  int // capture registers: 2*(1+number of groups)
	NumLoop int // loop-progress registers, stored after the captures
}

// NumRegs is the size of the register file a VM run needs.
func (p *Prog) NumRegs() int { return p.NumCap + p.NumLoop }

func (i Inst) String() string {
	switch i.Op {
	case OpMatch:
		return "match"
	case OpChar:
		return fmt.Sprintf("char %q", i.Val)
	case OpCharClass:
		neg := ""
		if i.Negated {
			neg = "^"
		}
		return fmt.Sprintf("class %s%v", neg, i.Ranges)
	case OpAny:
		return "any"
	case OpJmp:
		return fmt.Sprintf("jmp %d", i.Out)
	case OpSplit:
		return fmt.Sprintf("split %d, %d", i.Out, i.Out1)
	case OpSave:
		return fmt.Sprintf("save %d", i.Idx)
	case OpAssert:
		return fmt.Sprintf("assert %d", i.Assert)
	case OpBackref:
		return fmt.Sprintf("backref %d", i.Idx)
	case OpSetPos:
		return fmt.Sprintf("setpos %d", i.Idx)
	case OpProgress:
		return fmt.Sprintf("progress %d -> %d, %d", i.Idx, i.Out, i.Out1)
	case OpLookaround:
		return fmt.Sprintf("look neg=%v behind=%v", i.LookNeg, i.LookBehind)
	}
	return "?"
}

package rex

// NodeType identifies the kind of an AST node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeAnyChar
	NodeCharClass
	NodeConcat
	NodeAlternate
	NodeRepeat
	NodeGroup
	NodeAnchor
	NodeLookaround
	NodeBackreference
)

// Node is an element of a parsed pattern. The parser produces a finite tree
// of these; the compiler and the documentation renderer both walk it.
type Node interface {
	Type() NodeType
}

// Literal matches a fixed run of characters.
type Literal struct {
	Runes    []rune
	FoldCase bool
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// AnyChar matches any single character. Unless DotAll is set it excludes
// newline.
type AnyChar struct {
	DotAll bool
}

func (n *AnyChar) Type() NodeType { return NodeAnyChar }

// RuneRange is an inclusive range of characters inside a class.
type RuneRange struct {
	Lo, Hi rune
}

// CharClass matches one character against a set of ranges, optionally
// negated. Shorthand classes (\d, \w, \s) parse into their range sets, so a
// consumer of the AST always sees the resolved contents.
type CharClass struct {
	Ranges   []RuneRange
	Negated  bool
	FoldCase bool
}

func (n *CharClass) Type() NodeType { return NodeCharClass }

// Concat matches a sequence of sub-patterns in order.
type Concat struct {
	Nodes []Node
}

func (n *Concat) Type() NodeType { return NodeConcat }

// Alternate matches one of several branches, tried left to right.
type Alternate struct {
	Nodes []Node
}

func (n *Alternate) Type() NodeType { return NodeAlternate }

// Repeat matches its body between Min and Max times. Max < 0 means
// unbounded. Greedy repeats prefer the longest expansion.
type Repeat struct {
	Body   Node
	Min    int
	Max    int
	Greedy bool
}

func (n *Repeat) Type() NodeType { return NodeRepeat }

// Group wraps a sub-pattern. Capturing groups carry a 1-based Index assigned
// in left-to-right order of the opening parenthesis, and optionally a Name.
type Group struct {
	Body  Node
	Index int
	Name  string
}

func (n *Group) Type() NodeType { return NodeGroup }

// AnchorKind identifies a zero-width position assertion.
type AnchorKind int

const (
	AnchorStartText       AnchorKind = iota // ^
	AnchorEndText                           // $
	AnchorWordBoundary                      // \b
	AnchorNotWordBoundary                   // \B
)

// Anchor asserts a position without consuming input. Multiline controls
// whether ^ and $ also hold at internal line boundaries.
type Anchor struct {
	Kind      AnchorKind
	Multiline bool
}

func (n *Anchor) Type() NodeType { return NodeAnchor }

// Lookaround is a zero-width assertion over a sub-pattern.
type Lookaround struct {
	Body     Node
	Negative bool // (?!...) and (?<!...)
	Behind   bool // (?<=...) and (?<!...)
}

func (n *Lookaround) Type() NodeType { return NodeLookaround }

// Backreference matches the text captured by an earlier group.
type Backreference struct {
	Index    int
	FoldCase bool
}

func (n *Backreference) Type() NodeType { return NodeBackreference }

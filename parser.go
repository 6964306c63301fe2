package rex

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Parser turns a pattern string into an AST by recursive descent. Precedence,
// lowest to highest: alternation, concatenation, quantified atom, atom.
type Parser struct {
	pattern  string
	pos      int
	captures int
	names    map[string]int
	open     map[int]bool // capture indices whose group is still unclosed
	flags    Flags
}

func NewParser(pattern string, flags Flags) *Parser {
	return &Parser{
		pattern: pattern,
		names:   make(map[string]int),
		open:    make(map[int]bool),
		flags:   flags,
	}
}

// Parse is the standalone parsing entry point: it returns the AST without
// compiling it. The documentation renderer uses this to inspect a pattern.
func Parse(pattern string, flags Flags) (Node, error) {
	return NewParser(pattern, flags).Parse()
}

func (p *Parser) Parse() (Node, error) {
	if p.pattern == "" {
		return nil, emptyPatternError()
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// parseExpr only stops early on an unbalanced ).
		return nil, p.errorf(p.pos, "unmatched closing parenthesis")
	}
	return node, nil
}

// NumCaptures returns the number of capturing groups seen by the last Parse.
func (p *Parser) NumCaptures() int { return p.captures }

// GroupNames returns the name-to-index mapping of named capturing groups.
func (p *Parser) GroupNames() map[string]int { return p.names }

// parseExpr handles alternation: term | term | ...
func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.pattern) && p.peek() == '|' {
		p.consume()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if alt, ok := right.(*Alternate); ok {
			return &Alternate{Nodes: append([]Node{left}, alt.Nodes...)}, nil
		}
		return &Alternate{Nodes: []Node{left, right}}, nil
	}
	return left, nil
}

// parseTerm handles concatenation: factor factor ...
func (p *Parser) parseTerm() (Node, error) {
	var nodes []Node
	for p.pos < len(p.pattern) && p.peek() != '|' && p.peek() != ')' {
		node, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &Concat{Nodes: nodes}, nil
}

// parseFactor handles a single atom with an optional quantifier suffix.
// A quantifier binds to the immediately preceding atom only; a quantifier
// with no atom before it, or directly following another quantifier, is a
// syntax error.
func (p *Parser) parseFactor() (Node, error) {
	if p.isQuantifierStart() {
		return nil, p.errorf(p.pos, "missing argument to repetition operator %q", p.peek())
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.pattern) || !p.isQuantifierStart() {
		return atom, nil
	}

	qpos := p.pos
	rep := &Repeat{Body: atom, Greedy: true}
	switch p.consume() {
	case '*':
		rep.Min, rep.Max = 0, -1
	case '+':
		rep.Min, rep.Max = 1, -1
	case '?':
		rep.Min, rep.Max = 0, 1
	case '{':
		if err := p.parseRepeatBounds(rep, qpos); err != nil {
			return nil, err
		}
	}

	if p.pos < len(p.pattern) && p.peek() == '?' {
		p.consume()
		rep.Greedy = false
	}

	if p.pos < len(p.pattern) && p.isQuantifierStart() {
		return nil, p.errorf(p.pos, "stacked quantifier %q", p.peek())
	}
	return rep, nil
}

func (p *Parser) isQuantifierStart() bool {
	if p.pos >= len(p.pattern) {
		return false
	}
	switch p.peek() {
	case '*', '+', '?', '{':
		return true
	}
	return false
}

// parseRepeatBounds parses {m}, {m,} or {m,n}. The opening brace is already
// consumed; qpos points at it for error offsets.
func (p *Parser) parseRepeatBounds(rep *Repeat, qpos int) error {
	min, ok := p.parseInt()
	if !ok {
		return p.errorf(qpos, "invalid repeat count: missing minimum")
	}

	max := min
	if p.pos < len(p.pattern) && p.peek() == ',' {
		p.consume()
		if p.pos < len(p.pattern) && p.peek() == '}' {
			max = -1
		} else {
			max, ok = p.parseInt()
			if !ok {
				return p.errorf(qpos, "invalid repeat count: missing maximum")
			}
		}
	}

	if p.pos >= len(p.pattern) || p.consume() != '}' {
		return p.errorf(qpos, "unclosed repeat count")
	}
	if max != -1 && min > max {
		return p.errorf(qpos, "invalid repeat count: %d > %d", min, max)
	}

	rep.Min, rep.Max = min, max
	return nil
}

func (p *Parser) parseInt() (int, bool) {
	start := p.pos
	for p.pos < len(p.pattern) && p.peek() >= '0' && p.peek() <= '9' {
		p.consume()
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.pattern[start:p.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAtom handles literals, escapes, ., character classes, groups and
// anchors.
func (p *Parser) parseAtom() (Node, error) {
	switch ch := p.peek(); ch {
	case '(':
		p.consume()
		return p.parseGroup(p.pos - 1)
	case '[':
		p.consume()
		return p.parseCharClass(p.pos - 1)
	case '.':
		p.consume()
		return &AnyChar{DotAll: p.flags.has(DotAll)}, nil
	case '\\':
		return p.parseEscape()
	case '^':
		p.consume()
		return &Anchor{Kind: AnchorStartText, Multiline: p.flags.has(Multiline)}, nil
	case '$':
		p.consume()
		return &Anchor{Kind: AnchorEndText, Multiline: p.flags.has(Multiline)}, nil
	default:
		p.consume()
		return &Literal{Runes: []rune{ch}, FoldCase: p.flags.has(IgnoreCase)}, nil
	}
}

func (p *Parser) parseEscape() (Node, error) {
	slash := p.pos
	p.consume() // eat backslash
	if p.pos >= len(p.pattern) {
		return nil, p.errorf(slash, "trailing backslash")
	}

	fold := p.flags.has(IgnoreCase)
	esc := p.consume()
	switch esc {
	case 'd', 'D', 'w', 'W', 's', 'S':
		ranges, negated := shorthandClass(esc)
		return &CharClass{Ranges: ranges, Negated: negated, FoldCase: fold}, nil
	case 'b':
		return &Anchor{Kind: AnchorWordBoundary}, nil
	case 'B':
		return &Anchor{Kind: AnchorNotWordBoundary}, nil
	case 'n':
		return &Literal{Runes: []rune{'\n'}, FoldCase: fold}, nil
	case 't':
		return &Literal{Runes: []rune{'\t'}, FoldCase: fold}, nil
	case 'r':
		return &Literal{Runes: []rune{'\r'}, FoldCase: fold}, nil
	case 'f':
		return &Literal{Runes: []rune{'\f'}, FoldCase: fold}, nil
	case 'v':
		return &Literal{Runes: []rune{'\v'}, FoldCase: fold}, nil
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		idx := int(esc - '0')
		if idx > p.captures {
			return nil, p.errorf(slash, "invalid backreference \\%d: no such group", idx)
		}
		if p.open[idx] {
			return nil, p.errorf(slash, "invalid backreference \\%d to unclosed group", idx)
		}
		return &Backreference{Index: idx, FoldCase: fold}, nil
	}
	if esc < utf8.RuneSelf && (unicode.IsLetter(esc) || unicode.IsDigit(esc)) {
		return nil, p.errorf(slash, "unknown escape sequence \\%c", esc)
	}
	// Escaped metacharacter or punctuation matches itself.
	return &Literal{Runes: []rune{esc}, FoldCase: fold}, nil
}

// shorthandClass returns the range set for \d \D \w \W \s \S.
func shorthandClass(esc rune) (ranges []RuneRange, negated bool) {
	switch esc {
	case 'd', 'D':
		ranges = []RuneRange{{'0', '9'}}
	case 'w', 'W':
		ranges = []RuneRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	case 's', 'S':
		ranges = []RuneRange{{'\t', '\r'}, {' ', ' '}}
	}
	return ranges, esc == 'D' || esc == 'W' || esc == 'S'
}

// parseCharClass parses [...] with ranges, negation and escapes. The opening
// bracket is already consumed; open points at it.
func (p *Parser) parseCharClass(open int) (Node, error) {
	negated := false
	if p.pos < len(p.pattern) && p.peek() == '^' {
		p.consume()
		negated = true
	}

	var ranges []RuneRange

	// A ] immediately after [ or [^ is a literal.
	if p.pos < len(p.pattern) && p.peek() == ']' {
		p.consume()
		ranges = append(ranges, RuneRange{']', ']'})
	}

	for p.pos < len(p.pattern) && p.peek() != ']' {
		if p.peek() == '\\' {
			if shorthand, ok := p.classShorthand(); ok {
				ranges = append(ranges, shorthand...)
				continue
			}
		}

		lopos := p.pos
		lo, err := p.classChar(open)
		if err != nil {
			return nil, err
		}

		if p.pos < len(p.pattern) && p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.consume() // eat -
			hi, err := p.classChar(open)
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, p.errorf(lopos, "invalid character class range %q-%q", lo, hi)
			}
			ranges = append(ranges, RuneRange{lo, hi})
		} else {
			ranges = append(ranges, RuneRange{lo, lo})
		}
	}

	if p.pos >= len(p.pattern) || p.consume() != ']' {
		return nil, p.errorf(open, "unclosed character class")
	}

	return &CharClass{Ranges: ranges, Negated: negated, FoldCase: p.flags.has(IgnoreCase)}, nil
}

// classShorthand consumes \d \w \s and their negations inside a class.
// Negated shorthands expand into the complement of their range set, so they
// union with the other class members like any positive range.
func (p *Parser) classShorthand() ([]RuneRange, bool) {
	if p.pos+1 >= len(p.pattern) {
		return nil, false
	}
	switch p.pattern[p.pos+1] {
	case 'd', 'w', 's', 'D', 'W', 'S':
		p.consume()
		ranges, negated := shorthandClass(p.consume())
		if negated {
			ranges = complementRanges(ranges)
		}
		return ranges, true
	}
	return nil, false
}

// complementRanges inverts a sorted, non-overlapping range set over the full
// rune space.
func complementRanges(ranges []RuneRange) []RuneRange {
	out := make([]RuneRange, 0, len(ranges)+1)
	next := rune(0)
	for _, rng := range ranges {
		if rng.Lo > next {
			out = append(out, RuneRange{next, rng.Lo - 1})
		}
		next = rng.Hi + 1
	}
	if next <= utf8.MaxRune {
		out = append(out, RuneRange{next, utf8.MaxRune})
	}
	return out
}

// classChar consumes one (possibly escaped) class member character.
func (p *Parser) classChar(open int) (rune, error) {
	if p.peek() == '\\' {
		p.consume()
		if p.pos >= len(p.pattern) {
			return 0, p.errorf(open, "unclosed character class")
		}
		esc := p.consume()
		switch esc {
		case 'n':
			return '\n', nil
		case 't':
			return '\t', nil
		case 'r':
			return '\r', nil
		case 'f':
			return '\f', nil
		case 'v':
			return '\v', nil
		}
		return esc, nil
	}
	return p.consume(), nil
}

// parseGroup parses the body after a consumed (. open points at the paren.
func (p *Parser) parseGroup(open int) (Node, error) {
	if p.pos < len(p.pattern) && p.peek() == '?' {
		p.consume()
		return p.parseGroupExtension(open)
	}

	// Capturing group: the index is assigned before the body parses so that
	// indices follow the order of opening parentheses. While the body is
	// parsing, the index counts as open, so \N cannot refer into it.
	p.captures++
	idx := p.captures
	p.open[idx] = true
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.pattern) || p.consume() != ')' {
		return nil, p.errorf(open, "missing closing parenthesis")
	}
	delete(p.open, idx)
	return &Group{Body: body, Index: idx}, nil
}

// parseGroupExtension handles (?...) forms: inline flags, non-capturing
// groups, named groups and lookarounds.
func (p *Parser) parseGroupExtension(open int) (Node, error) {
	if p.pos >= len(p.pattern) {
		return nil, p.errorf(open, "incomplete group syntax")
	}

	switch p.peek() {
	case 'i', 'm', 's', '-':
		return p.parseInlineFlags(open)

	case ':':
		p.consume()
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.pattern) || p.consume() != ')' {
			return nil, p.errorf(open, "missing closing parenthesis")
		}
		return body, nil

	case 'P':
		p.consume()
		if p.pos >= len(p.pattern) || p.consume() != '<' {
			return nil, p.errorf(open, "expected < after (?P")
		}
		return p.parseNamedGroup(open)

	case '=':
		p.consume()
		return p.parseLookaround(open, false, false)

	case '!':
		p.consume()
		return p.parseLookaround(open, true, false)

	case '<':
		p.consume()
		if p.pos < len(p.pattern) {
			switch p.peek() {
			case '=':
				p.consume()
				return p.parseLookaround(open, false, true)
			case '!':
				p.consume()
				return p.parseLookaround(open, true, true)
			}
		}
		// (?<name>...) is the alternate named-group spelling.
		return p.parseNamedGroup(open)

	default:
		return nil, p.errorf(p.pos, "invalid group extension (?%c", p.peek())
	}
}

// parseInlineFlags handles (?i), (?-i), (?ims) and the scoped (?i:...) form.
func (p *Parser) parseInlineFlags(open int) (Node, error) {
	saved := p.flags
	turnOn := true
	for p.pos < len(p.pattern) {
		switch p.peek() {
		case '-':
			p.consume()
			turnOn = false
			continue
		case 'i':
			p.consume()
			p.flags = p.flags.set(IgnoreCase, turnOn)
			continue
		case 'm':
			p.consume()
			p.flags = p.flags.set(Multiline, turnOn)
			continue
		case 's':
			p.consume()
			p.flags = p.flags.set(DotAll, turnOn)
			continue
		}
		break
	}

	if p.pos < len(p.pattern) && p.peek() == ')' {
		p.consume()
		// Flag-setting group: applies to the rest of the enclosing group.
		return &Literal{Runes: nil, FoldCase: p.flags.has(IgnoreCase)}, nil
	}

	if p.pos < len(p.pattern) && p.peek() == ':' {
		p.consume()
		defer func() { p.flags = saved }()

		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.pattern) || p.consume() != ')' {
			return nil, p.errorf(open, "missing closing parenthesis")
		}
		return body, nil
	}

	return nil, p.errorf(open, "invalid inline flag syntax")
}

func (p *Parser) parseNamedGroup(open int) (Node, error) {
	nameStart := p.pos
	for p.pos < len(p.pattern) && p.peek() != '>' {
		p.consume()
	}
	if p.pos >= len(p.pattern) {
		return nil, p.errorf(open, "unclosed group name")
	}
	name := p.pattern[nameStart:p.pos]
	p.consume() // eat >

	if !validGroupName(name) {
		return nil, p.errorf(nameStart, "invalid group name %q", name)
	}
	if _, dup := p.names[name]; dup {
		return nil, duplicateNameError(p.pattern, name)
	}

	p.captures++
	idx := p.captures
	p.names[name] = idx
	p.open[idx] = true

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.pattern) || p.consume() != ')' {
		return nil, p.errorf(open, "missing closing parenthesis")
	}
	delete(p.open, idx)
	return &Group{Body: body, Index: idx, Name: name}, nil
}

func (p *Parser) parseLookaround(open int, negative, behind bool) (Node, error) {
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.pattern) || p.consume() != ')' {
		return nil, p.errorf(open, "missing closing parenthesis")
	}
	return &Lookaround{Body: body, Negative: negative, Behind: behind}, nil
}

// validGroupName accepts identifiers: a letter or underscore followed by
// word characters.
func validGroupName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Helpers

func (p *Parser) peek() rune {
	if p.pos >= len(p.pattern) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.pattern[p.pos:])
	return r
}

func (p *Parser) consume() rune {
	if p.pos >= len(p.pattern) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(p.pattern[p.pos:])
	p.pos += w
	return r
}

func (p *Parser) errorf(pos int, format string, args ...any) *Error {
	return syntaxError(p.pattern, pos, format, args...)
}

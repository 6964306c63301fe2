package rex

import (
	"fmt"
	"strings"
)

// Describe parses a pattern and renders a numbered plain-English breakdown
// of it. It only parses — the pattern is never compiled or matched — so it
// works for any syntactically valid pattern. Quantifiers are reported with
// their resolved bounds and greediness, and character classes with their
// resolved contents rather than the original bracket text.
func Describe(pattern string, flags Flags) (string, error) {
	node, err := Parse(pattern, flags)
	if err != nil {
		return "", err
	}

	var steps []string
	describeSteps(node, &steps)

	var b strings.Builder
	fmt.Fprintf(&b, "Pattern: %s\n\nBreakdown:\n", pattern)
	for i, step := range steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, step)
	}
	return b.String(), nil
}

// describeSteps flattens top-level concatenation into one numbered step per
// element; everything else renders as a single step.
func describeSteps(node Node, steps *[]string) {
	if c, ok := node.(*Concat); ok {
		for _, sub := range c.Nodes {
			describeSteps(sub, steps)
		}
		return
	}
	if s := describeNode(node); s != "" {
		*steps = append(*steps, s)
	}
}

func describeNode(node Node) string {
	switch n := node.(type) {
	case *Literal:
		if len(n.Runes) == 0 {
			return ""
		}
		if len(n.Runes) == 1 {
			return fmt.Sprintf("Match the literal character %q", string(n.Runes))
		}
		return fmt.Sprintf("Match the literal text %q", string(n.Runes))

	case *AnyChar:
		if n.DotAll {
			return "Match any character, including newline"
		}
		return "Match any character except newline"

	case *CharClass:
		if n.Negated {
			return "Match any character not in: " + describeRanges(n.Ranges)
		}
		return "Match any of: " + describeRanges(n.Ranges)

	case *Concat:
		return "Match " + describePhrase(n)

	case *Alternate:
		parts := make([]string, len(n.Nodes))
		for i, sub := range n.Nodes {
			parts[i] = describePhrase(sub)
		}
		return "Match one of the following, trying each in order: " + strings.Join(parts, "; or ")

	case *Repeat:
		return fmt.Sprintf("Match %s %s", describePhrase(n.Body), describeBounds(n.Min, n.Max, n.Greedy))

	case *Group:
		if n.Name != "" {
			return fmt.Sprintf("Capture as group %d (named %q): %s", n.Index, n.Name, describePhrase(n.Body))
		}
		return fmt.Sprintf("Capture as group %d: %s", n.Index, describePhrase(n.Body))

	case *Anchor:
		return describeAnchor(n)

	case *Lookaround:
		verb := "is followed by"
		if n.Behind {
			verb = "is preceded by"
		}
		if n.Negative {
			verb = "is not followed by"
			if n.Behind {
				verb = "is not preceded by"
			}
		}
		return fmt.Sprintf("Assert, without consuming input, that this position %s %s", verb, describePhrase(n.Body))

	case *Backreference:
		return fmt.Sprintf("Match the same text that group %d captured", n.Index)
	}
	return ""
}

// describePhrase renders a node as an inline phrase for embedding in a
// larger sentence.
func describePhrase(node Node) string {
	switch n := node.(type) {
	case *Literal:
		return fmt.Sprintf("the literal %q", string(n.Runes))

	case *AnyChar:
		if n.DotAll {
			return "any character"
		}
		return "any character except newline"

	case *CharClass:
		if n.Negated {
			return "any character not in: " + describeRanges(n.Ranges)
		}
		return "any of: " + describeRanges(n.Ranges)

	case *Concat:
		parts := make([]string, 0, len(n.Nodes))
		for _, sub := range n.Nodes {
			if p := describePhrase(sub); p != "" {
				parts = append(parts, p)
			}
		}
		return "the sequence: " + strings.Join(parts, ", then ")

	case *Alternate:
		parts := make([]string, len(n.Nodes))
		for i, sub := range n.Nodes {
			parts[i] = describePhrase(sub)
		}
		return "one of (" + strings.Join(parts, " | ") + ")"

	case *Repeat:
		return fmt.Sprintf("%s %s", describePhrase(n.Body), describeBounds(n.Min, n.Max, n.Greedy))

	case *Group:
		if n.Name != "" {
			return fmt.Sprintf("group %d (named %q) capturing %s", n.Index, n.Name, describePhrase(n.Body))
		}
		return fmt.Sprintf("group %d capturing %s", n.Index, describePhrase(n.Body))

	case *Anchor:
		return strings.ToLower(describeAnchor(n)[:1]) + describeAnchor(n)[1:]

	case *Lookaround:
		return describeNode(n)

	case *Backreference:
		return fmt.Sprintf("the same text that group %d captured", n.Index)
	}
	return ""
}

// describeBounds puts a resolved (min, max) pair and greediness into words.
func describeBounds(min, max int, greedy bool) string {
	var s string
	switch {
	case min == 0 && max < 0:
		s = "zero or more times"
	case min == 1 && max < 0:
		s = "one or more times"
	case min == 0 && max == 1:
		s = "optionally"
	case max < 0:
		s = fmt.Sprintf("at least %d times", min)
	case min == max:
		s = fmt.Sprintf("exactly %d times", min)
	default:
		s = fmt.Sprintf("between %d and %d times", min, max)
	}
	if !greedy && (max < 0 || max > min) {
		s += ", matching as little as possible"
	}
	return s
}

func describeRanges(ranges []RuneRange) string {
	parts := make([]string, 0, len(ranges))
	for _, rng := range ranges {
		if rng.Lo == rng.Hi {
			parts = append(parts, fmt.Sprintf("%q", rng.Lo))
		} else {
			parts = append(parts, fmt.Sprintf("any character from %q to %q", rng.Lo, rng.Hi))
		}
	}
	return strings.Join(parts, ", ")
}

func describeAnchor(n *Anchor) string {
	switch n.Kind {
	case AnchorStartText:
		if n.Multiline {
			return "Match at the start of the string or of a line"
		}
		return "Match at the start of the string"
	case AnchorEndText:
		if n.Multiline {
			return "Match at the end of the string or of a line"
		}
		return "Match at the end of the string"
	case AnchorWordBoundary:
		return "Match at a word boundary"
	case AnchorNotWordBoundary:
		return "Match at a non-word boundary"
	}
	return ""
}

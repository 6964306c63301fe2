package rex

import (
	"errors"
	"strconv"
	"strings"
)

// Quantifier is an optional repetition suffix for builder components.
type Quantifier string

const (
	ZeroOrMore Quantifier = "*"
	OneOrMore  Quantifier = "+"
	ZeroOrOne  Quantifier = "?"
)

// Builder assembles a pattern string from named fragments. It is a plain
// string-concatenation convenience: the result goes through the parser
// exactly like any caller-supplied pattern, with no special casing.
type Builder struct {
	parts []string
	err   error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends text to match literally; metacharacters are escaped.
func (b *Builder) Add(literal string) *Builder {
	return b.Raw(Escape(literal))
}

// Raw appends a pattern fragment without escaping.
func (b *Builder) Raw(fragment string) *Builder {
	b.parts = append(b.parts, fragment)
	return b
}

// Digit appends \d with an optional quantifier.
func (b *Builder) Digit(q ...Quantifier) *Builder { return b.class(`\d`, q) }

// Word appends \w with an optional quantifier.
func (b *Builder) Word(q ...Quantifier) *Builder { return b.class(`\w`, q) }

// Whitespace appends \s with an optional quantifier.
func (b *Builder) Whitespace(q ...Quantifier) *Builder { return b.class(`\s`, q) }

// Any appends . with an optional quantifier.
func (b *Builder) Any(q ...Quantifier) *Builder { return b.class(`.`, q) }

func (b *Builder) class(frag string, q []Quantifier) *Builder {
	if len(q) > 0 {
		frag += string(q[0])
	}
	return b.Raw(frag)
}

// Group appends a capturing group matching the given literals in order.
func (b *Builder) Group(literals ...string) *Builder {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, lit := range literals {
		sb.WriteString(Escape(lit))
	}
	sb.WriteByte(')')
	return b.Raw(sb.String())
}

// Or appends a capturing group of literal alternatives, tried left to right.
func (b *Builder) Or(literals ...string) *Builder {
	escaped := make([]string, len(literals))
	for i, lit := range literals {
		escaped[i] = Escape(lit)
	}
	return b.Raw("(" + strings.Join(escaped, "|") + ")")
}

// OrRaw appends a capturing group of unescaped alternatives.
func (b *Builder) OrRaw(fragments ...string) *Builder {
	return b.Raw("(" + strings.Join(fragments, "|") + ")")
}

// Repeat wraps the last component in a group repeated between min and max
// times; max < 0 means unbounded.
func (b *Builder) Repeat(min, max int) *Builder {
	if len(b.parts) == 0 {
		if b.err == nil {
			b.err = errors.New("rex: cannot repeat an empty pattern")
		}
		return b
	}
	last := b.parts[len(b.parts)-1]
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(last)
	sb.WriteString("){")
	sb.WriteString(strconv.Itoa(min))
	if max != min {
		sb.WriteByte(',')
		if max >= 0 {
			sb.WriteString(strconv.Itoa(max))
		}
	}
	sb.WriteByte('}')
	b.parts[len(b.parts)-1] = sb.String()
	return b
}

// String returns the assembled pattern text.
func (b *Builder) String() string {
	return strings.Join(b.parts, "")
}

// Compile compiles the assembled pattern through the package cache.
func (b *Builder) Compile() (*Regexp, error) {
	return b.CompileFlags(0)
}

// CompileFlags compiles the assembled pattern with flags through the package
// cache.
func (b *Builder) CompileFlags(flags Flags) (*Regexp, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Cached(b.String(), flags)
}

// PhonePattern matches US phone numbers like (123) 456-7890.
func PhonePattern() *Regexp {
	return MustCompile(NewBuilder().
		Add("(").
		Digit().Repeat(3, 3).
		Add(")").
		Whitespace().
		Digit().Repeat(3, 3).
		Add("-").
		Digit().Repeat(4, 4).
		String())
}

// EmailPattern matches common email addresses.
func EmailPattern() *Regexp {
	local := NewBuilder().
		Word(OneOrMore).
		Raw(`[._\-]?`).
		Word(ZeroOrMore)
	domain := NewBuilder().
		Word(OneOrMore).
		Add(".").
		Word(OneOrMore)
	return MustCompile(NewBuilder().
		Raw(local.String()).
		Add("@").
		Raw(domain.String()).
		String())
}

// URLPattern matches http, https and ftp URLs with an optional path.
func URLPattern() *Regexp {
	return MustCompile(NewBuilder().
		Or("http://", "https://", "ftp://").
		Raw(`[\w\-]+`).
		Add(".").
		Word(OneOrMore).
		Raw(`(/[\w./\-]*)?`).
		String())
}

// Common named patterns, kept as plain strings so callers can embed or
// adjust them before compiling.
var commonPatterns = map[string]string{
	"username":  `^[a-zA-Z0-9_\-]{3,16}$`,
	"password":  `^(?=.*[A-Za-z])(?=.*\d)[A-Za-z\d]{8,}$`,
	"hex_color": `^#?([a-fA-F0-9]{6}|[a-fA-F0-9]{3})$`,
	"ipv4":      `^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`,
	"time_24h":  `^([01]?[0-9]|2[0-3]):[0-5][0-9]$`,
	"date":      `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`,
}

// CommonPattern returns a ready-made pattern string by name (username,
// password, hex_color, ipv4, time_24h, date). The second result is false
// for an unknown name.
func CommonPattern(name string) (string, bool) {
	p, ok := commonPatterns[name]
	return p, ok
}

// MergeKind selects how Merge joins patterns.
type MergeKind int

const (
	// MergeOr builds an alternation: any one pattern must match.
	MergeOr MergeKind = iota
	// MergeAnd stacks lookaheads: every pattern must match at the same
	// position.
	MergeAnd
)

// Merge combines several pattern strings into one.
func Merge(patterns []string, kind MergeKind) string {
	if len(patterns) == 0 {
		return ""
	}
	var sb strings.Builder
	switch kind {
	case MergeOr:
		for i, p := range patterns {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteByte('(')
			sb.WriteString(p)
			sb.WriteByte(')')
		}
	case MergeAnd:
		for _, p := range patterns {
			sb.WriteString("(?=")
			sb.WriteString(p)
			sb.WriteByte(')')
		}
	}
	return sb.String()
}

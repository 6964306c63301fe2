package rex

import (
	"strings"
)

// ReplaceAllString replaces every match of the pattern in src with the
// expansion of template. The template supports backslash backreferences
// (\1 through \9, \g<name>, \\) and dollar references ($1, $name, ${name},
// $$). Groups that did not participate in a match expand to the empty
// string.
func (re *Regexp) ReplaceAllString(src, template string) string {
	return re.replaceAll(src, func(m *Match) string {
		return re.expand(template, m)
	})
}

// ReplaceAllStringFunc replaces every match with the result of repl applied
// to the matched text.
func (re *Regexp) ReplaceAllStringFunc(src string, repl func(string) string) string {
	return re.replaceAll(src, func(m *Match) string {
		return repl(m.Value())
	})
}

// ReplaceAllLiteralString replaces every match with repl verbatim, with no
// template expansion.
func (re *Regexp) ReplaceAllLiteralString(src, repl string) string {
	return re.replaceAll(src, func(*Match) string { return repl })
}

func (re *Regexp) replaceAll(src string, repl func(*Match) string) string {
	var b strings.Builder
	lastEnd := 0
	matched := false

	re.findIter(NewStringInput(src), func(regs []int) bool {
		matched = true
		m := newMatch(src, regs, re.prog.NumCap, re.subexpNames)
		b.WriteString(src[lastEnd:m.Start()])
		b.WriteString(repl(m))
		lastEnd = m.End()
		return true
	})

	if !matched {
		return src
	}
	b.WriteString(src[lastEnd:])
	return b.String()
}

// expand substitutes group references in template from m.
func (re *Regexp) expand(template string, m *Match) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		switch template[i] {
		case '\\':
			i = re.expandBackslash(&b, template, i, m)
		case '$':
			i = re.expandDollar(&b, template, i, m)
		default:
			b.WriteByte(template[i])
			i++
		}
	}
	return b.String()
}

// expandBackslash handles \1..\9, \g<name> and \\ starting at template[i].
// Anything else keeps the backslash literally.
func (re *Regexp) expandBackslash(b *strings.Builder, template string, i int, m *Match) int {
	i++ // past the backslash
	if i >= len(template) {
		b.WriteByte('\\')
		return i
	}

	c := template[i]
	switch {
	case c == '\\':
		b.WriteByte('\\')
		return i + 1

	case c >= '1' && c <= '9':
		if text, ok := m.Group(int(c - '0')); ok {
			b.WriteString(text)
		}
		return i + 1

	case c == 'g' && i+1 < len(template) && template[i+1] == '<':
		end := strings.IndexByte(template[i+2:], '>')
		if end == -1 {
			b.WriteString(template[i-1:])
			return len(template)
		}
		name := template[i+2 : i+2+end]
		if text, ok := m.Named(name); ok {
			b.WriteString(text)
		}
		return i + 2 + end + 1
	}

	b.WriteByte('\\')
	b.WriteByte(c)
	return i + 1
}

// expandDollar handles $1..$9, $name, ${name} and $$ starting at
// template[i].
func (re *Regexp) expandDollar(b *strings.Builder, template string, i int, m *Match) int {
	i++ // past the dollar
	if i >= len(template) {
		b.WriteByte('$')
		return i
	}

	if template[i] == '$' {
		b.WriteByte('$')
		return i + 1
	}

	if template[i] == '{' {
		end := strings.IndexByte(template[i+1:], '}')
		if end == -1 {
			b.WriteString(template[i-1:])
			return len(template)
		}
		name := template[i+1 : i+1+end]
		re.writeGroupRef(b, name, m)
		return i + 1 + end + 1
	}

	if template[i] >= '0' && template[i] <= '9' {
		if text, ok := m.Group(int(template[i] - '0')); ok {
			b.WriteString(text)
		}
		return i + 1
	}

	start := i
	for i < len(template) && isIdentChar(template[i]) {
		i++
	}
	if i == start {
		b.WriteByte('$')
		return start
	}
	if text, ok := m.Named(template[start:i]); ok {
		b.WriteString(text)
	}
	return i
}

// writeGroupRef resolves a ${...} reference, which may be a group number or
// a group name.
func (re *Regexp) writeGroupRef(b *strings.Builder, ref string, m *Match) {
	if ref == "" {
		return
	}
	numeric := true
	for j := 0; j < len(ref); j++ {
		if ref[j] < '0' || ref[j] > '9' {
			numeric = false
			break
		}
	}
	if numeric {
		idx := 0
		for j := 0; j < len(ref); j++ {
			idx = idx*10 + int(ref[j]-'0')
		}
		if text, ok := m.Group(idx); ok {
			b.WriteString(text)
		}
		return
	}
	if text, ok := m.Named(ref); ok {
		b.WriteString(text)
	}
}

func isIdentChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
}

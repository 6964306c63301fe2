package rex

// findIter drives all the iteration entry points: it scans for successive
// non-overlapping matches and hands each register file to yield. The next
// scan starts at the end of the previous match, or one rune past it when the
// match was zero-width, so iteration always makes forward progress and
// terminates. yield returns false to stop early.
func (re *Regexp) findIter(input Input, yield func(regs []int) bool) {
	inputLen := input.Len()
	pos := 0

	for pos <= inputLen {
		regs, ok, _ := re.search(input, pos)
		if !ok {
			return
		}

		matchStart, matchEnd := regs[0], regs[1]
		keepGoing := yield(regs)
		regsPool.Put(regs)
		if !keepGoing {
			return
		}

		if matchEnd > matchStart {
			pos = matchEnd
			continue
		}
		// Zero-width match: step one rune past it or the next search would
		// find it again.
		_, w := input.Step(matchEnd)
		if w == 0 {
			return
		}
		pos = matchEnd + w
	}
}

// FindAll returns up to n successive non-overlapping matches in s, leftmost
// first. n < 0 means all matches. It returns nil when there are none.
func (re *Regexp) FindAll(s string, n int) []*Match {
	if n == 0 {
		return nil
	}
	var out []*Match
	re.findIter(NewStringInput(s), func(regs []int) bool {
		out = append(out, newMatch(s, regs, re.prog.NumCap, re.subexpNames))
		return n < 0 || len(out) < n
	})
	return out
}

// FindString returns the text of the leftmost match, or "" when there is no
// match (or the match is empty; use Find to tell the two apart).
func (re *Regexp) FindString(s string) string {
	m := re.Find(s)
	if m == nil {
		return ""
	}
	return m.Value()
}

// FindStringIndex returns the byte span [start, end) of the leftmost match,
// or nil.
func (re *Regexp) FindStringIndex(s string) []int {
	m := re.Find(s)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringSubmatch returns the whole match followed by the group values,
// or nil when there is no match. Groups that did not participate are empty
// strings.
func (re *Regexp) FindStringSubmatch(s string) []string {
	m := re.Find(s)
	if m == nil {
		return nil
	}
	return m.Groups()
}

// FindAllString returns the text of up to n successive matches.
func (re *Regexp) FindAllString(s string, n int) []string {
	matches := re.FindAll(s, n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value()
	}
	return out
}

// FindAllStringIndex returns the spans of up to n successive matches.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	matches := re.FindAll(s, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start(), m.End()}
	}
	return out
}

// FindAllStringSubmatch returns group values for up to n successive matches.
func (re *Regexp) FindAllStringSubmatch(s string, n int) [][]string {
	matches := re.FindAll(s, n)
	if matches == nil {
		return nil
	}
	out := make([][]string, len(matches))
	for i, m := range matches {
		out[i] = m.Groups()
	}
	return out
}

// Split slices s around matches of the pattern. n < 0 means split
// everywhere.
func (re *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	if n < 0 {
		n = len(s) + 1
	}

	matches := re.FindAllStringIndex(s, n-1)
	if matches == nil {
		return []string{s}
	}

	out := make([]string, 0, len(matches)+1)
	prev := 0
	for _, span := range matches {
		out = append(out, s[prev:span[0]])
		prev = span[1]
	}
	return append(out, s[prev:])
}

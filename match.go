package rex

// Match is one successful match of a pattern against an input string. It is
// built fresh per attempt and immutable once returned: offsets are byte
// offsets into the original input.
type Match struct {
	input string
	caps  []int    // capture offset pairs; index 0 is the whole match
	names []string // group names by index, "" for unnamed
}

func newMatch(input string, regs []int, numCap int, names []string) *Match {
	caps := make([]int, numCap)
	copy(caps, regs[:numCap])
	return &Match{input: input, caps: caps, names: names}
}

// Value returns the matched substring.
func (m *Match) Value() string {
	return m.input[m.caps[0]:m.caps[1]]
}

// Span returns the byte offsets [start, end) of the whole match.
func (m *Match) Span() (start, end int) {
	return m.caps[0], m.caps[1]
}

// Start returns the byte offset where the match begins.
func (m *Match) Start() int { return m.caps[0] }

// End returns the byte offset just past the match.
func (m *Match) End() int { return m.caps[1] }

// NumGroups returns the number of capturing groups in the pattern, not
// counting the implicit whole-match group.
func (m *Match) NumGroups() int { return len(m.caps)/2 - 1 }

// Group returns the text of capturing group i (0 is the whole match) and
// whether the group participated in the match. A group inside a declined
// optional reports ok == false and an empty string.
func (m *Match) Group(i int) (string, bool) {
	if i < 0 || 2*i+1 >= len(m.caps) {
		return "", false
	}
	start, end := m.caps[2*i], m.caps[2*i+1]
	if start < 0 || end < start {
		return "", false
	}
	return m.input[start:end], true
}

// Groups returns all group values in index order, the whole match first.
// Groups that did not participate are empty strings.
func (m *Match) Groups() []string {
	out := make([]string, len(m.caps)/2)
	for i := range out {
		out[i], _ = m.Group(i)
	}
	return out
}

// Named returns the text captured by the named group, and whether a group
// with that name exists and participated.
func (m *Match) Named(name string) (string, bool) {
	for i, n := range m.names {
		if n != "" && n == name {
			return m.Group(i)
		}
	}
	return "", false
}

// NamedGroups returns a map of all named groups to their captured text.
func (m *Match) NamedGroups() map[string]string {
	out := make(map[string]string)
	for i, n := range m.names {
		if n == "" {
			continue
		}
		out[n], _ = m.Group(i)
	}
	return out
}

func (m *Match) String() string { return m.Value() }

package rex

import "testing"

func TestCaptureGroups(t *testing.T) {
	re := MustCompile(`(\d{3})-(\d{4})`)
	m := re.Find("call 555-1234 now")
	if m == nil {
		t.Fatal("no match")
	}
	if m.Value() != "555-1234" {
		t.Errorf("Value = %q; want %q", m.Value(), "555-1234")
	}
	if m.Start() != 5 || m.End() != 13 {
		t.Errorf("span = (%d, %d); want (5, 13)", m.Start(), m.End())
	}
	if g, ok := m.Group(1); !ok || g != "555" {
		t.Errorf("Group(1) = %q, %v; want %q, true", g, ok, "555")
	}
	if g, ok := m.Group(2); !ok || g != "1234" {
		t.Errorf("Group(2) = %q, %v; want %q, true", g, ok, "1234")
	}
	if g, ok := m.Group(0); !ok || g != "555-1234" {
		t.Errorf("Group(0) = %q, %v; want whole match", g, ok)
	}
	if _, ok := m.Group(3); ok {
		t.Error("Group(3) should report not present")
	}
	if n := m.NumGroups(); n != 2 {
		t.Errorf("NumGroups = %d; want 2", n)
	}
}

func TestNamedGroups(t *testing.T) {
	re := MustCompile(`(?P<area>\d{3})-(?P<line>\d{4})`)
	m := re.Find("call 555-1234 now")
	if m == nil {
		t.Fatal("no match")
	}
	if g, ok := m.Named("area"); !ok || g != "555" {
		t.Errorf("Named(area) = %q, %v; want %q, true", g, ok, "555")
	}
	if g, ok := m.Named("line"); !ok || g != "1234" {
		t.Errorf("Named(line) = %q, %v; want %q, true", g, ok, "1234")
	}
	if _, ok := m.Named("missing"); ok {
		t.Error("Named(missing) should report not present")
	}

	groups := m.NamedGroups()
	if len(groups) != 2 || groups["area"] != "555" || groups["line"] != "1234" {
		t.Errorf("NamedGroups = %v", groups)
	}
}

func TestAngleBracketGroupSyntax(t *testing.T) {
	re := MustCompile(`(?<year>\d{4})`)
	m := re.Find("since 2019")
	if m == nil {
		t.Fatal("no match")
	}
	if g, ok := m.Named("year"); !ok || g != "2019" {
		t.Errorf("Named(year) = %q, %v; want %q, true", g, ok, "2019")
	}
}

// TestUnparticipatingGroup checks that a group inside an untaken alternation
// branch reports not-present rather than an empty string match.
func TestUnparticipatingGroup(t *testing.T) {
	re := MustCompile("(a)|(b)")
	m := re.Find("b")
	if m == nil {
		t.Fatal("no match")
	}
	if _, ok := m.Group(1); ok {
		t.Error("Group(1) did not participate and should report not present")
	}
	if g, ok := m.Group(2); !ok || g != "b" {
		t.Errorf("Group(2) = %q, %v; want %q, true", g, ok, "b")
	}
}

// TestRepeatedGroupKeepsLastIteration checks that a quantified group reports
// the text of its final iteration.
func TestRepeatedGroupKeepsLastIteration(t *testing.T) {
	re := MustCompile(`(a|b)+`)
	m := re.Find("abab")
	if m == nil {
		t.Fatal("no match")
	}
	if m.Value() != "abab" {
		t.Errorf("Value = %q; want %q", m.Value(), "abab")
	}
	if g, _ := m.Group(1); g != "b" {
		t.Errorf("Group(1) = %q; want %q (last iteration)", g, "b")
	}
}

func TestNestedGroups(t *testing.T) {
	re := MustCompile(`((\w+)\s(\w+))`)
	m := re.Find("hello world")
	if m == nil {
		t.Fatal("no match")
	}
	want := []string{"hello world", "hello world", "hello", "world"}
	groups := m.Groups()
	if len(groups) != len(want) {
		t.Fatalf("Groups has %d entries; want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i] != w {
			t.Errorf("Groups[%d] = %q; want %q", i, groups[i], w)
		}
	}
}

func TestGroupSpans(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)`)
	m := re.Find("mail a@b now")
	if m == nil {
		t.Fatal("no match")
	}
	lo, hi := m.Span()
	if lo != 5 || hi != 8 {
		t.Errorf("Span = (%d, %d); want (5, 8)", lo, hi)
	}
}

func TestBackreferences(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{`(\w+) \1`, "hey hey", true},
		{`(\w+) \1`, "hey you", false},
		{`(a|b)\1`, "aa", true},
		{`(a|b)\1`, "ab", false},
		{`<(\w+)>.*?</\1>`, "<b>bold</b>", true},
		{`<(\w+)>.*?</\1>`, "<b>bold</i>", false},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.MatchString(tt.input); got != tt.want {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestCaseFoldedBackreference(t *testing.T) {
	re := MustCompileFlags(`(\w+) \1`, IgnoreCase)
	if !re.MatchString("Hey hey") {
		t.Error("case-folded backreference should match Hey hey")
	}
}

// A backreference to a group that never matched fails that branch rather
// than matching empty.
func TestBackreferenceToUnsetGroup(t *testing.T) {
	re := MustCompile(`(?:(a)|b)\1`)
	if !re.MatchString("aa") {
		t.Error("should match aa via the first branch")
	}
	if re.MatchString("b") {
		t.Error("\\1 is unset on the b branch and should not match")
	}
}

func TestLookarounds(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
		match   bool
	}{
		{`\w+(?=!)`, "stop! go", "stop", true},
		{`\w+(?=!)`, "stop go", "", false},
		{`\d+(?!px)`, "10em", "10", true},
		{`foo(?!bar)`, "foobar", "", false},
		{`foo(?!bar)`, "foobaz", "foo", true},
		{`(?<=\$)\d+`, "$100", "100", true},
		{`(?<=\$)\d+`, "€100", "", false},
		{`(?<!-)\d+`, "x42", "42", true},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		m := re.Find(tt.input)
		if tt.match != (m != nil) {
			t.Errorf("Find(%q, %q) match = %v; want %v", tt.pattern, tt.input, m != nil, tt.match)
			continue
		}
		if m != nil && m.Value() != tt.want {
			t.Errorf("Find(%q, %q) = %q; want %q", tt.pattern, tt.input, m.Value(), tt.want)
		}
	}
}

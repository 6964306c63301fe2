package rex

import "testing"

func TestRequiredPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
		ok      bool
	}{
		{"abc", []string{"a"}, true},
		{"foo|bar", []string{"f", "b"}, true},
		{"a+b", []string{"a"}, true},
		{"^foo", []string{"f"}, true},
		{"(cat)|(dog)", []string{"c", "d"}, true},
		{".*foo", nil, false},  // can start with anything
		{"a*b", nil, false},    // repeat can match empty
		{"[ab]c", nil, false},  // class start has no single literal
		{"(?i)abc", nil, false}, // folded literals are not byte-exact
		{`\d+`, nil, false},
	}

	for _, tt := range tests {
		node, err := Parse(tt.pattern, 0)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.pattern, err)
		}
		got, ok := requiredPrefixes(node)
		if ok != tt.ok {
			t.Errorf("requiredPrefixes(%q) ok = %v; want %v", tt.pattern, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("requiredPrefixes(%q) = %v; want %v", tt.pattern, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("requiredPrefixes(%q)[%d] = %q; want %q", tt.pattern, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLiteralPrefilter(t *testing.T) {
	p := &literalPrefilter{lit: []byte("dog")}

	if got := p.next([]byte("the dog barks"), 0); got != 4 {
		t.Errorf("next = %d; want 4", got)
	}
	if got := p.next([]byte("the dog barks"), 5); got != -1 {
		t.Errorf("next past the only occurrence = %d; want -1", got)
	}
	if got := p.next([]byte("dogdog"), 1); got != 3 {
		t.Errorf("next = %d; want 3", got)
	}
	if got := p.next([]byte("cat"), 0); got != -1 {
		t.Errorf("next without occurrence = %d; want -1", got)
	}
	if got := p.next([]byte("dog"), 3); got != -1 {
		t.Errorf("next at end of input = %d; want -1", got)
	}
}

func TestPrefilterSelection(t *testing.T) {
	// Single required prefix: plain byte scan.
	re := MustCompile("abc")
	if _, ok := re.pre.(*literalPrefilter); !ok {
		t.Errorf("abc prefilter = %T; want *literalPrefilter", re.pre)
	}

	// Several required prefixes: automaton.
	re = MustCompile("cat|dog")
	if _, ok := re.pre.(*acPrefilter); !ok {
		t.Errorf("cat|dog prefilter = %T; want *acPrefilter", re.pre)
	}

	// No finite prefix set: no prefilter.
	re = MustCompile(`\d+`)
	if re.pre != nil {
		t.Errorf("\\d+ prefilter = %T; want nil", re.pre)
	}
}

// TestPrefilteredSearchEquivalence checks that the prefiltered scan finds
// exactly what a plain scan would.
func TestPrefilteredSearchEquivalence(t *testing.T) {
	input := "the cat sat, the dog ran, the fox hid, dogcatfox"

	re := MustCompile("(cat|dog|fox)!?")
	got := re.FindAllString(input, -1)
	want := []string{"cat", "dog", "fox", "dog", "cat", "fox"}
	if len(got) != len(want) {
		t.Fatalf("FindAllString = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %q; want %q", i, got[i], want[i])
		}
	}

	// Candidate positions that fail the full match resume scanning.
	re = MustCompile("cater")
	if re.MatchString("cat cats caterpillar") != true {
		t.Error("cater should match inside caterpillar")
	}
	if re.MatchString("cat cats catering-free") != true {
		t.Error("cater should match inside catering")
	}
	if re.MatchString("cat cats cute") {
		t.Error("cater should not match")
	}
}

package rex

// Byte-slice entry points. These delegate to the string API; Input already
// abstracts the underlying representation, so there is no separate byte
// matching path to keep in sync.

// Match reports whether b contains any match of the pattern.
func (re *Regexp) Match(b []byte) bool {
	input := &ReaderInput{data: b}
	return re.searchDiscard(input)
}

// FindIndex returns the span of the leftmost match in b, or nil.
func (re *Regexp) FindIndex(b []byte) []int {
	return re.FindStringIndex(string(b))
}

// FindSubmatch returns the leftmost match in b and its group values, or nil.
// Groups that captured no text are nil slices.
func (re *Regexp) FindSubmatch(b []byte) [][]byte {
	groups := re.FindStringSubmatch(string(b))
	if groups == nil {
		return nil
	}
	out := make([][]byte, len(groups))
	for i, s := range groups {
		if s != "" {
			out[i] = []byte(s)
		}
	}
	return out
}

// FindAllIndex returns the spans of up to n successive matches in b.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	return re.FindAllStringIndex(string(b), n)
}

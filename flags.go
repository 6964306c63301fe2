package rex

// Flags alter how a pattern is parsed and matched. Flags are part of the
// cache key, so the same pattern text compiled with different flags yields
// distinct programs.
type Flags uint32

const (
	// IgnoreCase makes literal and character-class comparisons
	// case-insensitive.
	IgnoreCase Flags = 1 << iota
	// Multiline makes ^ and $ also match at internal line boundaries.
	Multiline
	// DotAll makes . match newline as well.
	DotAll
)

func (f Flags) has(flag Flags) bool { return f&flag != 0 }

func (f Flags) set(flag Flags, on bool) Flags {
	if on {
		return f | flag
	}
	return f &^ flag
}

func (f Flags) String() string {
	buf := make([]byte, 0, 3)
	if f.has(IgnoreCase) {
		buf = append(buf, 'i')
	}
	if f.has(Multiline) {
		buf = append(buf, 'm')
	}
	if f.has(DotAll) {
		buf = append(buf, 's')
	}
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}

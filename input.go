package rex

import (
	"unicode/utf8"
)

// Input abstracts the text being matched so the engine works the same over
// strings, byte slices and io.Readers. Positions are byte offsets.
type Input interface {
	// Step returns the rune at pos and its width in bytes, or (0, 0) at or
	// beyond the end of input.
	Step(pos int) (rune, int)

	// Context returns the rune ending at pos, for boundary checks like \b
	// and multiline ^. At pos 0 it returns (-1, 0).
	Context(pos int) (rune, int)

	// Len is the total length of the input in bytes.
	Len() int

	// Bytes exposes the raw input for prefilter scans.
	Bytes() []byte
}

// StringInput adapts a string.
type StringInput struct {
	str string
	raw []byte // lazily built for Bytes
}

func NewStringInput(s string) *StringInput {
	return &StringInput{str: s}
}

func (s *StringInput) Step(pos int) (rune, int) {
	if pos >= len(s.str) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.str[pos:])
}

func (s *StringInput) Context(pos int) (rune, int) {
	if pos <= 0 {
		return -1, 0
	}
	if pos > len(s.str) {
		pos = len(s.str)
	}
	return utf8.DecodeLastRuneInString(s.str[:pos])
}

func (s *StringInput) Len() int { return len(s.str) }

func (s *StringInput) Bytes() []byte {
	if s.raw == nil {
		s.raw = []byte(s.str)
	}
	return s.raw
}

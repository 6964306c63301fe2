package rex

import (
	"io"
	"unicode/utf8"
)

// ReaderInput adapts an io.Reader. The whole stream is buffered up front
// because backtracking revisits earlier positions.
type ReaderInput struct {
	data []byte
}

func NewReaderInput(r io.Reader) (*ReaderInput, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &ReaderInput{data: b}, nil
}

func (s *ReaderInput) Step(pos int) (rune, int) {
	if pos >= len(s.data) {
		return 0, 0
	}
	return utf8.DecodeRune(s.data[pos:])
}

func (s *ReaderInput) Context(pos int) (rune, int) {
	if pos <= 0 {
		return -1, 0
	}
	if pos > len(s.data) {
		pos = len(s.data)
	}
	return utf8.DecodeLastRune(s.data[:pos])
}

func (s *ReaderInput) Len() int { return len(s.data) }

func (s *ReaderInput) Bytes() []byte { return s.data }

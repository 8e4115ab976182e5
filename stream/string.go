package stream

import (
	"unicode/utf8"

	"github.com/jacoelho/combine/position"
)

// StringStream yields the runes of a string. Ranges are substrings.
// Invalid UTF-8 decodes to utf8.RuneError one byte at a time.
type StringStream struct {
	input  string
	offset int
}

func FromString(s string) *StringStream {
	return &StringStream{input: s}
}

func (s *StringStream) Uncons() (rune, error) {
	if s.offset >= len(s.input) {
		return 0, ErrEndOfInput
	}
	r, size := utf8.DecodeRuneInString(s.input[s.offset:])
	s.offset += size
	return r, nil
}

// Position is the byte offset of the next rune.
func (s *StringStream) Position() position.Position {
	return position.BytePosition{Offset: s.offset}
}

func (s *StringStream) Clone() Stream[rune] {
	c := *s
	return &c
}

func (s *StringStream) UnconsRange(n int) (string, error) {
	if n < 0 {
		return "", ErrEndOfInput
	}

	end := s.offset
	for i := 0; i < n; i++ {
		if end >= len(s.input) {
			return "", ErrEndOfInput
		}
		_, size := utf8.DecodeRuneInString(s.input[end:])
		end += size
	}

	r := s.input[s.offset:end]
	s.offset = end
	return r, nil
}

func (s *StringStream) UnconsWhile(pred func(rune) bool) (string, error) {
	end := s.offset
	for end < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[end:])
		if !pred(r) {
			break
		}
		end += size
	}

	r := s.input[s.offset:end]
	s.offset = end
	return r, nil
}

// Remaining returns the unconsumed suffix.
func (s *StringStream) Remaining() string {
	return s.input[s.offset:]
}

package stream

import "github.com/jacoelho/combine/position"

// SliceStream yields the items of a slice. Ranges are sub-slices sharing the
// backing array, capped so appending to them cannot clobber later items.
type SliceStream[T any] struct {
	items  []T
	offset int
}

func FromSlice[T any](items []T) *SliceStream[T] {
	return &SliceStream[T]{items: items}
}

func (s *SliceStream[T]) Uncons() (T, error) {
	if s.offset >= len(s.items) {
		var zero T
		return zero, ErrEndOfInput
	}
	item := s.items[s.offset]
	s.offset++
	return item, nil
}

// Position is the index of the next item.
func (s *SliceStream[T]) Position() position.Position {
	return position.BytePosition{Offset: s.offset}
}

func (s *SliceStream[T]) Clone() Stream[T] {
	c := *s
	return &c
}

func (s *SliceStream[T]) UnconsRange(n int) ([]T, error) {
	if n < 0 || n > len(s.items)-s.offset {
		return nil, ErrEndOfInput
	}
	end := s.offset + n
	r := s.items[s.offset:end:end]
	s.offset = end
	return r, nil
}

func (s *SliceStream[T]) UnconsWhile(pred func(T) bool) ([]T, error) {
	end := s.offset
	for end < len(s.items) && pred(s.items[end]) {
		end++
	}
	r := s.items[s.offset:end:end]
	s.offset = end
	return r, nil
}

// Remaining returns the unconsumed items.
func (s *SliceStream[T]) Remaining() []T {
	return s.items[s.offset:]
}

package stream

import (
	"fmt"

	"github.com/jacoelho/combine/position"
)

// State wraps a stream and tracks the position of the next item with a
// Positioner, replacing whatever position the wrapped stream reports.
type State[T any] struct {
	input      Stream[T]
	pos        position.Position
	positioner position.Positioner[T]
}

func NewState[T any](input Stream[T], p position.Positioner[T]) *State[T] {
	return &State[T]{input: input, pos: p.Start(), positioner: p}
}

func (s *State[T]) Uncons() (T, error) {
	item, err := s.input.Uncons()
	if err != nil {
		return item, err
	}
	s.pos = s.positioner.Update(s.pos, item)
	return item, nil
}

func (s *State[T]) Position() position.Position {
	return s.pos
}

func (s *State[T]) Clone() Stream[T] {
	return &State[T]{input: s.input.Clone(), pos: s.pos, positioner: s.positioner}
}

// Input returns the wrapped stream.
func (s *State[T]) Input() Stream[T] {
	return s.input
}

// RangeState is a State over a RangeStream. Range operations keep the
// position in step item by item.
type RangeState[T any, R Range[T]] struct {
	input      RangeStream[T, R]
	pos        position.Position
	positioner position.Positioner[T]
}

func NewRangeState[T any, R Range[T]](input RangeStream[T, R], p position.Positioner[T]) *RangeState[T, R] {
	return &RangeState[T, R]{input: input, pos: p.Start(), positioner: p}
}

// Text returns a line and column tracking stream over s.
func Text(s string) *RangeState[rune, string] {
	return NewRangeState[rune, string](FromString(s), position.Lines{})
}

func (s *RangeState[T, R]) Uncons() (T, error) {
	item, err := s.input.Uncons()
	if err != nil {
		return item, err
	}
	s.pos = s.positioner.Update(s.pos, item)
	return item, nil
}

func (s *RangeState[T, R]) Position() position.Position {
	return s.pos
}

func (s *RangeState[T, R]) Clone() Stream[T] {
	return s.clone()
}

func (s *RangeState[T, R]) clone() *RangeState[T, R] {
	input, ok := s.input.Clone().(RangeStream[T, R])
	if !ok {
		// RangeStream implementations must clone to a RangeStream.
		panic(fmt.Sprintf("stream: %T.Clone does not return a RangeStream", s.input))
	}
	return &RangeState[T, R]{input: input, pos: s.pos, positioner: s.positioner}
}

func (s *RangeState[T, R]) UnconsRange(n int) (R, error) {
	var zero R
	if n < 0 {
		return zero, ErrEndOfInput
	}

	next, ok := s.input.Clone().(RangeStream[T, R])
	if !ok {
		return zero, ErrRangeUnsupported
	}

	pos := s.pos
	taken := 0
	r, err := next.UnconsWhile(func(item T) bool {
		if taken == n {
			return false
		}
		taken++
		pos = s.positioner.Update(pos, item)
		return true
	})
	if err != nil {
		return zero, err
	}
	if taken < n {
		return zero, ErrEndOfInput
	}

	s.input = next
	s.pos = pos
	return r, nil
}

func (s *RangeState[T, R]) UnconsWhile(pred func(T) bool) (R, error) {
	pos := s.pos
	r, err := s.input.UnconsWhile(func(item T) bool {
		if !pred(item) {
			return false
		}
		pos = s.positioner.Update(pos, item)
		return true
	})
	if err != nil {
		var zero R
		return zero, err
	}
	s.pos = pos
	return r, nil
}

// Input returns the wrapped stream.
func (s *RangeState[T, R]) Input() RangeStream[T, R] {
	return s.input
}

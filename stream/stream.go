// Package stream defines how parsers consume input: one item at a time, or
// one contiguous range at a time, optionally from a saved point.
//
// StreamOnce is the single-pass contract. Stream adds Clone, which returns an
// independent cursor; parsers clone before consuming so that a failed
// alternative leaves the original input untouched. RangeStream adds zero-copy
// extraction of a contiguous prefix.
//
// Adapters cover the common sources: strings (StringStream), slices
// (SliceStream), Go iterators and readers (IteratorStream), single-pass
// sources made duplicable by a bounded buffer (BufferedStream) and position
// tracking wrappers (State, RangeState).
package stream

import (
	"errors"

	"github.com/jacoelho/combine/position"
)

var (
	// ErrEndOfInput is returned by Uncons when no items remain.
	ErrEndOfInput = errors.New("end of input")

	// ErrBacktrackedTooFar is returned when a buffered cursor asks for an item
	// that has already left the lookahead window.
	ErrBacktrackedTooFar = errors.New("backtracked too far")

	// ErrRangeUnsupported is returned when a range operation is requested from
	// a stream that cannot produce ranges.
	ErrRangeUnsupported = errors.New("stream does not support ranges")
)

// StreamOnce is a sequence of items that can be read once.
type StreamOnce[T any] interface {
	// Uncons removes and returns the next item. It returns ErrEndOfInput when
	// the input is exhausted and leaves the stream unchanged on any error.
	Uncons() (T, error)
	// Position is the position of the next item.
	Position() position.Position
}

// Stream is a StreamOnce that can be duplicated.
type Stream[T any] interface {
	StreamOnce[T]
	// Clone returns a cursor at the same point that advances independently.
	Clone() Stream[T]
}

// Range is the type of a contiguous run of items: a string for rune input or
// a slice for everything else.
type Range[T any] interface {
	~string | ~[]T
}

// RangeStream is a Stream that can hand out contiguous ranges without
// copying. Range sizes are counted in items. Clone must return a
// RangeStream of the same type parameters.
type RangeStream[T any, R Range[T]] interface {
	Stream[T]
	// UnconsRange removes exactly n items. If fewer remain, or n is
	// negative, it returns ErrEndOfInput and consumes nothing.
	UnconsRange(n int) (R, error)
	// UnconsWhile removes the longest prefix whose items satisfy pred. The
	// result may be empty.
	UnconsWhile(pred func(T) bool) (R, error)
}

// Uncons reads one item from a clone of s and returns the item together with
// the advanced clone. s itself is never modified.
func Uncons[T any](s Stream[T]) (T, Stream[T], error) {
	rest := s.Clone()
	item, err := rest.Uncons()
	if err != nil {
		var zero T
		return zero, s, err
	}
	return item, rest, nil
}

// UnconsWhile is the non-mutating form of RangeStream.UnconsWhile.
func UnconsWhile[T any, R Range[T]](s Stream[T], pred func(T) bool) (R, Stream[T], error) {
	rest, ok := s.Clone().(RangeStream[T, R])
	if !ok {
		var zero R
		return zero, s, ErrRangeUnsupported
	}
	r, err := rest.UnconsWhile(pred)
	if err != nil {
		var zero R
		return zero, s, err
	}
	return r, rest, nil
}

// UnconsRange is the non-mutating form of RangeStream.UnconsRange.
func UnconsRange[T any, R Range[T]](s Stream[T], n int) (R, Stream[T], error) {
	rest, ok := s.Clone().(RangeStream[T, R])
	if !ok {
		var zero R
		return zero, s, ErrRangeUnsupported
	}
	r, err := rest.UnconsRange(n)
	if err != nil {
		var zero R
		return zero, s, err
	}
	return r, rest, nil
}

// Collect drains s and returns every remaining item in order.
func Collect[T any](s StreamOnce[T]) ([]T, error) {
	var items []T
	for {
		item, err := s.Uncons()
		if errors.Is(err, ErrEndOfInput) {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
}

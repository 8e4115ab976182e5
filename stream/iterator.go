package stream

import (
	"bufio"
	"errors"
	"io"
	"iter"

	"github.com/jacoelho/combine/position"
)

var (
	_ RangeStream[rune, string] = (*StringStream)(nil)
	_ RangeStream[int, []int]   = (*SliceStream[int])(nil)
	_ StreamOnce[byte]          = (*IteratorStream[byte])(nil)
)

// IteratorStream is a single-pass stream over a pull function. Once the
// source reports an error, including the end of input, every later Uncons
// returns the same error.
type IteratorStream[T any] struct {
	next       func() (T, error)
	stop       func()
	pos        position.Position
	positioner position.Positioner[T]
	err        error
}

// FromIter wraps seq. Positions count items.
func FromIter[T any](seq iter.Seq[T]) *IteratorStream[T] {
	return FromIterWith(seq, position.Items[T]{})
}

// FromIterWith wraps seq and tracks positions with p.
func FromIterWith[T any](seq iter.Seq[T], p position.Positioner[T]) *IteratorStream[T] {
	next, stop := iter.Pull(seq)
	return newIteratorStream(func() (T, error) {
		item, ok := next()
		if !ok {
			return item, ErrEndOfInput
		}
		return item, nil
	}, stop, p)
}

// FromReader decodes runes from r and tracks line and column.
func FromReader(r io.Reader) *IteratorStream[rune] {
	br := bufio.NewReader(r)
	return newIteratorStream(func() (rune, error) {
		c, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return 0, ErrEndOfInput
		}
		return c, err
	}, nil, position.Positioner[rune](position.Lines{}))
}

// FromByteReader reads bytes from r and tracks byte offsets.
func FromByteReader(r io.Reader) *IteratorStream[byte] {
	br := bufio.NewReader(r)
	return newIteratorStream(func() (byte, error) {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return 0, ErrEndOfInput
		}
		return b, err
	}, nil, position.Positioner[byte](position.Bytes{}))
}

func newIteratorStream[T any](next func() (T, error), stop func(), p position.Positioner[T]) *IteratorStream[T] {
	return &IteratorStream[T]{
		next:       next,
		stop:       stop,
		pos:        p.Start(),
		positioner: p,
	}
}

func (s *IteratorStream[T]) Uncons() (T, error) {
	if s.err != nil {
		var zero T
		return zero, s.err
	}

	item, err := s.next()
	if err != nil {
		s.err = err
		s.Close()
		var zero T
		return zero, err
	}

	s.pos = s.positioner.Update(s.pos, item)
	return item, nil
}

func (s *IteratorStream[T]) Position() position.Position {
	return s.pos
}

// Close releases the underlying iterator. It is safe to call more than once.
func (s *IteratorStream[T]) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

package stream

import (
	"fmt"
	"sync"

	"github.com/jacoelho/combine/position"
)

type entry[T any] struct {
	item T
	pos  position.Position
}

// BufferedStream makes a single-pass source duplicable by remembering the
// last lookahead items it read. Cursors obtained from AsStream share the
// buffer; a cursor may rewind at most lookahead items behind the furthest item
// any cursor has read.
//
// The buffer only ever grows at its end. Reads are serialised by a mutex, so
// cursors may be used from different goroutines.
type BufferedStream[T any] struct {
	mu   sync.Mutex
	src  StreamOnce[T]
	ring []entry[T]
	read int // items pulled from src
	err  error
}

// NewBuffered wraps src with a window of lookahead items. A lookahead below 1
// is treated as 1.
func NewBuffered[T any](src StreamOnce[T], lookahead int) *BufferedStream[T] {
	if lookahead < 1 {
		lookahead = 1
	}
	return &BufferedStream[T]{
		src:  src,
		ring: make([]entry[T], lookahead),
	}
}

// AsStream returns a cursor at the next item not yet read from the source.
func (b *BufferedStream[T]) AsStream() *SharedBufferedStream[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &SharedBufferedStream[T]{buf: b, offset: b.read, pos: b.src.Position()}
}

// Lookahead is the size of the retained window.
func (b *BufferedStream[T]) Lookahead() int {
	return len(b.ring)
}

func (b *BufferedStream[T]) oldest() int {
	return max(0, b.read-len(b.ring))
}

// at returns the item at offset and the position of the item after it.
func (b *BufferedStream[T]) at(offset int) (T, position.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if offset < b.oldest() {
		return zero, nil, fmt.Errorf("%w: offset %d, window starts at %d", ErrBacktrackedTooFar, offset, b.oldest())
	}
	if offset >= b.read {
		if b.err != nil {
			return zero, nil, b.err
		}
		pos := b.src.Position()
		item, err := b.src.Uncons()
		if err != nil {
			b.err = err
			return zero, nil, err
		}
		b.ring[b.read%len(b.ring)] = entry[T]{item: item, pos: pos}
		b.read++
	}

	item := b.ring[offset%len(b.ring)].item
	if offset+1 < b.read {
		return item, b.ring[(offset+1)%len(b.ring)].pos, nil
	}
	return item, b.src.Position(), nil
}

// SharedBufferedStream is a cursor into a BufferedStream. It remembers its own
// position, so Position stays exact after the window has moved past it.
type SharedBufferedStream[T any] struct {
	buf    *BufferedStream[T]
	offset int
	pos    position.Position
}

func (s *SharedBufferedStream[T]) Uncons() (T, error) {
	item, next, err := s.buf.at(s.offset)
	if err != nil {
		return item, err
	}
	s.offset++
	s.pos = next
	return item, nil
}

func (s *SharedBufferedStream[T]) Position() position.Position {
	return s.pos
}

func (s *SharedBufferedStream[T]) Clone() Stream[T] {
	c := *s
	return &c
}

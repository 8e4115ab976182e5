// Package position tracks cursor locations within consumed input.
//
// A Position is an opaque, totally ordered value. Streams report the position
// of the next item they would return, and positions never decrease as items
// are consumed. Parse errors are attached to a Position, and errors from the
// furthest position win when alternatives are merged.
package position

import (
	"cmp"
	"fmt"
	"strings"
)

// Position identifies a location in the input.
type Position interface {
	fmt.Stringer

	// Compare returns -1, 0 or +1 depending on whether the receiver is before,
	// equal to, or after other.
	Compare(other Position) int
}

// SourcePosition is a 1-based line and column in source text.
type SourcePosition struct {
	Line   int
	Column int
}

// Source returns the first position of a text input.
func Source() SourcePosition {
	return SourcePosition{Line: 1, Column: 1}
}

func (p SourcePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare orders source positions by line, then column.
func (p SourcePosition) Compare(other Position) int {
	o, ok := other.(SourcePosition)
	if !ok {
		return compareForeign(p, other)
	}
	if c := cmp.Compare(p.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, o.Column)
}

// BytePosition is a 0-based offset in the input. For byte and string input it
// counts bytes; for other slices it counts items.
type BytePosition struct {
	Offset int
}

func (p BytePosition) String() string {
	return fmt.Sprintf("offset %d", p.Offset)
}

func (p BytePosition) Compare(other Position) int {
	o, ok := other.(BytePosition)
	if !ok {
		return compareForeign(p, other)
	}
	return cmp.Compare(p.Offset, o.Offset)
}

// compareForeign orders positions of different kinds. A single parse only
// ever produces one kind, so this only needs to be total and stable.
func compareForeign(p, other Position) int {
	if other == nil {
		return 1
	}
	return strings.Compare(fmt.Sprintf("%T", p), fmt.Sprintf("%T", other))
}

// Max returns the later of two positions, preferring a when they are equal.
func Max(a, b Position) Position {
	if a == nil {
		return b
	}
	if b == nil || a.Compare(b) >= 0 {
		return a
	}
	return b
}

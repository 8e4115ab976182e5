package position

// TabWidth is the column distance between tab stops used by Lines.
const TabWidth = 8

// Positioner knows how consuming an item of type T moves a position.
type Positioner[T any] interface {
	// Start is the position of the first item.
	Start() Position
	// Update returns the position following item, which was read at pos.
	Update(pos Position, item T) Position
}

// Lines tracks line and column for rune input.
type Lines struct{}

func (Lines) Start() Position {
	return Source()
}

func (Lines) Update(pos Position, r rune) Position {
	p, ok := pos.(SourcePosition)
	if !ok {
		p = Source()
	}

	switch r {
	case '\n':
		p.Line++
		p.Column = 1
	case '\t':
		p.Column += TabWidth - (p.Column-1)%TabWidth
	default:
		p.Column++
	}

	return p
}

// Bytes tracks a byte offset.
type Bytes struct{}

func (Bytes) Start() Position {
	return BytePosition{}
}

func (Bytes) Update(pos Position, _ byte) Position {
	return advanceOffset(pos)
}

// Items tracks an item offset for any item type.
type Items[T any] struct{}

func (Items[T]) Start() Position {
	return BytePosition{}
}

func (Items[T]) Update(pos Position, _ T) Position {
	return advanceOffset(pos)
}

func advanceOffset(pos Position) Position {
	p, ok := pos.(BytePosition)
	if !ok {
		return BytePosition{Offset: 1}
	}
	p.Offset++
	return p
}

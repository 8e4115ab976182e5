package parse

import (
	"errors"
	"sync"

	"github.com/jacoelho/combine/position"
	"github.com/jacoelho/combine/stream"
)

// Satisfy parses one item accepted by pred.
func Satisfy[T any](pred func(T) bool) Parser[T, T] {
	return Func[T, T](func(in stream.Stream[T]) Result[T, T] {
		pos := in.Position()
		item, rest, err := stream.Uncons(in)
		if err != nil {
			return Failure[T, T](streamError(pos, err), Empty)
		}
		if !pred(item) {
			return Failure[T, T](NewParseError(pos, NewUnexpected(TokenInfo(item))), Empty)
		}
		return Ok(item, rest, Consumed)
	})
}

// Token parses the item want.
func Token[T comparable](want T) Parser[T, T] {
	return LabelInfo(Satisfy(func(item T) bool { return item == want }), TokenInfo(want))
}

// Any parses a single item of any value.
func Any[T any]() Parser[T, T] {
	return Satisfy(func(T) bool { return true })
}

// Tokens parses the items of want in order. A mismatch after the first item
// is a consuming failure reported where the mismatch happened.
func Tokens[T comparable](want []T) Parser[T, []T] {
	return Func[T, []T](func(in stream.Stream[T]) Result[T, []T] {
		cur := in.Clone()
		c := Empty
		for _, w := range want {
			pos := cur.Position()
			item, err := cur.Uncons()
			if err != nil {
				e := streamError(pos, err)
				e.AddError(NewExpected(RangeInfo(want)))
				return Failure[T, []T](e, c)
			}
			if item != w {
				e := NewParseError(pos, NewUnexpected(TokenInfo(item)))
				e.AddError(NewExpected(RangeInfo(want)))
				return Failure[T, []T](e, c)
			}
			c = Consumed
		}
		return Ok(want, cur, c)
	})
}

// EOF succeeds only at the end of input.
func EOF[T any]() Parser[T, struct{}] {
	return Func[T, struct{}](func(in stream.Stream[T]) Result[T, struct{}] {
		pos := in.Position()
		item, _, err := stream.Uncons(in)
		switch {
		case errors.Is(err, stream.ErrEndOfInput):
			return Ok(struct{}{}, in, Empty)
		case err != nil:
			return Failure[T, struct{}](NewParseError(pos, NewOther(err)), Empty)
		}
		e := NewParseError(pos, NewUnexpected(TokenInfo(item)))
		e.AddError(NewExpected(TextInfo("end of input")))
		return Failure[T, struct{}](e, Empty)
	})
}

// Value succeeds with v without consuming input.
func Value[T, O any](v O) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		return Ok(v, in, Empty)
	})
}

// Unexpected always fails, reporting msg as the unexpected input.
func Unexpected[T, O any](msg string) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		return Failure[T, O](NewParseError(in.Position(), NewUnexpected(TextInfo(msg))), Empty)
	})
}

// Fail always fails with msg.
func Fail[T, O any](msg string) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		return Failure[T, O](NewParseError(in.Position(), NewMessage(TextInfo(msg))), Empty)
	})
}

// GetPosition returns the position of the next item without consuming it.
func GetPosition[T any]() Parser[T, position.Position] {
	return Func[T, position.Position](func(in stream.Stream[T]) Result[T, position.Position] {
		return Ok(in.Position(), in, Empty)
	})
}

// Lazy defers building the parser until it is first used, which allows
// recursive grammars. f is called at most once.
func Lazy[T, O any](f func() Parser[T, O]) Parser[T, O] {
	get := sync.OnceValue(f)
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		return get().ParseStream(in)
	})
}

package parse

import (
	"github.com/jacoelho/combine/stream"
)

// Range parses exactly n items as one contiguous range. The input must be a
// stream.RangeStream with range type R.
func Range[T any, R stream.Range[T]](n int) Parser[T, R] {
	return Func[T, R](func(in stream.Stream[T]) Result[T, R] {
		pos := in.Position()
		r, rest, err := stream.UnconsRange[T, R](in, n)
		if err != nil {
			return Failure[T, R](streamError(pos, err), Empty)
		}
		return Ok(r, rest, consumedIf(len(r) > 0))
	})
}

// TakeWhile parses the longest, possibly empty, range of items accepted by
// pred.
func TakeWhile[T any, R stream.Range[T]](pred func(T) bool) Parser[T, R] {
	return Func[T, R](func(in stream.Stream[T]) Result[T, R] {
		pos := in.Position()
		r, rest, err := stream.UnconsWhile[T, R](in, pred)
		if err != nil {
			return Failure[T, R](streamError(pos, err), Empty)
		}
		return Ok(r, rest, consumedIf(len(r) > 0))
	})
}

// TakeWhile1 is TakeWhile that requires at least one item.
func TakeWhile1[T any, R stream.Range[T]](pred func(T) bool) Parser[T, R] {
	first := Satisfy(pred)
	rest := TakeWhile[T, R](pred)
	return Func[T, R](func(in stream.Stream[T]) Result[T, R] {
		if r := first.ParseStream(in); r.Failed() {
			return failed[T, T, R](r)
		}
		return rest.ParseStream(in)
	})
}

func consumedIf(ok bool) Consumption {
	if ok {
		return Consumed
	}
	return Empty
}

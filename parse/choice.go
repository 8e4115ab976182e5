package parse

import (
	"github.com/jacoelho/combine/stream"
)

// Or tries each parser in turn on the same input. It stops at the first
// success or at the first failure that consumed input. If every parser fails
// without consuming, their errors are merged.
func Or[T, O any](ps ...Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		var err *ParseError
		for _, p := range ps {
			r := p.ParseStream(in)
			if !r.Failed() {
				return r.withHint(err.Merge(r.Hint))
			}
			if r.Consumption == Consumed {
				return r
			}
			err = err.Merge(r.Err)
		}
		if err == nil {
			err = EmptyParseError(in.Position())
		}
		return Failure[T, O](err, Empty)
	})
}

// Choice is Or over a slice built at run time.
func Choice[T, O any](ps []Parser[T, O]) Parser[T, O] {
	return Or(ps...)
}

// Attempt runs p and reports any failure as not having consumed input, so an
// enclosing Or can try its next branch.
func Attempt[T, O any](p Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		r := p.ParseStream(in)
		if r.Failed() {
			r.Consumption = Empty
		}
		return r
	})
}

// LookAhead runs p and returns its output without consuming input.
func LookAhead[T, O any](p Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		r := p.ParseStream(in)
		if r.Failed() {
			return r
		}
		return Ok(r.Output, in, Empty)
	})
}

// NotFollowedBy succeeds without consuming input when p fails.
func NotFollowedBy[T, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Func[T, struct{}](func(in stream.Stream[T]) Result[T, struct{}] {
		r := p.ParseStream(in)
		if r.Failed() {
			return Ok(struct{}{}, in, Empty)
		}
		return Failure[T, struct{}](NewParseError(in.Position(), NewUnexpected(InfoOf(r.Output))), Empty)
	})
}

// Option is the output of Optional.
type Option[O any] struct {
	Value O
	Valid bool
}

// Optional runs p and reports whether it matched. A failure of p that
// consumed input is still a failure.
func Optional[T, O any](p Parser[T, O]) Parser[T, Option[O]] {
	return Func[T, Option[O]](func(in stream.Stream[T]) Result[T, Option[O]] {
		r := p.ParseStream(in)
		switch {
		case !r.Failed():
			return Ok(Option[O]{Value: r.Output, Valid: true}, r.Rest, r.Consumption)
		case r.Consumption == Consumed:
			return failed[T, O, Option[O]](r)
		}
		return Ok(Option[O]{}, in, Empty).withHint(r.Err)
	})
}

// Maybe is Optional with a default output.
func Maybe[T, O any](p Parser[T, O], fallback O) Parser[T, O] {
	return Or(p, Value[T](fallback))
}

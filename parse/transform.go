package parse

import (
	"github.com/jacoelho/combine/stream"
)

// Map applies f to the output of p.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Func[T, B](func(in stream.Stream[T]) Result[T, B] {
		r := p.ParseStream(in)
		if r.Failed() {
			return failed[T, A, B](r)
		}
		return Ok(f(r.Output), r.Rest, r.Consumption).withHint(r.Hint)
	})
}

// AndThen applies a fallible conversion to the output of p. A conversion
// error fails the parser at the position where p started, keeping the
// consumption of p.
func AndThen[T, A, B any](p Parser[T, A], f func(A) (B, error)) Parser[T, B] {
	return Func[T, B](func(in stream.Stream[T]) Result[T, B] {
		r := p.ParseStream(in)
		if r.Failed() {
			return failed[T, A, B](r)
		}
		out, err := f(r.Output)
		if err != nil {
			return Failure[T, B](NewParseError(in.Position(), NewOther(err)), r.Consumption)
		}
		return Ok(out, r.Rest, r.Consumption).withHint(r.Hint)
	})
}

// Discard drops the output of p.
func Discard[T, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Map(p, func(O) struct{} { return struct{}{} })
}

// Label names what p accepts. When p fails without consuming input its
// expected causes are replaced by name.
func Label[T, O any](p Parser[T, O], name string) Parser[T, O] {
	return LabelInfo(p, TextInfo(name))
}

// LabelInfo is Label with an arbitrary Info.
func LabelInfo[T, O any](p Parser[T, O], info Info) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		r := p.ParseStream(in)
		if r.Failed() && r.Consumption == Empty {
			r.Err.SetExpected(info)
		}
		return r
	})
}

// Message adds msg to any failure of p.
func Message[T, O any](p Parser[T, O], msg string) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		r := p.ParseStream(in)
		if r.Failed() {
			r.Err.AddMessage(msg)
		}
		return r
	})
}

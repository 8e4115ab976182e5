package parse

import (
	"github.com/jacoelho/combine/stream"
)

type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// seq runs pa then pb on what pa left. The sequence consumed input if either
// part did. When neither part consumed, what pa rejected is reported along
// with a failure of pb.
func seq[T, A, B, C any](pa Parser[T, A], pb Parser[T, B], join func(A, B) C) Parser[T, C] {
	return Func[T, C](func(in stream.Stream[T]) Result[T, C] {
		ra := pa.ParseStream(in)
		if ra.Failed() {
			return failed[T, A, C](ra)
		}
		rb := pb.ParseStream(ra.Rest)
		c := ra.Consumption.Or(rb.Consumption)
		if rb.Failed() {
			if c == Empty {
				return Failure[T, C](ra.Hint.Merge(rb.Err), c)
			}
			return Failure[T, C](rb.Err, c)
		}
		return Ok(join(ra.Output, rb.Output), rb.Rest, c).withHint(ra.Hint.Merge(rb.Hint))
	})
}

// Seq2 runs pa then pb and returns both outputs.
func Seq2[T, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, Pair[A, B]] {
	return seq(pa, pb, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{First: a, Second: b}
	})
}

// Seq3 runs pa, pb and pc in order and returns all three outputs.
func Seq3[T, A, B, C any](pa Parser[T, A], pb Parser[T, B], pc Parser[T, C]) Parser[T, Triple[A, B, C]] {
	return seq(Seq2(pa, pb), pc, func(ab Pair[A, B], c C) Triple[A, B, C] {
		return Triple[A, B, C]{First: ab.First, Second: ab.Second, Third: c}
	})
}

// Then runs pa then pb and keeps the output of pb.
func Then[T, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, B] {
	return seq(pa, pb, func(_ A, b B) B { return b })
}

// Skip runs pa then pb and keeps the output of pa.
func Skip[T, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, A] {
	return seq(pa, pb, func(a A, _ B) A { return a })
}

// Between parses open, p, close and keeps the output of p.
func Between[T, L, R, O any](open Parser[T, L], close Parser[T, R], p Parser[T, O]) Parser[T, O] {
	return Skip(Then(open, p), close)
}

// Bind runs p and then the parser chosen from its output.
func Bind[T, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return Func[T, B](func(in stream.Stream[T]) Result[T, B] {
		ra := p.ParseStream(in)
		if ra.Failed() {
			return failed[T, A, B](ra)
		}
		rb := f(ra.Output).ParseStream(ra.Rest)
		rb.Consumption = ra.Consumption.Or(rb.Consumption)
		return rb
	})
}

// Package parse provides parser combinators over the streams of package
// stream.
//
// A Parser never mutates the stream it is given: it clones the input before
// reading and returns the advanced clone in its Result. Every Result records
// whether input was consumed. Alternation only tries the next branch when the
// previous one failed without consuming; Attempt turns a consuming failure
// into an empty one to allow arbitrary lookahead.
package parse

import (
	"github.com/jacoelho/combine/stream"
)

// Consumption records whether a parser advanced past any input.
type Consumption uint8

const (
	Empty Consumption = iota
	Consumed
)

// Or returns Consumed if either side consumed.
func (c Consumption) Or(other Consumption) Consumption {
	if c == Consumed || other == Consumed {
		return Consumed
	}
	return Empty
}

func (c Consumption) String() string {
	if c == Consumed {
		return "consumed"
	}
	return "empty"
}

// Result is the outcome of one parser application. On success Err is nil and
// Rest is the stream after the parsed value. On failure Output and Rest are
// unset.
//
// Hint is only set on a success that consumed nothing: it holds the errors of
// the alternatives rejected at Rest, so a following parser that also fails
// there can report them too.
type Result[T, O any] struct {
	Output      O
	Rest        stream.Stream[T]
	Err         *ParseError
	Hint        *ParseError
	Consumption Consumption
}

// Ok is a successful Result.
func Ok[T, O any](out O, rest stream.Stream[T], c Consumption) Result[T, O] {
	return Result[T, O]{Output: out, Rest: rest, Consumption: c}
}

// Failure is a failed Result.
func Failure[T, O any](err *ParseError, c Consumption) Result[T, O] {
	return Result[T, O]{Err: err, Consumption: c}
}

func (r Result[T, O]) Failed() bool {
	return r.Err != nil
}

func (r Result[T, O]) withHint(hint *ParseError) Result[T, O] {
	if r.Consumption == Empty {
		r.Hint = hint
	}
	return r
}

// failed re-types a failed result for a parser with a different output.
func failed[T, A, B any](r Result[T, A]) Result[T, B] {
	return Failure[T, B](r.Err, r.Consumption)
}

// Parser turns a prefix of a stream into a value of type O.
type Parser[T, O any] interface {
	ParseStream(in stream.Stream[T]) Result[T, O]
}

// Func adapts a function to the Parser interface.
type Func[T, O any] func(in stream.Stream[T]) Result[T, O]

func (f Func[T, O]) ParseStream(in stream.Stream[T]) Result[T, O] {
	return f(in)
}

// Parse runs p on in. It returns the output and the remaining input, or a
// *ParseError. in is left untouched either way.
func Parse[T, O any](p Parser[T, O], in stream.Stream[T]) (O, stream.Stream[T], error) {
	r := p.ParseStream(in)
	if r.Failed() {
		var zero O
		return zero, in, r.Err
	}
	return r.Output, r.Rest, nil
}

// ParseAll runs p on in and fails unless all of in was consumed.
func ParseAll[T, O any](p Parser[T, O], in stream.Stream[T]) (O, error) {
	out, _, err := Parse(Skip(p, EOF[T]()), in)
	return out, err
}

// ParseText runs p over s with line and column positions. It returns the
// output and the unparsed suffix of s.
func ParseText[O any](p Parser[rune, O], s string) (O, string, error) {
	out, rest, err := Parse[rune, O](p, stream.Text(s))
	if err != nil {
		return out, s, err
	}
	return out, remainingText(rest, s), nil
}

func remainingText(rest stream.Stream[rune], fallback string) string {
	state, ok := rest.(*stream.RangeState[rune, string])
	if !ok {
		return fallback
	}
	str, ok := state.Input().(*stream.StringStream)
	if !ok {
		return fallback
	}
	return str.Remaining()
}

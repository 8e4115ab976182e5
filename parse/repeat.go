package parse

import (
	"fmt"

	"github.com/jacoelho/combine/stream"
)

// Repeat applies p at least min times and at most max times, collecting the
// outputs. max <= 0 means no upper bound; in that case an iteration that
// succeeds without consuming input fails with ErrEmptyLoop. A min above a
// positive max can never be met, so such a parser always fails.
func Repeat[T, O any](p Parser[T, O], min, max int) Parser[T, []O] {
	unbounded := max <= 0
	if !unbounded && min > max {
		return Fail[T, []O](fmt.Sprintf("repeat: min %d exceeds max %d", min, max))
	}
	return Func[T, []O](func(in stream.Stream[T]) Result[T, []O] {
		out := []O{}
		cur := in
		c := Empty
		for unbounded || len(out) < max {
			r := p.ParseStream(cur)
			if r.Failed() {
				if r.Consumption == Consumed {
					return Failure[T, []O](r.Err, Consumed)
				}
				if len(out) < min {
					return Failure[T, []O](r.Err, c)
				}
				return Ok(out, cur, c).withHint(r.Err)
			}
			if unbounded && r.Consumption == Empty {
				return Failure[T, []O](NewParseError(cur.Position(), NewOther(ErrEmptyLoop)), c)
			}
			out = append(out, r.Output)
			cur = r.Rest
			c = c.Or(r.Consumption)
		}
		return Ok(out, cur, c)
	})
}

// Many applies p zero or more times.
func Many[T, O any](p Parser[T, O]) Parser[T, []O] {
	return Repeat(p, 0, 0)
}

// Many1 applies p one or more times.
func Many1[T, O any](p Parser[T, O]) Parser[T, []O] {
	return Repeat(p, 1, 0)
}

// Count applies p exactly n times.
func Count[T, O any](p Parser[T, O], n int) Parser[T, []O] {
	if n <= 0 {
		return Value[T, []O]([]O{})
	}
	return Repeat(p, n, n)
}

func SkipMany[T, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Discard(Many(p))
}

func SkipMany1[T, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Discard(Many1(p))
}

// SepBy parses zero or more p separated by sep.
func SepBy[T, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Or(SepBy1(p, sep), Value[T, []O]([]O{}))
}

// SepBy1 parses one or more p separated by sep. A separator that is not
// followed by p is an error.
func SepBy1[T, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return seq(p, Many(Then(sep, p)), func(first O, rest []O) []O {
		return append([]O{first}, rest...)
	})
}

// EndBy parses zero or more p, each followed by sep.
func EndBy[T, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Many(Skip(p, sep))
}

// ManyTill applies p until end succeeds and returns the outputs of p. The
// output of end is dropped.
func ManyTill[T, O, E any](p Parser[T, O], end Parser[T, E]) Parser[T, []O] {
	return Func[T, []O](func(in stream.Stream[T]) Result[T, []O] {
		out := []O{}
		cur := in
		c := Empty
		for {
			re := end.ParseStream(cur)
			if !re.Failed() {
				return Ok(out, re.Rest, c.Or(re.Consumption))
			}
			if re.Consumption == Consumed {
				return Failure[T, []O](re.Err, Consumed)
			}

			r := p.ParseStream(cur)
			if r.Failed() {
				return Failure[T, []O](re.Err.Merge(r.Err), c.Or(r.Consumption))
			}
			if r.Consumption == Empty {
				return Failure[T, []O](NewParseError(cur.Position(), NewOther(ErrEmptyLoop)), c)
			}
			out = append(out, r.Output)
			cur = r.Rest
			c = Consumed
		}
	})
}

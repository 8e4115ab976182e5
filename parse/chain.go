package parse

import (
	"github.com/jacoelho/combine/internal/stack"
	"github.com/jacoelho/combine/stream"
)

// ChainL1 parses one or more p separated by op and folds the outputs from the
// left: a op b op c is (a op b) op c.
func ChainL1[T, O any](p Parser[T, O], op Parser[T, func(O, O) O]) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		operands, ops, r := chain(p, op, in)
		if r.Failed() {
			return r
		}
		acc := operands[0]
		for i, f := range ops {
			acc = f(acc, operands[i+1])
		}
		r.Output = acc
		return r
	})
}

// ChainR1 is ChainL1 folding from the right: a op b op c is a op (b op c).
func ChainR1[T, O any](p Parser[T, O], op Parser[T, func(O, O) O]) Parser[T, O] {
	return Func[T, O](func(in stream.Stream[T]) Result[T, O] {
		operands, ops, r := chain(p, op, in)
		if r.Failed() {
			return r
		}

		values := stack.NewWithCapacity[O](len(operands))
		values.Push(operands...)
		pending := stack.NewWithCapacity[func(O, O) O](len(ops))
		pending.Push(ops...)

		acc, _ := values.Pop()
		for !pending.IsEmpty() {
			f, _ := pending.Pop()
			left, _ := values.Pop()
			acc = f(left, acc)
		}
		r.Output = acc
		return r
	})
}

// chain parses p (op p)* and returns the operands and operators in input
// order. The returned Result carries the remaining input and consumption but
// no output.
func chain[T, O any](p Parser[T, O], op Parser[T, func(O, O) O], in stream.Stream[T]) ([]O, []func(O, O) O, Result[T, O]) {
	first := p.ParseStream(in)
	if first.Failed() {
		return nil, nil, first
	}

	operands := []O{first.Output}
	var ops []func(O, O) O
	cur := first.Rest
	c := first.Consumption
	for {
		ro := op.ParseStream(cur)
		if ro.Failed() {
			if ro.Consumption == Consumed {
				return nil, nil, Failure[T, O](ro.Err, Consumed)
			}
			break
		}

		rp := p.ParseStream(ro.Rest)
		step := ro.Consumption.Or(rp.Consumption)
		if rp.Failed() {
			if step == Empty {
				break
			}
			return nil, nil, Failure[T, O](rp.Err, Consumed)
		}
		if step == Empty {
			return nil, nil, Failure[T, O](NewParseError(cur.Position(), NewOther(ErrEmptyLoop)), c)
		}

		ops = append(ops, ro.Output)
		operands = append(operands, rp.Output)
		cur = rp.Rest
		c = Consumed
	}

	var zero O
	return operands, ops, Ok(zero, cur, c)
}

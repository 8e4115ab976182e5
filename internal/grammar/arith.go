package grammar

import (
	"errors"
	"math"

	"github.com/jacoelho/combine/char"
	"github.com/jacoelho/combine/parse"
)

var errNotFinite = errors.New("result is not a finite number")

type binop = func(float64, float64) float64

// Arith evaluates arithmetic expressions. Precedence from loosest: + and -,
// then * and /, then ^ (right associative). Unary minus binds tighter than
// ^, so -2^2 is 4.
func Arith() parse.Parser[rune, any] {
	var expr parse.Parser[rune, float64]
	ref := parse.Lazy(func() parse.Parser[rune, float64] { return expr })

	atom := parse.Or(
		char.Lexeme(char.Number()),
		parse.Between(char.Symbol("("), char.Symbol(")"), ref),
	)

	var unary parse.Parser[rune, float64]
	unary = parse.Or(
		parse.Then(char.Symbol("-"), parse.Map(parse.Lazy(func() parse.Parser[rune, float64] { return unary }), func(v float64) float64 { return -v })),
		atom,
	)

	power := parse.ChainR1(unary, operator("^", math.Pow))
	term := parse.ChainL1(power, parse.Or(
		operator("*", func(a, b float64) float64 { return a * b }),
		operator("/", func(a, b float64) float64 { return a / b }),
	))
	expr = parse.ChainL1(term, parse.Or(
		operator("+", func(a, b float64) float64 { return a + b }),
		operator("-", func(a, b float64) float64 { return a - b }),
	))

	return parse.AndThen(parse.Then(char.Spaces(), ref), func(v float64) (any, error) {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, errNotFinite
		}
		return v, nil
	})
}

func operator(symbol string, f binop) parse.Parser[rune, binop] {
	return parse.Then(char.Symbol(symbol), parse.Value[rune](f))
}

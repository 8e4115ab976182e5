package char

import (
	"strconv"

	"github.com/jacoelho/combine/parse"
)

func digits() parse.Parser[rune, string] {
	return Word("digit", isDigit)
}

func sign(signs string) parse.Parser[rune, string] {
	return parse.Maybe(AsString(OneOf(signs)), "")
}

// Int parses an optionally negative decimal integer.
func Int() parse.Parser[rune, int64] {
	return parse.Label(parse.AndThen(Concat(sign("-"), digits()), func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}), "integer")
}

// Number parses a JSON number: an optional minus, an integer part without
// leading zeros, an optional fraction and an optional exponent.
func Number() parse.Parser[rune, float64] {
	integer := parse.Or(
		AsString(Char('0')),
		Concat(AsString(Satisfy("digit", func(r rune) bool { return r >= '1' && r <= '9' })), parse.Maybe(digits(), "")),
	)
	fraction := parse.Maybe(Concat(AsString(Char('.')), digits()), "")
	exponent := parse.Maybe(Concat(AsString(OneOf("eE")), sign("+-"), digits()), "")

	return parse.Label(parse.AndThen(Concat(sign("-"), integer, fraction, exponent), func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}), "number")
}

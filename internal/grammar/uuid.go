package grammar

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jacoelho/combine/char"
	"github.com/jacoelho/combine/parse"
)

// UUID parses the 8-4-4-4-12 hexadecimal form, in either case, and returns
// it in canonical lower case.
func UUID() parse.Parser[rune, any] {
	group := func(n int) parse.Parser[rune, string] {
		return parse.Map(parse.Count(char.HexDigit(), n), func(rs []rune) string { return string(rs) })
	}
	dash := char.AsString(char.Char('-'))

	text := char.Concat(group(8), dash, group(4), dash, group(4), dash, group(4), dash, group(12))

	return parse.Label(parse.AndThen(parse.Between(char.Spaces(), char.Spaces(), text), func(s string) (any, error) {
		id, err := uuid.Parse(strings.ToLower(s))
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	}), "uuid")
}

package grammar

import (
	"github.com/jacoelho/combine/char"
	"github.com/jacoelho/combine/parse"
)

// CSV parses comma separated records. Quoted fields may contain commas, line
// breaks and doubled quotes. A line break after the last record is optional.
func CSV() parse.Parser[rune, any] {
	doubledQuote := parse.Then(parse.Attempt(char.String(`""`)), parse.Value[rune]('"'))
	quoted := parse.Map(
		parse.Between(char.Char('"'), char.Char('"'), parse.Many(parse.Or(char.NoneOf(`"`), doubledQuote))),
		func(rs []rune) string { return string(rs) },
	)
	unquoted := parse.Map(parse.Many(char.NoneOf(",\"\r\n")), func(rs []rune) string { return string(rs) })

	field := parse.Label(parse.Or(quoted, unquoted), "field")
	record := parse.Map(parse.SepBy1(field, char.Char(',')), func(fields []string) []any {
		out := make([]any, len(fields))
		for i, f := range fields {
			out[i] = f
		}
		return out
	})

	return parse.Map(parse.SepBy1(record, char.EndOfLine()), func(records [][]any) any {
		// A trailing line break leaves one empty record behind.
		if last := records[len(records)-1]; len(last) == 1 && last[0] == "" {
			records = records[:len(records)-1]
		}
		out := make([]any, len(records))
		for i, r := range records {
			out[i] = r
		}
		return out
	})
}

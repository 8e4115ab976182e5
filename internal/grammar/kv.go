package grammar

import (
	"strings"
	"unicode"

	"github.com/jacoelho/combine/char"
	"github.com/jacoelho/combine/parse"
)

// KV parses "key = value" lines into a map of strings. Blank lines and
// comments starting with # are ignored, values may be double quoted to keep
// a #, and a repeated key keeps its last value.
func KV() parse.Parser[rune, any] {
	blanks := parse.SkipMany(char.OneOf(" \t"))
	comment := parse.Discard(parse.Seq2(char.Char('#'), parse.Many(char.NoneOf("\n"))))
	lineEnd := parse.Then(parse.Seq2(blanks, parse.Optional(comment)), parse.Or(
		parse.Discard(char.Newline()),
		parse.EOF[rune](),
	))

	key := char.Word("key", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.-", r)
	})
	quoted := parse.Map(parse.Between(char.Char('"'), char.Char('"'), parse.Many(char.NoneOf("\"\n"))), func(rs []rune) string {
		return string(rs)
	})
	raw := parse.Map(parse.Many(char.NoneOf("#\n")), func(rs []rune) string {
		return strings.TrimSpace(string(rs))
	})
	entry := parse.Seq2(
		parse.Skip(key, parse.Seq3(blanks, char.Char('='), blanks)),
		parse.Or(quoted, raw),
	)

	line := parse.Then(blanks, parse.Or(
		parse.Skip(parse.Map(entry, func(e parse.Pair[string, string]) parse.Option[parse.Pair[string, string]] {
			return parse.Option[parse.Pair[string, string]]{Value: e, Valid: true}
		}), lineEnd),
		parse.Map(lineEnd, func(struct{}) parse.Option[parse.Pair[string, string]] {
			return parse.Option[parse.Pair[string, string]]{}
		}),
	))

	return parse.Map(parse.ManyTill(line, parse.EOF[rune]()), func(lines []parse.Option[parse.Pair[string, string]]) any {
		m := make(map[string]any, len(lines))
		for _, l := range lines {
			if l.Valid {
				m[l.Value.First] = l.Value.Second
			}
		}
		return m
	})
}

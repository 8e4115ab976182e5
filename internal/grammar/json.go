package grammar

import (
	"strconv"
	"unicode"
	"unicode/utf16"

	"github.com/jacoelho/combine/char"
	"github.com/jacoelho/combine/parse"
)

// JSON parses a single JSON document. Objects become map[string]any (a
// repeated key keeps its last value), arrays []any and numbers float64.
func JSON() parse.Parser[rune, any] {
	var value parse.Parser[rune, any]
	ref := parse.Lazy(func() parse.Parser[rune, any] { return value })

	member := parse.Seq2(parse.Skip(char.Lexeme(jsonString()), char.Symbol(":")), ref)
	object := parse.Map(
		parse.Between(char.Symbol("{"), char.Symbol("}"), parse.SepBy(member, char.Symbol(","))),
		func(members []parse.Pair[string, any]) any {
			m := make(map[string]any, len(members))
			for _, kv := range members {
				m[kv.First] = kv.Second
			}
			return m
		},
	)
	array := parse.Map(
		parse.Between(char.Symbol("["), char.Symbol("]"), parse.SepBy(ref, char.Symbol(","))),
		func(items []any) any { return items },
	)

	value = char.Lexeme(parse.Label(parse.Or(
		object,
		array,
		asAny(jsonString()),
		asAny(char.Number()),
		literal("true", true),
		literal("false", false),
		literal("null", nil),
	), "value"))

	return parse.Then(char.Spaces(), value)
}

func literal(word string, v any) parse.Parser[rune, any] {
	return parse.Map(char.String(word), func(string) any { return v })
}

func jsonString() parse.Parser[rune, string] {
	unescaped := parse.Satisfy(func(r rune) bool {
		return r != '"' && r != '\\' && r >= 0x20
	})
	body := parse.Many(parse.Or(unescaped, escape()))

	return parse.Label(parse.Map(parse.Between(char.Char('"'), char.Char('"'), body), decodeSurrogates), "string")
}

func escape() parse.Parser[rune, rune] {
	simple := parse.Map(char.OneOf(`"\/bfnrt`), func(r rune) rune {
		switch r {
		case 'b':
			return '\b'
		case 'f':
			return '\f'
		case 'n':
			return '\n'
		case 'r':
			return '\r'
		case 't':
			return '\t'
		}
		return r
	})
	unicodeEscape := parse.AndThen(parse.Then(char.Char('u'), parse.Count(char.HexDigit(), 4)), func(hex []rune) (rune, error) {
		n, err := strconv.ParseUint(string(hex), 16, 32)
		return rune(n), err
	})

	return parse.Then(char.Char('\\'), parse.Or(simple, unicodeEscape))
}

// decodeSurrogates joins UTF-16 surrogate pairs written as two \u escapes.
func decodeSurrogates(rs []rune) string {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if utf16.IsSurrogate(rs[i]) && i+1 < len(rs) {
			if r := utf16.DecodeRune(rs[i], rs[i+1]); r != unicode.ReplacementChar {
				out = append(out, r)
				i++
				continue
			}
		}
		out = append(out, rs[i])
	}
	return string(out)
}

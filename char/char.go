// Package char provides parsers over rune streams.
package char

import (
	"strings"
	"unicode"

	"github.com/jacoelho/combine/parse"
	"github.com/jacoelho/combine/stream"
)

// Char parses the rune c.
func Char(c rune) parse.Parser[rune, rune] {
	return parse.Token(c)
}

// String parses the runes of s and returns s.
func String(s string) parse.Parser[rune, string] {
	return parse.Map(parse.Tokens([]rune(s)), func([]rune) string { return s })
}

// Satisfy parses one rune accepted by pred and names it in errors.
func Satisfy(name string, pred func(rune) bool) parse.Parser[rune, rune] {
	return parse.Label(parse.Satisfy(pred), name)
}

func Digit() parse.Parser[rune, rune] {
	return Satisfy("digit", isDigit)
}

func HexDigit() parse.Parser[rune, rune] {
	return Satisfy("hexadecimal digit", isHexDigit)
}

func Letter() parse.Parser[rune, rune] {
	return Satisfy("letter", unicode.IsLetter)
}

func AlphaNum() parse.Parser[rune, rune] {
	return Satisfy("letter or digit", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

func Upper() parse.Parser[rune, rune] {
	return Satisfy("uppercase letter", unicode.IsUpper)
}

func Lower() parse.Parser[rune, rune] {
	return Satisfy("lowercase letter", unicode.IsLower)
}

func Space() parse.Parser[rune, rune] {
	return Satisfy("whitespace", unicode.IsSpace)
}

// Spaces skips zero or more whitespace runes.
func Spaces() parse.Parser[rune, struct{}] {
	return parse.Label(parse.SkipMany(Space()), "whitespaces")
}

func Tab() parse.Parser[rune, rune] {
	return Satisfy("tab", func(r rune) bool { return r == '\t' })
}

func Newline() parse.Parser[rune, rune] {
	return Satisfy("lf newline", func(r rune) bool { return r == '\n' })
}

// CRLF parses "\r\n" and returns '\n'.
func CRLF() parse.Parser[rune, rune] {
	return parse.Label(parse.Then(parse.Token('\r'), parse.Token('\n')), "crlf newline")
}

// EndOfLine parses either line terminator.
func EndOfLine() parse.Parser[rune, rune] {
	return parse.Label(parse.Or(Newline(), CRLF()), "new-line")
}

// OneOf parses any rune in chars.
func OneOf(chars string) parse.Parser[rune, rune] {
	return parse.Label(parse.Satisfy(func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}), "one of "+chars)
}

// NoneOf parses any rune not in chars.
func NoneOf(chars string) parse.Parser[rune, rune] {
	return parse.Satisfy(func(r rune) bool {
		return !strings.ContainsRune(chars, r)
	})
}

// Lexeme runs p and skips the whitespace after it.
func Lexeme[O any](p parse.Parser[rune, O]) parse.Parser[rune, O] {
	return parse.Skip(p, Spaces())
}

// Symbol parses s as a lexeme.
func Symbol(s string) parse.Parser[rune, string] {
	return Lexeme(String(s))
}

// Word parses one or more runes accepted by pred as a string.
func Word(name string, pred func(rune) bool) parse.Parser[rune, string] {
	return parse.Label(parse.Map(parse.Many1(parse.Satisfy(pred)), func(rs []rune) string {
		return string(rs)
	}), name)
}

// Concat runs ps in order and joins their outputs.
func Concat(ps ...parse.Parser[rune, string]) parse.Parser[rune, string] {
	return parse.Func[rune, string](func(in stream.Stream[rune]) parse.Result[rune, string] {
		var b strings.Builder
		var hint *parse.ParseError
		cur := in
		c := parse.Empty
		for _, p := range ps {
			r := p.ParseStream(cur)
			c = c.Or(r.Consumption)
			if r.Failed() {
				if c == parse.Empty {
					return parse.Failure[rune, string](hint.Merge(r.Err), c)
				}
				return parse.Failure[rune, string](r.Err, c)
			}
			hint = hint.Merge(r.Hint)
			b.WriteString(r.Output)
			cur = r.Rest
		}
		res := parse.Ok(b.String(), cur, c)
		if c == parse.Empty {
			res.Hint = hint
		}
		return res
	})
}

// AsString turns a single rune parser into a string parser.
func AsString(p parse.Parser[rune, rune]) parse.Parser[rune, string] {
	return parse.Map(p, func(r rune) string { return string(r) })
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

package parse

import (
	"errors"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/jacoelho/combine/position"
	"github.com/jacoelho/combine/stream"
)

func digit() Parser[rune, int] {
	return Label(Map(Satisfy(unicode.IsDigit), func(r rune) int { return int(r - '0') }), "digit")
}

func at(line, col int) position.Position {
	return position.SourcePosition{Line: line, Column: col}
}

func TestOr_EmptyFailureRetriesOnOriginalInput(t *testing.T) {
	t.Parallel()

	p := Or(Token('a'), Token('b'))
	out, rest, err := ParseText(p, "bc")
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if out != 'b' || rest != "c" {
		t.Fatalf("ParseText() = %q, %q, want 'b', \"c\"", out, rest)
	}
}

func TestOr_ConsumedFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	ab := Seq2(Token('a'), Token('b'))
	ac := Seq2(Token('a'), Token('c'))

	r := Or(ab, ac).ParseStream(stream.Text("ac"))
	if !r.Failed() || r.Consumption != Consumed {
		t.Fatalf("Or() = %+v, want consumed failure", r)
	}
	if r.Err.Position != at(1, 2) {
		t.Fatalf("error position = %v, want 1:2", r.Err.Position)
	}

	got, _, err := ParseText(Or(Attempt(ab), ac), "ac")
	if err != nil {
		t.Fatalf("Or(Attempt()) error = %v", err)
	}
	if got != (Pair[rune, rune]{First: 'a', Second: 'c'}) {
		t.Fatalf("Or(Attempt()) = %v, want a c", got)
	}
}

func TestOr_MergesExpectedAlternatives(t *testing.T) {
	t.Parallel()

	_, _, err := ParseText(Or(Token('a'), Token('b'), Token('c')), "x")
	want := "Parse error at 1:1\nUnexpected `x`\nExpected `a`, `b` or `c`"
	if err == nil || err.Error() != want {
		t.Fatalf("ParseText() error = %v, want %q", err, want)
	}
}

func TestSeq_ReportsAlternativesRejectedByEmptyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		p     Parser[rune, rune]
		input string
		want  string
	}{
		{
			name:  "many",
			p:     Then(Many(Token('1')), Token('a')),
			input: "!",
			want:  "Parse error at 1:1\nUnexpected `!`\nExpected `1` or `a`",
		},
		{
			name:  "optional",
			p:     Then(Optional(Token('-')), Token('1')),
			input: "x",
			want:  "Parse error at 1:1\nUnexpected `x`\nExpected `-` or `1`",
		},
		{
			name:  "maybe through map",
			p:     Then(Map(Maybe(Token('-'), '+'), func(r rune) rune { return r }), Token('1')),
			input: "x",
			want:  "Parse error at 1:1\nUnexpected `x`\nExpected `-` or `1`",
		},
		{
			name:  "consumed prefix",
			p:     Then(Many(Token('1')), Token('a')),
			input: "1!",
			want:  "Parse error at 1:2\nUnexpected `!`\nExpected `a`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := ParseText(tt.p, tt.input)
			if err == nil || err.Error() != tt.want {
				t.Fatalf("ParseText() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParsersDoNotMutateInput(t *testing.T) {
	t.Parallel()

	in := stream.Text("abc")
	r := Many(Any[rune]()).ParseStream(in)
	if r.Failed() {
		t.Fatalf("Many() error = %v", r.Err)
	}
	if in.Position() != position.Source() {
		t.Fatalf("input advanced to %v", in.Position())
	}
	if r.Rest.Position() != at(1, 4) {
		t.Fatalf("Rest.Position() = %v, want 1:4", r.Rest.Position())
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	p := Tokens([]rune("abc"))

	got, rest, err := ParseText(p, "abcd")
	if err != nil || string(got) != "abc" || rest != "d" {
		t.Fatalf("ParseText() = %q, %q, %v", string(got), rest, err)
	}

	r := p.ParseStream(stream.Text("abx"))
	if r.Consumption != Consumed {
		t.Fatalf("partial match Consumption = %v, want consumed", r.Consumption)
	}
	want := "Parse error at 1:3\nUnexpected `x`\nExpected `abc`"
	if r.Err.Error() != want {
		t.Fatalf("Error() = %q, want %q", r.Err.Error(), want)
	}

	if r := p.ParseStream(stream.Text("x")); r.Consumption != Empty {
		t.Fatalf("first item mismatch Consumption = %v, want empty", r.Consumption)
	}
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	if _, err := ParseAll(Token('a'), stream.Text("a")); err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	_, err := ParseAll(Token('a'), stream.Text("ab"))
	want := "Parse error at 1:2\nUnexpected `b`\nExpected `end of input`"
	if err == nil || err.Error() != want {
		t.Fatalf("ParseAll() error = %v, want %q", err, want)
	}
}

func TestRepetition(t *testing.T) {
	t.Parallel()

	a := Token('a')
	tests := []struct {
		name    string
		p       Parser[rune, []rune]
		input   string
		want    string
		rest    string
		wantErr bool
	}{
		{name: "many none", p: Many(a), input: "b", want: "", rest: "b"},
		{name: "many some", p: Many(a), input: "aab", want: "aa", rest: "b"},
		{name: "many1 none", p: Many1(a), input: "b", wantErr: true},
		{name: "count", p: Count(a, 2), input: "aaa", want: "aa", rest: "a"},
		{name: "count short", p: Count(a, 2), input: "ab", wantErr: true},
		{name: "count zero", p: Count(a, 0), input: "aa", want: "", rest: "aa"},
		{name: "repeat max", p: Repeat(a, 2, 3), input: "aaaa", want: "aaa", rest: "a"},
		{name: "repeat min", p: Repeat(a, 2, 3), input: "a", wantErr: true},
		{name: "repeat min above max", p: Repeat(a, 3, 2), input: "aaaa", wantErr: true},
		{name: "many till", p: ManyTill(Any[rune](), Token(';')), input: "ab;c", want: "ab", rest: "c"},
		{name: "many till no end", p: ManyTill(Any[rune](), Token(';')), input: "ab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, rest, err := ParseText(tt.p, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseText() = %q, want error", string(got))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseText() error = %v", err)
			}
			if string(got) != tt.want || rest != tt.rest {
				t.Fatalf("ParseText() = %q, %q, want %q, %q", string(got), rest, tt.want, tt.rest)
			}
		})
	}
}

func TestRepeat_EmptyLoop(t *testing.T) {
	t.Parallel()

	_, _, err := ParseText(Many(Value[rune](1)), "x")
	if !errors.Is(err, ErrEmptyLoop) {
		t.Fatalf("Many(Value()) error = %v, want ErrEmptyLoop", err)
	}

	out, _, err := ParseText(Count(Value[rune](1), 3), "x")
	if err != nil {
		t.Fatalf("Count(Value()) error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, out); diff != "" {
		t.Fatalf("Count(Value()) mismatch (-want +got):\n%s", diff)
	}
}

func TestRepeat_ConsumedIterationFailureFailsWhole(t *testing.T) {
	t.Parallel()

	pair := Seq2(Token('a'), Token('b'))
	r := Many(pair).ParseStream(stream.Text("abac"))
	if !r.Failed() || r.Consumption != Consumed {
		t.Fatalf("Many() = %+v, want consumed failure", r)
	}
}

func TestSepBy(t *testing.T) {
	t.Parallel()

	list := SepBy(digit(), Token(','))

	got, _, err := ParseText(list, "1,2,3")
	if err != nil {
		t.Fatalf("SepBy() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Fatalf("SepBy() mismatch (-want +got):\n%s", diff)
	}

	got, rest, err := ParseText(list, "x")
	if err != nil || len(got) != 0 || rest != "x" {
		t.Fatalf("SepBy() on no items = %v, %q, %v", got, rest, err)
	}

	_, _, err = ParseText(list, "1,2,")
	if err == nil {
		t.Fatal("SepBy() with trailing separator succeeded")
	}
	var perr *ParseError
	if !errors.As(err, &perr) || !perr.IsEndOfInput() {
		t.Fatalf("SepBy() error = %v, want end of input", err)
	}
}

func TestEndBy(t *testing.T) {
	t.Parallel()

	got, rest, err := ParseText(EndBy(digit(), Token(';')), "1;2;3")
	if err == nil {
		t.Fatalf("EndBy() = %v, %q, want error for missing terminator", got, rest)
	}

	got, rest, err = ParseText(EndBy(digit(), Token(';')), "1;2;x")
	if err != nil {
		t.Fatalf("EndBy() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" || rest != "x" {
		t.Fatalf("EndBy() = %v, %q", got, rest)
	}
}

func TestChains(t *testing.T) {
	t.Parallel()

	minus := Then(Token('-'), Value[rune](func(a, b int) int { return a - b }))

	left, _, err := ParseText(ChainL1(digit(), minus), "8-3-2")
	if err != nil || left != 3 {
		t.Fatalf("ChainL1() = %d, %v, want 3", left, err)
	}

	right, _, err := ParseText(ChainR1(digit(), minus), "8-3-2")
	if err != nil || right != 7 {
		t.Fatalf("ChainR1() = %d, %v, want 7", right, err)
	}

	single, rest, err := ParseText(ChainR1(digit(), minus), "5x")
	if err != nil || single != 5 || rest != "x" {
		t.Fatalf("ChainR1() = %d, %q, %v, want 5", single, rest, err)
	}

	_, _, err = ParseText(ChainL1(digit(), minus), "8-")
	var perr *ParseError
	if !errors.As(err, &perr) || !perr.IsEndOfInput() || perr.Position != at(1, 3) {
		t.Fatalf("ChainL1() dangling operator error = %v", err)
	}
}

func TestLazyRecursion(t *testing.T) {
	t.Parallel()

	var nested Parser[rune, int]
	nested = Lazy(func() Parser[rune, int] {
		return Or(
			Map(Between(Token('('), Token(')'), nested), func(n int) int { return n + 1 }),
			Value[rune](0),
		)
	})

	depth, err := ParseAll(nested, stream.Text("((()))"))
	if err != nil || depth != 3 {
		t.Fatalf("ParseAll() = %d, %v, want 3", depth, err)
	}

	_, err = ParseAll(nested, stream.Text("(()"))
	var perr *ParseError
	if !errors.As(err, &perr) || !perr.IsEndOfInput() {
		t.Fatalf("unbalanced ParseAll() error = %v, want end of input", err)
	}
}

func TestLookaheadCombinators(t *testing.T) {
	t.Parallel()

	out, rest, err := ParseText(LookAhead(Token('a')), "ab")
	if err != nil || out != 'a' || rest != "ab" {
		t.Fatalf("LookAhead() = %q, %q, %v", out, rest, err)
	}

	if _, rest, err := ParseText(NotFollowedBy(Token('a')), "b"); err != nil || rest != "b" {
		t.Fatalf("NotFollowedBy() = %q, %v", rest, err)
	}
	_, _, err = ParseText(NotFollowedBy(Token('a')), "ab")
	if want := "Parse error at 1:1\nUnexpected `a`"; err == nil || err.Error() != want {
		t.Fatalf("NotFollowedBy() error = %v, want %q", err, want)
	}
}

func TestOptionalAndMaybe(t *testing.T) {
	t.Parallel()

	got, rest, err := ParseText(Optional(Token('-')), "-1")
	if err != nil || !got.Valid || got.Value != '-' || rest != "1" {
		t.Fatalf("Optional() = %+v, %q, %v", got, rest, err)
	}

	got, rest, err = ParseText(Optional(Token('-')), "1")
	if err != nil || got.Valid || rest != "1" {
		t.Fatalf("Optional() on absent = %+v, %q, %v", got, rest, err)
	}

	if _, _, err := ParseText(Optional(Seq2(Token('a'), Token('b'))), "ax"); err == nil {
		t.Fatal("Optional() hid a consumed failure")
	}

	sign, _, err := ParseText(Maybe(Token('+'), '-'), "1")
	if err != nil || sign != '-' {
		t.Fatalf("Maybe() = %q, %v, want fallback", sign, err)
	}
}

func TestLabelAndMessage(t *testing.T) {
	t.Parallel()

	_, _, err := ParseText(Label(Token('a'), "letter a"), "b")
	if want := "Parse error at 1:1\nUnexpected `b`\nExpected `letter a`"; err == nil || err.Error() != want {
		t.Fatalf("Label() error = %v, want %q", err, want)
	}

	_, _, err = ParseText(Message(Token('a'), "while reading a"), "b")
	if want := "Parse error at 1:1\nUnexpected `b`\nExpected `a`\nwhile reading a"; err == nil || err.Error() != want {
		t.Fatalf("Message() error = %v, want %q", err, want)
	}

	// Labels only apply before input was consumed.
	r := Label(Seq2(Token('a'), Token('b')), "ab").ParseStream(stream.Text("ax"))
	if diff := cmp.Diff([]Info{TokenInfo('b')}, r.Err.Expected()); diff != "" {
		t.Fatalf("Expected() mismatch (-want +got):\n%s", diff)
	}
}

func TestAndThen(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("odd digit")
	even := AndThen(digit(), func(n int) (int, error) {
		if n%2 != 0 {
			return 0, errOdd
		}
		return n, nil
	})

	if got, _, err := ParseText(even, "4"); err != nil || got != 4 {
		t.Fatalf("AndThen() = %d, %v, want 4", got, err)
	}

	r := even.ParseStream(stream.Text("3"))
	if !r.Failed() || r.Consumption != Consumed {
		t.Fatalf("AndThen() = %+v, want consumed failure", r)
	}
	if !errors.Is(r.Err, errOdd) || r.Err.Position != position.Source() {
		t.Fatalf("AndThen() error = %v at %v", r.Err, r.Err.Position)
	}
}

func TestBind(t *testing.T) {
	t.Parallel()

	// A length-prefixed run of letters: "3abc".
	counted := Bind(digit(), func(n int) Parser[rune, []rune] {
		return Count(Satisfy(unicode.IsLetter), n)
	})

	got, rest, err := ParseText(counted, "3abcd")
	if err != nil || string(got) != "abc" || rest != "d" {
		t.Fatalf("Bind() = %q, %q, %v", string(got), rest, err)
	}
}

func TestRangeParsers(t *testing.T) {
	t.Parallel()

	lower := func(r rune) bool { return unicode.IsLower(r) }

	word, rest, err := ParseText(TakeWhile[rune, string](lower), "abc1")
	if err != nil || word != "abc" || rest != "1" {
		t.Fatalf("TakeWhile() = %q, %q, %v", word, rest, err)
	}

	r := TakeWhile[rune, string](lower).ParseStream(stream.Text("1"))
	if r.Failed() || r.Output != "" || r.Consumption != Empty {
		t.Fatalf("TakeWhile() on no match = %+v", r)
	}

	if _, _, err := ParseText(TakeWhile1[rune, string](lower), "1"); err == nil {
		t.Fatal("TakeWhile1() on no match succeeded")
	}

	two, rest, err := ParseText(Range[rune, string](2), "héllo")
	if err != nil || two != "hé" || rest != "llo" {
		t.Fatalf("Range(2) = %q, %q, %v", two, rest, err)
	}

	_, _, err = ParseText(Range[rune, string](9), "abc")
	var perr *ParseError
	if !errors.As(err, &perr) || !perr.IsEndOfInput() {
		t.Fatalf("Range(9) error = %v, want end of input", err)
	}

	plain := stream.NewState[rune](stream.FromString("abc"), position.Lines{})
	if _, _, err := Parse(TakeWhile[rune, string](lower), plain); !errors.Is(err, stream.ErrRangeUnsupported) {
		t.Fatalf("TakeWhile() on plain state error = %v, want ErrRangeUnsupported", err)
	}
}

func TestSliceInput(t *testing.T) {
	t.Parallel()

	type tok struct {
		kind string
		text string
	}
	kind := func(k string) Parser[tok, tok] {
		return Label(Satisfy(func(x tok) bool { return x.kind == k }), k)
	}
	assign := Seq3(kind("ident"), kind("eq"), kind("number"))

	in := stream.FromSlice([]tok{{"ident", "x"}, {"eq", "="}, {"number", "1"}})
	got, rest, err := Parse(assign, in)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.First.text != "x" || got.Third.text != "1" {
		t.Fatalf("Parse() = %+v", got)
	}
	if rest.Position() != (position.BytePosition{Offset: 3}) {
		t.Fatalf("rest Position() = %v, want offset 3", rest.Position())
	}

	_, _, err = Parse(assign, stream.FromSlice([]tok{{"ident", "x"}, {"number", "1"}}))
	if want := "Parse error at offset 1\nUnexpected `{number 1}`\nExpected `eq`"; err == nil || err.Error() != want {
		t.Fatalf("Parse() error = %v, want %q", err, want)
	}
}

func TestGetPosition(t *testing.T) {
	t.Parallel()

	p := Then(Token('\n'), GetPosition[rune]())
	got, _, err := ParseText(p, "\nx")
	if err != nil || got != at(2, 1) {
		t.Fatalf("GetPosition() = %v, %v, want 2:1", got, err)
	}
}

func TestFailAndUnexpected(t *testing.T) {
	t.Parallel()

	_, _, err := ParseText(Fail[rune, int]("nope"), "a")
	if want := "Parse error at 1:1\nnope"; err == nil || err.Error() != want {
		t.Fatalf("Fail() error = %v, want %q", err, want)
	}

	_, _, err = ParseText(Unexpected[rune, int]("keyword"), "a")
	if want := "Parse error at 1:1\nUnexpected `keyword`"; err == nil || err.Error() != want {
		t.Fatalf("Unexpected() error = %v, want %q", err, want)
	}
}

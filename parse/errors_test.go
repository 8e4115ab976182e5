package parse

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jacoelho/combine/position"
)

func TestInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "text", info: TextInfo("digit"), want: "digit"},
		{name: "rune", info: TokenInfo('x'), want: "x"},
		{name: "control rune", info: TokenInfo('\n'), want: `'\n'`},
		{name: "byte", info: TokenInfo(byte('z')), want: "z"},
		{name: "int", info: TokenInfo(42), want: "42"},
		{name: "string range", info: RangeInfo("abc"), want: "abc"},
		{name: "rune range", info: RangeInfo([]rune("héllo")), want: "héllo"},
		{name: "byte range", info: RangeInfo([]byte("ok")), want: "ok"},
		{name: "from string", info: InfoOf("static"), want: "static"},
		{name: "from error", info: InfoOf(io.EOF), want: "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.info.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoEqual(t *testing.T) {
	t.Parallel()

	if !TextInfo("a").Equal(TextInfo("a")) {
		t.Fatal("equal text infos are not Equal")
	}
	if TextInfo("a").Equal(TokenInfo('a')) {
		t.Fatal("text and token infos compare Equal")
	}
	if !RangeInfo([]int{1, 2}).Equal(RangeInfo([]int{1, 2})) {
		t.Fatal("equal range infos are not Equal")
	}
}

func TestParseError_AddErrorDeduplicates(t *testing.T) {
	t.Parallel()

	e := NewParseError(position.Source(), NewExpected(TextInfo("digit")))
	e.AddError(NewExpected(TextInfo("digit")))
	e.AddError(NewUnexpected(TokenInfo('x')))
	e.AddError(NewUnexpected(TokenInfo('x')))

	if len(e.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2: %v", len(e.Errors), e.Errors)
	}
}

func TestParseError_SetExpectedReplaces(t *testing.T) {
	t.Parallel()

	e := ParseErrorFrom(position.Source(),
		NewUnexpected(TokenInfo('x')),
		NewExpected(TextInfo("a")),
		NewExpected(TextInfo("b")),
	)
	e.SetExpected(TextInfo("letter"))

	if diff := cmp.Diff([]Info{TextInfo("letter")}, e.Expected()); diff != "" {
		t.Fatalf("Expected() mismatch (-want +got):\n%s", diff)
	}
	if len(e.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(e.Errors))
	}
}

func TestParseError_Merge(t *testing.T) {
	t.Parallel()

	at := func(line, col int) position.Position {
		return position.SourcePosition{Line: line, Column: col}
	}

	t.Run("same position unites in order", func(t *testing.T) {
		t.Parallel()

		a := ParseErrorFrom(at(1, 3), NewUnexpected(TokenInfo('x')), NewExpected(TextInfo("a")))
		b := ParseErrorFrom(at(1, 3), NewUnexpected(TokenInfo('x')), NewExpected(TextInfo("b")))

		merged := a.Merge(b)
		want := []Error{
			NewUnexpected(TokenInfo('x')),
			NewExpected(TextInfo("a")),
			NewExpected(TextInfo("b")),
		}
		if diff := cmp.Diff(want, merged.Errors); diff != "" {
			t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
		}
		if len(a.Errors) != 2 {
			t.Fatalf("Merge() modified its receiver: %v", a.Errors)
		}
	})

	t.Run("later position wins", func(t *testing.T) {
		t.Parallel()

		early := NewParseError(at(1, 2), NewExpected(TextInfo("early")))
		late := NewParseError(at(2, 1), NewExpected(TextInfo("late")))

		if got := early.Merge(late); got != late {
			t.Fatalf("early.Merge(late) = %v, want late", got)
		}
		if got := late.Merge(early); got != late {
			t.Fatalf("late.Merge(early) = %v, want late", got)
		}
	})

	t.Run("nil operands", func(t *testing.T) {
		t.Parallel()

		e := NewParseError(at(1, 1), EndOfInput())
		var none *ParseError
		if got := none.Merge(e); got != e {
			t.Fatalf("nil.Merge(e) = %v, want e", got)
		}
		if got := e.Merge(nil); got != e {
			t.Fatalf("e.Merge(nil) = %v, want e", got)
		}
	})
}

func TestParseError_Error(t *testing.T) {
	t.Parallel()

	e := ParseErrorFrom(position.SourcePosition{Line: 1, Column: 3},
		NewUnexpected(TokenInfo('x')),
		NewExpected(TextInfo("digit")),
		NewExpected(TextInfo("letter")),
		NewExpected(TextInfo("end of input")),
		NewMessage(TextInfo("in expression")),
	)

	want := "Parse error at 1:3\n" +
		"Unexpected `x`\n" +
		"Expected `digit`, `letter` or `end of input`\n" +
		"in expression"
	if got := e.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestParseError_Is(t *testing.T) {
	t.Parallel()

	cause := errors.New("read failed")
	var err error = ParseErrorFrom(position.Source(), NewOther(cause))

	if !errors.Is(err, ErrSyntax) {
		t.Fatal("errors.Is(err, ErrSyntax) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false, want true")
	}
	if errors.Is(err, io.EOF) {
		t.Fatal("errors.Is(err, io.EOF) = true, want false")
	}
}

func TestParseError_IsEndOfInput(t *testing.T) {
	t.Parallel()

	if !EndOfInputError(position.Source()).IsEndOfInput() {
		t.Fatal("IsEndOfInput() = false, want true")
	}
	if NewParseError(position.Source(), NewUnexpected(TokenInfo('a'))).IsEndOfInput() {
		t.Fatal("IsEndOfInput() = true, want false")
	}
}

package parse

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jacoelho/combine/position"
	"github.com/jacoelho/combine/stream"
)

var (
	// ErrSyntax matches every *ParseError with errors.Is.
	ErrSyntax = errors.New("syntax error")

	// ErrEmptyLoop is reported when an unbounded repetition applies a parser
	// that succeeds without consuming input.
	ErrEmptyLoop = errors.New("repeated parser accepted empty input")
)

type infoKind uint8

const (
	infoText infoKind = iota
	infoToken
	infoRange
)

// Info is the payload of an Error: text, a single input item, or a
// contiguous range of input.
type Info struct {
	kind  infoKind
	text  string
	value any
}

// TextInfo describes something by name, e.g. "digit" or "end of input".
func TextInfo(s string) Info {
	return Info{kind: infoText, text: s}
}

// TokenInfo carries a single input item.
func TokenInfo(item any) Info {
	return Info{kind: infoToken, value: item}
}

// RangeInfo carries a run of input items, such as a string or slice.
func RangeInfo(r any) Info {
	return Info{kind: infoRange, value: r}
}

// InfoOf converts v: strings become text, errors and fmt.Stringers their
// text, everything else is treated as an input item.
func InfoOf(v any) Info {
	switch x := v.(type) {
	case Info:
		return x
	case string:
		return TextInfo(x)
	case error:
		return TextInfo(x.Error())
	case fmt.Stringer:
		return TextInfo(x.String())
	default:
		return TokenInfo(v)
	}
}

func (i Info) String() string {
	switch i.kind {
	case infoToken:
		return formatItem(i.value)
	case infoRange:
		return formatRange(i.value)
	default:
		return i.text
	}
}

func (i Info) Equal(other Info) bool {
	return i.kind == other.kind && i.text == other.text && reflect.DeepEqual(i.value, other.value)
}

// formatItem renders runes and bytes as characters.
func formatItem(v any) string {
	switch x := v.(type) {
	case rune:
		return formatRune(x)
	case byte:
		return formatRune(rune(x))
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatRune(r rune) string {
	if unicode.IsGraphic(r) && r != '`' {
		return string(r)
	}
	return strconv.QuoteRune(r)
}

func formatRange(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case []rune:
		return string(x)
	default:
		return fmt.Sprint(v)
	}
}

// ErrorKind distinguishes the variants of Error.
type ErrorKind uint8

const (
	KindUnexpected ErrorKind = iota
	KindExpected
	KindMessage
	KindOther
)

// Error is one cause of a parse failure.
type Error struct {
	Kind ErrorKind
	Info Info
	Err  error // set for KindOther
}

func NewUnexpected(info Info) Error {
	return Error{Kind: KindUnexpected, Info: info}
}

func NewExpected(info Info) Error {
	return Error{Kind: KindExpected, Info: info}
}

func NewMessage(info Info) Error {
	return Error{Kind: KindMessage, Info: info}
}

// NewOther wraps an error raised outside the grammar, such as a read failure
// or a rejected conversion.
func NewOther(err error) Error {
	return Error{Kind: KindOther, Err: err}
}

// EndOfInput is the error reported when input runs out.
func EndOfInput() Error {
	return NewUnexpected(TextInfo("end of input"))
}

func (e Error) String() string {
	switch e.Kind {
	case KindUnexpected:
		return fmt.Sprintf("Unexpected `%s`", e.Info)
	case KindExpected:
		return fmt.Sprintf("Expected `%s`", e.Info)
	case KindOther:
		if e.Err == nil {
			return "<nil>"
		}
		return e.Err.Error()
	default:
		return e.Info.String()
	}
}

func (e Error) Equal(other Error) bool {
	if e.Kind != other.Kind {
		return false
	}
	if e.Kind == KindOther {
		return errors.Is(e.Err, other.Err) || (e.Err != nil && other.Err != nil && e.Err.Error() == other.Err.Error())
	}
	return e.Info.Equal(other.Info)
}

// ParseError collects every cause reported at one position.
type ParseError struct {
	Position position.Position
	Errors   []Error
}

// NewParseError returns a ParseError with a single cause.
func NewParseError(pos position.Position, err Error) *ParseError {
	return &ParseError{Position: pos, Errors: []Error{err}}
}

// EmptyParseError returns a ParseError with no causes yet.
func EmptyParseError(pos position.Position) *ParseError {
	return &ParseError{Position: pos}
}

// ParseErrorFrom returns a ParseError with errs, dropping duplicates.
func ParseErrorFrom(pos position.Position, errs ...Error) *ParseError {
	e := EmptyParseError(pos)
	for _, err := range errs {
		e.AddError(err)
	}
	return e
}

// EndOfInputError reports that input ended at pos.
func EndOfInputError(pos position.Position) *ParseError {
	return NewParseError(pos, EndOfInput())
}

// streamError converts an error returned by a stream into a ParseError.
func streamError(pos position.Position, err error) *ParseError {
	if errors.Is(err, stream.ErrEndOfInput) {
		return EndOfInputError(pos)
	}
	return NewParseError(pos, NewOther(err))
}

// AddError appends err unless an equal cause is already present.
func (e *ParseError) AddError(err Error) {
	if slices.ContainsFunc(e.Errors, err.Equal) {
		return
	}
	e.Errors = append(e.Errors, err)
}

// AddMessage appends a free-form message.
func (e *ParseError) AddMessage(msg string) {
	e.AddError(NewMessage(TextInfo(msg)))
}

// SetExpected replaces every Expected cause with info.
func (e *ParseError) SetExpected(info Info) {
	e.Errors = slices.DeleteFunc(e.Errors, func(err Error) bool {
		return err.Kind == KindExpected
	})
	e.AddError(NewExpected(info))
}

// Merge combines two failures. Causes at the same position are united in
// order; otherwise the failure at the later position wins. Neither operand
// is modified.
func (e *ParseError) Merge(other *ParseError) *ParseError {
	if other == nil {
		return e
	}
	if e == nil {
		return other
	}

	switch c := comparePositions(e.Position, other.Position); {
	case c < 0:
		return other
	case c > 0:
		return e
	}

	merged := &ParseError{Position: e.Position, Errors: slices.Clone(e.Errors)}
	for _, err := range other.Errors {
		merged.AddError(err)
	}
	return merged
}

func comparePositions(a, b position.Position) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(b)
}

// IsEndOfInput reports whether the failure was caused by running out of input.
func (e *ParseError) IsEndOfInput() bool {
	return slices.ContainsFunc(e.Errors, EndOfInput().Equal)
}

// Expected returns the Expected causes in order.
func (e *ParseError) Expected() []Info {
	var infos []Info
	for _, err := range e.Errors {
		if err.Kind == KindExpected {
			infos = append(infos, err.Info)
		}
	}
	return infos
}

// Error renders the failure on several lines: position, unexpected input,
// the expected alternatives, then messages.
func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parse error at %v", e.Position)

	for _, err := range e.Errors {
		if err.Kind == KindUnexpected {
			b.WriteString("\n")
			b.WriteString(err.String())
		}
	}

	expected := e.Expected()
	for i, info := range expected {
		switch {
		case i == 0:
			b.WriteString("\nExpected")
		case i < len(expected)-1:
			b.WriteString(",")
		default:
			b.WriteString(" or")
		}
		fmt.Fprintf(&b, " `%s`", info)
	}

	for _, err := range e.Errors {
		if err.Kind == KindMessage || err.Kind == KindOther {
			b.WriteString("\n")
			b.WriteString(err.String())
		}
	}

	return b.String()
}

func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

// Unwrap exposes the errors wrapped by KindOther causes.
func (e *ParseError) Unwrap() []error {
	var errs []error
	for _, err := range e.Errors {
		if err.Kind == KindOther && err.Err != nil {
			errs = append(errs, err.Err)
		}
	}
	return errs
}

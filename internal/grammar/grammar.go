// Package grammar holds the built-in grammars used by the combine command.
//
// Grammars only use item-at-a-time parsers, so they run unchanged over text
// held in memory and over buffered readers.
package grammar

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jacoelho/combine/parse"
	"github.com/jacoelho/combine/stream"
)

// DefaultLookahead is the number of runes kept for backtracking when parsing
// from a reader.
const DefaultLookahead = 64

var ErrUnknownGrammar = errors.New("unknown grammar")

// Grammar is a named parser producing plain Go values: maps, slices,
// strings, float64, bool and nil.
type Grammar struct {
	Name        string
	Description string
	Parser      parse.Parser[rune, any]
}

var builtins = sync.OnceValue(func() map[string]Grammar {
	all := []Grammar{
		{Name: "json", Description: "JSON values (RFC 8259)", Parser: JSON()},
		{Name: "arith", Description: "arithmetic expressions over float64 with + - * / ^", Parser: Arith()},
		{Name: "csv", Description: "comma separated records (RFC 4180)", Parser: CSV()},
		{Name: "uuid", Description: "canonical 8-4-4-4-12 UUIDs", Parser: UUID()},
		{Name: "kv", Description: "key = value lines with # comments", Parser: KV()},
	}

	m := make(map[string]Grammar, len(all))
	for _, g := range all {
		m[g.Name] = g
	}
	return m
})

// Lookup returns the grammar registered under name.
func Lookup(name string) (Grammar, error) {
	g, ok := builtins()[name]
	if !ok {
		return Grammar{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownGrammar, name, strings.Join(Names(), ", "))
	}
	return g, nil
}

// Names returns the registered grammar names in order.
func Names() []string {
	names := make([]string, 0, len(builtins()))
	for name := range builtins() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns the registered grammars ordered by name.
func All() []Grammar {
	all := make([]Grammar, 0, len(builtins()))
	for _, name := range Names() {
		all = append(all, builtins()[name])
	}
	return all
}

// ParseString parses the whole of input.
func (g Grammar) ParseString(input string) (any, error) {
	return parse.ParseAll(g.Parser, stream.Text(input))
}

// ParseReader parses everything r yields, keeping lookahead runes for
// backtracking.
func (g Grammar) ParseReader(r io.Reader, lookahead int) (any, error) {
	src := stream.FromReader(r)
	defer src.Close()

	buf := stream.NewBuffered[rune](src, lookahead)
	return parse.ParseAll(g.Parser, buf.AsStream())
}

func asAny[O any](p parse.Parser[rune, O]) parse.Parser[rune, any] {
	return parse.Map(p, func(v O) any { return v })
}

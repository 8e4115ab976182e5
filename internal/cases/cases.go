// Package cases provides the YAML model for grammar test cases.
package cases

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/jacoelho/combine/internal/grammar"
	"github.com/jacoelho/combine/internal/pathing"
	"github.com/jacoelho/combine/internal/predicate"
)

// ErrInvalidCase is the sentinel error for malformed case files.
var ErrInvalidCase = errors.New("invalid case")

// File is a decoded case file.
type File struct {
	Path  string
	Cases []Case
}

// Case runs one input through one grammar.
type Case struct {
	Name      string   `yaml:"name"`
	Grammar   string   `yaml:"grammar"`
	Input     *string  `yaml:"input,omitempty"`
	InputFile string   `yaml:"input_file,omitempty"` // relative to the case file
	Expect    Expect   `yaml:"expect,omitempty"`
	Asserts   []Assert `yaml:"asserts,omitempty"`
}

// Expect describes the expected parse outcome.
type Expect struct {
	OK     *bool  `yaml:"ok,omitempty"`
	Error  string `yaml:"error,omitempty"`  // substring of the rendered error
	Line   int    `yaml:"line,omitempty"`   // 1-based
	Column int    `yaml:"column,omitempty"` // 1-based
}

// Success reports whether the case expects the parse to succeed.
func (e Expect) Success() bool {
	return e.OK == nil || *e.OK
}

// Assert applies a predicate to the values a JSONPath selects from the
// parse output.
type Assert struct {
	Path      string
	Predicate predicate.Predicate
}

// UnmarshalYAML decodes an assert with the predicate keys inline:
//
//	path: $.a
//	op: equals
//	value: 1
func (a *Assert) UnmarshalYAML(node ast.Node) error {
	mapNode, ok := node.(*ast.MappingNode)
	if !ok {
		return fmt.Errorf("%w: assert: expected mapping node", ErrInvalidCase)
	}

	predNode := &ast.MappingNode{}
	for _, valNode := range mapNode.Values {
		kNode, ok := valNode.Key.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("%w: assert: key must be string", ErrInvalidCase)
		}

		if kNode.Value == "path" {
			stringVal, ok := valNode.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: assert: path value must be string", ErrInvalidCase)
			}
			a.Path = stringVal.Value
			continue
		}
		predNode.Values = append(predNode.Values, valNode)
	}

	if a.Path == "" {
		return fmt.Errorf("%w: assert: missing required 'path' field", ErrInvalidCase)
	}
	if err := a.Predicate.UnmarshalYAML(predNode); err != nil {
		return fmt.Errorf("%w: assert %s: %v", ErrInvalidCase, a.Path, err)
	}

	return nil
}

// Parse decodes a YAML list of cases.
func Parse(r io.Reader) ([]Case, error) {
	decoder := yaml.NewDecoder(r)
	var cs []Case

	if err := decoder.Decode(&cs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrInvalidCase, err)
	}

	return cs, nil
}

// Load reads and validates a case file. Input files are resolved relative
// to the directory of path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range cs {
		if cs[i].Name == "" {
			cs[i].Name = fmt.Sprintf("case %d", i+1)
		}
		cs[i].InputFile = pathing.ResolveInputFile(cs[i].InputFile, path)
		if err := cs[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return &File{Path: path, Cases: cs}, nil
}

// Validate checks the case is runnable.
func (c *Case) Validate() error {
	var errs []error

	if _, err := grammar.Lookup(c.Grammar); err != nil {
		errs = append(errs, err)
	}

	switch {
	case c.Input == nil && c.InputFile == "":
		errs = append(errs, errors.New("one of input or input_file is required"))
	case c.Input != nil && c.InputFile != "":
		errs = append(errs, errors.New("input and input_file are mutually exclusive"))
	}

	if c.Expect.Success() {
		if c.Expect.Error != "" || c.Expect.Line != 0 || c.Expect.Column != 0 {
			errs = append(errs, errors.New("expect.error, expect.line and expect.column require ok: false"))
		}
	} else if len(c.Asserts) > 0 {
		errs = append(errs, errors.New("asserts require a successful parse"))
	}
	if c.Expect.Line < 0 || c.Expect.Column < 0 {
		errs = append(errs, errors.New("expect.line and expect.column must be positive"))
	}

	for i, a := range c.Asserts {
		if err := predicate.ValidatePath(a.Path); err != nil {
			errs = append(errs, fmt.Errorf("asserts[%d]: %w", i, err))
		}
		if err := a.Predicate.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("asserts[%d]: %w", i, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidCase, c.Name, strings.Join(msgs, "; "))
}

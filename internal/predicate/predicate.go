// Package predicate evaluates assertions against parse outputs.
package predicate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/theory/jsonpath"
)

const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpRegex     = "regex"
	OpContains  = "contains"
	OpExists    = "exists"
	OpLength    = "length"
)

var ErrInvalidPredicate = errors.New("invalid predicate")

// Predicate is an operation and its optional operand.
type Predicate struct {
	Operation string
	Value     any
	HasValue  bool
}

// UnmarshalYAML decodes a predicate. The syntax is strict:
//
//	op: <operator>
//	value: <any>   # optional only for "exists"
func (p *Predicate) UnmarshalYAML(node ast.Node) error {
	mapNode, ok := node.(*ast.MappingNode)
	if !ok {
		return errors.New("predicate must be a mapping")
	}
	if len(mapNode.Values) == 0 {
		return errors.New("predicate mapping is empty")
	}

	for _, valNode := range mapNode.Values {
		key, ok := valNode.Key.(*ast.StringNode)
		if !ok {
			return errors.New("predicate key must be a string")
		}

		switch key.Value {
		case "op":
			opNode, ok := valNode.Value.(*ast.StringNode)
			if !ok {
				return errors.New("op value must be a string")
			}
			op := strings.TrimSpace(opNode.Value)
			if op == "" {
				return errors.New("op value must not be empty")
			}
			p.Operation = op
		case "value":
			value, err := nodeToValue(valNode.Value)
			if err != nil {
				return fmt.Errorf("failed to parse value: %w", err)
			}
			p.Value = value
			p.HasValue = true
		default:
			return fmt.Errorf("unsupported predicate key %q: use 'op' and optional 'value'", key.Value)
		}
	}

	if p.Operation == "" {
		return errors.New("predicate must specify an op")
	}

	return nil
}

// nodeToValue extracts plain values from YAML nodes. Integers become int64.
func nodeToValue(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return v, nil
		case uint64:
			return int64(v), nil
		}
		return nil, fmt.Errorf("unexpected integer node value type: %T", n.Value)
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.NullNode:
		return nil, nil
	case *ast.SequenceNode:
		result := make([]any, 0, len(n.Values))
		for i, item := range n.Values {
			val, err := nodeToValue(item)
			if err != nil {
				return nil, fmt.Errorf("invalid value at index %d: %w", i, err)
			}
			result = append(result, val)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported node type: %T", node)
	}
}

// Validate checks the operation and its operand.
func (p *Predicate) Validate() error {
	switch p.Operation {
	case OpRegex:
		pattern, ok := p.Value.(string)
		if !ok {
			return fmt.Errorf("%w: regex pattern must be a string, got %T", ErrInvalidPredicate, p.Value)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: invalid regex pattern %q: %v", ErrInvalidPredicate, pattern, err)
		}
	case OpContains:
		if _, ok := p.Value.(string); !ok {
			return fmt.Errorf("%w: contains value must be a string, got %T", ErrInvalidPredicate, p.Value)
		}
	case OpLength:
		if _, ok := toLength(p.Value); !ok {
			return fmt.Errorf("%w: length value must be an integer, got %T", ErrInvalidPredicate, p.Value)
		}
	case OpEquals, OpNotEquals:
		if !p.HasValue {
			return fmt.Errorf("%w: %s requires a value", ErrInvalidPredicate, p.Operation)
		}
	case OpExists:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidPredicate, p.Operation)
	}
	return nil
}

// Evaluate reports whether input satisfies the predicate.
func (p *Predicate) Evaluate(input any) (bool, error) {
	switch p.Operation {
	case OpEquals:
		return compareValues(input, p.Value), nil
	case OpNotEquals:
		return !compareValues(input, p.Value), nil
	case OpRegex:
		pattern, ok := p.Value.(string)
		if !ok {
			return false, fmt.Errorf("regex predicate expects string pattern, got %T", p.Value)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return re.MatchString(convertToString(input)), nil
	case OpContains:
		return evaluateContains(p.Value, input)
	case OpExists:
		return input != nil, nil
	case OpLength:
		want, ok := toLength(p.Value)
		if !ok {
			return false, fmt.Errorf("length predicate expects integer value, got %T", p.Value)
		}
		got, ok := getLength(input)
		if !ok {
			return false, fmt.Errorf("length predicate expects array, map or string input, got %T", input)
		}
		return got == want, nil
	default:
		return false, fmt.Errorf("unsupported predicate operation: %q", p.Operation)
	}
}

// EvaluatePath selects path from data and reports whether any selected value
// satisfies the predicate. Values that cannot be evaluated are skipped. With
// no selection only not_equals holds.
func (p *Predicate) EvaluatePath(data any, path string) (bool, error) {
	selected, err := Select(data, path)
	if err != nil {
		return false, err
	}
	if len(selected) == 0 {
		return p.Operation == OpNotEquals, nil
	}

	for _, value := range selected {
		match, err := p.Evaluate(value)
		if err != nil {
			continue
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// Select returns the values path selects from data.
func Select(data any, path string) ([]any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: JSONPath expression is empty", ErrInvalidPredicate)
	}
	p, err := jsonpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrInvalidPredicate, path, err)
	}
	return p.Select(data), nil
}

// ValidatePath checks that path is a JSONPath expression.
func ValidatePath(path string) error {
	if _, err := Select(nil, path); err != nil {
		return err
	}
	return nil
}

func evaluateContains(value, input any) (bool, error) {
	want, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("contains predicate expects string value, got %T", value)
	}

	switch v := input.(type) {
	case string:
		return strings.Contains(v, want), nil
	case []any:
		for _, item := range v {
			if compareValues(item, want) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("contains predicate expects string or array input, got %T", input)
	}
}

func convertToString(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toLength(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// compareValues compares with numeric coercion: YAML operands decode to
// int64 or float64 while grammar outputs hold float64.
func compareValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// getLength returns the length of a string (in runes), slice, array or map.
func getLength(input any) (int, bool) {
	if input == nil {
		return 0, false
	}
	if v, ok := input.(string); ok {
		return len([]rune(v)), true
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

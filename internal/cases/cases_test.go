package cases

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jacoelho/combine/internal/predicate"
)

func ptr[T any](v T) *T { return &v }

func TestParse(t *testing.T) {
	t.Parallel()

	input := `
- name: nested
  grammar: json
  input: '{"a": [1, 2]}'
  asserts:
    - path: $.a[1]
      op: equals
      value: 2
    - path: $.a
      op: length
      value: 2
- name: broken
  grammar: arith
  input: "1 +"
  expect:
    ok: false
    error: Expected
    line: 1
    column: 4
`

	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Case{
		{
			Name:    "nested",
			Grammar: "json",
			Input:   ptr(`{"a": [1, 2]}`),
			Asserts: []Assert{
				{Path: "$.a[1]", Predicate: predicate.Predicate{Operation: "equals", Value: int64(2), HasValue: true}},
				{Path: "$.a", Predicate: predicate.Predicate{Operation: "length", Value: int64(2), HasValue: true}},
			},
		},
		{
			Name:    "broken",
			Grammar: "arith",
			Input:   ptr("1 +"),
			Expect:  Expect{OK: ptr(false), Error: "Expected", Line: 1, Column: 4},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "assert without path", input: "- grammar: json\n  input: '1'\n  asserts:\n    - op: exists\n"},
		{name: "assert without op", input: "- grammar: json\n  input: '1'\n  asserts:\n    - path: $\n"},
		{name: "not a list", input: "grammar: json\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse(strings.NewReader(tt.input)); !errors.Is(err, ErrInvalidCase) {
				t.Fatalf("Parse() error = %v, want ErrInvalidCase", err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Parse() = %v, want no cases", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	exists := predicate.Predicate{Operation: predicate.OpExists}

	tests := []struct {
		name    string
		c       Case
		wantErr string
	}{
		{name: "valid inline", c: Case{Name: "a", Grammar: "json", Input: ptr("")}},
		{name: "valid file", c: Case{Name: "a", Grammar: "csv", InputFile: "x.csv"}},
		{name: "unknown grammar", c: Case{Name: "a", Grammar: "xml", Input: ptr("")}, wantErr: "unknown grammar"},
		{name: "no input", c: Case{Name: "a", Grammar: "json"}, wantErr: "one of input or input_file"},
		{name: "both inputs", c: Case{Name: "a", Grammar: "json", Input: ptr(""), InputFile: "x"}, wantErr: "mutually exclusive"},
		{
			name:    "error expectation on success",
			c:       Case{Name: "a", Grammar: "json", Input: ptr(""), Expect: Expect{Error: "x"}},
			wantErr: "require ok: false",
		},
		{
			name:    "asserts on failure",
			c:       Case{Name: "a", Grammar: "json", Input: ptr(""), Expect: Expect{OK: ptr(false)}, Asserts: []Assert{{Path: "$", Predicate: exists}}},
			wantErr: "asserts require a successful parse",
		},
		{
			name:    "bad path",
			c:       Case{Name: "a", Grammar: "json", Input: ptr(""), Asserts: []Assert{{Path: "$[", Predicate: exists}}},
			wantErr: "asserts[0]",
		},
		{
			name:    "bad predicate",
			c:       Case{Name: "a", Grammar: "json", Input: ptr(""), Asserts: []Assert{{Path: "$", Predicate: predicate.Predicate{Operation: "near"}}}},
			wantErr: "unknown operation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidCase) {
				t.Fatalf("Validate() error = %v, want ErrInvalidCase", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	caseFile := filepath.Join(dir, "cases.yaml")
	content := "- grammar: csv\n  input_file: data/rows.csv\n- grammar: uuid\n  input: 123e4567-e89b-12d3-a456-426614174000\n"
	if err := os.WriteFile(caseFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(caseFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Path != caseFile {
		t.Fatalf("Path = %q, want %q", f.Path, caseFile)
	}
	if len(f.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(f.Cases))
	}
	if got, want := f.Cases[0].InputFile, filepath.Join(dir, "data", "rows.csv"); got != want {
		t.Fatalf("InputFile = %q, want %q", got, want)
	}
	if f.Cases[0].Name != "case 1" || f.Cases[1].Name != "case 2" {
		t.Fatalf("default names = %q, %q", f.Cases[0].Name, f.Cases[1].Name)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	caseFile := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(caseFile, []byte("- name: x\n  grammar: nope\n  input: a\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(caseFile)
	if !errors.Is(err, ErrInvalidCase) {
		t.Fatalf("Load() error = %v, want ErrInvalidCase", err)
	}
	if !strings.Contains(err.Error(), caseFile) {
		t.Fatalf("Load() error %q does not name the file", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}

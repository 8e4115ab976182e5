package runner

import (
	"fmt"

	"github.com/jacoelho/combine/internal/cases"
)

// executeAssertions validates all assertions against the parse output.
func executeAssertions(asserts []cases.Assert, output any) error {
	for i, a := range asserts {
		ok, err := a.Predicate.EvaluatePath(output, a.Path)
		if err != nil {
			return fmt.Errorf("%w: assert %d (%s): %v", ErrCaseFailed, i, a.Path, err)
		}
		if !ok {
			return fmt.Errorf("%w: assert %d failed: %s %s %v", ErrCaseFailed, i, a.Path, a.Predicate.Operation, a.Predicate.Value)
		}
	}
	return nil
}

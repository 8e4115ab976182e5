// Package formatter defines how run summaries are reported.
package formatter

import (
	"github.com/jacoelho/combine/internal/results"
)

// Formatter reports one summary, or several when cases were repeated.
// Implementations decide the output device.
type Formatter interface {
	Format(summaries ...*results.Summary) error
}

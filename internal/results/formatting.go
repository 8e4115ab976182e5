package results

import (
	"fmt"
	"strings"
)

// OutputFormat represents the output format for results.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

func (f OutputFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// ParseFormat maps a format name to an OutputFormat.
func ParseFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported output format %q: use text or json", name)
	}
}

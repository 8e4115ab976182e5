// Package pathing resolves file references written inside case files.
package pathing

import (
	"path/filepath"
	"strings"
)

// NormalizeInputPath trims a path read from a case file.
func NormalizeInputPath(path string) string {
	return strings.TrimSpace(path)
}

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics, so case files stay portable.
func IsAbsoluteLike(path string) bool {
	path = NormalizeInputPath(path)
	switch {
	case path == "":
		return false
	case filepath.IsAbs(path):
		return true
	case strings.HasPrefix(path, `\\`), strings.HasPrefix(path, "/"):
		return true
	case len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/'):
		return true
	}
	return false
}

// ResolveInputFile joins a relative input_file onto the directory of the
// case file that names it. Absolute-like paths are returned as written.
func ResolveInputFile(inputFile string, caseFile string) string {
	inputFile = NormalizeInputPath(inputFile)
	if inputFile == "" || IsAbsoluteLike(inputFile) {
		return inputFile
	}

	return filepath.Join(filepath.Dir(caseFile), inputFile)
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

// Package testhelper holds small helpers shared by the package tests.
package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	leadingSpace = regexp.MustCompile(`^\s+`)
	leadingTabs  = regexp.MustCompile(`^(\t+)`)
)

func expandTabs(match string) string {
	return strings.Repeat("  ", len(match))
}

// TrimIndent removes the indentation of the first content line from every
// line of a raw string literal and drops the leading newline. Remaining tabs
// at the start of a line become two spaces each, which keeps YAML valid.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingSpace.FindString(lines[1])

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, expandTabs)
	}

	return strings.Join(lines[1:], "\n")
}

package testhelper

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
)

// GetCaller returns " (file.go:line)" for the line that called it, so table
// entries can be traced back from a failing subtest name.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return " (unknown)"
	}

	return fmt.Sprintf(" (%s:%d)", filepath.Base(file), line)
}

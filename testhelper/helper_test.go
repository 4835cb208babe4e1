package testhelper

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	got := TrimIndent(t, `
		a:
			- b
		c`)

	assert.Equal(t, "a:\n  - b\nc", got)
	assert.Equal(t, "single", TrimIndent(t, "single"))
}

func TestGetCaller(t *testing.T) {
	got := GetCaller(t)
	assert.True(t, strings.HasPrefix(got, " (helper_test.go:"), got)
}

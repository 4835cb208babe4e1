package gogen

import (
	"bytes"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/puzzlegen/programdoc"
	"github.com/shibukawa/puzzlegen/sexp"
)

func document(name, description string, program sexp.Node) *programdoc.Document {
	return &programdoc.Document{Name: name, Description: description, Program: program}
}

func TestGenerate(t *testing.T) {
	first, err := sexp.Args(0)
	assert.NoError(t, err)

	docs := []*programdoc.Document{
		document("pay_to_first", "Returns the first argument.\n\nSecond paragraph.", sexp.MakeList(first)),
		document("always_fail", "", sexp.Fail(sexp.NewAtom("0x01"))),
	}

	var buf bytes.Buffer

	err = Generate(&buf, "puzzles", docs)
	assert.NoError(t, err)

	expected := `// Code generated by puzzlegen. DO NOT EDIT.

package puzzles

// AlwaysFailProgram is the always_fail program.
const AlwaysFailProgram = "(x 0x01)"

// PayToFirstProgram is the pay_to_first program.
//
// Returns the first argument.
//
// Second paragraph.
const PayToFirstProgram = "(c 2 (q ()))"

// Programs maps document names to their rendered programs.
var Programs = map[string]string{
	"always_fail":  AlwaysFailProgram,
	"pay_to_first": PayToFirstProgram,
}
`
	assert.Equal(t, expected, buf.String())

	_, err = parser.ParseFile(token.NewFileSet(), "puzzles.go", buf.Bytes(), parser.ParseComments)
	assert.NoError(t, err)
}

func TestGenerate_FromDocuments(t *testing.T) {
	docs, err := programdoc.ParseDir(filepath.Join("..", "..", "programdoc", "testdata", "puzzles"))
	assert.NoError(t, err)

	var buf bytes.Buffer

	err = New(docs, WithConfig("", "./internal/clvm-puzzles")).Generate(&buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "// Code generated by puzzlegen. DO NOT EDIT.\n\npackage puzzles\n"), out)
	assert.Contains(t, out, `const HashPairProgram = "(sha256 2 6)"`)
	assert.Contains(t, out, `const CurryAmountProgram = "((c (q 6) (c (q 1000) 1)))"`)
	assert.Contains(t, out, `const PayToFirstProgram = "((c (q (i (= 2 (q 0)) (q (x)) (q (c 6 (q ()))))) 1))"`)
}

func TestGenerate_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := Generate(&buf, "empty", nil)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "var Programs = map[string]string{}")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
		docs []*programdoc.Document
	}{
		{
			name: "invalid package name",
			pkg:  "my-puzzles",
			docs: nil,
		},
		{
			name: "duplicate identifier",
			pkg:  "puzzles",
			docs: []*programdoc.Document{
				document("pay_to", "", sexp.Nil()),
				document("pay-to", "", sexp.Nil()),
			},
		},
		{
			name: "identifier starting with a digit",
			pkg:  "puzzles",
			docs: []*programdoc.Document{document("2of3", "", sexp.Nil())},
		},
		{
			name: "missing program",
			pkg:  "puzzles",
			docs: []*programdoc.Document{document("empty", "", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := Generate(&buf, tt.pkg, tt.docs)
			assert.IsError(t, err, ErrGenerateGoCode)
			assert.Equal(t, 0, buf.Len())
		})
	}
}

func TestConstantName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "pay_to_first", expected: "PayToFirstProgram"},
		{name: "cc_parent", expected: "CCParentProgram"},
		{name: "sha-tree hash", expected: "SHATreeHashProgram"},
		{name: "program", expected: "ProgramProgram"},
		{name: "", expected: "Program"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstantName(tt.name))
		})
	}
}

func TestInferPackageNameFromPath(t *testing.T) {
	tests := []struct {
		outputPath string
		expected   string
	}{
		{outputPath: "./internal/puzzles", expected: "puzzles"},
		{outputPath: "./pkg/clvm-puzzles", expected: "puzzles"},
		{outputPath: "./gen/2024", expected: "pkg_2024"},
		{outputPath: "./gen/v1.2/", expected: "v1_2"},
		{outputPath: "", expected: "puzzles"},
		{outputPath: ".", expected: "puzzles"},
	}

	for _, tt := range tests {
		t.Run(tt.outputPath, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferPackageNameFromPath(tt.outputPath))
		})
	}
}

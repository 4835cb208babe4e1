package programdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/puzzlegen/testhelper"
)

func TestParse(t *testing.T) {
	src := testhelper.TrimIndent(t, `
		---
		name: curry
		version: 2
		---
		# Curried Call

		## Description

		Runs the program
		with a curried value.

		Second paragraph.

		## Program

		`+"```yaml"+`
		eval: {arg: 0}
		`+"```"+`

		## Expected

		`+"```"+`
		((c (q 2) 1))
		`+"```")

	doc, err := Parse(strings.NewReader(src))
	assert.NoError(t, err)

	assert.Equal(t, "curry", doc.Name)
	assert.Equal(t, "Curried Call", doc.Title)
	assert.Equal(t, "Runs the program with a curried value.\n\nSecond paragraph.", doc.Description)
	assert.Equal(t, "2", fmt.Sprint(doc.Metadata["version"]))
	assert.Equal(t, "eval: {arg: 0}", doc.ProgramSource)
	assert.Equal(t, 17, doc.ProgramLine)
	assert.Equal(t, "((c (q 2) 1))", doc.Expected)
	assert.Equal(t, 23, doc.ExpectedLine)
	assert.Equal(t, "((c (q 2) 1))", doc.Rendered())
	assert.NoError(t, doc.Check())
}

func TestParse_NameFromTitle(t *testing.T) {
	src := testhelper.TrimIndent(t, `
		# Pay To: First Argument!

		## Overview

		Text.

		## Program

		`+"```yml"+`
		arg: 0
		`+"```")

	doc, err := Parse(strings.NewReader(src))
	assert.NoError(t, err)
	assert.Equal(t, "pay_to_first_argument", doc.Name)
	assert.Equal(t, 0, len(doc.Metadata))
	assert.Equal(t, "", doc.Expected)
	assert.Equal(t, 10, doc.ProgramLine)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "missing description" + testhelper.GetCaller(t),
			src:     "# T\n\n## Program\n\n```yaml\narg: 0\n```\n",
			wantErr: ErrMissingRequiredSection,
		},
		{
			name:    "missing program" + testhelper.GetCaller(t),
			src:     "# T\n\n## Description\n\ntext\n",
			wantErr: ErrMissingRequiredSection,
		},
		{
			name:    "program without yaml block" + testhelper.GetCaller(t),
			src:     "# T\n\n## Description\n\ntext\n\n## Program\n\n```clvm\n(q 1)\n```\n",
			wantErr: ErrMissingProgramBlock,
		},
		{
			name:    "unterminated front matter" + testhelper.GetCaller(t),
			src:     "---\nname: x\n# T\n",
			wantErr: ErrInvalidFrontMatter,
		},
		{
			name:    "broken front matter" + testhelper.GetCaller(t),
			src:     "---\nname: [x\n---\n# T\n",
			wantErr: ErrInvalidFrontMatter,
		},
		{
			name:    "invalid program" + testhelper.GetCaller(t),
			src:     "# T\n\n## Description\n\ntext\n\n## Program\n\n```yaml\ncons: [1]\n```\n",
			wantErr: ErrInvalidProgram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.IsError(t, err, tt.wantErr)
		})
	}
}

func TestParse_InvalidProgramReportsLine(t *testing.T) {
	src := "# T\n\n## Description\n\ntext\n\n## Program\n\n```yaml\ncons: [1]\n```\n"

	_, err := Parse(strings.NewReader(src))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 10")
	assert.Contains(t, err.Error(), "$.cons")
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "puzzles", "pay_to_first.md"))
	assert.NoError(t, err)

	assert.Equal(t, "pay_to_first", doc.Name)
	assert.Equal(t, "Pay To First", doc.Title)
	assert.Equal(t, "Fails when the first argument is zero, otherwise returns the second argument in a list.", doc.Description)
	assert.Equal(t, 14, doc.ProgramLine)
	assert.Equal(t, 23, doc.ExpectedLine)
	assert.Equal(t, "((c (q (i (= 2 (q 0)) (q (x)) (q (c 6 (q ()))))) 1))", doc.Rendered())
	assert.NoError(t, doc.Check())
}

func TestParseFile_NameFromFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Spend-Bundle.md")

	err := os.WriteFile(path, []byte("## Description\n\ntext\n\n## Program\n\n```yaml\narg: 0\n```\n"), 0o644)
	assert.NoError(t, err)

	doc, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "spend_bundle", doc.Name)
	assert.Equal(t, path, doc.Path)
}

func TestParseFile_ErrorMentionsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.md")

	err := os.WriteFile(path, []byte("# Broken\n"), 0o644)
	assert.NoError(t, err)

	_, err = ParseFile(path)
	assert.IsError(t, err, ErrMissingRequiredSection)
	assert.Contains(t, err.Error(), path)

	_, err = ParseFile(filepath.Join(dir, "missing.md"))
	assert.IsError(t, err, os.ErrNotExist)
}

func TestParseDir(t *testing.T) {
	docs, err := ParseDir(filepath.Join("testdata", "puzzles"))
	assert.NoError(t, err)

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}

	assert.Equal(t, []string{"hash_pair", "curry_amount", "pay_to_first"}, names)

	for _, doc := range docs {
		assert.NoError(t, doc.Check(), doc.Path)
	}

	assert.Equal(t, "(sha256 2 6)", docs[0].Expected)
	assert.Equal(t, "Hashes the first two arguments together.", docs[0].Description)
	assert.Equal(t, "", docs[1].Expected)
	assert.Equal(t, "((c (q 6) (c (q 1000) 1)))", docs[1].Rendered())
}

func TestCheck_Mismatch(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "puzzles", "pay_to_first.md"))
	assert.NoError(t, err)

	doc.Expected = "(q 1)"

	err = doc.Check()
	assert.IsError(t, err, ErrExpectationMismatch)
	assert.Contains(t, err.Error(), "line 23")
}

func TestCountFrontMatterLines(t *testing.T) {
	assert.Equal(t, 0, countFrontMatterLines("# Title\n"))
	assert.Equal(t, 3, countFrontMatterLines("---\nname: x\n---\n# Title\n"))
	assert.Equal(t, 0, countFrontMatterLines("---\nname: x\n"))
	assert.Equal(t, 3, countFrontMatterLines("--- \nname: x\n---\t\n# Title\n"))
	assert.Equal(t, 2, countFrontMatterLines("---\r\n---\r\n# Title\n"))
}

func TestParse_FrontMatterDelimiterWithTrailingBlanks(t *testing.T) {
	src := "--- \nname: spaced\n---  \n# T\n\n## Description\n\ntext\n\n## Program\n\n```yaml\narg: 0\n```\n"

	doc, err := Parse(strings.NewReader(src))
	assert.NoError(t, err)
	assert.Equal(t, "spaced", doc.Name)
	assert.Equal(t, "T", doc.Title)
	assert.Equal(t, 13, doc.ProgramLine)
}

// Package gogen writes the rendered programs of program documents into a Go
// source file as string constants.
package gogen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shibukawa/puzzlegen/programdoc"
)

// Generator generates Go constants from program documents
type Generator struct {
	PackageName string
	Documents   []*programdoc.Document
}

// Option is a function that configures Generator
type Option func(*Generator)

// WithPackageName sets the package name for generated code
func WithPackageName(name string) Option {
	return func(g *Generator) {
		g.PackageName = name
	}
}

// WithConfig sets the package name from the generator configuration,
// inferring it from the output path when empty
func WithConfig(packageName, outputPath string) Option {
	return func(g *Generator) {
		if packageName == "" {
			packageName = InferPackageNameFromPath(outputPath)
		}

		g.PackageName = packageName
	}
}

// New creates a new Generator
func New(docs []*programdoc.Document, opts ...Option) *Generator {
	g := &Generator{
		PackageName: "puzzles",
		Documents:   docs,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate is a shorthand for New(docs, WithPackageName(pkg)).Generate(w)
func Generate(w io.Writer, pkg string, docs []*programdoc.Document) error {
	return New(docs, WithPackageName(pkg)).Generate(w)
}

type constantData struct {
	Name    string
	Ident   string
	Comment []string
	Literal string
}

type fileData struct {
	PackageName string
	Constants   []constantData
}

// Generate writes the gofmt-formatted source to w
func (g *Generator) Generate(w io.Writer) error {
	if !isValidGoIdentifier(g.PackageName) {
		return fmt.Errorf("%w: invalid package name '%s'", ErrGenerateGoCode, g.PackageName)
	}

	docs := append([]*programdoc.Document(nil), g.Documents...)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})

	data := fileData{PackageName: g.PackageName}
	seen := make(map[string]string, len(docs))

	for _, doc := range docs {
		if doc.Program == nil {
			return fmt.Errorf("%w: document '%s' has no program", ErrGenerateGoCode, doc.Name)
		}

		ident := ConstantName(doc.Name)
		if !isValidGoIdentifier(ident) {
			return fmt.Errorf("%w: cannot derive an identifier from '%s'", ErrGenerateGoCode, doc.Name)
		}

		if other, ok := seen[ident]; ok {
			return fmt.Errorf("%w: '%s' and '%s' both map to %s", ErrGenerateGoCode, other, doc.Name, ident)
		}

		seen[ident] = doc.Name

		data.Constants = append(data.Constants, constantData{
			Name:    doc.Name,
			Ident:   ident,
			Comment: commentLines(ident, doc),
			Literal: strconv.Quote(doc.Rendered()),
		})
	}

	tmpl, err := template.New("go").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	}).Parse(goTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGenerateGoCode, err)
	}

	_, err = w.Write(src)

	return err
}

func commentLines(ident string, doc *programdoc.Document) []string {
	lines := []string{fmt.Sprintf("%s is the %s program.", ident, doc.Name)}

	if doc.Description != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(doc.Description, "\n")...)
	}

	return lines
}

var wordSeparator = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ConstantName converts a document name such as "pay_to_first" to
// "PayToFirstProgram"
func ConstantName(name string) string {
	caser := cases.Title(language.English)

	var b strings.Builder

	for _, word := range wordSeparator.Split(name, -1) {
		if word == "" {
			continue
		}

		switch lower := strings.ToLower(word); lower {
		case "id", "cc", "sha", "url", "api":
			b.WriteString(strings.ToUpper(lower))
		default:
			b.WriteString(caser.String(word))
		}
	}

	b.WriteString("Program")

	return b.String()
}

// isValidGoIdentifier checks if a string is a valid Go identifier
func isValidGoIdentifier(name string) bool {
	if name == "" {
		return false
	}

	first := rune(name[0])
	if (first < 'a' || first > 'z') && (first < 'A' || first > 'Z') && first != '_' {
		return false
	}

	for _, r := range name[1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}

	return true
}

const goTemplate = `// Code generated by puzzlegen. DO NOT EDIT.

package {{ .PackageName }}
{{ range .Constants }}
{{ range .Comment }}//{{ if . }} {{ . }}{{ end }}
{{ end }}const {{ .Ident }} = {{ .Literal }}
{{ end }}
// Programs maps document names to their rendered programs.
var Programs = map[string]string{
{{- range .Constants }}
	{{ quote .Name }}: {{ .Ident }},
{{- end }}
{{- if .Constants }}
{{ end -}}
}
`

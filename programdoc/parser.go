// Package programdoc reads program documents: Markdown files that describe a
// program in prose and define it in the YAML program notation, optionally
// with the rendering it is expected to produce.
package programdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/sexp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter     = errors.New("invalid front matter")
	ErrMissingRequiredSection = errors.New("missing required section")
	ErrMissingProgramBlock    = errors.New("program section has no yaml code block")
	ErrInvalidProgram         = fmt.Errorf("%w: program", puzzlegen.ErrInvalidArgument)
	ErrExpectationMismatch    = errors.New("rendered program does not match expected text")
)

// Document is a parsed program document
type Document struct {
	Path        string
	Name        string
	Title       string
	Description string
	Metadata    map[string]any

	// ProgramSource is the YAML text of the program code block
	ProgramSource string
	ProgramLine   int
	Program       sexp.Node

	// Expected is the whitespace-normalised expected rendering, empty when
	// the document has no Expected section
	Expected     string
	ExpectedLine int
}

// section represents a markdown section with AST nodes
type section struct {
	headingText string
	content     []ast.Node
}

// Parse parses a program document
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	// the body starts on the line of the closing delimiter
	lineOffset := countFrontMatterLines(string(content))
	if lineOffset > 0 {
		lineOffset--
	}

	source := []byte(body)

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	doc := md.Parser().Parse(text.NewReader(source))
	title, sections := extractSections(doc, source)

	if err := validateRequiredSections(sections); err != nil {
		return nil, err
	}

	document := &Document{
		Title:    title,
		Metadata: frontMatter,
	}

	for _, name := range []string{"description", "overview"} {
		if s, ok := sections[name]; ok {
			document.Description = extractParagraphs(s.content, source)
			break
		}
	}

	block, ok := findCodeBlock(sections["program"].content, source, "yaml", "yml")
	if !ok {
		return nil, ErrMissingProgramBlock
	}

	document.ProgramSource = block.text
	document.ProgramLine = lineNumber(source, block.offset) + lineOffset

	document.Program, err = CompileYAML([]byte(block.text))
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", document.ProgramLine, err)
	}

	if s, ok := sections["expected"]; ok {
		if block, ok := findCodeBlock(s.content, source); ok {
			document.Expected = normalizeWhitespace(block.text)
			document.ExpectedLine = lineNumber(source, block.offset) + lineOffset
		}
	}

	if name, ok := frontMatter["name"].(string); ok && name != "" {
		document.Name = name
	} else if title != "" {
		document.Name = nameFromTitle(title)
	}

	return document, nil
}

// ParseFile parses the document at path. Documents without a name take it
// from the file name.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.Path = path
	if doc.Name == "" {
		doc.Name = nameFromTitle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}

	return doc, nil
}

// ParseDir parses every *.md file below dir, ordered by path
func ParseDir(dir string) ([]*Document, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(paths)

	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ParseFile(path)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// Rendered returns the canonical text of the program
func (d *Document) Rendered() string {
	return sexp.Render(d.Program)
}

// Check compares the rendering with the Expected section. Documents without
// an Expected section always pass.
func (d *Document) Check() error {
	if d.Expected == "" {
		return nil
	}

	if got := d.Rendered(); got != d.Expected {
		return fmt.Errorf("%w (line %d)\n  expected: %s\n    actual: %s", ErrExpectationMismatch, d.ExpectedLine, d.Expected, got)
	}

	return nil
}

// extractSections splits the document at headings. The first level 1
// heading is the title.
func extractSections(doc ast.Node, content []byte) (string, map[string]section) {
	sections := make(map[string]section)

	var (
		title   string
		current *section
	)

	flush := func() {
		if current != nil {
			sections[strings.ToLower(current.headingText)] = *current
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			if current != nil {
				current.content = append(current.content, n)
			}

			continue
		}

		flush()

		headingText := extractText(heading, content)
		if heading.Level == 1 && title == "" {
			title = headingText
			current = nil

			continue
		}

		current = &section{headingText: headingText}
	}

	flush()

	return title, sections
}

// validateRequiredSections checks if all required sections are present
func validateRequiredSections(sections map[string]section) error {
	_, description := sections["description"]
	_, overview := sections["overview"]

	if !description && !overview {
		return fmt.Errorf("%w: description or overview", ErrMissingRequiredSection)
	}

	if _, ok := sections["program"]; !ok {
		return fmt.Errorf("%w: program", ErrMissingRequiredSection)
	}

	return nil
}

type codeBlock struct {
	text   string
	offset int
}

// findCodeBlock returns the first fenced code block whose info string is one
// of infos, or the first one at all when infos is empty.
func findCodeBlock(nodes []ast.Node, content []byte, infos ...string) (codeBlock, bool) {
	for _, node := range nodes {
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}

		info := ""
		if fenced.Info != nil {
			info = strings.ToLower(strings.TrimSpace(string(fenced.Info.Segment.Value(content))))
		}

		if len(infos) > 0 && !contains(infos, info) {
			continue
		}

		var block codeBlock
		if fenced.Info != nil {
			block.offset = fenced.Info.Segment.Start
		}

		var b strings.Builder

		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			if i == 0 {
				block.offset = line.Start
			}

			b.Write(line.Value(content))
		}

		block.text = strings.TrimRight(b.String(), "\n")

		return block, true
	}

	return codeBlock{}, false
}

// extractText extracts text content from any AST node
func extractText(node ast.Node, content []byte) string {
	var result strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch textNode := n.(type) {
		case *ast.Text:
			result.Write(textNode.Segment.Value(content))

			if textNode.SoftLineBreak() {
				result.WriteByte(' ')
			}
		case *ast.String:
			result.Write(textNode.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

func extractParagraphs(nodes []ast.Node, content []byte) string {
	var paragraphs []string

	for _, node := range nodes {
		if p, ok := node.(*ast.Paragraph); ok {
			paragraphs = append(paragraphs, extractText(p, content))
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

func lineNumber(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}

	return bytes.Count(content[:offset], []byte("\n")) + 1
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var nonIdentifier = regexp.MustCompile(`[^a-z0-9]+`)

// nameFromTitle converts a title to snake_case
func nameFromTitle(title string) string {
	name := strings.Trim(nonIdentifier.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if name == "" {
		return "program"
	}

	return name
}

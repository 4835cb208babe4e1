package formatter

import (
	"strings"

	"github.com/shibukawa/puzzlegen/sexp"
)

// ProgramFormatter lays out expression trees on several lines for reading.
// Nodes that fit into the line width stay on one line; wider nodes put each
// operand on its own line, indented below the operator.
type ProgramFormatter struct {
	indentSize int
	width      int
}

// NewProgramFormatter creates a new program formatter
func NewProgramFormatter(indentSize, width int) *ProgramFormatter {
	if indentSize <= 0 {
		indentSize = 2
	}

	if width <= 0 {
		width = 80
	}

	return &ProgramFormatter{
		indentSize: indentSize,
		width:      width,
	}
}

// Format returns the laid out text of node. Replacing every line break and
// its indentation with a single space gives back sexp.Render(node).
func (f *ProgramFormatter) Format(node sexp.Node) string {
	var b strings.Builder
	f.format(&b, node, 0)

	return b.String()
}

func (f *ProgramFormatter) format(b *strings.Builder, node sexp.Node, indent int) {
	flat := sexp.Render(node)
	if indent+len(flat) <= f.width {
		b.WriteString(flat)
		return
	}

	head, hasHead, children := split(node)
	if len(children) == 0 {
		b.WriteString(flat)
		return
	}

	childIndent := indent + f.indentSize

	b.WriteByte('(')

	if hasHead {
		b.WriteString(head)
	} else {
		// bare lists keep their first item on the opening line
		f.format(b, children[0], indent+1)
		children = children[1:]
	}

	for _, child := range children {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", childIndent))
		f.format(b, child, childIndent)
	}

	b.WriteByte(')')
}

func split(node sexp.Node) (string, bool, []sexp.Node) {
	switch n := node.(type) {
	case sexp.Apply:
		return n.Operator, true, n.Operands
	case sexp.Quoted:
		return sexp.OpQuote, true, []sexp.Node{n.Inner}
	case sexp.List:
		return "", false, n.Items
	}

	return "", false, nil
}

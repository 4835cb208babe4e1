// Package sexp builds programs for the target Lisp-like runtime as immutable
// expression trees and renders them to their canonical text.
//
// Trees are assembled bottom-up with the constructors in builder.go. Every
// constructor returns a fresh value and never modifies its operands, so trees
// may be shared between goroutines freely.
package sexp

import (
	"strings"
)

// Node is one of Atom, Apply, Quoted or List.
type Node interface {
	// String returns the canonical rendering of the node.
	String() string

	render(b *strings.Builder)
	sealed()
}

// Atom is an opaque literal token such as a number, a hex string, an
// environment address or an operator name.
type Atom struct {
	Text string
}

// Apply calls a primitive or named operator on its operands.
type Apply struct {
	Operator string
	Operands []Node
}

// Quoted is a literal, unevaluated sub-tree.
type Quoted struct {
	Inner Node
}

// List is a bare parenthesised sequence. The empty list renders as "()".
type List struct {
	Items []Node
}

func (Atom) sealed()   {}
func (Apply) sealed()  {}
func (Quoted) sealed() {}
func (List) sealed()   {}

func (a Atom) render(b *strings.Builder) {
	b.WriteString(a.Text)
}

func (a Apply) render(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(a.Operator)

	for _, operand := range a.Operands {
		b.WriteByte(' ')
		renderNode(b, operand)
	}

	b.WriteByte(')')
}

func (q Quoted) render(b *strings.Builder) {
	Apply{Operator: OpQuote, Operands: []Node{q.Inner}}.render(b)
}

func (l List) render(b *strings.Builder) {
	b.WriteByte('(')

	for i, item := range l.Items {
		if i > 0 {
			b.WriteByte(' ')
		}

		renderNode(b, item)
	}

	b.WriteByte(')')
}

// a nil Node renders like the empty list so that a zero Quoted stays well formed
func renderNode(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("()")
		return
	}

	n.render(b)
}

func (a Atom) String() string   { return Render(a) }
func (a Apply) String() string  { return Render(a) }
func (q Quoted) String() string { return Render(q) }
func (l List) String() string   { return Render(l) }

// Render returns the canonical text of n: fully parenthesised prefix
// notation with tokens separated by single spaces.
func Render(n Node) string {
	var b strings.Builder
	renderNode(&b, n)

	return b.String()
}

// Equivalent reports whether a and b denote the same tree. Quoted is
// shorthand for an Apply of the quote operator and an Apply is a List headed
// by its operator atom, so two trees are equivalent exactly when they render
// to the same text (given atoms accepted by ValidateAtom).
func Equivalent(a, b Node) bool {
	a, b = desugar(a), desugar(b)

	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Text == y.Text
	case List:
		y, ok := b.(List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}

		for i := range x.Items {
			if !Equivalent(x.Items[i], y.Items[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func desugar(n Node) Node {
	switch x := n.(type) {
	case nil:
		return List{}
	case Quoted:
		return List{Items: []Node{Atom{Text: OpQuote}, x.Inner}}
	case Apply:
		items := make([]Node, 0, len(x.Operands)+1)
		items = append(items, Atom{Text: x.Operator})

		return List{Items: append(items, x.Operands...)}
	}

	return n
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch x := n.(type) {
	case Apply:
		for _, operand := range x.Operands {
			Walk(operand, fn)
		}
	case Quoted:
		Walk(x.Inner, fn)
	case List:
		for _, item := range x.Items {
			Walk(item, fn)
		}
	}
}

// Package ast defines the parse tree consumed by the transformation engine.
//
// A tree is produced once per document by the parser and is never mutated
// afterwards. Every node carries a Kind, the raw source text it spans and its
// ordered children. The Kind methods classify nodes for the engine: raw text
// leaves, inline constructs and block constructs.
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is a parse tree node.
type Node struct {
	Kind Kind
	// Level is the header level (1-6) for KindHeader nodes and zero otherwise.
	Level int
	// Text is the raw source span of the node.
	Text string
	// Line is the 1-based source line the node starts on, zero when unknown.
	Line     int
	Children []*Node
}

// New returns a node of the given kind with children.
func New(kind Kind, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Children: children}
}

// Leaf returns a childless node.
func Leaf(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// Header returns a header node wrapping label in a rich text container.
func Header(level int, label ...*Node) *Node {
	return &Node{Kind: KindHeader, Level: level, Children: []*Node{New(KindRichText, "", label...)}}
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Count returns the number of nodes of the given kind in the tree.
func Count(n *Node, kind Kind) int {
	total := 0
	Walk(n, func(c *Node) bool {
		if c.Kind == kind {
			total++
		}
		return true
	})
	return total
}

// Dump writes an indented outline of the tree to w.
func Dump(w io.Writer, n *Node) error {
	return dump(w, n, 0)
}

// String returns the Dump output of the tree.
func (n *Node) String() string {
	var b strings.Builder
	_ = Dump(&b, n)
	return b.String()
}

func dump(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	label := n.Kind.String()
	if n.Kind == KindHeader {
		label += strconv.Itoa(n.Level)
	}
	if len(n.Children) == 0 && n.Text != "" {
		label += " " + strconv.Quote(n.Text)
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := dump(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

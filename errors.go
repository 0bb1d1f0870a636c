package mdtrans

import (
	"errors"
	"fmt"

	"pkt.systems/mdtrans/ast"
)

var (
	// ErrUnsupported reports a construct the transformer does not implement.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrInvariant reports a parse tree that breaks the engine's structural
	// rules. It indicates a defect in whatever produced the tree.
	ErrInvariant = errors.New("parse tree invariant violated")
)

// UnsupportedError names the construct a transformer could not render.
type UnsupportedError struct {
	Kind ast.Kind
}

func unsupported(kind ast.Kind) error {
	return &UnsupportedError{Kind: kind}
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Kind)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// InvariantError describes a node whose shape the engine cannot handle.
type InvariantError struct {
	Kind   ast.Kind
	Line   int
	Reason string
}

func invariant(n *ast.Node, format string, args ...any) error {
	return &InvariantError{Kind: n.Kind, Line: n.Line, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvariantError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s node at line %d: %s", e.Kind, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s node: %s", e.Kind, e.Reason)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// FrontMatterError reports front matter that could not be decoded.
type FrontMatterError struct {
	Format string
	Err    error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("front matter (%s): %v", e.Format, e.Err)
}

func (e *FrontMatterError) Unwrap() error {
	return e.Err
}

package transform

import (
	"context"
	"errors"

	ts "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Sources are read with the TSX grammar: it covers JSX as well as the type
// annotations Flow shares with TypeScript, such as existing type aliases.
var tsx = ts.NewLanguage(tree_sitter_typescript.LanguageTSX())

var (
	// ErrParse is returned when a source file cannot be parsed at all.
	ErrParse = errors.New("parse failed")

	// ErrSyntax marks a propTypes declaration containing syntax errors.
	ErrSyntax = errors.New("syntax error")
)

// parseTree parses src. Parsers are not safe for concurrent use, so each
// call gets its own. The caller closes the returned tree.
func parseTree(ctx context.Context, src []byte) (*ts.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := ts.NewParser()
	defer p.Close()
	if err := p.SetLanguage(tsx); err != nil {
		return nil, err
	}
	tree := p.ParseCtx(ctx, src, nil)
	if tree == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrParse
	}
	return tree, nil
}

// child returns the first child of n of the given kind, or nil.
func child(n *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

// walk calls fn for n and its descendants in source order. Returning false
// from fn skips the node's children.
func walk(n *ts.Node, fn func(*ts.Node) bool) {
	if !fn(n) {
		return
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		walk(n.NamedChild(i), fn)
	}
}

// statement returns the top-level statement containing n.
func statement(n *ts.Node) *ts.Node {
	for {
		p := n.Parent()
		if p == nil || p.Kind() == "program" {
			return n
		}
		n = p
	}
}

// stringValue returns the contents of a string literal node.
func stringValue(n *ts.Node, src []byte) (string, bool) {
	if n == nil || n.Kind() != "string" {
		return "", false
	}
	if f := child(n, "string_fragment"); f != nil {
		return f.Utf8Text(src), true
	}
	return "", true
}

// isRequire reports whether n is require('<module>').
func isRequire(n *ts.Node, src []byte, module string) bool {
	if n == nil || n.Kind() != "call_expression" {
		return false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || fn.Utf8Text(src) != "require" {
		return false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	s, ok := stringValue(args.NamedChild(0), src)
	return ok && (module == "" || s == module)
}

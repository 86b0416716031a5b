package transform

import (
	"context"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Policy decides whether a file is rewritten and cleans it up afterwards.
type Policy interface {
	// Eligible reports whether src should be transformed. When it should
	// not, reason says why.
	Eligible(ctx context.Context, src []byte) (ok bool, reason string, err error)

	// Finalize adjusts a file after at least one component was rewritten.
	Finalize(ctx context.Context, src []byte) ([]byte, error)
}

// DefaultPolicy transforms files that use React and declare no type alias
// yet. Finalize marks files with a @flow pragma and drops a PropTypes import
// nothing refers to anymore.
type DefaultPolicy struct{}

const flowPragma = "/* @flow */\n"

// Eligible accepts files importing or requiring "react" that contain no
// type alias declaration.
func (DefaultPolicy) Eligible(ctx context.Context, src []byte) (bool, string, error) {
	tree, err := parseTree(ctx, src)
	if err != nil {
		return false, "", err
	}
	defer tree.Close()

	var react, alias bool
	walk(tree.RootNode(), func(n *ts.Node) bool {
		switch n.Kind() {
		case "import_statement":
			if s, _ := stringValue(n.ChildByFieldName("source"), src); s == "react" {
				react = true
			}
		case "call_expression":
			if isRequire(n, src, "react") {
				react = true
			}
		case "type_alias_declaration":
			alias = true
		}
		return !alias
	})
	switch {
	case !react:
		return false, "no react import", nil
	case alias:
		return false, "type alias already declared", nil
	}
	return true, "", nil
}

// Finalize drops an unused PropTypes binding and prepends a @flow pragma
// unless the file header already carries one.
func (DefaultPolicy) Finalize(ctx context.Context, src []byte) ([]byte, error) {
	tree, err := parseTree(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	out := src
	if edits := removePropTypesImport(root, src); len(edits) > 0 {
		if out, err = Apply(src, edits); err != nil {
			return nil, err
		}
	}
	if !hasFlowPragma(root, src) {
		out = append([]byte(flowPragma), out...)
	}
	return out, nil
}

// hasFlowPragma reports whether a comment in the file header mentions @flow.
func hasFlowPragma(root *ts.Node, src []byte) bool {
	for i := uint(0); i < root.ChildCount(); i++ {
		n := root.Child(i)
		switch n.Kind() {
		case "hash_bang_line":
		case "comment":
			if strings.Contains(n.Utf8Text(src), "@flow") {
				return true
			}
		default:
			return false
		}
	}
	return false
}

// removePropTypesImport returns the edits dropping the PropTypes binding
// when the rest of the file no longer refers to it. Named specifiers are
// removed from their import; default imports and require declarations
// binding PropTypes are removed entirely.
func removePropTypesImport(root *ts.Node, src []byte) []Edit {
	var binding *ts.Node
	uses := 0
	walk(root, func(n *ts.Node) bool {
		switch n.Kind() {
		case "identifier", "shorthand_property_identifier":
			if n.Utf8Text(src) == "PropTypes" {
				uses++
			}
		case "import_statement", "lexical_declaration", "variable_declaration":
			if binding == nil && bindsPropTypes(n, src) {
				binding = n
				return false
			}
		}
		return true
	})
	if binding == nil || uses > 0 {
		return nil
	}

	if binding.Kind() != "import_statement" {
		return []Edit{{Span: lineSpan(src, binding)}}
	}
	clause := child(binding, "import_clause")
	var def string
	var kept []string
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		n := clause.NamedChild(i)
		switch n.Kind() {
		case "identifier":
			if n.Utf8Text(src) != "PropTypes" {
				def = n.Utf8Text(src)
			}
		case "named_imports":
			for j := uint(0); j < n.NamedChildCount(); j++ {
				spec := n.NamedChild(j)
				if spec.Kind() == "import_specifier" && localName(spec, src) != "PropTypes" {
					kept = append(kept, spec.Utf8Text(src))
				}
			}
		case "namespace_import":
			def = joinClause(def, n.Utf8Text(src))
		}
	}

	from := binding.ChildByFieldName("source").Utf8Text(src)
	var stmt string
	switch {
	case len(kept) == 0 && def == "":
		return []Edit{{Span: lineSpan(src, binding)}}
	case len(kept) == 0:
		stmt = "import " + def + " from " + from + ";"
	default:
		stmt = "import " + joinClause(def, "{ "+strings.Join(kept, ", ")+" }") + " from " + from + ";"
	}
	return []Edit{{Span: Span{Start: int(binding.StartByte()), End: int(binding.EndByte())}, Text: stmt}}
}

// bindsPropTypes reports whether n is an import of PropTypes or a
// `const PropTypes = require(...)` declaration.
func bindsPropTypes(n *ts.Node, src []byte) bool {
	if n.Kind() == "import_statement" {
		clause := child(n, "import_clause")
		if clause == nil {
			return false
		}
		for i := uint(0); i < clause.NamedChildCount(); i++ {
			c := clause.NamedChild(i)
			switch c.Kind() {
			case "identifier":
				if c.Utf8Text(src) == "PropTypes" {
					return true
				}
			case "named_imports":
				for j := uint(0); j < c.NamedChildCount(); j++ {
					if spec := c.NamedChild(j); spec.Kind() == "import_specifier" && localName(spec, src) == "PropTypes" {
						return true
					}
				}
			}
		}
		return false
	}
	if n.NamedChildCount() != 1 {
		return false
	}
	d := n.NamedChild(0)
	name := d.ChildByFieldName("name")
	return d.Kind() == "variable_declarator" && name != nil && name.Utf8Text(src) == "PropTypes" &&
		isRequire(d.ChildByFieldName("value"), src, "")
}

// localName returns the name an import specifier binds.
func localName(spec *ts.Node, src []byte) string {
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		return alias.Utf8Text(src)
	}
	if name := spec.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(src)
	}
	return ""
}

func joinClause(a, b string) string {
	if a == "" {
		return b
	}
	return a + ", " + b
}

// lineSpan covers statement n, extended to its whole line when nothing else
// shares it.
func lineSpan(src []byte, n *ts.Node) Span {
	start, end := int(n.StartByte()), int(n.EndByte())
	ls := lineStart(src, start)
	le := end
	for le < len(src) && (src[le] == ' ' || src[le] == '\t' || src[le] == '\r') {
		le++
	}
	if !isBlank(src[ls:start]) || le < len(src) && src[le] != '\n' {
		return Span{Start: start, End: end}
	}
	return Span{Start: ls, End: min(le+1, len(src))}
}

// Package transform rewrites React component files, replacing propTypes
// declarations with Flow type aliases.
//
// Files are read with tree-sitter. A Locator finds propTypes declarations
// and the components they belong to, a Splicer turns each component into
// edits against the original source, and a Policy decides which files are
// touched and cleans them up afterwards.
package transform

import (
	"context"
	"fmt"
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/broady/propflow/ir"
	"github.com/broady/propflow/parse"
)

// ComponentKind distinguishes class components from function components.
type ComponentKind int

const (
	KindClass ComponentKind = iota
	KindFunction
)

// String returns "class", "function" or "unknown".
func (k ComponentKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) of a source file.
type Span struct {
	Start, End int
}

// Component is a component declaration with a propTypes block.
type Component struct {
	Name       string
	Kind       ComponentKind
	Properties []ir.Property

	// Err is set when the propTypes object could not be read. Properties is
	// empty then.
	Err error

	// Block covers the propTypes declaration, including its line break when
	// it sits on lines of its own.
	Block Span

	// Decl is the offset of the line starting the top-level statement that
	// declares the component, or -1 when no declaration for Name was found.
	Decl int

	// Body is the offset just past the opening brace of a class body.
	Body int

	// Param covers the first parameter of a function component. An empty
	// span marks the position of an empty parameter list.
	Param Span

	// Parens reports whether the parameter list is parenthesized.
	Parens bool

	// Annotated reports whether the first parameter already carries a
	// type or a default value, or is a rest parameter.
	Annotated bool
}

// Locator finds components that declare propTypes.
type Locator interface {
	Locate(ctx context.Context, src []byte) ([]Component, error)
}

// SyntaxLocator finds propTypes declarations in the syntax tree of a file.
// It understands class fields `static propTypes = {...}` and top-level
// assignments `Name.propTypes = {...};`.
type SyntaxLocator struct{}

// Locate returns the components in src in source order.
func (SyntaxLocator) Locate(ctx context.Context, src []byte) ([]Component, error) {
	tree, err := parseTree(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	var comps []Component
	walk(root, func(n *ts.Node) bool {
		if n.Kind() == "class_declaration" || n.Kind() == "class" {
			if c, ok := staticPropTypes(n, src); ok {
				comps = append(comps, c)
			}
		}
		return true
	})

	decls := declarations(root, src)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		if c, ok := assignedPropTypes(root.NamedChild(i), src, decls); ok {
			comps = append(comps, c)
		}
	}

	sort.Slice(comps, func(i, j int) bool {
		return comps[i].Block.Start < comps[j].Block.Start
	})
	return comps, nil
}

// staticPropTypes reads a `static propTypes = {...}` field of cls.
func staticPropTypes(cls *ts.Node, src []byte) (Component, bool) {
	name := className(cls, src)
	body := cls.ChildByFieldName("body")
	if name == "" || body == nil {
		return Component{}, false
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		m := body.NamedChild(i)
		if m.Kind() != "public_field_definition" && m.Kind() != "field_definition" {
			continue
		}
		key := m.ChildByFieldName("name")
		if key == nil {
			key = m.ChildByFieldName("property")
		}
		obj := m.ChildByFieldName("value")
		if child(m, "static") == nil || key == nil || key.Utf8Text(src) != "propTypes" || obj == nil || obj.Kind() != "object" {
			continue
		}
		c := newComponent(src, m, obj)
		c.Name = name
		declare(&c, cls, src)
		return c, true
	}
	return Component{}, false
}

// assignedPropTypes reads a `Name.propTypes = {...};` statement.
func assignedPropTypes(stmt *ts.Node, src []byte, decls map[string]*ts.Node) (Component, bool) {
	if stmt.Kind() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return Component{}, false
	}
	expr := stmt.NamedChild(0)
	if expr.Kind() != "assignment_expression" {
		return Component{}, false
	}
	left, right := expr.ChildByFieldName("left"), expr.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "member_expression" || right.Kind() != "object" {
		return Component{}, false
	}
	obj, prop := left.ChildByFieldName("object"), left.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Kind() != "identifier" || prop.Utf8Text(src) != "propTypes" {
		return Component{}, false
	}

	c := newComponent(src, stmt, right)
	c.Name = obj.Utf8Text(src)
	c.Kind = KindFunction
	c.Decl = -1
	if d, ok := decls[c.Name]; ok {
		declare(&c, d, src)
	}
	return c, true
}

// newComponent reads the properties of obj and computes the block removed
// with decl.
func newComponent(src []byte, decl, obj *ts.Node) Component {
	c := Component{Block: block(src, int(decl.StartByte()), int(decl.EndByte()))}
	if obj.HasError() {
		pos := obj.StartPosition()
		c.Err = fmt.Errorf("propTypes at %d:%d: %w", pos.Row+1, pos.Column+1, ErrSyntax)
		return c
	}
	props, err := parse.Properties(obj.Utf8Text(src))
	if err != nil {
		c.Err = fmt.Errorf("propTypes at offset %d: %w", obj.StartByte(), err)
		return c
	}
	c.Properties = props
	return c
}

// declarations maps the names declared by top-level statements to their
// class or function nodes. The first declaration of a name wins.
func declarations(root *ts.Node, src []byte) map[string]*ts.Node {
	decls := make(map[string]*ts.Node)
	add := func(name *ts.Node, n *ts.Node) {
		if name == nil || n == nil {
			return
		}
		if _, ok := decls[name.Utf8Text(src)]; !ok {
			decls[name.Utf8Text(src)] = n
		}
	}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		n := root.NamedChild(i)
		if n.Kind() == "export_statement" {
			switch {
			case n.ChildByFieldName("declaration") != nil:
				n = n.ChildByFieldName("declaration")
			case n.ChildByFieldName("value") != nil:
				n = n.ChildByFieldName("value")
			}
		}
		switch n.Kind() {
		case "function_declaration", "generator_function_declaration", "class_declaration",
			"function_expression", "function", "class":
			add(n.ChildByFieldName("name"), n)
		case "lexical_declaration", "variable_declaration":
			for j := uint(0); j < n.NamedChildCount(); j++ {
				d := n.NamedChild(j)
				if d.Kind() != "variable_declarator" {
					continue
				}
				if v := d.ChildByFieldName("value"); v != nil && isComponentValue(v) {
					add(d.ChildByFieldName("name"), v)
				}
			}
		}
	}
	return decls
}

func isComponentValue(n *ts.Node) bool {
	switch n.Kind() {
	case "arrow_function", "function_expression", "function", "class":
		return true
	}
	return false
}

// className returns the name of a class declaration, or of the variable a
// class expression is assigned to.
func className(cls *ts.Node, src []byte) string {
	if name := cls.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(src)
	}
	if p := cls.Parent(); p != nil && p.Kind() == "variable_declarator" {
		if name := p.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			return name.Utf8Text(src)
		}
	}
	return ""
}

// declare fills in the kind and insertion points of c from the class or
// function node n declaring it.
func declare(c *Component, n *ts.Node, src []byte) {
	c.Decl = lineStart(src, int(statement(n).StartByte()))
	if body := n.ChildByFieldName("body"); body != nil && (n.Kind() == "class_declaration" || n.Kind() == "class") {
		c.Kind = KindClass
		c.Body = int(body.StartByte()) + 1
		return
	}
	c.Kind = KindFunction
	if p := n.ChildByFieldName("parameter"); p != nil {
		c.Param = Span{Start: int(p.StartByte()), End: int(p.EndByte())}
		return
	}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	c.Parens = true
	first := firstParam(params)
	if first == nil {
		open := int(params.StartByte()) + 1
		c.Param = Span{Start: open, End: open}
		return
	}
	c.Param = Span{Start: int(first.StartByte()), End: int(first.EndByte())}
	switch first.Kind() {
	case "assignment_pattern", "rest_pattern":
		c.Annotated = true
	case "required_parameter", "optional_parameter":
		pattern := first.ChildByFieldName("pattern")
		c.Annotated = first.ChildByFieldName("type") != nil ||
			first.ChildByFieldName("value") != nil ||
			pattern != nil && pattern.Kind() == "rest_pattern"
	}
}

// firstParam returns the first parameter node of a parameter list.
func firstParam(params *ts.Node) *ts.Node {
	for i := uint(0); i < params.NamedChildCount(); i++ {
		if p := params.NamedChild(i); p.Kind() != "comment" {
			return p
		}
	}
	return nil
}

// block computes the span removed for a declaration covering src[start:end].
// A trailing semicolon is taken along, and a declaration on lines of its own
// is removed with its line break.
func block(src []byte, start, end int) Span {
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	if end < len(src) && src[end] == ';' {
		end++
	}
	ls := lineStart(src, start)
	if !isBlank(src[ls:start]) {
		return Span{Start: start, End: end}
	}
	le := end
	for le < len(src) && (src[le] == ' ' || src[le] == '\t' || src[le] == '\r') {
		le++
	}
	if le < len(src) && src[le] != '\n' {
		return Span{Start: start, End: end}
	}
	return Span{Start: ls, End: min(le+1, len(src))}
}

func lineStart(src []byte, i int) int {
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func isSpace(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

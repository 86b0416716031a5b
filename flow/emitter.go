// Package flow renders ir annotations as Flow type syntax.
package flow

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/broady/propflow/ir"
)

// Emitter handles Flow code emission for annotations.
type Emitter struct {
	cfg Config
}

// NewEmitter returns an Emitter. An empty Indent defaults to two spaces.
func NewEmitter(cfg Config) *Emitter {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	return &Emitter{cfg: cfg}
}

// Indent returns the indentation unit.
func (e *Emitter) Indent() string { return e.cfg.Indent }

// EmitTypeAlias writes a type alias declaration for an object type:
//
//	type FooProps = {
//	  name?: string,
//	};
func (e *Emitter) EmitTypeAlias(buf *bytes.Buffer, name string, fields []*ir.Field) error {
	if e.cfg.Export {
		buf.WriteString("export ")
	}
	buf.WriteString("type ")
	buf.WriteString(name)
	buf.WriteString(" = ")

	var b strings.Builder
	if err := e.writeFields(&b, fields, 0); err != nil {
		return fmt.Errorf("type %s: %w", name, err)
	}
	buf.WriteString(b.String())
	buf.WriteString(";")
	return nil
}

// EmitTypeExpr emits a type expression.
func (e *Emitter) EmitTypeExpr(a ir.Annotation) (string, error) {
	return e.expr(a, 0)
}

func (e *Emitter) expr(a ir.Annotation, depth int) (string, error) {
	if a == nil {
		return "", fmt.Errorf("missing annotation")
	}

	var s string
	switch t := a.(type) {
	case *ir.Primitive:
		s = primitive(t.PrimitiveKind)
	case *ir.Generic:
		g, err := e.generic(t, depth)
		if err != nil {
			return "", err
		}
		s = g
	case *ir.ObjectShape:
		var b strings.Builder
		if err := e.writeFields(&b, t.Fields, depth); err != nil {
			return "", err
		}
		s = b.String()
	case *ir.Union:
		u, err := e.union(t, depth)
		if err != nil {
			return "", err
		}
		s = u
	case *ir.StringLiteral:
		s = literal(t)
	case *ir.Field:
		v, err := e.expr(t.Value, depth)
		if err != nil {
			return "", err
		}
		s = propertyKey(t.Name) + optionalMark(t.Optional) + ": " + v
	default:
		return "", fmt.Errorf("unsupported annotation kind: %s", a.Kind())
	}
	return e.inlineComments(s, a.Comments()), nil
}

func primitive(k ir.PrimitiveKind) string {
	switch k {
	case ir.PrimitiveBoolean:
		return "boolean"
	case ir.PrimitiveNumber:
		return "number"
	case ir.PrimitiveString:
		return "string"
	default:
		return "any"
	}
}

func (e *Emitter) generic(g *ir.Generic, depth int) (string, error) {
	if len(g.TypeArgs) == 0 {
		return g.Name.String(), nil
	}
	args := make([]string, 0, len(g.TypeArgs))
	for _, arg := range g.TypeArgs {
		s, err := e.expr(arg, depth)
		if err != nil {
			return "", fmt.Errorf("%s type argument: %w", g.Name, err)
		}
		args = append(args, s)
	}
	return g.Name.String() + "<" + strings.Join(args, ", ") + ">", nil
}

func (e *Emitter) union(u *ir.Union, depth int) (string, error) {
	if len(u.Members) == 0 {
		return "empty", nil
	}
	parts := make([]string, 0, len(u.Members))
	for _, m := range u.Members {
		s, err := e.expr(m, depth)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " | "), nil
}

func literal(l *ir.StringLiteral) string {
	if l.Raw != "" {
		return l.Raw
	}
	switch v := l.Value.(type) {
	case string:
		return quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// writeFields writes an object type body. Fields sit one level deeper than
// depth; the closing brace sits at depth.
func (e *Emitter) writeFields(b *strings.Builder, fields []*ir.Field, depth int) error {
	if len(fields) == 0 {
		b.WriteString("{}")
		return nil
	}
	indent := strings.Repeat(e.cfg.Indent, depth+1)
	b.WriteString("{\n")
	for _, f := range fields {
		c := f.Comments()
		if e.cfg.EmitComments {
			for _, lc := range c.Leading {
				b.WriteString(indent)
				b.WriteString(lineComment(lc))
				b.WriteString("\n")
			}
		}

		v, err := e.expr(f.Value, depth+1)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		b.WriteString(indent)
		b.WriteString(propertyKey(f.Name))
		b.WriteString(optionalMark(f.Optional))
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString(",")

		if e.cfg.EmitComments {
			for _, tc := range c.Trailing {
				b.WriteString(" ")
				b.WriteString(lineComment(tc))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(e.cfg.Indent, depth))
	b.WriteString("}")
	return nil
}

func optionalMark(optional bool) string {
	if optional {
		return "?"
	}
	return ""
}

// inlineComments wraps s in the node's comments. Line comments become block
// comments so the expression stays on one line.
func (e *Emitter) inlineComments(s string, c ir.Comments) string {
	if !e.cfg.EmitComments || c.IsZero() {
		return s
	}
	var b strings.Builder
	for _, lc := range c.Leading {
		b.WriteString(blockComment(lc.Text))
		b.WriteString(" ")
	}
	b.WriteString(s)
	for _, tc := range c.Trailing {
		b.WriteString(" ")
		b.WriteString(blockComment(tc.Text))
	}
	return b.String()
}

// lineComment renders a comment that ends its line.
func lineComment(c ir.Comment) string {
	if c.Block {
		return blockComment(c.Text)
	}
	return "//" + c.Text
}

func blockComment(text string) string {
	return "/*" + strings.ReplaceAll(text, "*/", "* /") + "*/"
}

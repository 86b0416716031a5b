// Package parse reads PropTypes descriptor source text into ir descriptors.
//
// The accepted language is the expression subset descriptors are written
// in: identifiers, member access, calls, object and array literals, and
// string, number, boolean and null literals. Comments are attached to the
// nearest property, element or argument: comments before a node lead it,
// comments after it on the same line trail it.
package parse

import (
	"fmt"

	"github.com/broady/propflow/ir"
)

// Expr parses a single descriptor expression such as
// "PropTypes.arrayOf(PropTypes.string).isRequired".
func Expr(src string) (ir.Descriptor, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	d, err := p.expr()
	if err != nil {
		return nil, err
	}
	end := p.peek()
	if end.kind != tokEOF {
		return nil, p.unexpected(end)
	}
	c := d.Comments()
	c.Trailing = append(c.Trailing, commentsOf(end.comments)...)
	return ir.WithComments(d, c), nil
}

// Properties parses an object literal such as
// "{ name: PropTypes.string, // display name\n }" into its properties.
// Comments outside the braces are ignored.
func Properties(src string) ([]ir.Property, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	open := p.peek()
	if !open.is("{") {
		return nil, p.unexpected(open)
	}
	d, err := p.expr()
	if err != nil {
		return nil, err
	}
	obj, ok := d.(*ir.Object)
	if !ok {
		return nil, &SyntaxError{Line: open.line, Column: open.col, Msg: fmt.Sprintf("expected object literal, found %s", d.Kind())}
	}
	if end := p.peek(); end.kind != tokEOF && !end.is(";") {
		return nil, p.unexpected(end)
	}
	return obj.Properties, nil
}

type parser struct {
	toks []token
	pos  int
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// take claims the comments preceding the current token.
func (p *parser) take() []comment {
	c := p.toks[p.pos].comments
	p.toks[p.pos].comments = nil
	return c
}

// prevLine returns the line of the last consumed token.
func (p *parser) prevLine() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].line
}

// takeTrailing claims the comments preceding the current token that start
// on the same line as the previous token.
func (p *parser) takeTrailing() []ir.Comment {
	line := p.prevLine()
	cs := p.toks[p.pos].comments
	n := 0
	for n < len(cs) && cs[n].line == line {
		n++
	}
	p.toks[p.pos].comments = cs[n:]
	return commentsOf(cs[:n])
}

func (p *parser) expect(punct string) (token, error) {
	t := p.peek()
	if !t.is(punct) {
		return token{}, p.unexpected(t)
	}
	return p.next(), nil
}

func (p *parser) unexpected(t token) error {
	found := fmt.Sprintf("%q", t.text)
	if t.kind == tokEOF {
		found = "end of input"
	}
	return &SyntaxError{Line: t.line, Column: t.col, Msg: "unexpected " + found}
}

// expr parses a primary expression followed by member accesses and calls.
// Comments inside the chain trail the resulting node.
func (p *parser) expr() (ir.Descriptor, error) {
	leading := commentsOf(p.take())
	d, err := p.primary()
	if err != nil {
		return nil, err
	}

	var stray []ir.Comment
	for {
		t := p.peek()
		switch {
		case t.is("."):
			stray = append(stray, commentsOf(p.take())...)
			p.next()
			stray = append(stray, commentsOf(p.take())...)
			name := p.next()
			if name.kind != tokIdent {
				return nil, p.unexpected(name)
			}
			d = ir.Mem(d, name.text)
		case t.is("("):
			stray = append(stray, commentsOf(p.take())...)
			p.next()
			args, err := p.list(")")
			if err != nil {
				return nil, err
			}
			d = ir.Invoke(d, args)
		case t.is("["):
			return nil, &SyntaxError{Line: t.line, Column: t.col, Msg: "computed member access is not supported"}
		default:
			c := d.Comments()
			c.Leading = append(leading, c.Leading...)
			c.Trailing = append(c.Trailing, stray...)
			return ir.WithComments(d, c), nil
		}
	}
}

func (p *parser) primary() (ir.Descriptor, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		switch t.text {
		case "true":
			return ir.Lit(true, t.text), nil
		case "false":
			return ir.Lit(false, t.text), nil
		case "null":
			return ir.Lit(nil, t.text), nil
		}
		return ir.Ref(t.text), nil
	case tokNumber, tokString:
		return ir.Lit(t.val, t.text), nil
	case tokPunct:
		switch t.text {
		case "{":
			return p.object()
		case "[":
			elems, err := p.list("]")
			if err != nil {
				return nil, err
			}
			return ir.Arr(elems), nil
		case "(":
			d, err := p.expr()
			if err != nil {
				return nil, err
			}
			d = appendTrailing(d, commentsOf(p.take()))
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return d, nil
		}
	}
	return nil, p.unexpected(t)
}

// list parses comma-separated expressions up to and including the closing
// punctuation. The opening punctuation has been consumed.
func (p *parser) list(closing string) ([]ir.Descriptor, error) {
	elems := []ir.Descriptor{}
	for {
		if p.peek().is(closing) {
			return elems, p.close(closing, func(c []ir.Comment) {
				if n := len(elems); n > 0 {
					elems[n-1] = appendTrailing(elems[n-1], c)
				}
			})
		}
		if p.peek().is(",") {
			return nil, &SyntaxError{Line: p.peek().line, Column: p.peek().col, Msg: "array holes are not supported"}
		}
		d, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.peek().is(",") && !p.peek().is(closing) {
			return nil, p.unexpected(p.peek())
		}
		d = appendTrailing(d, p.comma())
		elems = append(elems, appendTrailing(d, p.takeTrailing()))
	}
}

func (p *parser) object() (ir.Descriptor, error) {
	props := []ir.Property{}
	var inner []ir.Comment
	for {
		if p.peek().is("}") {
			err := p.close("}", func(c []ir.Comment) {
				if n := len(props); n > 0 {
					props[n-1].Comments.Trailing = append(props[n-1].Comments.Trailing, c...)
				} else {
					inner = c
				}
			})
			if err != nil {
				return nil, err
			}
			return ir.Obj(props, ir.Comments{Trailing: inner}), nil
		}
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		if !p.peek().is(",") && !p.peek().is("}") {
			return nil, p.unexpected(p.peek())
		}
		prop.Comments.Trailing = append(prop.Comments.Trailing, p.comma()...)
		prop.Comments.Trailing = append(prop.Comments.Trailing, p.takeTrailing()...)
		props = append(props, prop)
	}
}

// property parses one key/value pair. All comments around the pair are
// attached to the property; the value itself carries none.
func (p *parser) property() (ir.Property, error) {
	leading := commentsOf(p.take())
	key := p.next()
	var name string
	switch key.kind {
	case tokIdent, tokNumber:
		name = key.text
	case tokString:
		name = key.val.(string)
	default:
		return ir.Property{}, p.unexpected(key)
	}

	// Shorthand property: { Foo }.
	if key.kind == tokIdent && (p.peek().is(",") || p.peek().is("}")) {
		return ir.Property{Key: name, Value: ir.Ref(name), Comments: ir.Comments{Leading: leading}}, nil
	}

	leading = append(leading, commentsOf(p.take())...)
	if _, err := p.expect(":"); err != nil {
		return ir.Property{}, err
	}
	value, err := p.expr()
	if err != nil {
		return ir.Property{}, err
	}
	vc := value.Comments()
	return ir.Property{
		Key:   name,
		Value: ir.WithComments(value, ir.Comments{}),
		Comments: ir.Comments{
			Leading:  append(leading, vc.Leading...),
			Trailing: vc.Trailing,
		},
	}, nil
}

// comma consumes an optional separator and returns the comments written
// just before it.
func (p *parser) comma() []ir.Comment {
	if !p.peek().is(",") {
		return nil
	}
	c := commentsOf(p.take())
	p.next()
	return c
}

// close consumes the closing punctuation. Comments before it are passed to
// attach, which assigns them to the last entry of the enclosing list.
func (p *parser) close(closing string, attach func([]ir.Comment)) error {
	if c := commentsOf(p.take()); len(c) > 0 {
		attach(c)
	}
	_, err := p.expect(closing)
	return err
}

func appendTrailing(d ir.Descriptor, c []ir.Comment) ir.Descriptor {
	if len(c) == 0 {
		return d
	}
	dc := d.Comments()
	dc.Trailing = append(dc.Trailing, c...)
	return ir.WithComments(d, dc)
}

func commentsOf(cs []comment) []ir.Comment {
	if len(cs) == 0 {
		return nil
	}
	out := make([]ir.Comment, len(cs))
	for i, c := range cs {
		out[i] = c.Comment
	}
	return out
}

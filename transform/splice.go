package transform

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/broady/propflow/flow"
	"github.com/broady/propflow/ir"
)

// ErrNoDeclaration is returned by Splice when a component's declaration
// could not be found.
var ErrNoDeclaration = errors.New("component declaration not found")

// Edit replaces the bytes of Span with Text. An empty span inserts.
type Edit struct {
	Span
	Text string
}

// Splicer computes the edits that type c by fields instead of propTypes.
// Offsets refer to src as located, so the edits of several components of
// one file can be applied together.
type Splicer interface {
	Splice(src []byte, c Component, fields []*ir.Field) ([]Edit, error)
}

// AliasSplicer replaces a propTypes block with a type alias named after the
// component, placed before the component declaration.
type AliasSplicer struct {
	Emitter *flow.Emitter

	// Suffix is appended to the component name to form the alias name.
	// Empty means "Props".
	Suffix string
}

// AliasName returns the type alias name used for a component.
func (s *AliasSplicer) AliasName(component string) string {
	suffix := s.Suffix
	if suffix == "" {
		suffix = "Props"
	}
	return component + suffix
}

// Splice removes c.Block, inserts the alias before c.Decl and attaches the
// alias to the component: a `props` field for classes, a parameter
// annotation for functions.
func (s *AliasSplicer) Splice(src []byte, c Component, fields []*ir.Field) ([]Edit, error) {
	if c.Decl < 0 {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrNoDeclaration)
	}
	em := s.Emitter
	if em == nil {
		em = flow.NewEmitter(flow.DefaultConfig())
	}
	alias := s.AliasName(c.Name)

	var buf bytes.Buffer
	if err := em.EmitTypeAlias(&buf, alias, fields); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	buf.WriteString("\n\n")

	edits := []Edit{
		{Span: c.Block},
		{Span: Span{Start: c.Decl, End: c.Decl}, Text: buf.String()},
	}
	switch c.Kind {
	case KindClass:
		at := c.Body
		if nl := bytes.IndexByte(src[at:], '\n'); nl >= 0 && isBlank(bytes.TrimRight(src[at:at+nl], "\r")) {
			at += nl + 1
		}
		edits = append(edits, Edit{Span: Span{Start: at, End: at}, Text: indentOf(src, c, em) + "props: " + alias + ";\n"})
	case KindFunction:
		if e, ok := paramEdit(src, c, alias); ok {
			edits = append(edits, e)
		}
	}
	return edits, nil
}

// paramEdit annotates the first parameter. Parameters that already carry an
// annotation or a default are left alone.
func paramEdit(src []byte, c Component, alias string) (Edit, bool) {
	p := c.Param
	switch {
	case c.Annotated:
		return Edit{}, false
	case p.Start == p.End:
		if !c.Parens {
			return Edit{}, false
		}
		return Edit{Span: p, Text: "props: " + alias}, true
	case !c.Parens:
		return Edit{Span: p, Text: "(" + string(src[p.Start:p.End]) + ": " + alias + ")"}, true
	}
	return Edit{Span: Span{Start: p.End, End: p.End}, Text: ": " + alias}, true
}

// indentOf picks the indentation of class members: the propTypes line for
// static blocks, otherwise the first non-blank line of the body.
func indentOf(src []byte, c Component, em *flow.Emitter) string {
	from := c.Body
	if c.Block.Start > c.Body && c.Block.Start < len(src) {
		from = max(lineStart(src, c.Block.Start), c.Body)
	}
	for _, line := range strings.Split(string(src[from:]), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	return em.Indent()
}

// Apply performs edits on a copy of src. Every offset refers to src.
//
// Deletions of whole lines separated by nothing but blank lines are merged,
// and each merged run takes one adjacent blank line along so that none pile
// up where declarations were removed. At equal offsets replacements go
// before insertions. Overlapping edits are an error.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	edits = mergeLines(src, edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start > edits[j].Start
		}
		return edits[i].End > edits[j].End
	})
	out := bytes.Clone(src)
	limit := len(src)
	for _, e := range edits {
		if e.Start < 0 || e.Start > e.End || e.End > limit {
			return nil, fmt.Errorf("edit [%d, %d) overlaps another edit or exceeds the source", e.Start, e.End)
		}
		out = append(out[:e.Start], append([]byte(e.Text), out[e.End:]...)...)
		limit = e.Start
	}
	return out, nil
}

func mergeLines(src []byte, edits []Edit) []Edit {
	var lines []Span
	rest := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if e.Text == "" && e.Start < e.End && wholeLines(src, e.Span) {
			lines = append(lines, e.Span)
			continue
		}
		rest = append(rest, e)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Start < lines[j].Start })

	var runs []Span
	for _, s := range lines {
		if n := len(runs); n > 0 && (s.Start <= runs[n-1].End || isSpace(src[runs[n-1].End:s.Start])) {
			runs[n-1].End = max(runs[n-1].End, s.End)
			continue
		}
		runs = append(runs, s)
	}
	for _, r := range runs {
		// A blank line precedes the run: drop the one after it, or the
		// preceding one at the end of the file.
		if r.Start >= 2 && src[r.Start-2] == '\n' {
			switch {
			case r.End < len(src) && src[r.End] == '\n':
				r.End++
			case r.End == len(src):
				r.Start--
			}
		}
		rest = append(rest, Edit{Span: r})
	}
	return rest
}

// wholeLines reports whether s starts at a line start and ends after a line
// break or at the end of src.
func wholeLines(src []byte, s Span) bool {
	return s.Start >= 0 && s.End <= len(src) && s.Start == lineStart(src, s.Start) &&
		(s.End == len(src) || src[s.End-1] == '\n')
}

// Package ir defines the intermediate representation shared by the
// propflow packages: runtime validation descriptors (the input read from
// PropTypes expressions) and the static type annotations produced for them.
//
// Both families are closed tagged unions. Only types in this package can
// implement Descriptor or Annotation, so type switches over them can be
// checked for exhaustiveness.
package ir

import "strings"

// Comment is a single source comment attached to a node.
type Comment struct {
	// Block is true for /* */ comments and false for // line comments.
	Block bool

	// Text is the comment body without its delimiters.
	Text string
}

// Comments holds the comments attached before and after a node.
// The lists are passed through conversion verbatim.
type Comments struct {
	Leading  []Comment
	Trailing []Comment
}

// IsZero returns true if no comments are attached.
func (c Comments) IsZero() bool {
	return len(c.Leading) == 0 && len(c.Trailing) == 0
}

// Line returns a line comment.
func Line(text string) Comment {
	return Comment{Text: text}
}

// Block returns a block comment.
func Block(text string) Comment {
	return Comment{Block: true, Text: text}
}

// QualifiedName is a possibly namespace-qualified type name such as
// "Function" or "React.Element".
type QualifiedName struct {
	// Qualifier is the dotted namespace prefix, empty for bare names.
	Qualifier string

	// Name is the final identifier.
	Name string
}

// Name returns an unqualified name.
func Name(name string) QualifiedName {
	return QualifiedName{Name: name}
}

// Qualified returns a name qualified by the given namespace.
func Qualified(qualifier, name string) QualifiedName {
	return QualifiedName{Qualifier: qualifier, Name: name}
}

// ParseQualifiedName splits a dotted name at its last dot.
func ParseQualifiedName(s string) QualifiedName {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return QualifiedName{Name: s}
	}
	return QualifiedName{Qualifier: s[:i], Name: s[i+1:]}
}

// String returns the dotted form of the name.
func (n QualifiedName) String() string {
	if n.Qualifier == "" {
		return n.Name
	}
	return n.Qualifier + "." + n.Name
}

// IsZero returns true if the name is empty.
func (n QualifiedName) IsZero() bool {
	return n.Qualifier == "" && n.Name == ""
}

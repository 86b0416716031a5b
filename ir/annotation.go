package ir

// AnnotationKind identifies the category of a type annotation.
type AnnotationKind int

const (
	KindPrimitive     AnnotationKind = iota // any, boolean, number, string
	KindGeneric                             // Function, Array<T>, React.Element, SomeClass
	KindObjectShape                         // { a?: T }
	KindUnion                               // A | B
	KindStringLiteral                       // 'a', 42
	KindField                               // a?: T
)

// String returns the string representation of the annotation kind.
func (k AnnotationKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindGeneric:
		return "Generic"
	case KindObjectShape:
		return "ObjectShape"
	case KindUnion:
		return "Union"
	case KindStringLiteral:
		return "StringLiteral"
	case KindField:
		return "Field"
	default:
		return "Unknown"
	}
}

// Annotation is a static type annotation node.
// Every constructor allocates a new node; nodes are never shared between
// conversions, so callers may attach comments freely.
type Annotation interface {
	// Kind returns the annotation kind for type switching.
	Kind() AnnotationKind

	// Comments returns the comments attached to this node.
	Comments() Comments

	// SetComments replaces the comments attached to this node.
	SetComments(Comments)

	// Ensure only types in this package can implement Annotation.
	sealedAnnotation()
}

// annBase carries the comments common to all annotation nodes.
type annBase struct {
	comments Comments
}

func (b *annBase) Comments() Comments     { return b.comments }
func (b *annBase) SetComments(c Comments) { b.comments = c }
func (*annBase) sealedAnnotation()        {}

// PrimitiveKind identifies a built-in annotation keyword.
type PrimitiveKind int

const (
	PrimitiveAny PrimitiveKind = iota
	PrimitiveBoolean
	PrimitiveNumber
	PrimitiveString
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveAny:
		return "Any"
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveNumber:
		return "Number"
	case PrimitiveString:
		return "String"
	default:
		return "Unknown"
	}
}

// Primitive is a keyword annotation.
type Primitive struct {
	annBase
	PrimitiveKind PrimitiveKind
}

// Kind returns KindPrimitive.
func (a *Primitive) Kind() AnnotationKind { return KindPrimitive }

// Generic is a named type with optional type arguments, e.g. Array<string>.
type Generic struct {
	annBase
	Name QualifiedName

	// TypeArgs is nil when the type is referenced without arguments.
	TypeArgs []Annotation
}

// Kind returns KindGeneric.
func (a *Generic) Kind() AnnotationKind { return KindGeneric }

// ObjectShape is an object type with an ordered field list.
type ObjectShape struct {
	annBase
	Fields []*Field
}

// Kind returns KindObjectShape.
func (a *ObjectShape) Kind() AnnotationKind { return KindObjectShape }

// Union is an ordered union of member annotations.
type Union struct {
	annBase
	Members []Annotation
}

// Kind returns KindUnion.
func (a *Union) Kind() AnnotationKind { return KindUnion }

// StringLiteral is an exact-value annotation. Raw keeps the literal's source
// form so 42 and '42' render differently.
type StringLiteral struct {
	annBase
	Value any
	Raw   string
}

// Kind returns KindStringLiteral.
func (a *StringLiteral) Kind() AnnotationKind { return KindStringLiteral }

// Field is a named entry of an object type.
type Field struct {
	annBase
	Name     string
	Value    Annotation
	Optional bool
}

// Kind returns KindField.
func (a *Field) Kind() AnnotationKind { return KindField }

// Any returns the any annotation.
func Any() *Primitive { return &Primitive{PrimitiveKind: PrimitiveAny} }

// Bool returns the boolean annotation.
func Bool() *Primitive { return &Primitive{PrimitiveKind: PrimitiveBoolean} }

// Number returns the number annotation.
func Number() *Primitive { return &Primitive{PrimitiveKind: PrimitiveNumber} }

// String returns the string annotation.
func String() *Primitive { return &Primitive{PrimitiveKind: PrimitiveString} }

// Named returns a generic annotation. With no arguments the type is
// referenced bare (Function); with arguments it is instantiated (Array<any>).
func Named(name QualifiedName, args ...Annotation) *Generic {
	return &Generic{Name: name, TypeArgs: args}
}

// Shape returns an object shape annotation.
func Shape(fields ...*Field) *ObjectShape {
	return &ObjectShape{Fields: fields}
}

// OneOf returns a union annotation.
func OneOf(members ...Annotation) *Union {
	return &Union{Members: members}
}

// LiteralType returns an exact-value annotation.
func LiteralType(value any, raw string) *StringLiteral {
	return &StringLiteral{Value: value, Raw: raw}
}

// NewField returns a field annotation.
func NewField(name string, value Annotation, optional bool) *Field {
	return &Field{Name: name, Value: value, Optional: optional}
}

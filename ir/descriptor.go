package ir

// DescriptorKind identifies the category of a validation descriptor.
type DescriptorKind int

const (
	KindLiteral DescriptorKind = iota // 'a', 42, true, null
	KindMember                        // PropTypes.string, PropTypes.string.isRequired
	KindCall                          // PropTypes.arrayOf(...)
	KindObject                        // { a: PropTypes.string }
	KindArray                         // ['a', 'b']
	KindIdent                         // customValidator, SomeClass
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindMember:
		return "Member"
	case KindCall:
		return "Call"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindIdent:
		return "Ident"
	default:
		return "Unknown"
	}
}

// Descriptor is a runtime validation descriptor expression.
// Descriptors are read-only once built; consumers never modify them.
type Descriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Comments returns the comments the parser attached to this node.
	Comments() Comments

	// Ensure only types in this package can implement Descriptor.
	sealedDescriptor()
}

// descBase carries the comments common to all descriptor nodes.
type descBase struct {
	comments Comments
}

func (b descBase) Comments() Comments { return b.comments }
func (descBase) sealedDescriptor()    {}

// Literal is a literal value, used as an allowed value of oneOf.
type Literal struct {
	descBase

	// Value is a string, float64, bool or nil.
	Value any

	// Raw is the exact source text, e.g. `'a'`, `"a"` or `42`.
	Raw string
}

// Kind returns KindLiteral.
func (d *Literal) Kind() DescriptorKind { return KindLiteral }

// Member is an attribute access such as PropTypes.string.
type Member struct {
	descBase
	Object   Descriptor
	Property string
}

// Kind returns KindMember.
func (d *Member) Kind() DescriptorKind { return KindMember }

// Path returns the dotted source form of a member chain rooted at an
// identifier, e.g. "React.PropTypes.string". ok is false when the chain
// contains anything other than identifiers and member accesses.
func (d *Member) Path() (path string, ok bool) {
	switch o := d.Object.(type) {
	case *Ident:
		return o.Name + "." + d.Property, true
	case *Member:
		base, ok := o.Path()
		if !ok {
			return "", false
		}
		return base + "." + d.Property, true
	default:
		return "", false
	}
}

// Call is an invocation of a composite descriptor such as
// PropTypes.shape({...}).
type Call struct {
	descBase

	// Callee is a *Member (PropTypes.arrayOf) or an *Ident (arrayOf).
	Callee Descriptor

	Args []Descriptor
}

// Kind returns KindCall.
func (d *Call) Kind() DescriptorKind { return KindCall }

// Property is a single key/value entry of an object literal.
type Property struct {
	Key   string
	Value Descriptor

	// Comments attached to the whole property, not just its value.
	Comments Comments
}

// Object is an object literal.
type Object struct {
	descBase
	Properties []Property
}

// Kind returns KindObject.
func (d *Object) Kind() DescriptorKind { return KindObject }

// Array is an array literal.
type Array struct {
	descBase
	Elements []Descriptor
}

// Kind returns KindArray.
func (d *Array) Kind() DescriptorKind { return KindArray }

// Ident is a reference to a custom validator or an imported class.
type Ident struct {
	descBase
	Name string
}

// Kind returns KindIdent.
func (d *Ident) Kind() DescriptorKind { return KindIdent }

// Convenience constructors. The variadic Comments argument attaches at most
// one comment set; it exists so parsers and tests can build commented nodes
// without reaching into unexported fields.

// Lit returns a literal descriptor.
func Lit(value any, raw string, c ...Comments) *Literal {
	return &Literal{descBase: descBase{first(c)}, Value: value, Raw: raw}
}

// Mem returns a member access descriptor.
func Mem(object Descriptor, property string, c ...Comments) *Member {
	return &Member{descBase: descBase{first(c)}, Object: object, Property: property}
}

// Invoke returns a call descriptor.
func Invoke(callee Descriptor, args []Descriptor, c ...Comments) *Call {
	return &Call{descBase: descBase{first(c)}, Callee: callee, Args: args}
}

// Obj returns an object literal descriptor.
func Obj(props []Property, c ...Comments) *Object {
	return &Object{descBase: descBase{first(c)}, Properties: props}
}

// Arr returns an array literal descriptor.
func Arr(elems []Descriptor, c ...Comments) *Array {
	return &Array{descBase: descBase{first(c)}, Elements: elems}
}

// Ref returns an identifier descriptor.
func Ref(name string, c ...Comments) *Ident {
	return &Ident{descBase: descBase{first(c)}, Name: name}
}

// Path builds a member chain from a dotted path such as
// "React.PropTypes.string".
func Path(dotted string) Descriptor {
	var d Descriptor
	start := 0
	for i := 0; i <= len(dotted); i++ {
		if i < len(dotted) && dotted[i] != '.' {
			continue
		}
		seg := dotted[start:i]
		if d == nil {
			d = Ref(seg)
		} else {
			d = Mem(d, seg)
		}
		start = i + 1
	}
	return d
}

func first(c []Comments) Comments {
	if len(c) == 0 {
		return Comments{}
	}
	return c[0]
}

// WithComments returns a shallow copy of d carrying c instead of its own
// comments. Child nodes are shared with d.
func WithComments(d Descriptor, c Comments) Descriptor {
	switch d := d.(type) {
	case *Literal:
		n := *d
		n.comments = c
		return &n
	case *Member:
		n := *d
		n.comments = c
		return &n
	case *Call:
		n := *d
		n.comments = c
		return &n
	case *Object:
		n := *d
		n.comments = c
		return &n
	case *Array:
		n := *d
		n.comments = c
		return &n
	case *Ident:
		n := *d
		n.comments = c
		return &n
	default:
		return d
	}
}

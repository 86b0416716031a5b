// Package convert turns PropTypes validation descriptors into Flow type
// annotations.
//
// Conversion is a pure recursive walk over an ir.Descriptor tree. Each call
// allocates a fresh ir.Annotation tree owned by the caller; descriptors are
// never modified. Descriptors with no annotation equivalent are reported as
// *UnsupportedError instead of producing a partial result.
package convert

import (
	"errors"
	"fmt"

	"github.com/broady/propflow/ir"
)

// Options configures a Converter.
type Options struct {
	// Namespace is the library namespace stripped from qualified references,
	// as in React.PropTypes.string. Member chains rooted anywhere else than
	// PropTypes or Namespace.PropTypes are rejected. Default: "React".
	Namespace string

	// RequiredMarker is the member name that marks a property mandatory.
	// Default: "isRequired".
	RequiredMarker string

	// Element is the type used for element and node descriptors.
	// Default: React.Element.
	Element ir.QualifiedName
}

// DefaultOptions returns the options for React's PropTypes.
func DefaultOptions() Options {
	return Options{
		Namespace:      "React",
		RequiredMarker: "isRequired",
		Element:        ir.Qualified("React", "Element"),
	}
}

// Converter converts descriptors with a fixed set of options.
// A Converter holds no mutable state and is safe for concurrent use.
type Converter struct {
	opts Options
}

// New returns a Converter. Zero fields of opts take their defaults.
func New(opts Options) *Converter {
	def := DefaultOptions()
	if opts.Namespace == "" {
		opts.Namespace = def.Namespace
	}
	if opts.RequiredMarker == "" {
		opts.RequiredMarker = def.RequiredMarker
	}
	if opts.Element.IsZero() {
		opts.Element = def.Element
	}
	return &Converter{opts: opts}
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

var std = New(DefaultOptions())

// Convert converts d using DefaultOptions. See (*Converter).Convert.
func Convert(name string, d ir.Descriptor, leading, trailing []ir.Comment) (ir.Annotation, error) {
	return std.Convert(name, d, leading, trailing)
}

// ConvertFields converts props using DefaultOptions.
// See (*Converter).ConvertFields.
func ConvertFields(props []ir.Property) ([]*ir.Field, error) {
	return std.ConvertFields(props)
}

// Convert converts a single descriptor.
//
// When name is non-empty the result is an *ir.Field named name whose
// Optional flag is the negation of the descriptor's required marker.
// Otherwise the bare annotation is returned and the required marker, if
// any, is dropped. The leading and trailing comments are attached to the
// returned node as given.
func (c *Converter) Convert(name string, d ir.Descriptor, leading, trailing []ir.Comment) (ir.Annotation, error) {
	comments := ir.Comments{Leading: leading, Trailing: trailing}
	if name != "" {
		f, err := c.field(name, d, comments)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	a, _, err := c.annotate(d)
	if err != nil {
		return nil, err
	}
	a.SetComments(comments)
	return a, nil
}

// ConvertFields converts an ordered property list into fields of the same
// order and length. Empty input yields an empty slice.
//
// If any property is unsupported, ConvertFields returns nil and an error
// joining the failure of every such property.
func (c *Converter) ConvertFields(props []ir.Property) ([]*ir.Field, error) {
	fields := make([]*ir.Field, 0, len(props))
	var errs []error
	for _, p := range props {
		f, err := c.field(p.Key, p.Value, p.Comments)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, f)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fields, nil
}

func (c *Converter) field(name string, d ir.Descriptor, comments ir.Comments) (*ir.Field, error) {
	a, required, err := c.annotate(d)
	if err != nil {
		return nil, within(err, name)
	}
	f := ir.NewField(name, a, !required)
	f.SetComments(comments)
	return f, nil
}

// annotate strips the required marker from d and converts the rest.
func (c *Converter) annotate(d ir.Descriptor) (a ir.Annotation, required bool, err error) {
	if m, ok := d.(*ir.Member); ok && m.Property == c.opts.RequiredMarker {
		required = true
		d = m.Object
	}

	switch d := d.(type) {
	case *ir.Literal:
		a = ir.LiteralType(d.Value, d.Raw)
	case *ir.Member:
		a, err = c.primitive(d)
	case *ir.Call:
		a, err = c.call(d)
	case *ir.Object:
		a, err = c.shape(d)
	case *ir.Ident:
		a = ir.Named(ir.Name(d.Name))
	case *ir.Array:
		err = unsupported(CodeUnsupportedDescriptor, "array literal outside oneOf or oneOfType")
	case nil:
		err = unsupported(CodeUnsupportedDescriptor, "missing descriptor")
	default:
		err = unsupported(CodeUnsupportedDescriptor, "descriptor kind %s", d.Kind())
	}
	if err != nil {
		return nil, false, err
	}
	return a, required, nil
}

// library is the object primitives and composite forms are read from.
const library = "PropTypes"

// resolve returns the primitive or method name m refers to. Only PropTypes.x
// and Namespace.PropTypes.x name one; any other member chain is rejected.
func (c *Converter) resolve(m *ir.Member) (string, error) {
	switch obj := m.Object.(type) {
	case *ir.Ident:
		if obj.Name == library {
			return m.Property, nil
		}
	case *ir.Member:
		if base, ok := obj.Object.(*ir.Ident); ok && base.Name == c.opts.Namespace && obj.Property == library {
			return m.Property, nil
		}
	}
	path, ok := m.Path()
	if !ok {
		path = "." + m.Property
	}
	return "", unsupported(CodeUnknownNamespace, "%s is neither %s.x nor %s.%s.x", path, library, c.opts.Namespace, library)
}

func (c *Converter) primitive(m *ir.Member) (ir.Annotation, error) {
	name, err := c.resolve(m)
	if err != nil {
		return nil, err
	}
	build, ok := primitives[name]
	if !ok {
		return nil, unsupported(CodeUnknownPrimitive, "no annotation for primitive %q", name)
	}
	return build(c.opts.Element), nil
}

// method returns the invoked method name of a call's callee. A bare
// identifier callee is a named import such as arrayOf.
func (c *Converter) method(callee ir.Descriptor) (string, error) {
	switch callee := callee.(type) {
	case *ir.Member:
		return c.resolve(callee)
	case *ir.Ident:
		return callee.Name, nil
	default:
		return "", unsupported(CodeUnsupportedDescriptor, "callee of kind %s", kindOf(callee))
	}
}

func (c *Converter) call(call *ir.Call) (ir.Annotation, error) {
	method, err := c.method(call.Callee)
	if err != nil {
		return nil, err
	}

	switch method {
	case "instanceOf":
		if len(call.Args) == 0 {
			return nil, unsupported(CodeMissingArgument, "instanceOf requires a class reference")
		}
		if call.Args[0] == nil {
			return nil, unsupported(CodeUnsupportedDescriptor, "missing instanceOf argument")
		}
		name, ok := typeName(call.Args[0])
		if !ok {
			return nil, unsupported(CodeMissingArgument, "instanceOf argument of kind %s is not a class reference", call.Args[0].Kind())
		}
		return ir.Named(name), nil

	case "arrayOf":
		elem, err := c.typeArg(method, call.Args)
		if err != nil {
			return nil, err
		}
		return ir.Named(ir.Name("Array"), elem), nil

	case "objectOf":
		// Flow has no exact equivalent of objectOf; Object<V> is the
		// closest approximation.
		value, err := c.typeArg(method, call.Args)
		if err != nil {
			return nil, err
		}
		return ir.Named(ir.Name("Object"), value), nil

	case "shape":
		var obj *ir.Object
		if len(call.Args) > 0 {
			obj, _ = call.Args[0].(*ir.Object)
		}
		if obj == nil {
			return nil, unsupported(CodeMissingArgument, "shape requires an object literal")
		}
		s, err := c.shape(obj)
		if err != nil {
			return nil, within(err, method)
		}
		return s, nil

	case "oneOf", "oneOfType":
		var arr *ir.Array
		if len(call.Args) > 0 {
			arr, _ = call.Args[0].(*ir.Array)
		}
		if arr == nil {
			return nil, unsupported(CodeMissingArgument, "%s requires an array literal", method)
		}
		members := make([]ir.Annotation, 0, len(arr.Elements))
		for i, elem := range arr.Elements {
			cm := commentsOf(elem)
			m, err := c.Convert("", elem, cm.Leading, cm.Trailing)
			if err != nil {
				return nil, within(err, fmt.Sprintf("%s[%d]", method, i))
			}
			members = append(members, m)
		}
		return ir.OneOf(members...), nil

	default:
		return nil, unsupported(CodeUnknownMethod, "no annotation for method %q", method)
	}
}

// typeArg converts the single type argument of arrayOf and objectOf,
// defaulting to any when the argument is omitted.
func (c *Converter) typeArg(method string, args []ir.Descriptor) (ir.Annotation, error) {
	if len(args) == 0 {
		return ir.Any(), nil
	}
	cm := commentsOf(args[0])
	a, err := c.Convert("", args[0], cm.Leading, cm.Trailing)
	if err != nil {
		return nil, within(err, method)
	}
	return a, nil
}

func (c *Converter) shape(obj *ir.Object) (*ir.ObjectShape, error) {
	fields := make([]*ir.Field, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		f, err := c.field(p.Key, p.Value, p.Comments)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return ir.Shape(fields...), nil
}

// typeName returns the type name referenced by an identifier or member chain.
func typeName(d ir.Descriptor) (ir.QualifiedName, bool) {
	switch d := d.(type) {
	case *ir.Ident:
		return ir.Name(d.Name), true
	case *ir.Member:
		path, ok := d.Path()
		if !ok {
			return ir.QualifiedName{}, false
		}
		return ir.ParseQualifiedName(path), true
	default:
		return ir.QualifiedName{}, false
	}
}

func kindOf(d ir.Descriptor) string {
	if d == nil {
		return "none"
	}
	return d.Kind().String()
}

// commentsOf returns the comments of d. A nil d has none and is left for
// annotate to reject.
func commentsOf(d ir.Descriptor) ir.Comments {
	if d == nil {
		return ir.Comments{}
	}
	return d.Comments()
}

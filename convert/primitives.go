package convert

import "github.com/broady/propflow/ir"

// primitives maps a PropTypes primitive name to a constructor for its
// annotation. Lookups build a fresh tree each time so comments can be
// attached without aliasing.
var primitives = map[string]func(element ir.QualifiedName) ir.Annotation{
	"any":    func(ir.QualifiedName) ir.Annotation { return ir.Any() },
	"bool":   func(ir.QualifiedName) ir.Annotation { return ir.Bool() },
	"func":   func(ir.QualifiedName) ir.Annotation { return ir.Named(ir.Name("Function")) },
	"number": func(ir.QualifiedName) ir.Annotation { return ir.Number() },
	"object": func(ir.QualifiedName) ir.Annotation { return ir.Named(ir.Name("Object")) },
	"string": func(ir.QualifiedName) ir.Annotation { return ir.String() },
	"str":    func(ir.QualifiedName) ir.Annotation { return ir.String() },
	"array":  func(ir.QualifiedName) ir.Annotation { return anyArray() },
	"element": func(el ir.QualifiedName) ir.Annotation {
		return ir.Named(el)
	},
	"node": func(el ir.QualifiedName) ir.Annotation {
		return ir.OneOf(ir.Number(), ir.String(), ir.Named(el), anyArray())
	},
}

func anyArray() *ir.Generic {
	return ir.Named(ir.Name("Array"), ir.Any())
}

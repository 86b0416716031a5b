package parse

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/broady/propflow/ir"
)

func TestExpr_Shapes(t *testing.T) {
	tests := []struct {
		src  string
		want ir.Descriptor
	}{
		{"PropTypes.string", ir.Path("PropTypes.string")},
		{"React.PropTypes.string.isRequired", ir.Path("React.PropTypes.string.isRequired")},
		{"customValidator", ir.Ref("customValidator")},
		{"'a'", ir.Lit("a", "'a'")},
		{`"b"`, ir.Lit("b", `"b"`)},
		{"42", ir.Lit(42.0, "42")},
		{"-1.5", ir.Lit(-1.5, "-1.5")},
		{"0x10", ir.Lit(16.0, "0x10")},
		{"true", ir.Lit(true, "true")},
		{"null", ir.Lit(nil, "null")},
		{"`tpl`", ir.Lit("tpl", "`tpl`")},
		{"(PropTypes.bool)", ir.Path("PropTypes.bool")},
		{
			"PropTypes.arrayOf(PropTypes.number)",
			ir.Invoke(ir.Path("PropTypes.arrayOf"), []ir.Descriptor{ir.Path("PropTypes.number")}),
		},
		{
			"PropTypes.oneOf(['a', 1,])",
			ir.Invoke(ir.Path("PropTypes.oneOf"), []ir.Descriptor{
				ir.Arr([]ir.Descriptor{ir.Lit("a", "'a'"), ir.Lit(1.0, "1")}),
			}),
		},
		{
			"arrayOf()",
			ir.Invoke(ir.Ref("arrayOf"), []ir.Descriptor{}),
		},
		{
			"PropTypes.shape({ id: PropTypes.number.isRequired, 'data-x': PropTypes.any, Foo })",
			ir.Invoke(ir.Path("PropTypes.shape"), []ir.Descriptor{
				ir.Obj([]ir.Property{
					{Key: "id", Value: ir.Path("PropTypes.number.isRequired")},
					{Key: "data-x", Value: ir.Path("PropTypes.any")},
					{Key: "Foo", Value: ir.Ref("Foo")},
				}),
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Expr(tt.src)
			if err != nil {
				t.Fatalf("Expr() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expr() =\n%#v\nwant\n%#v", got, tt.want)
			}
		})
	}
}

func TestExpr_StringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'it\'s'`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`'\x41B\u{43}'`, "ABC"},
		{`'\\'`, `\`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Expr(tt.src)
			if err != nil {
				t.Fatalf("Expr() error = %v", err)
			}
			lit := got.(*ir.Literal)
			if lit.Value != tt.want {
				t.Errorf("Value = %q, want %q", lit.Value, tt.want)
			}
			if lit.Raw != tt.src {
				t.Errorf("Raw = %q, want %q", lit.Raw, tt.src)
			}
		})
	}
}

func TestExpr_Comments(t *testing.T) {
	got, err := Expr("/* lead */ PropTypes.string // trail")
	if err != nil {
		t.Fatal(err)
	}
	want := ir.Comments{
		Leading:  []ir.Comment{ir.Block(" lead ")},
		Trailing: []ir.Comment{ir.Line(" trail")},
	}
	if !reflect.DeepEqual(got.Comments(), want) {
		t.Errorf("Comments() = %+v, want %+v", got.Comments(), want)
	}
}

func TestExpr_ElementComments(t *testing.T) {
	src := `PropTypes.oneOf([
		// first
		'a', // after a
		'b' /* after b */,
		// dangling
	])`
	got, err := Expr(src)
	if err != nil {
		t.Fatal(err)
	}
	elems := got.(*ir.Call).Args[0].(*ir.Array).Elements
	if len(elems) != 2 {
		t.Fatalf("len(elems) = %d, want 2", len(elems))
	}
	want0 := ir.Comments{Leading: []ir.Comment{ir.Line(" first")}, Trailing: []ir.Comment{ir.Line(" after a")}}
	if !reflect.DeepEqual(elems[0].Comments(), want0) {
		t.Errorf("elems[0].Comments() = %+v, want %+v", elems[0].Comments(), want0)
	}
	want1 := ir.Comments{Trailing: []ir.Comment{ir.Block(" after b "), ir.Line(" dangling")}}
	if !reflect.DeepEqual(elems[1].Comments(), want1) {
		t.Errorf("elems[1].Comments() = %+v, want %+v", elems[1].Comments(), want1)
	}
}

func TestProperties(t *testing.T) {
	src := `{
  // The user's display name.
  name: PropTypes.string.isRequired, // required
  /* Size of the avatar. */
  size: PropTypes.oneOf(['sm', 'lg']),
  onClick: PropTypes.func
};`
	props, err := Properties(src)
	if err != nil {
		t.Fatalf("Properties() error = %v", err)
	}
	var keys []string
	for _, p := range props {
		keys = append(keys, p.Key)
	}
	if want := []string{"name", "size", "onClick"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	wantName := ir.Comments{
		Leading:  []ir.Comment{ir.Line(" The user's display name.")},
		Trailing: []ir.Comment{ir.Line(" required")},
	}
	if !reflect.DeepEqual(props[0].Comments, wantName) {
		t.Errorf("name comments = %+v, want %+v", props[0].Comments, wantName)
	}
	wantSize := ir.Comments{Leading: []ir.Comment{ir.Block(" Size of the avatar. ")}}
	if !reflect.DeepEqual(props[1].Comments, wantSize) {
		t.Errorf("size comments = %+v, want %+v", props[1].Comments, wantSize)
	}
	if !props[2].Comments.IsZero() {
		t.Errorf("onClick comments = %+v, want none", props[2].Comments)
	}
	for _, p := range props {
		if !p.Value.Comments().IsZero() {
			t.Errorf("%s value carries comments %+v", p.Key, p.Value.Comments())
		}
	}
}

func TestProperties_Empty(t *testing.T) {
	props, err := Properties("{}")
	if err != nil {
		t.Fatal(err)
	}
	if props == nil || len(props) != 0 {
		t.Errorf("Properties({}) = %#v, want empty slice", props)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		msg  string
		line int
	}{
		{"PropTypes.", "unexpected end of input", 1},
		{"PropTypes.shape({ a: 1 b: 2 })", `unexpected "b"`, 1},
		{"'open", "unterminated string literal", 1},
		{"/* open", "unterminated block comment", 1},
		{"{ ...other }", "spread elements are not supported", 1},
		{"PropTypes['string']", "computed member access is not supported", 1},
		{"[1,,2]", "array holes are not supported", 1},
		{"`a${b}`", "template substitutions are not supported", 1},
		{"a\n#", "unexpected character '#'", 2},
		{"a b", `unexpected "b"`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Expr(tt.src)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Expr() error = %v, want *SyntaxError", err)
			}
			if !strings.Contains(se.Msg, tt.msg) {
				t.Errorf("Msg = %q, want to contain %q", se.Msg, tt.msg)
			}
			if se.Line != tt.line {
				t.Errorf("Line = %d, want %d", se.Line, tt.line)
			}
		})
	}
}

func TestProperties_NotObject(t *testing.T) {
	if _, err := Properties("PropTypes.string"); err == nil {
		t.Error("Properties() should reject a non-object")
	}
	if _, err := Properties("{ a: PropTypes.string } extra"); err == nil {
		t.Error("Properties() should reject trailing tokens")
	}
}

package ir

import (
	"encoding/json"
	"testing"
)

func TestAnnotationKind_String(t *testing.T) {
	tests := []struct {
		kind AnnotationKind
		want string
	}{
		{KindPrimitive, "Primitive"},
		{KindGeneric, "Generic"},
		{KindObjectShape, "ObjectShape"},
		{KindUnion, "Union"},
		{KindStringLiteral, "StringLiteral"},
		{KindField, "Field"},
		{AnnotationKind(-1), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("AnnotationKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors_Allocate(t *testing.T) {
	a, b := Any(), Any()
	if a == b {
		t.Fatal("Any() must return distinct nodes")
	}
	a.SetComments(Comments{Leading: []Comment{Line("x")}})
	if !b.Comments().IsZero() {
		t.Error("setting comments on one node leaked into another")
	}
}

func TestNamed_NoArgs(t *testing.T) {
	g := Named(Name("Function"))
	if g.TypeArgs != nil {
		t.Errorf("TypeArgs = %v, want nil", g.TypeArgs)
	}
	g = Named(Name("Array"), Any())
	if len(g.TypeArgs) != 1 {
		t.Errorf("len(TypeArgs) = %d, want 1", len(g.TypeArgs))
	}
}

func TestAnnotation_MarshalJSON(t *testing.T) {
	f := NewField("items", Named(Name("Array"), String()), true)
	f.SetComments(Comments{Leading: []Comment{Block(" list ")}})
	shape := Shape(f, NewField("size", OneOf(LiteralType("sm", "'sm'"), LiteralType(42.0, "42")), false))

	data, err := json.Marshal(shape)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"kind":"objectShape","fields":[` +
		`{"kind":"field","name":"items","value":{"kind":"generic","name":"Array","typeArgs":[{"kind":"primitive","primitiveKind":"String"}]},"optional":true,"comments":{"leading":[{"kind":"block","text":" list "}]}},` +
		`{"kind":"field","name":"size","value":{"kind":"union","members":[{"kind":"stringLiteral","value":"sm","raw":"'sm'"},{"kind":"stringLiteral","value":42,"raw":"42"}]},"optional":false}` +
		`]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestObjectShape_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Shape())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"kind":"objectShape","fields":[]}` {
		t.Errorf("Marshal() = %s", data)
	}
}

package transform

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const locatorSrc = `import React from 'react';

class Panel extends React.Component {
  static propTypes = {
    title: PropTypes.string, // "}" inside a comment
  };

  render() {
    return <h1 title="{">{'}'}</h1>;
  }
}

export default function List({ items }, context) {
  return items.map(i => <li key={i}>Don't {i}</li>);
}

List.propTypes = {
  items: PropTypes.array,
};

const Row = props => <tr>{props.cells}</tr>;

Row.propTypes = {};

Orphan.propTypes = {};
`

func TestSyntaxLocator(t *testing.T) {
	comps, err := SyntaxLocator{}.Locate(context.Background(), []byte(locatorSrc))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(comps) != 4 {
		t.Fatalf("Locate() found %d components, want 4", len(comps))
	}

	panel, list, row, orphan := comps[0], comps[1], comps[2], comps[3]

	if panel.Name != "Panel" || panel.Kind != KindClass {
		t.Errorf("comps[0] = %s %s, want class Panel", panel.Kind, panel.Name)
	}
	if !strings.HasPrefix(locatorSrc[panel.Decl:], "class Panel") {
		t.Errorf("Panel.Decl points at %q", locatorSrc[panel.Decl:panel.Decl+10])
	}
	if got := locatorSrc[panel.Block.Start:panel.Block.End]; !strings.HasPrefix(got, "  static propTypes") || !strings.HasSuffix(got, "};\n") {
		t.Errorf("Panel.Block = %q", got)
	}
	if len(panel.Properties) != 1 || panel.Properties[0].Key != "title" {
		t.Errorf("Panel.Properties = %+v", panel.Properties)
	}
	if len(panel.Properties[0].Comments.Trailing) != 1 {
		t.Errorf("title comments = %+v", panel.Properties[0].Comments)
	}

	if list.Name != "List" || list.Kind != KindFunction {
		t.Errorf("comps[1] = %s %s, want function List", list.Kind, list.Name)
	}
	if !strings.HasPrefix(locatorSrc[list.Decl:], "export default function List") {
		t.Errorf("List.Decl points at %q", locatorSrc[list.Decl:list.Decl+10])
	}
	if got := locatorSrc[list.Param.Start:list.Param.End]; got != "{ items }" || !list.Parens || list.Annotated {
		t.Errorf("List.Param = %q (parens %v, annotated %v), want %q", got, list.Parens, list.Annotated, "{ items }")
	}

	if got := locatorSrc[row.Param.Start:row.Param.End]; row.Name != "Row" || got != "props" || row.Parens {
		t.Errorf("comps[2] = %s with param %q (parens %v), want Row with bare props", row.Name, got, row.Parens)
	}

	if orphan.Name != "Orphan" || orphan.Decl != -1 || len(orphan.Properties) != 0 || orphan.Err != nil {
		t.Errorf("comps[3] = %+v, want Orphan without declaration", orphan)
	}
}

func TestSyntaxLocator_Parameters(t *testing.T) {
	tests := []struct {
		name      string
		decl      string
		param     string
		parens    bool
		annotated bool
	}{
		{"empty list", "function A() {}", "", true, false},
		{"arrow empty list", "const A = () => null;", "", true, false},
		{"function expression", "const A = function (props, ref) {};", "props", true, false},
		{"annotated", "function A(props: Props) {}", "props: Props", true, true},
		{"default", "function A(props = {}) {}", "props = {}", true, true},
		{"rest", "function A(...args) {}", "...args", true, true},
		{"async arrow", "export const A = async (props) => null;", "props", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "import React from 'react';\n" + tt.decl + "\nA.propTypes = {};\n"
			comps, err := SyntaxLocator{}.Locate(context.Background(), []byte(src))
			if err != nil {
				t.Fatal(err)
			}
			if len(comps) != 1 || comps[0].Decl < 0 {
				t.Fatalf("Locate() = %+v, want A with a declaration", comps)
			}
			c := comps[0]
			if got := src[c.Param.Start:c.Param.End]; got != tt.param || c.Parens != tt.parens || c.Annotated != tt.annotated {
				t.Errorf("Param = %q (parens %v, annotated %v), want %q (parens %v, annotated %v)",
					got, c.Parens, c.Annotated, tt.param, tt.parens, tt.annotated)
			}
		})
	}
}

func TestSyntaxLocator_ClassExpression(t *testing.T) {
	src := "const Box = class extends React.Component {\n  static propTypes = { a: PropTypes.bool };\n};\n"
	comps, err := SyntaxLocator{}.Locate(context.Background(), []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 1 || comps[0].Name != "Box" || comps[0].Kind != KindClass || comps[0].Decl != 0 {
		t.Errorf("Locate() = %+v, want class Box declared at 0", comps)
	}
}

func TestSyntaxLocator_BrokenBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed block", "function A() {}\nA.propTypes = {\n  a: PropTypes.string,\n"},
		{"bad descriptor", "function A() {}\nA.propTypes = {\n  a: PropTypes[0],\n};\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps, err := SyntaxLocator{}.Locate(context.Background(), []byte(tt.src))
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			for _, c := range comps {
				if c.Err == nil {
					t.Errorf("component %s has no error", c.Name)
				}
			}
		})
	}
}

func TestSyntaxLocator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (SyntaxLocator{}).Locate(ctx, []byte(locatorSrc)); !errors.Is(err, context.Canceled) {
		t.Errorf("Locate() error = %v, want context.Canceled", err)
	}
}

func TestComponentKind_String(t *testing.T) {
	if KindClass.String() != "class" || KindFunction.String() != "function" || ComponentKind(9).String() != "unknown" {
		t.Error("unexpected ComponentKind strings")
	}
}

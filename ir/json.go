package ir

import "encoding/json"

// JSON serialization support for annotations.
// Every node includes a "kind" field for type discrimination; comments are
// emitted only when present.

type jsonComments struct {
	Leading  []Comment `json:"leading,omitempty"`
	Trailing []Comment `json:"trailing,omitempty"`
}

func commentsJSON(c Comments) *jsonComments {
	if c.IsZero() {
		return nil
	}
	return &jsonComments{Leading: c.Leading, Trailing: c.Trailing}
}

// MarshalJSON implements json.Marshaler for Comment.
func (c Comment) MarshalJSON() ([]byte, error) {
	kind := "line"
	if c.Block {
		kind = "block"
	}
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}{
		Kind: kind,
		Text: c.Text,
	})
}

// MarshalJSON implements json.Marshaler for Primitive.
func (a *Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string        `json:"kind"`
		PrimitiveKind string        `json:"primitiveKind"`
		Comments      *jsonComments `json:"comments,omitempty"`
	}{
		Kind:          "primitive",
		PrimitiveKind: a.PrimitiveKind.String(),
		Comments:      commentsJSON(a.comments),
	})
}

// MarshalJSON implements json.Marshaler for Generic.
func (a *Generic) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string        `json:"kind"`
		Name     string        `json:"name"`
		TypeArgs []Annotation  `json:"typeArgs,omitempty"`
		Comments *jsonComments `json:"comments,omitempty"`
	}{
		Kind:     "generic",
		Name:     a.Name.String(),
		TypeArgs: a.TypeArgs,
		Comments: commentsJSON(a.comments),
	})
}

// MarshalJSON implements json.Marshaler for ObjectShape.
func (a *ObjectShape) MarshalJSON() ([]byte, error) {
	fields := a.Fields
	if fields == nil {
		fields = []*Field{}
	}
	return json.Marshal(&struct {
		Kind     string        `json:"kind"`
		Fields   []*Field      `json:"fields"`
		Comments *jsonComments `json:"comments,omitempty"`
	}{
		Kind:     "objectShape",
		Fields:   fields,
		Comments: commentsJSON(a.comments),
	})
}

// MarshalJSON implements json.Marshaler for Union.
func (a *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string        `json:"kind"`
		Members  []Annotation  `json:"members"`
		Comments *jsonComments `json:"comments,omitempty"`
	}{
		Kind:     "union",
		Members:  a.Members,
		Comments: commentsJSON(a.comments),
	})
}

// MarshalJSON implements json.Marshaler for StringLiteral.
func (a *StringLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string        `json:"kind"`
		Value    any           `json:"value"`
		Raw      string        `json:"raw"`
		Comments *jsonComments `json:"comments,omitempty"`
	}{
		Kind:     "stringLiteral",
		Value:    a.Value,
		Raw:      a.Raw,
		Comments: commentsJSON(a.comments),
	})
}

// MarshalJSON implements json.Marshaler for Field.
func (a *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string        `json:"kind"`
		Name     string        `json:"name"`
		Value    Annotation    `json:"value"`
		Optional bool          `json:"optional"`
		Comments *jsonComments `json:"comments,omitempty"`
	}{
		Kind:     "field",
		Name:     a.Name,
		Value:    a.Value,
		Optional: a.Optional,
		Comments: commentsJSON(a.comments),
	})
}

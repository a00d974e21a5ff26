// Package models defines the output data structures for protocol mining.
package models

import (
	"encoding/json"
	"strings"
)

// TypeNode is one node of a packet's field-type tree. The variant set is
// closed: LeafType, PairedType, and FieldList. Consumers dispatch with a
// type switch; there is no open registry.
type TypeNode interface {
	typeNode()
	// String renders the node for debugging and reports.
	String() string
}

// LeafType is an unresolved or primitive type, kept as the raw wiki text
// of the type cell (e.g. "{{Type|VarInt}}").
type LeafType struct {
	// Text is the raw type-cell content.
	Text string `json:"text"`
}

// PairedType is a composite type: a descriptor (the group's own type cell,
// such as a prefixed-array marker) paired with the content it governs.
type PairedType struct {
	// Descriptor is the type of the group cell itself.
	Descriptor TypeNode `json:"descriptor"`
	// Content is the nested structure the group spans.
	Content TypeNode `json:"content"`
}

// FieldList is an ordered list of named fields, the body of a composite.
type FieldList struct {
	// Fields are the list entries in table row order.
	Fields []Field `json:"fields"`
}

// Field is one named schema element: a field name and its type tree.
type Field struct {
	// Name is the field-name cell content.
	Name string `json:"name"`
	// Type is the field's type tree.
	Type TypeNode `json:"type"`
}

func (LeafType) typeNode()   {}
func (PairedType) typeNode() {}
func (FieldList) typeNode()  {}

func (t LeafType) String() string {
	return t.Text
}

func (t PairedType) String() string {
	return t.Descriptor.String() + " & " + t.Content.String()
}

func (l FieldList) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, f := range l.Fields {
		b.WriteString("\n\t")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(f.Type.String(), "\n", "\n\t"))
	}
	if len(l.Fields) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON renders a leaf as its bare text.
func (t LeafType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Text)
}

// MarshalJSON renders a pair as {"descriptor": ..., "content": ...}.
func (t PairedType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Descriptor TypeNode `json:"descriptor"`
		Content    TypeNode `json:"content"`
	}{t.Descriptor, t.Content})
}

// MarshalJSON renders a field list as a JSON array of fields, [] when empty.
func (l FieldList) MarshalJSON() ([]byte, error) {
	if l.Fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Fields)
}

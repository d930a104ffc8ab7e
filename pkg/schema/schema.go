// Package schema describes wire types declaratively: for every Go type it
// records the wire name, optionality and kind of each field, and for
// polymorphic families how a variant is selected. The model is read-only
// once built; the decode and encode packages interpret it.
package schema

import (
	"reflect"
	"slices"
)

// Kind is the shape of a field value on the wire.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindNested
	KindCollection
	KindFamily
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindNested:
		return "nested"
	case KindCollection:
		return "collection"
	case KindFamily:
		return "variant_family"
	default:
		return "unknown"
	}
}

// Variant is implemented by every concrete member of a family. For
// discriminated families it returns the discriminator value; for key-selected
// families it returns the marker key whose presence selects the variant.
type Variant interface {
	WireVariant() string
}

// ScalarCodec converts between a wire primitive and a Go value type.
type ScalarCodec struct {
	Name string
	Type reflect.Type

	fromWire func(raw any) (reflect.Value, error)
	toWire   func(v reflect.Value) any
}

// FromWire validates raw and returns a value of Type.
func (c *ScalarCodec) FromWire(raw any) (reflect.Value, error) {
	return c.fromWire(raw)
}

// ToWire returns the wire primitive for v.
func (c *ScalarCodec) ToWire(v reflect.Value) any {
	return c.toWire(v)
}

// Node describes one value position: a field, a collection element, or a
// top-level type reference.
type Node struct {
	Kind Kind
	Type reflect.Type

	Scalar *ScalarCodec
	Object *Object
	Elem   *Node
	Family *Family
}

// Field is one declared struct field.
type Field struct {
	Name     string
	Optional bool
	// Pointer marks a *T Go field; Node describes T.
	Pointer bool
	Index   []int
	Node    *Node
	GoName  string
}

// Object is the schema of a plain struct type.
type Object struct {
	Name   string
	Type   reflect.Type
	Fields []Field
}

// Field looks up a field by wire name.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Family is a closed set of variants sharing one Go interface.
type Family struct {
	Name string
	Type reflect.Type
	// Discriminator is the wire key holding the variant tag. Empty for
	// key-selected families.
	Discriminator string

	tags     []string
	variants map[string]*Object
	byType   map[reflect.Type]string
}

// Keyed reports whether variants are selected by marker keys.
func (f *Family) Keyed() bool { return f.Discriminator == "" }

// Tags returns variant tags in registration order, which is also the order
// marker keys are checked in.
func (f *Family) Tags() []string { return slices.Clone(f.tags) }

// Variant returns the schema of the variant with the given tag.
func (f *Family) Variant(tag string) (*Object, bool) {
	obj, ok := f.variants[tag]
	return obj, ok
}

// TagOf returns the tag of a concrete variant type.
func (f *Family) TagOf(t reflect.Type) (string, bool) {
	tag, ok := f.byType[t]
	return tag, ok
}

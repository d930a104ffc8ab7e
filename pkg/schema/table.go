package schema

import (
	"fmt"
	"reflect"
	"sort"
)

// Table is the compiled, read-only schema shared by decoders and encoders.
type Table struct {
	scalars  map[reflect.Type]*ScalarCodec
	objects  map[reflect.Type]*Object
	families map[reflect.Type]*Family
}

// Object returns the schema of a struct type.
func (t *Table) Object(rt reflect.Type) (*Object, bool) {
	obj, ok := t.objects[rt]
	return obj, ok
}

// Family returns the family whose interface is rt.
func (t *Table) Family(rt reflect.Type) (*Family, bool) {
	fam, ok := t.families[rt]
	return fam, ok
}

// FamilyOf returns the family a concrete variant type belongs to.
func (t *Table) FamilyOf(rt reflect.Type) (*Family, bool) {
	for _, fam := range t.families {
		if _, ok := fam.byType[rt]; ok {
			return fam, true
		}
	}

	return nil, false
}

// Scalar returns the codec of a scalar type.
func (t *Table) Scalar(rt reflect.Type) (*ScalarCodec, bool) {
	codec, ok := t.scalars[rt]
	return codec, ok
}

// NodeOf resolves a type reference: a registered struct, family interface,
// scalar, or a slice of any of these. The table is not modified.
func (t *Table) NodeOf(rt reflect.Type) (*Node, error) {
	if rt == nil {
		return nil, fmt.Errorf("nil type reference")
	}
	if codec, ok := t.scalars[rt]; ok {
		return &Node{Kind: KindScalar, Type: rt, Scalar: codec}, nil
	}
	if fam, ok := t.families[rt]; ok {
		return &Node{Kind: KindFamily, Type: rt, Family: fam}, nil
	}
	if obj, ok := t.objects[rt]; ok {
		return &Node{Kind: KindNested, Type: rt, Object: obj}, nil
	}
	if rt.Kind() == reflect.Slice {
		elem, err := t.NodeOf(rt.Elem())
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindCollection, Type: rt, Elem: elem}, nil
	}

	return nil, fmt.Errorf("type %s is not in the schema", rt)
}

// Objects lists every object schema sorted by Go type name.
func (t *Table) Objects() []*Object {
	out := make([]*Object, 0, len(t.objects))
	for _, obj := range t.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type.String() < out[j].Type.String() })

	return out
}

// Families lists every family sorted by name.
func (t *Table) Families() []*Family {
	out := make([]*Family, 0, len(t.families))
	for _, fam := range t.families {
		out = append(out, fam)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

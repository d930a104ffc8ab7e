package schema

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type shape interface {
	Variant
	isShape()
}

type circle struct {
	Radius float64 `wire:"radius"`
}

func (circle) WireVariant() string { return "circle" }
func (circle) isShape()            {}

type square struct {
	Side  float64 `wire:"side"`
	Label string  `wire:"label,optional"`
}

func (square) WireVariant() string { return "square" }
func (square) isShape()            {}

type common struct {
	ID int64 `wire:"id"`
}

type drawing struct {
	common
	Title    string   `wire:"title"`
	Parent   *drawing `wire:"parent,optional"`
	Shapes   []shape  `wire:"shapes,optional"`
	Tags     []string `wire:"tags,optional"`
	internal string
	Computed string `wire:"-"`
}

func buildTestTable(t *testing.T) *Table {
	t.Helper()

	b := NewBuilder()
	b.Family("shape", (*shape)(nil), "kind", circle{}, square{})
	b.Object(drawing{})

	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func TestBuildObjectFields(t *testing.T) {
	table := buildTestTable(t)

	obj, ok := table.Object(reflect.TypeFor[drawing]())
	require.True(t, ok)

	names := make([]string, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"id", "title", "parent", "shapes", "tags"}, names)

	id, _ := obj.Field("id")
	require.Equal(t, []int{0, 0}, id.Index)
	require.False(t, id.Optional)
	require.Equal(t, KindScalar, id.Node.Kind)

	parent, _ := obj.Field("parent")
	require.True(t, parent.Pointer)
	require.Equal(t, KindNested, parent.Node.Kind)
	require.Same(t, obj, parent.Node.Object)

	shapes, _ := obj.Field("shapes")
	require.Equal(t, KindCollection, shapes.Node.Kind)
	require.Equal(t, KindFamily, shapes.Node.Elem.Kind)
}

func TestBuildFamily(t *testing.T) {
	table := buildTestTable(t)

	fam, ok := table.Family(reflect.TypeFor[shape]())
	require.True(t, ok)
	require.False(t, fam.Keyed())
	require.Equal(t, []string{"circle", "square"}, fam.Tags())

	tag, ok := fam.TagOf(reflect.TypeFor[square]())
	require.True(t, ok)
	require.Equal(t, "square", tag)

	owner, ok := table.FamilyOf(reflect.TypeFor[circle]())
	require.True(t, ok)
	require.Same(t, fam, owner)
}

func TestNodeOfResolvesSlices(t *testing.T) {
	table := buildTestTable(t)

	node, err := table.NodeOf(reflect.TypeFor[[]drawing]())
	require.NoError(t, err)
	require.Equal(t, KindCollection, node.Kind)
	require.Equal(t, KindNested, node.Elem.Kind)

	node, err = table.NodeOf(reflect.TypeFor[bool]())
	require.NoError(t, err)
	require.Equal(t, KindScalar, node.Kind)

	_, err = table.NodeOf(reflect.TypeFor[struct{ X int }]())
	require.Error(t, err)
}

type untagged struct {
	Name string
}

type requiredPointer struct {
	Next *requiredPointer `wire:"next"`
}

type duplicateNames struct {
	A string `wire:"x"`
	B string `wire:"x,optional"`
}

type customString string

type unregisteredScalar struct {
	V customString `wire:"v"`
}

type badVariant struct {
	Kind string `wire:"kind"`
}

func (badVariant) WireVariant() string { return "bad" }
func (badVariant) isShape()            {}

func TestBuildRejectsInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		declare func(b *Builder)
		want    string
	}{
		{name: "missing tag", declare: func(b *Builder) { b.Object(untagged{}) }, want: "has no wire tag"},
		{name: "required pointer", declare: func(b *Builder) { b.Object(requiredPointer{}) }, want: "pointer fields must be optional"},
		{name: "duplicate wire name", declare: func(b *Builder) { b.Object(duplicateNames{}) }, want: `wire name "x"`},
		{name: "unregistered scalar", declare: func(b *Builder) { b.Object(unregisteredScalar{}) }, want: "no registered scalar codec"},
		{name: "variant declares discriminator", declare: func(b *Builder) {
			b.Family("shape", (*shape)(nil), "kind", badVariant{})
		}, want: "declares the discriminator"},
		{name: "duplicate tag", declare: func(b *Builder) {
			b.Family("shape", (*shape)(nil), "kind", circle{}, circle{})
		}, want: "registered twice"},
		{name: "keyed variant without marker", declare: func(b *Builder) {
			b.KeyedFamily("shape", (*shape)(nil), circle{})
		}, want: "marker key"},
		{name: "not an interface pointer", declare: func(b *Builder) {
			b.Family("shape", circle{}, "kind", circle{})
		}, want: "expected nil interface pointer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.declare(b)

			_, err := b.Build()
			if err == nil {
				t.Fatal("expected build error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}

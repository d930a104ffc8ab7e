package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"tgwire/pkg/value"
)

const tagName = "wire"

type familySpec struct {
	name          string
	iface         reflect.Type
	discriminator string
	variants      []Variant
}

// Builder collects scalar codecs, objects and families, then compiles them
// into a Table. A Builder is not safe for concurrent use; the Table is.
type Builder struct {
	scalars  map[reflect.Type]*ScalarCodec
	objects  []reflect.Type
	families []familySpec
	errs     []error
}

// NewBuilder returns a builder with the primitive scalars registered.
func NewBuilder() *Builder {
	b := &Builder{scalars: make(map[reflect.Type]*ScalarCodec)}

	RegisterScalar(b, "string", value.String, func(s string) any { return s })
	RegisterScalar(b, "bool", value.Bool, func(v bool) any { return v })
	RegisterScalar(b, "int64", value.Int, func(n int64) any { return n })
	RegisterScalar(b, "int", func(raw any) (int, error) {
		n, err := value.Int(raw)
		return int(n), err
	}, func(n int) any { return int64(n) })
	RegisterScalar(b, "float64", value.Float, func(f float64) any { return f })

	return b
}

// RegisterScalar declares T as a scalar kind with the given wire conversions.
func RegisterScalar[T any](b *Builder, name string, fromWire func(raw any) (T, error), toWire func(T) any) {
	t := reflect.TypeFor[T]()
	if _, exists := b.scalars[t]; exists {
		b.errs = append(b.errs, fmt.Errorf("scalar %s registered twice", t))
		return
	}

	b.scalars[t] = &ScalarCodec{
		Name: name,
		Type: t,
		fromWire: func(raw any) (reflect.Value, error) {
			v, err := fromWire(raw)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(v), nil
		},
		toWire: func(v reflect.Value) any {
			return toWire(v.Interface().(T))
		},
	}
}

// Object declares struct types by sample value. Nested struct types are
// discovered from fields and need not be listed.
func (b *Builder) Object(samples ...any) {
	for _, sample := range samples {
		t := reflect.TypeOf(sample)
		if t == nil || t.Kind() != reflect.Struct {
			b.errs = append(b.errs, fmt.Errorf("object sample %T is not a struct", sample))
			continue
		}
		b.objects = append(b.objects, t)
	}
}

// Family declares a discriminated family. iface is a nil pointer to the
// family interface, e.g. (*InputMedia)(nil).
func (b *Builder) Family(name string, iface any, discriminator string, variants ...Variant) {
	if strings.TrimSpace(discriminator) == "" {
		b.errs = append(b.errs, fmt.Errorf("family %s: discriminator is required", name))
		return
	}
	b.addFamily(name, iface, discriminator, variants)
}

// KeyedFamily declares a family whose variant is picked by the first marker
// key present, checked in the order variants are given.
func (b *Builder) KeyedFamily(name string, iface any, variants ...Variant) {
	b.addFamily(name, iface, "", variants)
}

func (b *Builder) addFamily(name string, iface any, discriminator string, variants []Variant) {
	t := reflect.TypeOf(iface)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Interface {
		b.errs = append(b.errs, fmt.Errorf("family %s: expected nil interface pointer, got %T", name, iface))
		return
	}
	if len(variants) == 0 {
		b.errs = append(b.errs, fmt.Errorf("family %s: at least one variant is required", name))
		return
	}

	b.families = append(b.families, familySpec{
		name:          name,
		iface:         t.Elem(),
		discriminator: discriminator,
		variants:      variants,
	})
}

// Build compiles the declarations into a read-only Table.
func (b *Builder) Build() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	t := &Table{
		scalars:  make(map[reflect.Type]*ScalarCodec, len(b.scalars)),
		objects:  make(map[reflect.Type]*Object),
		families: make(map[reflect.Type]*Family, len(b.families)),
	}
	for k, v := range b.scalars {
		t.scalars[k] = v
	}

	var errs []error

	// Family shells first so that object fields can refer to any family.
	for _, spec := range b.families {
		if _, exists := t.families[spec.iface]; exists {
			errs = append(errs, fmt.Errorf("family %s registered twice", spec.iface))
			continue
		}
		t.families[spec.iface] = &Family{
			Name:          spec.name,
			Type:          spec.iface,
			Discriminator: spec.discriminator,
			variants:      make(map[string]*Object, len(spec.variants)),
			byType:        make(map[reflect.Type]string, len(spec.variants)),
		}
	}

	for _, spec := range b.families {
		fam := t.families[spec.iface]
		for _, variant := range spec.variants {
			if err := b.addVariant(t, fam, variant); err != nil {
				errs = append(errs, fmt.Errorf("family %s: %w", spec.name, err))
			}
		}
	}

	for _, ot := range b.objects {
		if _, err := b.resolveObject(t, ot); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return t, nil
}

func (b *Builder) addVariant(t *Table, fam *Family, variant Variant) error {
	vt := reflect.TypeOf(variant)
	if vt == nil || vt.Kind() != reflect.Struct {
		return fmt.Errorf("variant %T must be a struct value", variant)
	}
	if !vt.Implements(fam.Type) {
		return fmt.Errorf("variant %s does not implement %s", vt, fam.Type)
	}

	tag := variant.WireVariant()
	if tag == "" {
		return fmt.Errorf("variant %s has an empty tag", vt)
	}
	if _, exists := fam.variants[tag]; exists {
		return fmt.Errorf("variant tag %q registered twice", tag)
	}

	obj, err := b.resolveObject(t, vt)
	if err != nil {
		return err
	}

	if fam.Keyed() {
		if _, ok := obj.Field(tag); !ok {
			return fmt.Errorf("variant %s does not declare its marker key %q", vt, tag)
		}
	} else if _, ok := obj.Field(fam.Discriminator); ok {
		return fmt.Errorf("variant %s declares the discriminator %q as a field", vt, fam.Discriminator)
	}

	fam.tags = append(fam.tags, tag)
	fam.variants[tag] = obj
	fam.byType[vt] = tag

	return nil
}

func (b *Builder) resolveObject(t *Table, rt reflect.Type) (*Object, error) {
	if obj, ok := t.objects[rt]; ok {
		return obj, nil
	}

	obj := &Object{Name: rt.Name(), Type: rt}
	// Registered before fields resolve so self references terminate.
	t.objects[rt] = obj

	fields, err := b.collectFields(t, rt, nil)
	if err != nil {
		delete(t.objects, rt)
		return nil, fmt.Errorf("object %s: %w", rt, err)
	}

	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		if other, dup := seen[f.Name]; dup {
			delete(t.objects, rt)
			return nil, fmt.Errorf("object %s: wire name %q used by %s and %s", rt, f.Name, other, f.GoName)
		}
		seen[f.Name] = f.GoName
	}

	obj.Fields = fields
	return obj, nil
}

func (b *Builder) collectFields(t *Table, rt reflect.Type, parent []int) ([]Field, error) {
	var fields []Field

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, hasTag := sf.Tag.Lookup(tagName)
		index := append(append([]int{}, parent...), i)

		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			embedded, err := b.collectFields(t, sf.Type, index)
			if err != nil {
				return nil, err
			}
			fields = append(fields, embedded...)
			continue
		}
		if !sf.IsExported() || tag == "-" {
			continue
		}
		if !hasTag {
			return nil, fmt.Errorf("field %s has no %s tag", sf.Name, tagName)
		}

		name, optional, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}

		ft := sf.Type
		pointer := false
		if ft.Kind() == reflect.Pointer {
			if !optional {
				return nil, fmt.Errorf("field %s: pointer fields must be optional", sf.Name)
			}
			pointer = true
			ft = ft.Elem()
		}

		node, err := b.nodeFor(t, ft)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}

		fields = append(fields, Field{
			Name:     name,
			Optional: optional,
			Pointer:  pointer,
			Index:    index,
			Node:     node,
			GoName:   sf.Name,
		})
	}

	return fields, nil
}

func (b *Builder) nodeFor(t *Table, rt reflect.Type) (*Node, error) {
	if codec, ok := t.scalars[rt]; ok {
		return &Node{Kind: KindScalar, Type: rt, Scalar: codec}, nil
	}

	switch rt.Kind() {
	case reflect.Interface:
		fam, ok := t.families[rt]
		if !ok {
			return nil, fmt.Errorf("interface %s is not a registered family", rt)
		}
		return &Node{Kind: KindFamily, Type: rt, Family: fam}, nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return nil, fmt.Errorf("byte slices have no wire form")
		}
		elem, err := b.nodeFor(t, rt.Elem())
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindCollection, Type: rt, Elem: elem}, nil
	case reflect.Struct:
		obj, err := b.resolveObject(t, rt)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindNested, Type: rt, Object: obj}, nil
	default:
		return nil, fmt.Errorf("type %s has no registered scalar codec", rt)
	}
}

func parseTag(tag string) (string, bool, error) {
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", false, errors.New("empty wire name")
	}

	optional := false
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "optional":
			optional = true
		default:
			return "", false, fmt.Errorf("unknown tag option %q", opt)
		}
	}

	return name, optional, nil
}

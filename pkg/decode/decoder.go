// Package decode turns generic JSON value trees into typed objects by walking
// them against a schema.Table.
package decode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"tgwire/pkg/schema"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

// Decoder interprets a schema table. It holds no mutable state and is safe
// for concurrent use.
type Decoder struct {
	table *schema.Table
}

// New returns a decoder bound to table.
func New(table *schema.Table) *Decoder {
	return &Decoder{table: table}
}

// Parse materializes JSON into a generic tree. Numbers stay json.Number so
// large identifiers keep full precision.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse json: trailing data after top-level value")
	}

	return tree, nil
}

// Decode builds a value of type ref from raw. ref may be any type NodeOf
// accepts; the result's dynamic type is ref (or a variant of it for families).
func (d *Decoder) Decode(raw any, ref reflect.Type) (any, error) {
	node, err := d.table.NodeOf(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve type reference: %w", err)
	}

	v, err := d.node(raw, node)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// DecodeJSON parses data and decodes it as ref.
func (d *Decoder) DecodeJSON(data []byte, ref reflect.Type) (any, error) {
	tree, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return d.Decode(tree, ref)
}

// Into decodes raw as T.
func Into[T any](d *Decoder, raw any) (T, error) {
	var zero T
	v, err := d.Decode(raw, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// JSON parses data and decodes it as T.
func JSON[T any](d *Decoder, data []byte) (T, error) {
	tree, err := Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}

	return Into[T](d, tree)
}

func (d *Decoder) node(raw any, node *schema.Node) (reflect.Value, error) {
	switch node.Kind {
	case schema.KindScalar:
		return node.Scalar.FromWire(raw)
	case schema.KindNested:
		return d.object(raw, node.Object)
	case schema.KindCollection:
		return d.collection(raw, node)
	case schema.KindFamily:
		return d.family(raw, node.Family)
	default:
		return reflect.Value{}, wireerr.Newf(wireerr.TypeMismatch, "unsupported node kind %s", node.Kind)
	}
}

func (d *Decoder) object(raw any, obj *schema.Object) (reflect.Value, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return reflect.Value{}, wireerr.Newf(wireerr.TypeMismatch, "expected object for %s, got %s", obj.Name, value.KindOf(raw))
	}

	return d.fill(fields, obj)
}

func (d *Decoder) fill(fields map[string]any, obj *schema.Object) (reflect.Value, error) {
	out := reflect.New(obj.Type).Elem()

	for _, field := range obj.Fields {
		raw, present := fields[field.Name]
		if !present || raw == nil {
			if field.Optional {
				continue
			}
			return reflect.Value{}, wireerr.Missing(field.Name)
		}

		v, err := d.node(raw, field.Node)
		if err != nil {
			return reflect.Value{}, wireerr.At(err, field.Name)
		}

		target := out.FieldByIndex(field.Index)
		if field.Pointer {
			ptr := reflect.New(field.Node.Type)
			ptr.Elem().Set(v)
			v = ptr
		}
		target.Set(v)
	}

	return out, nil
}

func (d *Decoder) collection(raw any, node *schema.Node) (reflect.Value, error) {
	items, ok := raw.([]any)
	if !ok {
		return reflect.Value{}, wireerr.Newf(wireerr.TypeMismatch, "expected array, got %s", value.KindOf(raw))
	}

	out := reflect.MakeSlice(node.Type, len(items), len(items))
	for i, item := range items {
		if item == nil {
			return reflect.Value{}, wireerr.Index(wireerr.New(wireerr.TypeMismatch, "null collection element"), i)
		}
		v, err := d.node(item, node.Elem)
		if err != nil {
			return reflect.Value{}, wireerr.Index(err, i)
		}
		out.Index(i).Set(v)
	}

	return out, nil
}

func (d *Decoder) family(raw any, fam *schema.Family) (reflect.Value, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return reflect.Value{}, wireerr.Newf(wireerr.TypeMismatch, "expected object for %s, got %s", fam.Name, value.KindOf(raw))
	}

	tag, err := selectVariant(fields, fam)
	if err != nil {
		return reflect.Value{}, err
	}

	obj, ok := fam.Variant(tag)
	if !ok {
		return reflect.Value{}, wireerr.At(wireerr.Newf(wireerr.UnknownVariant, "%s has no variant %q", fam.Name, tag), fam.Discriminator)
	}

	v, err := d.fill(fields, obj)
	if err != nil {
		return reflect.Value{}, err
	}

	iface := reflect.New(fam.Type).Elem()
	iface.Set(v)
	return iface, nil
}

func selectVariant(fields map[string]any, fam *schema.Family) (string, error) {
	if fam.Keyed() {
		for _, key := range fam.Tags() {
			if raw, ok := fields[key]; ok && raw != nil {
				return key, nil
			}
		}
		return "", wireerr.Newf(wireerr.MissingDiscriminator, "%s object has none of the keys %v", fam.Name, fam.Tags())
	}

	raw, ok := fields[fam.Discriminator]
	if !ok || raw == nil {
		return "", wireerr.At(wireerr.Newf(wireerr.MissingDiscriminator, "%s object has no discriminator", fam.Name), fam.Discriminator)
	}

	tag, err := value.String(raw)
	if err != nil {
		return "", wireerr.At(err, fam.Discriminator)
	}

	return tag, nil
}

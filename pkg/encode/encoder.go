// Package encode projects typed objects back onto the wire: as generic JSON
// trees, and for outgoing operations as form or multipart payloads.
package encode

import (
	"encoding/json"
	"fmt"
	"reflect"

	"tgwire/pkg/schema"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

const attachScheme = "attach://"

var inputFileType = reflect.TypeFor[value.InputFile]()

// Encoder interprets a schema table in the write direction. It is safe for
// concurrent use.
type Encoder struct {
	table *schema.Table
}

// New returns an encoder bound to table.
func New(table *schema.Table) *Encoder {
	return &Encoder{table: table}
}

// attachments collects uploads found inside embedded JSON values.
type attachments struct {
	allowed bool
	names   map[*value.Upload]string
	order   []*value.Upload
}

func (a *attachments) add(upload *value.Upload) (string, error) {
	if !a.allowed {
		return "", wireerr.Newf(wireerr.TypeMismatch, "local upload %q has no JSON form", upload.Name())
	}
	if name, ok := a.names[upload]; ok {
		return name, nil
	}
	if a.names == nil {
		a.names = make(map[*value.Upload]string)
	}

	name := fmt.Sprintf("file%d", len(a.order))
	a.names[upload] = name
	a.order = append(a.order, upload)

	return name, nil
}

// Value converts v into a generic JSON tree. Absent optional fields are
// omitted; family members carry their discriminator.
func (e *Encoder) Value(v any) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, wireerr.New(wireerr.TypeMismatch, "cannot encode nil")
	}

	node, err := e.nodeOf(rv.Type())
	if err != nil {
		return nil, err
	}

	return e.node(rv, node, &attachments{})
}

// JSON encodes v as JSON bytes.
func (e *Encoder) JSON(v any) ([]byte, error) {
	tree, err := e.Value(v)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal wire tree: %w", err)
	}

	return data, nil
}

func (e *Encoder) nodeOf(rt reflect.Type) (*schema.Node, error) {
	// A concrete variant passed on its own still encodes its discriminator.
	if fam, ok := e.table.FamilyOf(rt); ok {
		return &schema.Node{Kind: schema.KindFamily, Type: fam.Type, Family: fam}, nil
	}

	node, err := e.table.NodeOf(rt)
	if err != nil {
		return nil, wireerr.Newf(wireerr.TypeMismatch, "%v", err)
	}

	return node, nil
}

func (e *Encoder) node(v reflect.Value, node *schema.Node, att *attachments) (any, error) {
	switch node.Kind {
	case schema.KindScalar:
		return e.scalar(v, node.Scalar, att)
	case schema.KindNested:
		return e.object(v, node.Object, att)
	case schema.KindCollection:
		return e.collection(v, node, att)
	case schema.KindFamily:
		return e.family(v, node.Family, att)
	default:
		return nil, wireerr.Newf(wireerr.TypeMismatch, "unsupported node kind %s", node.Kind)
	}
}

func (e *Encoder) scalar(v reflect.Value, codec *schema.ScalarCodec, att *attachments) (any, error) {
	if codec.Type == inputFileType {
		if upload, ok := v.Interface().(value.InputFile).Upload(); ok {
			name, err := att.add(upload)
			if err != nil {
				return nil, err
			}
			return attachScheme + name, nil
		}
	}

	return codec.ToWire(v), nil
}

func (e *Encoder) object(v reflect.Value, obj *schema.Object, att *attachments) (map[string]any, error) {
	out := make(map[string]any, len(obj.Fields))

	for _, field := range obj.Fields {
		fv, present, err := fieldValue(v, field)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}

		w, err := e.node(fv, field.Node, att)
		if err != nil {
			return nil, wireerr.At(err, field.Name)
		}
		out[field.Name] = w
	}

	return out, nil
}

func (e *Encoder) collection(v reflect.Value, node *schema.Node, att *attachments) ([]any, error) {
	out := make([]any, v.Len())
	for i := range out {
		w, err := e.node(v.Index(i), node.Elem, att)
		if err != nil {
			return nil, wireerr.Index(err, i)
		}
		out[i] = w
	}

	return out, nil
}

func (e *Encoder) family(v reflect.Value, fam *schema.Family, att *attachments) (map[string]any, error) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, wireerr.Newf(wireerr.TypeMismatch, "nil %s value", fam.Name)
		}
		v = v.Elem()
	}

	tag, ok := fam.TagOf(v.Type())
	if !ok {
		return nil, wireerr.Newf(wireerr.UnknownVariant, "%s is not a variant of %s", v.Type(), fam.Name)
	}
	obj, _ := fam.Variant(tag)

	out, err := e.object(v, obj, att)
	if err != nil {
		return nil, err
	}
	if !fam.Keyed() {
		out[fam.Discriminator] = tag
	}

	return out, nil
}

// fieldValue reads one field, reporting false for absent optionals. Required
// pointers and family fields that are nil fail as missing.
func fieldValue(v reflect.Value, field schema.Field) (reflect.Value, bool, error) {
	fv := v.FieldByIndex(field.Index)

	if field.Pointer {
		if fv.IsNil() {
			if field.Optional {
				return reflect.Value{}, false, nil
			}
			return reflect.Value{}, false, wireerr.Missing(field.Name)
		}
		return fv.Elem(), true, nil
	}

	if field.Optional && fv.IsZero() {
		return reflect.Value{}, false, nil
	}
	if fv.Kind() == reflect.Interface && fv.IsNil() {
		return reflect.Value{}, false, wireerr.Missing(field.Name)
	}

	return fv, true, nil
}

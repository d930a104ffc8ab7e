package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"tgwire/pkg/schema"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

// Shape is how a payload travels: flat key/value or multipart.
type Shape int

const (
	ShapeForm Shape = iota
	ShapeMultipart
)

func (s Shape) String() string {
	if s == ShapeMultipart {
		return "multipart"
	}

	return "form"
}

// Payload is an encoded operation. Fields hold inline text keyed by wire
// name; Files hold attachments, present only for ShapeMultipart. The payload
// owns the attachment streams until a transport sends it.
type Payload struct {
	Shape  Shape
	Fields map[string]string
	Files  map[string]*value.Upload
}

// Keys returns every wire key in the payload, sorted.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p.Fields)+len(p.Files))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	for k := range p.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Close releases every attachment stream.
func (p Payload) Close() error {
	var errs []error
	for name, upload := range p.Files {
		if err := upload.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close attachment %s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// Payload encodes an operation's parameter struct. Top-level local uploads
// become attachments under their own wire key; uploads nested inside
// embedded JSON become attach://fileN references with a fileN attachment.
// The attachment streams are never read here.
func (e *Encoder) Payload(params any) (Payload, error) {
	rv := reflect.ValueOf(params)
	if !rv.IsValid() {
		return Payload{}, wireerr.New(wireerr.TypeMismatch, "cannot encode nil parameters")
	}

	obj, ok := e.table.Object(rv.Type())
	if !ok {
		return Payload{}, wireerr.Newf(wireerr.TypeMismatch, "parameters %s are not in the schema", rv.Type())
	}

	fields := make(map[string]string, len(obj.Fields))
	files := make(map[string]*value.Upload)
	nested := &attachments{allowed: true}

	for _, field := range obj.Fields {
		fv, present, err := fieldValue(rv, field)
		if err != nil {
			return Payload{}, err
		}
		if !present {
			continue
		}

		if upload, ok := topLevelUpload(fv, field); ok {
			files[field.Name] = upload
			continue
		}

		w, err := e.node(fv, field.Node, nested)
		if err != nil {
			return Payload{}, wireerr.At(err, field.Name)
		}

		text, err := formText(w)
		if err != nil {
			return Payload{}, wireerr.At(err, field.Name)
		}
		fields[field.Name] = text
	}

	for _, upload := range nested.order {
		name := nested.names[upload]
		if _, clash := fields[name]; clash {
			return Payload{}, wireerr.Newf(wireerr.TypeMismatch, "attachment name %q collides with a field", name)
		}
		if _, clash := files[name]; clash {
			return Payload{}, wireerr.Newf(wireerr.TypeMismatch, "attachment name %q collides with a field", name)
		}
		files[name] = upload
	}

	if len(files) == 0 {
		return Payload{Shape: ShapeForm, Fields: fields}, nil
	}

	return Payload{Shape: ShapeMultipart, Fields: fields, Files: files}, nil
}

func topLevelUpload(fv reflect.Value, field schema.Field) (*value.Upload, bool) {
	if field.Node.Kind != schema.KindScalar || field.Node.Type != inputFileType {
		return nil, false
	}

	return fv.Interface().(value.InputFile).Upload()
}

// formText renders one wire value as form text: scalars as their literal,
// objects and arrays as embedded JSON.
func formText(w any) (string, error) {
	switch v := w.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", wireerr.Newf(wireerr.TypeMismatch, "marshal embedded json: %v", err)
		}
		return string(data), nil
	}
}

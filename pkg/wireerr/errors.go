package wireerr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category classifies a decode or encode failure.
type Category string

const (
	MissingField         Category = "missing_field"
	TypeMismatch         Category = "type_mismatch"
	InvalidValue         Category = "invalid_value"
	MissingDiscriminator Category = "missing_discriminator"
	UnknownVariant       Category = "unknown_variant"
	EncodingPrecondition Category = "encoding_precondition"
)

// Error is a categorized failure carrying the wire path where it happened.
type Error struct {
	Category Category
	Path     []string
	Detail   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(string(e.Category))
	if path := e.PathString(); path != "" {
		b.WriteString(" at ")
		b.WriteString(path)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// PathString renders the path as dotted keys with bracketed indexes, e.g. message.entities[1].type.
func (e *Error) PathString() string {
	if e == nil || len(e.Path) == 0 {
		return ""
	}

	var b strings.Builder
	for i, segment := range e.Path {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}

	return b.String()
}

// Field returns the last key of the path, skipping index segments.
func (e *Error) Field() string {
	if e == nil {
		return ""
	}
	for i := len(e.Path) - 1; i >= 0; i-- {
		if !strings.HasPrefix(e.Path[i], "[") {
			return e.Path[i]
		}
	}

	return ""
}

// New creates a categorized error with an empty path.
func New(category Category, detail string) error {
	return &Error{Category: category, Detail: detail}
}

// Newf creates a categorized error with a formatted detail.
func Newf(category Category, format string, args ...any) error {
	return &Error{Category: category, Detail: fmt.Sprintf(format, args...)}
}

// Missing reports an absent required field.
func Missing(field string) error {
	return &Error{Category: MissingField, Path: []string{field}, Detail: "required field is absent"}
}

// At prefixes the error path with one key. Errors outside the taxonomy are
// wrapped as type mismatches so the path is never lost.
func At(err error, key string) error {
	return prefix(err, key)
}

// Index prefixes the error path with a collection index.
func Index(err error, i int) error {
	return prefix(err, "["+strconv.Itoa(i)+"]")
}

func prefix(err error, segment string) error {
	if err == nil {
		return nil
	}

	var categorized *Error
	if !errors.As(err, &categorized) {
		return &Error{Category: TypeMismatch, Path: []string{segment}, Detail: err.Error()}
	}

	path := make([]string, 0, len(categorized.Path)+1)
	path = append(path, segment)
	path = append(path, categorized.Path...)

	return &Error{Category: categorized.Category, Path: path, Detail: categorized.Detail}
}

// CategoryFromError returns the category of err, or "" when err is outside the taxonomy.
func CategoryFromError(err error) Category {
	if err == nil {
		return ""
	}

	var categorized *Error
	if errors.As(err, &categorized) {
		return categorized.Category
	}

	return ""
}

// Is reports whether err carries the given category.
func Is(err error, category Category) bool {
	return CategoryFromError(err) == category
}

package schema

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Type checks a single decoded value.
type Type interface {
	// Name is the short type label used in messages, e.g. "string" or "{scalar}".
	Name() string
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (t stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return mismatch(t, value)
	}
	return nil
}

// intType accepts Go integers and whole float64 values, which is how JSON
// and YAML decoders hand back counters.
type intType struct{}

func (intType) Name() string { return "int" }

func (t intType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("expected int, got fractional number %v", v)
		}
		return nil
	}
	return mismatch(t, value)
}

type numberType struct{}

func (numberType) Name() string { return "number" }

func (t numberType) Validate(value any) error {
	if !isNumber(value) {
		return mismatch(t, value)
	}
	return nil
}

// scalarType accepts what a story variable may hold.
type scalarType struct{}

func (scalarType) Name() string { return "scalar" }

func (t scalarType) Validate(value any) error {
	switch value.(type) {
	case string, bool:
		return nil
	}
	if !isNumber(value) {
		return fmt.Errorf("expected string, number or bool, got %s", kindOf(value))
	}
	return nil
}

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return mismatch(t, value)
	}
	for i := range rv.Len() {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

type objectType struct {
	fields Schema
}

func (objectType) Name() string { return "object" }

func (t objectType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return mismatch(t, value)
	}
	return Validate(t.fields, m)
}

type mapType struct {
	elem Type
}

func (t mapType) Name() string { return "{" + t.elem.Name() + "}" }

func (t mapType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return mismatch(t, value)
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := t.elem.Validate(m[key]); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

type optionalType struct {
	inner Type
}

func (t optionalType) Name() string { return t.inner.Name() + "?" }

func (t optionalType) Validate(value any) error { return t.inner.Validate(value) }

type customType struct {
	name  string
	check func(any) error
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.check(value) }

// String accepts strings.
func String() Type { return stringType{} }

// Int accepts whole numbers.
func Int() Type { return intType{} }

// Number accepts any numeric value.
func Number() Type { return numberType{} }

// Scalar accepts a string, number or bool.
func Scalar() Type { return scalarType{} }

// Slice accepts a list whose elements all satisfy elem.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Object accepts a map[string]any matching fields. A nil schema accepts any object.
func Object(fields Schema) Type { return objectType{fields: fields} }

// Map accepts a map[string]any whose values all satisfy elem.
func Map(elem Type) Type { return mapType{elem: elem} }

// Optional lets a field be absent; a present value must still satisfy t.
func Optional(t Type) Type { return optionalType{inner: t} }

// Custom wraps a check function under the given name.
func Custom(name string, check func(any) error) Type {
	return customType{name: name, check: check}
}

func isOptional(t Type) bool {
	_, ok := t.(optionalType)
	return ok
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func mismatch(t Type, value any) error {
	return fmt.Errorf("expected %s, got %s", t.Name(), kindOf(value))
}

// kindOf names a decoded value the way a document author would see it.
func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	}
	if isNumber(value) {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}

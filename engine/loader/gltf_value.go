package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
)

// gltf_value.go is the first loading phase: JSON text becomes a generic value tree
// (map[string]any / []any / json.Number / string / bool / nil), wrapped in small path-aware
// accessors that the second phase uses to read typed fields.

// decodeValueTree decodes a complete JSON text into a generic value tree.
func decodeValueTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("", "empty input")
		}
		return nil, malformed("", "invalid JSON: %v", err)
	}

	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, malformed("", "unexpected data after the top-level value")
	}

	return root, nil
}

// object is a JSON object together with its location in the document.
type object struct {
	path   string
	fields map[string]any
}

// asObject wraps v as an object, failing when v is not a JSON object.
func asObject(path string, v any) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, malformed(path, "expected object, got %s", describe(v))
	}
	return object{path: path, fields: m}, nil
}

// at returns the path of a field of o.
func (o object) at(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

// get returns a field value; JSON null counts as absent.
func (o object) get(key string) (any, bool) {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o object) requiredInt(key string) (int, error) {
	v, ok := o.get(key)
	if !ok {
		return 0, malformed(o.at(key), "missing required field")
	}
	return toIndex(o.at(key), v)
}

func (o object) integer(key string, def int) (int, error) {
	v, ok := o.get(key)
	if !ok {
		return def, nil
	}
	return toIndex(o.at(key), v)
}

func (o object) optionalInt(key string) (*int, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	n, err := toIndex(o.at(key), v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// optionalCode reads an enum code. Any integral number is accepted; range checks belong to
// the enum parser.
func (o object) optionalCode(key string) (*int, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	n, err := toCode(o.at(key), v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (o object) number(key string, def float64) (float64, error) {
	v, ok := o.get(key)
	if !ok {
		return def, nil
	}
	return toFloat(o.at(key), v)
}

func (o object) boolean(key string, def bool) (bool, error) {
	v, ok := o.get(key)
	if !ok {
		return def, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, malformed(o.at(key), "expected boolean, got %s", describe(v))
	}
	return b, nil
}

func (o object) text(key string, def string) (string, error) {
	s, err := o.optionalText(key)
	if err != nil || s == nil {
		return def, err
	}
	return *s, nil
}

func (o object) requiredText(key string) (string, error) {
	s, err := o.optionalText(key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", malformed(o.at(key), "missing required field")
	}
	return *s, nil
}

func (o object) optionalText(key string) (*string, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, malformed(o.at(key), "expected string, got %s", describe(v))
	}
	return &s, nil
}

// list returns an array field, or nil when absent.
func (o object) list(key string) ([]any, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	items, isList := v.([]any)
	if !isList {
		return nil, malformed(o.at(key), "expected array, got %s", describe(v))
	}
	return items, nil
}

// objects returns an array of objects; an absent field yields an empty slice.
func (o object) objects(key string) ([]object, error) {
	items, err := o.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]object, len(items))
	for i, item := range items {
		obj, err := asObject(fmt.Sprintf("%s[%d]", o.at(key), i), item)
		if err != nil {
			return nil, err
		}
		out[i] = obj
	}
	return out, nil
}

func (o object) optionalObject(key string) (*object, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	obj, err := asObject(o.at(key), v)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (o object) requiredObject(key string) (object, error) {
	obj, err := o.optionalObject(key)
	if err != nil {
		return object{}, err
	}
	if obj == nil {
		return object{}, malformed(o.at(key), "missing required field")
	}
	return *obj, nil
}

// ints returns an array of non-negative integers; an absent field yields an empty slice.
func (o object) ints(key string) ([]int, error) {
	items, err := o.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, err := toIndex(fmt.Sprintf("%s[%d]", o.at(key), i), item)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// floats returns an array of numbers, or nil when absent.
func (o object) floats(key string) ([]float64, error) {
	items, err := o.list(key)
	if err != nil || items == nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(fmt.Sprintf("%s[%d]", o.at(key), i), item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// fixedFloats is floats with an exact length requirement; nil when absent.
func (o object) fixedFloats(key string, n int) ([]float64, error) {
	out, err := o.floats(key)
	if err != nil || out == nil {
		return nil, err
	}
	if len(out) != n {
		return nil, malformed(o.at(key), "expected %d numbers, got %d", n, len(out))
	}
	return out, nil
}

func (o object) texts(key string) ([]string, error) {
	items, err := o.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, malformed(fmt.Sprintf("%s[%d]", o.at(key), i), "expected string, got %s", describe(item))
		}
		out[i] = s
	}
	return out, nil
}

// indexMap returns an object whose values are all indices, or nil when absent.
func (o object) indexMap(key string) (map[string]int, error) {
	obj, err := o.optionalObject(key)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.asIndexMap()
}

func (o object) asIndexMap() (map[string]int, error) {
	out := make(map[string]int, len(o.fields))
	for k, v := range o.fields {
		n, err := toIndex(o.at(k), v)
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}

// toIndex converts a JSON number to a non-negative int. Integral floats such as 3.0 are accepted.
func toIndex(path string, v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, malformed(path, "expected integer, got %s", describe(v))
	}

	if i, err := num.Int64(); err == nil {
		if i < 0 || i > math.MaxInt32 {
			return 0, malformed(path, "integer %d out of range", i)
		}
		return int(i), nil
	}

	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, malformed(path, "expected integer, got %s", num.String())
	}
	if f < 0 || f > math.MaxInt32 {
		return 0, malformed(path, "integer %s out of range", num.String())
	}
	return int(f), nil
}

// toCode converts a JSON number to a signed int. Integral floats such as -1.0 are accepted.
func toCode(path string, v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, malformed(path, "expected integer, got %s", describe(v))
	}
	if i, err := num.Int64(); err == nil {
		return int(i), nil
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, malformed(path, "expected integer, got %s", num.String())
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, malformed(path, "integer %s out of range", num.String())
	}
	return int(f), nil
}

func toFloat(path string, v any) (float64, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, malformed(path, "expected number, got %s", describe(v))
	}
	f, err := num.Float64()
	if err != nil {
		return 0, malformed(path, "invalid number %s", num.String())
	}
	return f, nil
}

// describe names the JSON type of a decoded value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

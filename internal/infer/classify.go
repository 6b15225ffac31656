// Package infer derives primitive classifications and example-annotated
// schemas from observed runtime values.
package infer

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kinds returned by Classify
const (
	KindBoolean = "boolean"
	KindInteger = "integer"
	KindFloat   = "float"
	KindString  = "string"
	KindArray   = "array"
	KindObject  = "object"
	KindNull    = "null"
)

// Classify returns the primitive kind of v.
//
// The boolean check runs before the numeric one: "false" is not numeric and
// would otherwise classify as a string.
func Classify(v any) string {
	switch val := v.(type) {
	case bool:
		return KindBoolean
	case string:
		if val == "true" || val == "false" {
			return KindBoolean
		}
	}

	text, numeric := numericText(v)
	if !numeric {
		return kindName(v)
	}
	if strings.Contains(text, ".") {
		return KindFloat
	}
	return KindInteger
}

// Example converts a raw textual observation into the example value matching
// its classification. Strings are returned unchanged.
func Example(raw string) any {
	switch Classify(raw) {
	case KindBoolean:
		return raw == "true"
	case KindInteger:
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	}
	return raw
}

// numericText reports whether v is a number (or a string holding a finite
// number) and returns its textual form.
func numericText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "", false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return "", false
		}
		return s, true
	case json.Number:
		return val.String(), true
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return strconv.FormatInt(reflect.ValueOf(val).Convert(reflect.TypeOf(int64(0))).Int(), 10), true
	}
	return "", false
}

// kindName returns the lower-cased structural kind of a non-numeric value.
func kindName(v any) string {
	if v == nil {
		return KindNull
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map, reflect.Struct:
		return KindObject
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return kindName(rv.Elem().Interface())
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	}
	return strings.ToLower(rv.Kind().String())
}

package infer

import (
	"encoding/json"

	"github.com/prasenjit/go-oasgen/internal/models"
)

// Redacted replaces the example of any property named "password"
const Redacted = "******"

const redactedProperty = "password"

// DeriveSchema builds a structural schema for v and annotates the object
// properties with examples taken from v.
func DeriveSchema(v any) *models.Schema {
	v = normalize(v)
	schema := structure(v)
	fillExamples(schema, v)
	return schema
}

// structure builds the schema without examples.
func structure(v any) *models.Schema {
	switch val := v.(type) {
	case nil:
		return &models.Schema{Type: KindNull}
	case bool:
		return &models.Schema{Type: KindBoolean}
	case string:
		return &models.Schema{Type: KindString}
	case float64, json.Number:
		if Classify(val) == KindInteger {
			return &models.Schema{Type: KindInteger}
		}
		return &models.Schema{Type: "number"}
	case map[string]any:
		schema := &models.Schema{
			Type:       KindObject,
			Properties: make(map[string]*models.Schema, len(val)),
		}
		for name, prop := range val {
			schema.Properties[name] = structure(prop)
		}
		return schema
	case []any:
		return &models.Schema{
			Type:  KindArray,
			Items: itemsSchema(val),
		}
	}
	return &models.Schema{Type: Classify(v)}
}

// itemsSchema derives the schema of the first element and folds in the
// properties of any further object elements.
func itemsSchema(elems []any) *models.Schema {
	if len(elems) == 0 {
		return &models.Schema{}
	}
	items := structure(elems[0])
	if items.Type != KindObject {
		return items
	}
	for _, elem := range elems[1:] {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		for name, prop := range obj {
			if _, exists := items.Properties[name]; !exists {
				items.Properties[name] = structure(prop)
			}
		}
	}
	return items
}

// fillExamples annotates each property of an object schema with the value
// observed in v.
func fillExamples(schema *models.Schema, v any) {
	obj, ok := v.(map[string]any)
	if !ok || schema == nil || schema.Type != KindObject {
		return
	}
	for name, prop := range schema.Properties {
		val, present := obj[name]
		if !present {
			continue
		}
		switch prop.Type {
		case KindObject:
			fillExamples(prop, val)
		case KindArray:
			arr, _ := val.([]any)
			if len(arr) == 0 {
				prop.Example = []any{}
				continue
			}
			prop.Example = []any{arr[0]}
		default:
			if name == redactedProperty {
				prop.Example = Redacted
				continue
			}
			prop.Example = val
		}
	}
}

// normalize converts v into the generic JSON shapes (map[string]any, []any,
// float64, string, bool, nil) that schema derivation walks.
func normalize(v any) any {
	switch val := v.(type) {
	case nil, bool, string, float64, json.Number:
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return v
	}
	return generic
}

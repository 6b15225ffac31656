package processors

import (
	"net/url"
	"regexp"
	"sort"

	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
)

// bracketKeyPattern matches form-style nested keys such as filter[name] or ids[]
var bracketKeyPattern = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]*)\]$`)

// QueryObject groups raw query values into generic values. A single value is
// a string, repeated values are an array, name[key] becomes a nested object
// and name[] an array.
func QueryObject(values url.Values) map[string]any {
	result := make(map[string]any, len(values))

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		m := bracketKeyPattern.FindStringSubmatch(key)
		if m == nil {
			result[key] = queryValue(vals)
			continue
		}

		base, sub := m[1], m[2]
		if sub == "" {
			arr, _ := result[base].([]any)
			for _, v := range vals {
				arr = append(arr, v)
			}
			result[base] = arr
			continue
		}

		obj, ok := result[base].(map[string]any)
		if !ok {
			obj = make(map[string]any)
			result[base] = obj
		}
		obj[sub] = queryValue(vals)
	}

	return result
}

func queryValue(vals []string) any {
	if len(vals) == 1 {
		return vals[0]
	}
	arr := make([]any, len(vals))
	for i, v := range vals {
		arr[i] = v
	}
	return arr
}

// Query adds a query parameter for every name not yet present on op.
// Repeated values are marked with the multi collection format, and plain
// strings are narrowed to boolean or numeric types when they look like one.
func Query(op *models.Operation, values url.Values) {
	if len(values) == 0 {
		return
	}

	obj := QueryObject(values)
	schema := infer.DeriveSchema(obj)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if op.HasParamNamed(name) {
			continue
		}

		prop := schema.Properties[name]
		param := &models.Parameter{
			Name:       name,
			In:         models.LocationQuery,
			Type:       prop.Type,
			Items:      prop.Items,
			Properties: prop.Properties,
			Example:    obj[name],
		}
		switch prop.Type {
		case infer.KindArray:
			param.CollectionFormat = "multi"
		case infer.KindString:
			param.Type = infer.Classify(obj[name])
		}
		op.Parameters = append(op.Parameters, param)
	}
}

package infer

import (
	"reflect"
	"strings"
	"time"

	"github.com/prasenjit/go-oasgen/internal/models"
)

// DefinitionsRef is the JSON pointer prefix of Swagger 2.0 definitions
const DefinitionsRef = "#/definitions/"

var timeType = reflect.TypeOf(time.Time{})

// modelGenerator converts Go struct types into definitions. Named structs
// are referenced through $ref so recursive types terminate.
type modelGenerator struct {
	defs    map[string]*models.Schema
	visited map[reflect.Type]bool
}

// ModelSchemas builds Swagger definitions for the given values, keyed by
// their Go type name. Non-struct values are ignored.
func ModelSchemas(values ...any) map[string]*models.Schema {
	g := &modelGenerator{
		defs:    make(map[string]*models.Schema),
		visited: make(map[reflect.Type]bool),
	}
	for _, v := range values {
		if v == nil {
			continue
		}
		t := reflect.TypeOf(v)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct || t.Name() == "" {
			continue
		}
		g.generate(t)
	}
	return g.defs
}

func (g *modelGenerator) generate(t reflect.Type) *models.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return &models.Schema{Type: KindString, Format: "date-time"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &models.Schema{Type: KindBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &models.Schema{Type: KindInteger, Format: "int32"}
	case reflect.Int64, reflect.Uint64:
		return &models.Schema{Type: KindInteger, Format: "int64"}
	case reflect.Float32:
		return &models.Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &models.Schema{Type: "number", Format: "double"}
	case reflect.String:
		return &models.Schema{Type: KindString}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &models.Schema{Type: KindString, Format: "byte"}
		}
		return &models.Schema{Type: KindArray, Items: g.generate(t.Elem())}
	case reflect.Array:
		return &models.Schema{Type: KindArray, Items: g.generate(t.Elem())}
	case reflect.Map:
		return &models.Schema{Type: KindObject}
	case reflect.Struct:
		if t.Name() == "" {
			return g.structSchema(t)
		}
		if !g.visited[t] {
			g.visited[t] = true
			g.defs[t.Name()] = g.structSchema(t)
		}
		return &models.Schema{Ref: DefinitionsRef + t.Name()}
	}
	return &models.Schema{}
}

func (g *modelGenerator) structSchema(t reflect.Type) *models.Schema {
	schema := &models.Schema{
		Type:       KindObject,
		Properties: make(map[string]*models.Schema),
	}
	g.collectFields(t, schema)
	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return schema
}

// collectFields adds the exported fields of t to schema, flattening
// untagged embedded structs the way encoding/json does.
func (g *modelGenerator) collectFields(t reflect.Type, schema *models.Schema) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		ft := field.Type
		if field.Anonymous && name == "" {
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				g.collectFields(ft, schema)
				continue
			}
		}

		if name == "" {
			name = field.Name
		}
		schema.Properties[name] = g.generate(field.Type)

		optional := strings.Contains(opts, "omitempty") || field.Type.Kind() == reflect.Pointer
		if !optional {
			schema.Required = append(schema.Required, name)
		}
	}
}

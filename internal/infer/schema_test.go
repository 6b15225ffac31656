package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestDeriveSchema_RedactsPasswords(t *testing.T) {
	value := map[string]any{
		"a":        float64(2),
		"b":        "1",
		"password": "123456",
		"inner": map[string]any{
			"password": "122",
		},
	}

	schema := DeriveSchema(value)

	require.Equal(t, KindObject, schema.Type)
	assert.Equal(t, Redacted, schema.Properties["password"].Example)
	assert.Equal(t, Redacted, schema.Properties["inner"].Properties["password"].Example)
	assert.Equal(t, float64(2), schema.Properties["a"].Example)
	assert.Equal(t, KindInteger, schema.Properties["a"].Type)
	assert.Equal(t, "1", schema.Properties["b"].Example)
	assert.Equal(t, KindString, schema.Properties["b"].Type)
}

func TestDeriveSchema_ArrayExampleKeepsFirstElement(t *testing.T) {
	value := map[string]any{
		"ids":   []any{float64(1), float64(2), float64(3)},
		"empty": []any{},
	}

	schema := DeriveSchema(value)

	ids := schema.Properties["ids"]
	require.NotNil(t, ids)
	assert.Equal(t, KindArray, ids.Type)
	assert.Equal(t, KindInteger, ids.Items.Type)
	assert.Equal(t, []any{float64(1)}, ids.Example)
	assert.Equal(t, []any{}, schema.Properties["empty"].Example)
}

func TestDeriveSchema_ObjectArrayMergesProperties(t *testing.T) {
	value := []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2), "name": "b"},
	}

	schema := DeriveSchema(value)

	assert.Equal(t, KindArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, KindObject, schema.Items.Type)
	assert.Contains(t, schema.Items.Properties, "id")
	assert.Contains(t, schema.Items.Properties, "name")
	assert.Nil(t, schema.Example)
}

func TestDeriveSchema_Scalars(t *testing.T) {
	assert.Equal(t, "number", DeriveSchema(1.5).Type)
	assert.Equal(t, KindBoolean, DeriveSchema(true).Type)
	assert.Equal(t, KindNull, DeriveSchema(nil).Type)
	assert.Equal(t, KindString, DeriveSchema("x").Type)
}

func TestDeriveSchema_FromGJSON(t *testing.T) {
	value := gjson.Parse(`{"result":"OK","count":3,"ok":true}`).Value()

	schema := DeriveSchema(value)

	assert.Equal(t, KindString, schema.Properties["result"].Type)
	assert.Equal(t, "OK", schema.Properties["result"].Example)
	assert.Equal(t, KindInteger, schema.Properties["count"].Type)
	assert.Equal(t, true, schema.Properties["ok"].Example)
}

func TestDeriveSchema_Structs(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Roles []string `json:"roles"`
	}

	schema := DeriveSchema(payload{Name: "ann", Roles: []string{"admin", "dev"}})

	assert.Equal(t, "ann", schema.Properties["name"].Example)
	assert.Equal(t, []any{"admin"}, schema.Properties["roles"].Example)
}

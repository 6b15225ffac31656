package infer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Address struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
}

type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Nickname  *string   `json:"nickname"`
	Score     float64   `json:"score,omitempty"`
	Address   Address   `json:"address"`
	Tags      []string  `json:"tags"`
	Enrolled  time.Time `json:"enrolled"`
	Secret    string    `json:"-"`
	internal  string
	Timestamp
}

type Timestamp struct {
	Updated time.Time `json:"updated"`
}

func TestModelSchemas(t *testing.T) {
	defs := ModelSchemas(Student{}, &Address{}, "not a struct", nil)

	require.Contains(t, defs, "Student")
	require.Contains(t, defs, "Address")
	assert.Len(t, defs, 2)

	student := defs["Student"]
	assert.Equal(t, KindObject, student.Type)
	assert.Equal(t, "int64", student.Properties["id"].Format)
	assert.Equal(t, DefinitionsRef+"Address", student.Properties["address"].Ref)
	assert.Equal(t, KindArray, student.Properties["tags"].Type)
	assert.Equal(t, "date-time", student.Properties["enrolled"].Format)
	assert.Contains(t, student.Properties, "updated")
	assert.NotContains(t, student.Properties, "Secret")
	assert.NotContains(t, student.Properties, "internal")

	assert.Contains(t, student.Required, "id")
	assert.NotContains(t, student.Required, "nickname")
	assert.NotContains(t, student.Required, "score")

	assert.Equal(t, []string{"street"}, defs["Address"].Required)
}

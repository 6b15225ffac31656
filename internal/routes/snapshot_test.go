package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(c *gin.Context) {}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name           string
		ginPath        string
		expected       string
		expectedParams []string
	}{
		{"static path", "/students", "/students", []string{}},
		{"single param", "/students/:id", "/students/{id}", []string{"id"}},
		{"multiple params", "/a/:b/c/:d", "/a/{b}/c/{d}", []string{"b", "d"}},
		{"catch-all", "/static/*filepath", "/static/{filepath}", []string{"filepath"}},
		{"dot in path", "/files/:name.json", "/files/{name.json}", []string{"name.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, params := Template(tt.ginPath)
			assert.Equal(t, tt.expected, template)
			assert.Equal(t, tt.expectedParams, params)
		})
	}
}

func TestSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/students", noop)
	r.POST("/students", noop)
	r.GET("/students/:id", noop)
	r.Handle(http.MethodConnect, "/tunnel", noop)
	r.GET("/api-docs", noop)

	snapshot := Snapshot(r.Routes(), "/api-docs")

	byTemplate := make(map[string]Route)
	for _, route := range snapshot {
		byTemplate[route.Template] = route
	}

	require.Len(t, byTemplate, 2)
	assert.ElementsMatch(t, []string{"get", "post"}, byTemplate["/students"].Methods)
	assert.Equal(t, []string{"get"}, byTemplate["/students/{id}"].Methods)
	assert.Equal(t, []string{"id"}, byTemplate["/students/{id}"].Params)
	assert.NotContains(t, byTemplate, "/tunnel")
}

func TestSnapshotSkipsCatchAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/static/*filepath", noop)
	r.GET("/files/:name", noop)

	snapshot := Snapshot(r.Routes())

	require.Len(t, snapshot, 1)
	assert.Equal(t, "/files/{name}", snapshot[0].Template)

	m := NewMatcher(snapshot)
	_, ok := m.Resolve(http.MethodGet, "/static/css/app.css")
	assert.False(t, ok)
}

func TestRouteStub(t *testing.T) {
	route := Route{Template: "/a/{b}/c/{d}", Params: []string{"b", "d"}, Methods: []string{"get"}}

	op := route.Stub()

	assert.Equal(t, "/a/{b}/c/{d}", op.Summary)
	assert.Equal(t, []string{DefaultConsumes}, op.Consumes)
	require.Len(t, op.Parameters, 2)
	for i, name := range []string{"b", "d"} {
		assert.Equal(t, name, op.Parameters[i].Name)
		assert.Equal(t, models.LocationPath, op.Parameters[i].In)
		assert.True(t, op.Parameters[i].Required)
		assert.Empty(t, op.Parameters[i].Type)
	}
	assert.Empty(t, op.Responses)

	assert.NotSame(t, op, route.Stub())
}

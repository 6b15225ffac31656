package processors

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathOperation() *models.Operation {
	op := models.NewOperation("/a/{b}/c/{d}")
	op.Parameters = []*models.Parameter{
		{Name: "b", In: models.LocationPath, Required: true},
		{Name: "d", In: models.LocationPath, Required: true},
		{Name: "e", In: models.LocationBody},
	}
	return op
}

func TestPath_TypesParametersPositionally(t *testing.T) {
	op := pathOperation()
	bodyParam := op.Parameters[2]

	err := Path(op, "/a/{b}/c/{d}", "/a/foo/c/2")

	require.NoError(t, err)
	assert.Equal(t, infer.KindString, op.Parameters[0].Type)
	assert.Equal(t, "foo", op.Parameters[0].Example)
	assert.Equal(t, infer.KindInteger, op.Parameters[1].Type)
	assert.Equal(t, int64(2), op.Parameters[1].Example)
	assert.Same(t, bodyParam, op.Parameters[2])
	assert.Empty(t, bodyParam.Type)
}

func TestPath_FirstObservationWins(t *testing.T) {
	op := pathOperation()

	require.NoError(t, Path(op, "/a/{b}/c/{d}", "/a/foo/c/2"))
	require.NoError(t, Path(op, "/a/{b}/c/{d}", "/a/7/c/bar"))

	assert.Equal(t, "foo", op.Parameters[0].Example)
	assert.Equal(t, int64(2), op.Parameters[1].Example)
}

func TestPath_NoPlaceholders(t *testing.T) {
	op := models.NewOperation("/a/b")

	require.NoError(t, Path(op, "/a/b", "/a/b"))
	assert.Empty(t, op.Parameters)
}

func TestPath_Mismatch(t *testing.T) {
	op := pathOperation()

	assert.Error(t, Path(op, "/a/{b}/c/{d}", "/x/y"))
	assert.Empty(t, op.Parameters[0].Type)
}

func TestPath_UnescapesSegments(t *testing.T) {
	op := models.NewOperation("/users/{name}")
	op.Parameters = []*models.Parameter{{Name: "name", In: models.LocationPath}}

	require.NoError(t, Path(op, "/users/{name}", "/users/john%20doe"))
	assert.Equal(t, "john doe", op.Parameters[0].Example)
}

func TestHeaders_SecurityFromAuthorizationAndCustomHeaders(t *testing.T) {
	op := models.NewOperation("/secure")
	spec := models.NewSpec()
	header := http.Header{}
	header.Set("Authorization", "Bearer token")
	header.Set("X-Header", "value")
	header.Set("Accept", "application/json")

	Headers(op, spec, header)
	Headers(op, spec, header)

	assert.Equal(t, []models.SecurityRequirement{
		{"authorization": []string{}},
		{"x-header": []string{}},
	}, op.Security)
	require.Len(t, spec.SecurityDefinitions, 2)
	for _, name := range []string{"authorization", "x-header"} {
		assert.Equal(t, &models.SecurityScheme{Type: "apiKey", In: "header", Name: name}, spec.SecurityDefinitions[name])
	}
	require.Contains(t, op.Responses, "401")
	assert.Equal(t, "Unauthorized", op.Responses["401"].Description)
}

func TestHeaders_CustomHeaderWithoutAuthorization(t *testing.T) {
	op := models.NewOperation("/x")
	spec := models.NewSpec()
	header := http.Header{}
	header.Set("X-Api-Key", "k")

	Headers(op, spec, header)

	assert.NotContains(t, op.Responses, "401")
	assert.Equal(t, []models.SecurityRequirement{{"x-api-key": []string{}}}, op.Security)
}

func TestBody_Idempotent(t *testing.T) {
	op := models.NewOperation("/students")
	body := []byte(`{"a":1}`)

	require.NoError(t, Body(op, "application/json", body))
	require.NoError(t, Body(op, "application/json", body))

	require.Len(t, op.Parameters, 1)
	param := op.Parameters[0]
	assert.Equal(t, models.LocationBody, param.In)
	assert.Equal(t, "body", param.Name)
	assert.True(t, param.Required)
	require.NotNil(t, param.Schema)
	assert.Equal(t, infer.KindObject, param.Schema.Type)
}

func TestBody_EmptyBodies(t *testing.T) {
	op := models.NewOperation("/students")

	require.NoError(t, Body(op, "application/json", nil))
	require.NoError(t, Body(op, "application/json", []byte(`{}`)))
	require.NoError(t, Body(op, "application/json", []byte(`"scalar"`)))

	assert.Empty(t, op.Parameters)
}

func TestBody_Malformed(t *testing.T) {
	op := models.NewOperation("/students")

	err := Body(op, "application/json", []byte(`{"a":`))

	assert.ErrorIs(t, err, ErrMalformedBody)
	assert.Empty(t, op.Parameters)
}

func TestBody_FormRecordsConsumes(t *testing.T) {
	op := models.NewOperation("/login")
	op.Consumes = []string{"application/json"}

	require.NoError(t, Body(op, "application/x-www-form-urlencoded; charset=utf-8", []byte("user=ann&password=secret")))

	assert.Equal(t, []string{"application/json", "application/x-www-form-urlencoded"}, op.Consumes)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, infer.Redacted, op.Parameters[0].Schema.Properties["password"].Example)
	assert.Equal(t, "ann", op.Parameters[0].Schema.Properties["user"].Example)
}

func TestBody_Unsupported(t *testing.T) {
	op := models.NewOperation("/upload")

	assert.ErrorIs(t, Body(op, "application/octet-stream", []byte{1, 2}), ErrUnsupportedBody)
}

func TestReadBody_RestoresStream(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"a":1}`))

	data, truncated, err := ReadBody(req, 1024)

	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, `{"a":1}`, string(data))

	replayed, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(replayed))
}

func TestReadBody_Truncated(t *testing.T) {
	payload := strings.Repeat("x", 100)
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(payload))

	data, truncated, err := ReadBody(req, 10)

	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Nil(t, data)

	replayed, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(replayed))
}

func TestQuery_AddsOnlyNewParameters(t *testing.T) {
	op := models.NewOperation("/students")
	op.Parameters = []*models.Parameter{{Name: "a", In: models.LocationQuery, Example: 2}}
	values := url.Values{
		"a": {"1"},
		"b": {"2"},
		"c": {"1", "2", "3"},
	}

	Query(op, values)

	require.Len(t, op.Parameters, 3)
	assert.Equal(t, 2, op.Parameters[0].Example)

	b := op.Parameters[1]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, models.LocationQuery, b.In)
	assert.Equal(t, infer.KindInteger, b.Type)
	assert.Equal(t, "2", b.Example)

	c := op.Parameters[2]
	assert.Equal(t, infer.KindArray, c.Type)
	assert.Equal(t, "multi", c.CollectionFormat)
	assert.Equal(t, []any{"1", "2", "3"}, c.Example)
}

func TestQuery_NarrowsBooleansAndNestsObjects(t *testing.T) {
	op := models.NewOperation("/search")
	values := url.Values{
		"active":       {"true"},
		"filter[name]": {"ann"},
		"ids[]":        {"1", "2"},
	}

	Query(op, values)

	require.Len(t, op.Parameters, 3)
	params := make(map[string]*models.Parameter)
	for _, p := range op.Parameters {
		params[p.Name] = p
	}
	assert.Equal(t, infer.KindBoolean, params["active"].Type)
	assert.Equal(t, infer.KindObject, params["filter"].Type)
	assert.Equal(t, "ann", params["filter"].Properties["name"].Example)
	assert.Equal(t, "multi", params["ids"].CollectionFormat)
}

func TestQuery_Empty(t *testing.T) {
	op := models.NewOperation("/students")

	Query(op, url.Values{})

	assert.Empty(t, op.Parameters)
}

func newRecorderContext(t *testing.T, wants func(int) bool) (*gin.Context, *httptest.ResponseRecorder, *ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	rec := NewResponseRecorder(c.Writer, 1<<20, wants)
	c.Writer = rec
	return c, w, rec
}

func TestResponse_JSON(t *testing.T) {
	c, w, rec := newRecorderContext(t, nil)
	op := models.NewOperation("/status")

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
	Response(op, rec.Result())

	assert.JSONEq(t, `{"result":"OK"}`, w.Body.String())
	assert.Equal(t, []string{"application/json"}, op.Produces)
	require.Contains(t, op.Responses, "200")
	resp := op.Responses["200"]
	assert.Equal(t, "OK", resp.Description)
	require.NotNil(t, resp.Schema)
	assert.Equal(t, infer.KindObject, resp.Schema.Type)
	assert.Equal(t, &models.Schema{Type: "string", Example: "OK"}, resp.Schema.Properties["result"])
}

func TestResponse_FirstObservationWins(t *testing.T) {
	op := models.NewOperation("/status")

	Response(op, Capture{Status: 200, ContentType: "application/json", Body: []byte(`{"a":1}`)})
	Response(op, Capture{Status: 200, ContentType: "text/plain", Body: []byte(`hello`)})

	assert.Equal(t, []string{"application/json", "text/plain"}, op.Produces)
	assert.Contains(t, op.Responses["200"].Schema.Properties, "a")
}

func TestResponse_TextScalar(t *testing.T) {
	op := models.NewOperation("/count")

	Response(op, Capture{Status: 200, ContentType: "text/plain; charset=utf-8", Body: []byte("42")})

	assert.Equal(t, &models.Schema{Type: infer.KindInteger, Example: int64(42)}, op.Responses["200"].Schema)
}

func TestResponse_BinaryHasNoSchema(t *testing.T) {
	op := models.NewOperation("/file")

	Response(op, Capture{Status: 200, ContentType: "application/octet-stream", Body: []byte{0, 1}})

	assert.Equal(t, []string{"application/octet-stream"}, op.Produces)
	assert.Equal(t, "OK", op.Responses["200"].Description)
	assert.Nil(t, op.Responses["200"].Schema)
}

func TestResponse_GzipIsSkipped(t *testing.T) {
	c, w, rec := newRecorderContext(t, nil)
	op := models.NewOperation("/gzip")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"message":"gzip"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	c.Header("Content-Encoding", "gzip")
	c.Data(http.StatusOK, "application/json", buf.Bytes())
	Response(op, rec.Result())

	assert.Equal(t, buf.Bytes(), w.Body.Bytes())
	assert.Empty(t, op.Produces)
	assert.Empty(t, op.Responses)
}

func TestResponseRecorder_SkipsBufferingWhenNotWanted(t *testing.T) {
	c, w, rec := newRecorderContext(t, func(int) bool { return false })

	c.String(http.StatusOK, "hello")

	assert.Equal(t, "hello", w.Body.String())
	assert.Empty(t, rec.Result().Body)
}

func TestResponseRecorder_Truncates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	rec := NewResponseRecorder(c.Writer, 4, nil)
	c.Writer = rec

	c.String(http.StatusOK, "hello world")
	result := rec.Result()

	assert.Equal(t, "hello world", w.Body.String())
	assert.True(t, result.Truncated)
	assert.Empty(t, result.Body)
}

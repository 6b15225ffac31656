package processors

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/tidwall/gjson"
)

// compressedEncodings are the Content-Encoding values whose bytes cannot be introspected
var compressedEncodings = map[string]bool{
	"gzip":     true,
	"compress": true,
	"deflate":  true,
	"br":       true,
}

// Capture is what a ResponseRecorder saw of one response
type Capture struct {
	Status      int
	ContentType string
	Body        []byte
	Compressed  bool // Content-Encoding made the body opaque
	Truncated   bool // Body exceeded the capture limit and was dropped
}

// ResponseRecorder decorates a gin.ResponseWriter and keeps a copy of the
// bytes written through it. Bytes are only retained while wants reports that
// the current status still needs a recorded response. What reaches the
// client is never altered.
type ResponseRecorder struct {
	gin.ResponseWriter

	wants      func(status int) bool
	limit      int
	body       bytes.Buffer
	compressed bool
	truncated  bool
}

// NewResponseRecorder wraps w. A non-positive limit disables body capture.
func NewResponseRecorder(w gin.ResponseWriter, limit int, wants func(status int) bool) *ResponseRecorder {
	return &ResponseRecorder{
		ResponseWriter: w,
		wants:          wants,
		limit:          limit,
	}
}

// Write records data and forwards it unchanged
func (r *ResponseRecorder) Write(data []byte) (int, error) {
	r.capture(data)
	return r.ResponseWriter.Write(data)
}

// WriteString records s and forwards it unchanged
func (r *ResponseRecorder) WriteString(s string) (int, error) {
	r.capture([]byte(s))
	return r.ResponseWriter.WriteString(s)
}

func (r *ResponseRecorder) capture(data []byte) {
	if r.isCompressed() {
		r.compressed = true
		return
	}
	if r.truncated || len(data) == 0 {
		return
	}
	if r.wants != nil && !r.wants(r.Status()) {
		return
	}
	if r.body.Len()+len(data) > r.limit {
		r.truncated = true
		r.body.Reset()
		return
	}
	r.body.Write(data)
}

func (r *ResponseRecorder) isCompressed() bool {
	encoding := strings.ToLower(strings.TrimSpace(r.Header().Get("Content-Encoding")))
	return compressedEncodings[encoding]
}

// Result finalizes the capture
func (r *ResponseRecorder) Result() Capture {
	return Capture{
		Status:      r.Status(),
		ContentType: r.Header().Get("Content-Type"),
		Body:        r.body.Bytes(),
		Compressed:  r.compressed || r.isCompressed(),
		Truncated:   r.truncated,
	}
}

// Response records the content type of c in produces and, when op has no
// response for the status yet, a response entry with a schema inferred from
// the captured body. Compressed responses are skipped entirely.
func Response(op *models.Operation, c Capture) {
	if c.Compressed {
		return
	}

	mediaType := MediaType(c.ContentType)
	op.AddProduces(mediaType)

	if op.HasResponse(c.Status) {
		return
	}

	resp := &models.Response{Description: statusDescription(c.Status)}
	if !c.Truncated && len(bytes.TrimSpace(c.Body)) > 0 && (isJSON(mediaType) || isText(mediaType)) {
		resp.Schema = responseSchema(mediaType, c.Body)
	}
	op.SetResponse(c.Status, resp)
}

// responseSchema derives the schema of a JSON body, falling back to a
// scalar classification of the raw text.
func responseSchema(mediaType string, body []byte) *models.Schema {
	if isJSON(mediaType) && gjson.ValidBytes(body) {
		return infer.DeriveSchema(gjson.ParseBytes(body).Value())
	}
	text := string(body)
	return &models.Schema{
		Type:    infer.Classify(text),
		Example: infer.Example(text),
	}
}

func statusDescription(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("Status %d", status)
}

package processors

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/tidwall/gjson"
)

const formMediaType = "application/x-www-form-urlencoded"

var (
	// ErrMalformedBody is returned for bodies that do not parse as their content type
	ErrMalformedBody = errors.New("malformed request body")

	// ErrUnsupportedBody is returned for content types that cannot be introspected
	ErrUnsupportedBody = errors.New("unsupported body content type")
)

// replayBody serves already-read bytes before the rest of the original body
type replayBody struct {
	io.Reader
	io.Closer
}

// ReadBody reads up to limit bytes of the request body and puts them back in
// front of the unread remainder, so handlers still see the full stream.
// truncated is true when the body is larger than limit; no data is returned
// in that case.
func ReadBody(r *http.Request, limit int64) (data []byte, truncated bool, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false, nil
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	r.Body = replayBody{
		Reader: io.MultiReader(bytes.NewReader(buf), r.Body),
		Closer: r.Body,
	}
	if err != nil {
		return nil, false, err
	}
	if int64(len(buf)) > limit {
		return nil, true, nil
	}
	return buf, false, nil
}

// ParseBody decodes a JSON or URL-encoded form body into generic values
func ParseBody(contentType string, data []byte) (any, error) {
	mediaType := MediaType(contentType)
	switch {
	case isJSON(mediaType):
		if !gjson.ValidBytes(data) {
			return nil, ErrMalformedBody
		}
		return gjson.ParseBytes(data).Value(), nil
	case mediaType == formMediaType:
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return QueryObject(values), nil
	}
	return nil, ErrUnsupportedBody
}

// Body records the request content type and, when op has no body parameter
// yet, attaches one derived from the parsed body. Empty and scalar bodies
// are ignored.
func Body(op *models.Operation, contentType string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	value, err := ParseBody(contentType, data)
	if err != nil {
		return err
	}
	if !structured(value) {
		return nil
	}

	op.AddConsumes(MediaType(contentType))
	if op.HasBody() {
		return nil
	}

	op.AddParam(&models.Parameter{
		Name:     "body",
		In:       models.LocationBody,
		Required: true,
		Schema:   infer.DeriveSchema(value),
	})
	return nil
}

// structured reports whether v is a non-empty object or array
func structured(v any) bool {
	switch val := v.(type) {
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}
	return false
}

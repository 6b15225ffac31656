// Package convert turns generated Swagger 2.0 documents into OpenAPI 3.
package convert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// ToV3 converts a Swagger 2.0 JSON document into an OpenAPI 3 document
func ToV3(data []byte) (*openapi3.T, error) {
	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("failed to parse swagger document: %w", err)
	}

	doc, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert swagger document: %w", err)
	}
	return doc, nil
}

// ToV3JSON converts a Swagger 2.0 JSON document and renders the result as JSON
func ToV3JSON(data []byte) ([]byte, error) {
	doc, err := ToV3(data)
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}

// Validate checks a converted document. Inferred examples rarely satisfy
// strict example validation, so examples are not validated.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return nil
}

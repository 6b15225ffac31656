package assembler

import (
	"encoding/json"
	"fmt"

	"github.com/mohae/deepcopy"
	"github.com/prasenjit/go-oasgen/internal/models"
)

// Override adjusts the assembled document before it is served. Use Merge
// or Transform to build one.
type Override struct {
	document  map[string]any
	transform func(*models.Spec) *models.Spec
}

// Merge returns an override that deep-merges document onto the assembled
// specification. Objects merge recursively, arrays merge by index and
// document wins on every other conflict. The result has its object keys in
// alphabetical order.
func Merge(document map[string]any) *Override {
	return &Override{document: document}
}

// Transform returns an override whose function result is served verbatim.
// The function receives a copy of the specification.
func Transform(fn func(*models.Spec) *models.Spec) *Override {
	return &Override{transform: fn}
}

// IsMerge reports whether o is a Merge override
func (o *Override) IsMerge() bool {
	return o != nil && o.document != nil
}

// Assemble renders spec as JSON with the override applied. A nil override
// renders spec as is.
func Assemble(spec *models.Spec, o *Override) ([]byte, error) {
	switch {
	case o == nil:
		return json.Marshal(spec)
	case o.transform != nil:
		copied := deepcopy.Copy(spec).(*models.Spec)
		return json.Marshal(o.transform(copied))
	case o.document != nil:
		return merged(spec, o.document)
	}
	return json.Marshal(spec)
}

func merged(spec *models.Spec, document map[string]any) ([]byte, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	var base map[string]any
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("failed to decode specification: %w", err)
	}

	// encoding/json writes map keys sorted, which gives the alphabetical order
	return json.Marshal(deepMerge(base, deepcopy.Copy(document)))
}

// deepMerge merges src into dst and returns the result
func deepMerge(dst, src any) any {
	switch s := src.(type) {
	case nil:
		return dst
	case map[string]any:
		d, ok := dst.(map[string]any)
		if !ok {
			d = make(map[string]any, len(s))
		}
		for key, value := range s {
			d[key] = deepMerge(d[key], value)
		}
		return d
	case []any:
		d, ok := dst.([]any)
		if !ok {
			d = nil
		}
		for i, value := range s {
			if i < len(d) {
				d[i] = deepMerge(d[i], value)
				continue
			}
			d = append(d, deepMerge(nil, value))
		}
		return d
	}
	return src
}

package processors

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/prasenjit/go-oasgen/internal/routes"
)

// Path types the path parameters of op from the segments of requestPath.
// Captured values are assigned positionally to the path parameters in
// declaration order; parameters in other locations are left untouched, as is
// any path parameter that already has a type.
func Path(op *models.Operation, template, requestPath string) error {
	if !strings.Contains(template, "{") {
		return nil
	}

	pattern, _ := routes.Compile(template)
	matches := pattern.FindStringSubmatch(requestPath)
	if matches == nil {
		return fmt.Errorf("path %q does not match template %q", requestPath, template)
	}

	i := 1
	for _, p := range op.Parameters {
		if p.In != models.LocationPath {
			continue
		}
		if i >= len(matches) {
			break
		}
		raw := matches[i]
		i++

		if p.Type != "" {
			continue
		}
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
		p.Type = infer.Classify(raw)
		p.Example = infer.Example(raw)
	}

	return nil
}

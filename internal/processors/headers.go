package processors

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prasenjit/go-oasgen/internal/models"
)

const authorizationHeader = "authorization"

// Headers infers security requirements from the request headers. Every
// Authorization or X-* header becomes an apiKey security definition and a
// requirement on op; Authorization also implies a 401 response.
//
// http.Header does not keep wire order, so names are visited sorted.
func Headers(op *models.Operation, spec *models.Spec, header http.Header) {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)

	for _, name := range names {
		if name != authorizationHeader && !strings.HasPrefix(name, "x-") {
			continue
		}
		if name == authorizationHeader {
			op.SetResponse(http.StatusUnauthorized, &models.Response{
				Description: http.StatusText(http.StatusUnauthorized),
			})
		}
		op.AddSecurity(name)
		spec.EnsureAPIKey(name)
	}
}

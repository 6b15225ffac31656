// Package routes snapshots the gin route table into Swagger path templates
// and maps inbound requests back to those templates.
package routes

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/models"
)

// DefaultConsumes is the content type every operation stub starts with
const DefaultConsumes = "application/json"

// Route is one normalized route table entry
type Route struct {
	Template string   // Swagger path template, e.g. /students/{id}
	Params   []string // Path parameter names in declaration order
	Methods  []string // Lower-cased HTTP methods in route table order
}

// ginParamPattern matches gin's :name and *name path segments
var ginParamPattern = regexp.MustCompile(`[:*]([^/]+)`)

// swaggerMethods are the verbs a Swagger 2.0 path item can hold
var swaggerMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
}

// Template converts a gin route path into a Swagger path template and
// returns the parameter names in declaration order.
func Template(ginPath string) (string, []string) {
	params := make([]string, 0)
	template := ginParamPattern.ReplaceAllStringFunc(ginPath, func(match string) string {
		name := match[1:]
		params = append(params, name)
		return "{" + name + "}"
	})
	return template, params
}

// Snapshot normalizes a gin route table. Routes sharing a path are grouped
// in first-seen order, verbs Swagger cannot describe are dropped, and
// routes under any of the excluded prefixes are skipped. Catch-all routes
// are skipped too: a {name} placeholder never spans a '/'.
func Snapshot(table gin.RoutesInfo, excluded ...string) []Route {
	result := make([]Route, 0, len(table))
	index := make(map[string]int)

	for _, info := range table {
		if hasPrefix(info.Path, excluded) || isCatchAll(info.Path) {
			continue
		}
		method := strings.ToLower(info.Method)
		if !swaggerMethods[method] {
			continue
		}

		template, params := Template(info.Path)
		i, ok := index[template]
		if !ok {
			i = len(result)
			index[template] = i
			result = append(result, Route{Template: template, Params: params})
		}
		if !contains(result[i].Methods, method) {
			result[i].Methods = append(result[i].Methods, method)
		}
	}

	return result
}

// Stub builds the initial operation for this route: the template as
// summary, JSON consumption, and one required path parameter per name.
func (r Route) Stub() *models.Operation {
	op := models.NewOperation(r.Template)
	op.Consumes = []string{DefaultConsumes}
	for _, name := range r.Params {
		op.Parameters = append(op.Parameters, &models.Parameter{
			Name:     name,
			In:       models.LocationPath,
			Required: true,
		})
	}
	return op
}

func isCatchAll(ginPath string) bool {
	return strings.Contains(ginPath, "/*")
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

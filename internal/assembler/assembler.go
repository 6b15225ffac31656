// Package assembler builds the specification document from the route table
// snapshot and renders it, applying user supplied overrides.
package assembler

import (
	"fmt"
	"strings"

	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/prasenjit/go-oasgen/internal/routes"
	"github.com/prasenjit/go-oasgen/internal/tags"
)

// Locations are the URL paths the document is served from
type Locations struct {
	BasePath string
	SpecPath string
	DocsPath string
}

// SpecURL returns the served location of the JSON document
func (l Locations) SpecURL() string {
	return join(l.BasePath, l.SpecPath)
}

// DocsURL returns the served location of the documentation UI
func (l Locations) DocsURL() string {
	return join(l.BasePath, l.DocsPath)
}

func join(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.Trim(path, "/")
}

// Build creates a fresh specification with one operation stub per route and
// method, tagged by path, and the package metadata applied.
func Build(table []routes.Route, declared []models.Tag, definitions map[string]*models.Schema, info models.PackageInfo, loc Locations) *models.Spec {
	spec := models.NewSpec()
	if len(declared) > 0 {
		spec.Tags = declared
	}
	if len(definitions) > 0 {
		spec.Definitions = definitions
	}

	for _, route := range table {
		item, ok := spec.Paths[route.Template]
		if !ok {
			item = make(models.PathItem, len(route.Methods))
			spec.Paths[route.Template] = item
		}
		for _, method := range route.Methods {
			op := route.Stub()
			op.Tags = tags.Matching(declared, route.Template)
			item[method] = op
		}
	}

	ApplyPackageInfo(spec, info, loc)
	return spec
}

// ApplyPackageInfo copies title, version, license and base path from info
// and rebuilds the description.
func ApplyPackageInfo(spec *models.Spec, info models.PackageInfo, loc Locations) {
	if info.Name != "" {
		spec.Info.Title = info.Name
	}
	if info.Version != "" {
		spec.Info.Version = info.Version
	}
	if info.License != "" {
		spec.Info.License = &models.License{Name: info.License}
	}
	if info.BasePath != "" {
		spec.BasePath = info.BasePath
	}
	spec.Info.Description = Description(info, loc)
}

// Description links the served JSON document and UI, followed by the base
// url when one is set and the package description.
func Description(info models.PackageInfo, loc Locations) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Specification JSON](%s), [Documentation UI](%s)", loc.SpecURL(), loc.DocsURL())
	if loc.BasePath != "" {
		fmt.Fprintf(&b, ", base url : %s", loc.BasePath)
	}
	if info.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(info.Description)
	}
	return b.String()
}

// Package api serves the generated documents, the documentation UI and the
// live exchange feed on the host gin engine.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/tracing"
)

// DefaultTitle is the documentation page title when none is configured
const DefaultTitle = "API Documentation"

// Config selects the document routes to register
type Config struct {
	BasePath     string
	SpecPath     string
	DocsPath     string
	Title        string
	MultiVersion bool
	LiveFeed     bool
}

// Register adds the document routes to engine and returns the registered
// paths.
//
//	<base>/<spec>             Swagger 2.0 JSON
//	<base>/<spec>.yaml        Swagger 2.0 YAML
//	<base>/<docs>, <docs>/    documentation UI
//	<base>/<spec>/v2, v3      per version JSON (MultiVersion)
//	<base>/<docs>/v2, v3      per version UI (MultiVersion)
//	<base>/<spec>/exchanges   recent exchanges (LiveFeed)
//	<base>/<spec>/stream      websocket feed (LiveFeed)
func Register(engine gin.IRouter, h *Handler, cfg Config) []string {
	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}
	spec := join(cfg.BasePath, cfg.SpecPath)
	docs := join(cfg.BasePath, cfg.DocsPath)
	var paths []string
	get := func(path string, handler gin.HandlerFunc) {
		engine.GET(path, handler)
		paths = append(paths, path)
	}

	get(spec, h.GetSpec)
	get(spec+".yaml", h.GetSpecYAML)

	page := h.DocsPage(title, spec)
	get(docs, page)
	get(docs+"/", page)

	if cfg.MultiVersion {
		get(spec+"/v2", h.GetSpec)
		get(spec+"/v3", h.GetSpecV3)
		get(docs+"/v2", h.DocsPage(title, spec+"/v2"))
		get(docs+"/v3", h.DocsPage(title, spec+"/v3"))
	}

	if cfg.LiveFeed && h.tracingService != nil {
		get(spec+"/exchanges", h.ListExchanges)
		get(spec+"/exchanges/:id", h.GetExchange)
		get(spec+"/stats", h.GetFeedStats)
		engine.DELETE(spec+"/exchanges", h.ClearExchanges)
		get(spec+"/stream", gin.WrapH(tracing.NewWebSocketHandler(h.tracingService, h.logger)))
	}

	return paths
}

func join(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.Trim(path, "/")
}

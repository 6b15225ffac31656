// Package oasgen generates a Swagger 2.0 description of a gin application
// from the traffic it serves.
//
// Install the capturing middleware before any route is registered and
// finalize the generator once all routes exist:
//
//	engine := gin.New()
//	gen := oasgen.New(oasgen.DefaultOptions())
//	if err := gen.HandleResponses(engine); err != nil {
//		return err
//	}
//	engine.GET("/students/:id", getStudent)
//	if err := gen.HandleRequests(); err != nil {
//		return err
//	}
//	defer gen.Close()
package oasgen

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/mohae/deepcopy"
	"github.com/prasenjit/go-oasgen/internal/api"
	"github.com/prasenjit/go-oasgen/internal/assembler"
	"github.com/prasenjit/go-oasgen/internal/convert"
	"github.com/prasenjit/go-oasgen/internal/infer"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/prasenjit/go-oasgen/internal/routes"
	"github.com/prasenjit/go-oasgen/internal/storage"
	"github.com/prasenjit/go-oasgen/internal/tags"
	"github.com/prasenjit/go-oasgen/internal/tracing"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMiddlewareOrder is returned by HandleRequests when HandleResponses has not been called
	ErrMiddlewareOrder = errors.New("oasgen: HandleResponses(engine) must be called before any route is registered, " +
		"and HandleRequests() after all routes are registered")

	// ErrAlreadyInstalled is returned when HandleResponses is called twice
	ErrAlreadyInstalled = errors.New("oasgen: HandleResponses already called")

	// ErrAlreadyFinalized is returned when HandleRequests is called twice
	ErrAlreadyFinalized = errors.New("oasgen: HandleRequests already called")

	// ErrNotFinalized is returned when the document is read before HandleRequests
	ErrNotFinalized = errors.New("oasgen: specification is built by HandleRequests")
)

type state int

const (
	awaitingResponses state = iota
	awaitingRequests
	finalized
)

// Generator owns one generated specification and the middleware feeding it
type Generator struct {
	opts      Options
	logger    *logrus.Logger
	generate  bool
	serveDocs bool

	mu      sync.Mutex
	state   state
	engine  *gin.Engine
	spec    *models.Spec
	matcher *routes.Matcher

	feed   *tracing.Service
	writer *storage.Writer
}

// New creates a generator. Empty option fields take their defaults.
func New(opts Options) *Generator {
	opts.applyDefaults()

	ignored := opts.ignored()
	g := &Generator{
		opts:      opts,
		logger:    opts.Logger,
		generate:  !ignored,
		serveDocs: !ignored || opts.AlwaysServeDocs,
	}
	if opts.LiveFeed && g.generate {
		g.feed = tracing.NewService(opts.FeedSize)
	}
	return g
}

// Enabled reports whether traffic is recorded in the current environment
func (g *Generator) Enabled() bool {
	return g.generate
}

// HandleResponses installs the capturing middleware on engine. Routes
// registered on engine before this call are not observed.
func (g *Generator) HandleResponses(engine *gin.Engine) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != awaitingResponses {
		return ErrAlreadyInstalled
	}
	if n := len(engine.Routes()); n > 0 {
		g.logger.WithField("routes", n).Warn("Routes registered before HandleResponses are not observed")
	}

	g.engine = engine
	g.state = awaitingRequests
	if g.generate {
		engine.Use(g.middleware())
	}
	return nil
}

// HandleRequests snapshots the route table, builds the specification and
// registers the document routes. It must be called after HandleResponses
// and after every application route is registered.
func (g *Generator) HandleRequests() error {
	g.mu.Lock()
	switch g.state {
	case awaitingResponses:
		g.mu.Unlock()
		return ErrMiddlewareOrder
	case finalized:
		g.mu.Unlock()
		return ErrAlreadyFinalized
	}
	engine := g.engine
	g.mu.Unlock()

	info, err := assembler.LoadPackageInfo(g.opts.PackageInfoPath)
	if err != nil {
		g.opts.OnError(err)
	}

	loc := assembler.Locations{
		BasePath: info.BasePath,
		SpecPath: g.opts.SpecPath,
		DocsPath: g.opts.DocsPath,
	}
	reserved := []string{loc.SpecURL(), loc.DocsURL()}
	table := routes.Snapshot(engine.Routes(), reserved...)
	spec := assembler.Build(table, tags.Spec(g.opts.Tags), infer.ModelSchemas(g.opts.ObjectModels...), info, loc)

	var writer *storage.Writer
	if g.generate && g.opts.SpecOutputPath != "" {
		store, err := storage.NewFileStorage(g.opts.SpecOutputPath)
		if err != nil {
			g.opts.OnError(err)
		} else {
			writer = storage.NewWriter(store, g.Spec, g.opts.WriteInterval, g.logger, g.opts.OnError)
			g.logger.WithFields(logrus.Fields{
				"output":   store.Path(),
				"yaml":     store.IsYAML(),
				"interval": g.opts.WriteInterval,
			}).Info("Persisting specification")
		}
	}
	matcher := routes.NewMatcher(table, reserved...)
	g.logger.WithField("templates", matcher.Templates()).Debug("Route templates in matching order")

	g.mu.Lock()
	g.spec = spec
	g.matcher = matcher
	g.writer = writer
	g.state = finalized
	g.mu.Unlock()

	if !g.serveDocs {
		g.logger.WithField("environment", g.opts.Environment).Info("API documentation disabled")
		return nil
	}

	handler := api.NewHandler(g, g.feed, g.logger, g.opts.OnError)
	paths := api.Register(engine, handler, api.Config{
		BasePath:     loc.BasePath,
		SpecPath:     g.opts.SpecPath,
		DocsPath:     g.opts.DocsPath,
		Title:        info.Name,
		MultiVersion: g.opts.MultiVersion,
		LiveFeed:     g.feed != nil,
	})

	g.logger.WithFields(logrus.Fields{
		"paths":    len(table),
		"routes":   paths,
		"generate": g.generate,
	}).Info("API documentation ready")
	return nil
}

// snapshot returns a deep copy of the live specification
func (g *Generator) snapshot() (*models.Spec, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.spec == nil {
		return nil, ErrNotFinalized
	}
	return deepcopy.Copy(g.spec).(*models.Spec), nil
}

// Spec returns the current Swagger 2.0 document as JSON, with the override
// applied.
func (g *Generator) Spec() ([]byte, error) {
	spec, err := g.snapshot()
	if err != nil {
		return nil, err
	}
	return assembler.Assemble(spec, g.opts.Override)
}

// SpecV3 returns the current document converted to OpenAPI 3, as JSON
func (g *Generator) SpecV3() ([]byte, error) {
	data, err := g.Spec()
	if err != nil {
		return nil, err
	}
	return convert.ToV3JSON(data)
}

func (g *Generator) currentWriter() *storage.Writer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writer
}

// Flush writes the output file now
func (g *Generator) Flush() error {
	if w := g.currentWriter(); w != nil {
		return w.Flush()
	}
	return nil
}

// Close waits for pending writes and writes the output file a last time
func (g *Generator) Close() error {
	if w := g.currentWriter(); w != nil {
		return w.Close()
	}
	return nil
}

package oasgen

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/assembler"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/prasenjit/go-oasgen/internal/tracing"
	"github.com/sirupsen/logrus"
)

// Defaults applied by New
const (
	DefaultDocsPath      = "api-docs"
	DefaultSpecPath      = "api-spec"
	DefaultWriteInterval = 10 * time.Second
	DefaultMaxBodyBytes  = 1 << 20
)

// DefaultIgnoredEnvironments are the environments in which nothing is
// generated or served unless configured otherwise
var DefaultIgnoredEnvironments = []string{"production", gin.ReleaseMode}

// Spec is the generated Swagger 2.0 document
type Spec = models.Spec

// Override adjusts the document before it is served
type Override = assembler.Override

// Merge returns an override deep-merging document onto the generated
// specification. Object keys of the result are sorted alphabetically.
func Merge(document map[string]any) *Override {
	return assembler.Merge(document)
}

// Transform returns an override whose function result is served verbatim
func Transform(fn func(*Spec) *Spec) *Override {
	return assembler.Transform(fn)
}

// Options configures a Generator.
//
// The zero value of WriteInterval writes the output file after every
// exchange; DefaultOptions sets DefaultWriteInterval.
type Options struct {
	DocsPath       string        // Documentation UI path, relative to the base path
	SpecPath       string        // JSON document path, relative to the base path
	SpecOutputPath string        // File to persist the document to, empty disables persistence
	WriteInterval  time.Duration // Minimum time between two writes of SpecOutputPath

	Override     *Override // Applied on every read of the document
	ObjectModels []any     // Go struct values documented under definitions
	Tags         []string  // Declared tags, matched against paths

	IgnoredEnvironments []string // nil means DefaultIgnoredEnvironments
	Environment         string   // Defaults to $APP_ENV, then the gin mode
	AlwaysServeDocs     bool     // Serve the documents in ignored environments, without generation

	PackageInfoPath string // Package metadata file, defaults to apiinfo.yaml
	MultiVersion    bool   // Serve v2 and v3 sub-paths
	LiveFeed        bool   // Serve the exchange feed
	FeedSize        int    // Number of exchanges kept by the feed
	MaxBodyBytes    int64  // Largest request or response body inspected, negative disables

	Logger  *logrus.Logger
	OnError func(error) // Receives persistence and rendering errors
}

// DefaultOptions returns the options New would use for an empty Options,
// with DefaultWriteInterval set.
func DefaultOptions() Options {
	opts := Options{WriteInterval: DefaultWriteInterval}
	opts.applyDefaults()
	return opts
}

func (o *Options) applyDefaults() {
	if o.DocsPath == "" {
		o.DocsPath = DefaultDocsPath
	}
	if o.SpecPath == "" {
		o.SpecPath = DefaultSpecPath
	}
	if o.WriteInterval < 0 {
		o.WriteInterval = 0
	}
	if o.IgnoredEnvironments == nil {
		o.IgnoredEnvironments = DefaultIgnoredEnvironments
	}
	if o.Environment == "" {
		o.Environment = os.Getenv("APP_ENV")
	}
	if o.Environment == "" {
		o.Environment = gin.Mode()
	}
	if o.PackageInfoPath == "" {
		o.PackageInfoPath = assembler.DefaultPackageInfoPath
	}
	if o.FeedSize <= 0 {
		o.FeedSize = tracing.DefaultMaxExchanges
	}
	if o.MaxBodyBytes == 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.OnError == nil {
		logger := o.Logger
		o.OnError = func(err error) {
			logger.WithError(err).Error("oasgen")
		}
	}
}

// ignored reports whether generation is off in the configured environment
func (o *Options) ignored() bool {
	for _, env := range o.IgnoredEnvironments {
		if env == o.Environment {
			return true
		}
	}
	return false
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	oasgen "github.com/prasenjit/go-oasgen"
	"github.com/prasenjit/go-oasgen/internal/assembler"
	"github.com/prasenjit/go-oasgen/internal/config"
	"github.com/prasenjit/go-oasgen/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo students API with the generator installed",
	Long: `Starts a small students API with the oasgen middleware installed.

The server will:
  - Serve the demo API under /students
  - Serve the generated Swagger document at /<specPath>
  - Serve the documentation UI at /<docsPath>
  - Persist the document to generator.outputPath

Configuration is loaded from config.yaml in the current directory,
or specify a custom config file with the --config flag.`,
	RunE: runServe,
}

var portFlag int

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "Override server port")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if portFlag > 0 {
		cfg.Server.Port = portFlag
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	engine, gen, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("Starting demo server")
		logger.Infof("Documentation available at http://%s/%s", addr, cfg.Generator.DocsPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}
	if err := gen.Close(); err != nil {
		logger.WithError(err).Error("Failed to write final specification")
	}

	logger.Info("Server stopped")
	return nil
}

// newApp builds the demo engine with the generator installed around the
// demo routes
func newApp(cfg *config.Config, logger *logrus.Logger) (*gin.Engine, *oasgen.Generator, error) {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	opts, err := generatorOptions(cfg.Generator, logger)
	if err != nil {
		return nil, nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.LoggerWithWriter(logger.Writer()))

	gen := oasgen.New(opts)
	if err := gen.HandleResponses(engine); err != nil {
		return nil, nil, err
	}
	registerDemoRoutes(engine, newStudentStore())
	if err := gen.HandleRequests(); err != nil {
		return nil, nil, err
	}

	return engine, gen, nil
}

// generatorOptions maps the generator configuration onto oasgen options
func generatorOptions(g config.GeneratorConfig, logger *logrus.Logger) (oasgen.Options, error) {
	opts := oasgen.Options{
		DocsPath:            g.DocsPath,
		SpecPath:            g.SpecPath,
		SpecOutputPath:      g.OutputPath,
		WriteInterval:       g.WriteInterval,
		ObjectModels:        []any{Student{}},
		Tags:                g.Tags,
		IgnoredEnvironments: g.IgnoredEnvironments,
		Environment:         g.Environment,
		AlwaysServeDocs:     g.AlwaysServeDocs,
		PackageInfoPath:     g.PackageInfoPath,
		MultiVersion:        g.MultiVersion,
		LiveFeed:            g.LiveFeed,
		FeedSize:            g.FeedSize,
		MaxBodyBytes:        g.MaxBodyBytes,
		Logger:              logger,
	}

	// The gin mode is not the deployment environment of the demo
	if opts.Environment == "" {
		opts.Environment = os.Getenv("APP_ENV")
	}
	if opts.Environment == "" {
		opts.Environment = "development"
	}

	if g.OverridePath != "" {
		override, err := assembler.LoadOverride(g.OverridePath)
		if err != nil {
			return opts, err
		}
		opts.Override = override
	}

	return opts, nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prasenjit/go-oasgen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "oasgen",
		Short: "oasgen - Swagger documents generated from live traffic",
		Long: `oasgen observes the traffic of a gin application and builds a Swagger 2.0
description of its API: paths, parameters, bodies, responses and security.

The serve command runs a demo application with the generator installed;
export fetches the generated document from a running service.`,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(exportCmd)
}

// initConfig reads in .env, the config file and ENV variables if set
func initConfig() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}

		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// OASGEN_SERVER_PORT overrides server.port
	viper.SetEnvPrefix("OASGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key with its default value
func setDefaults() {
	d := config.Default()

	viper.SetDefault("server.port", d.Server.Port)
	viper.SetDefault("server.host", d.Server.Host)

	viper.SetDefault("generator.docsPath", d.Generator.DocsPath)
	viper.SetDefault("generator.specPath", d.Generator.SpecPath)
	viper.SetDefault("generator.outputPath", d.Generator.OutputPath)
	viper.SetDefault("generator.writeInterval", d.Generator.WriteInterval)
	viper.SetDefault("generator.overridePath", d.Generator.OverridePath)
	viper.SetDefault("generator.packageInfoPath", d.Generator.PackageInfoPath)
	viper.SetDefault("generator.tags", d.Generator.Tags)
	viper.SetDefault("generator.environment", d.Generator.Environment)
	viper.SetDefault("generator.ignoredEnvironments", d.Generator.IgnoredEnvironments)
	viper.SetDefault("generator.alwaysServeDocs", d.Generator.AlwaysServeDocs)
	viper.SetDefault("generator.multiVersion", d.Generator.MultiVersion)
	viper.SetDefault("generator.liveFeed", d.Generator.LiveFeed)
	viper.SetDefault("generator.feedSize", d.Generator.FeedSize)
	viper.SetDefault("generator.maxBodyBytes", d.Generator.MaxBodyBytes)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
}

// loadConfig decodes the merged viper configuration
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

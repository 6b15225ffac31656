package config

import "time"

// Config holds the demo server configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port" mapstructure:"port"`
	Host string `yaml:"host" mapstructure:"host"`
}

// GeneratorConfig holds specification generator configuration
type GeneratorConfig struct {
	DocsPath            string        `yaml:"docsPath" mapstructure:"docsPath"`
	SpecPath            string        `yaml:"specPath" mapstructure:"specPath"`
	OutputPath          string        `yaml:"outputPath" mapstructure:"outputPath"`       // Empty disables persistence
	WriteInterval       time.Duration `yaml:"writeInterval" mapstructure:"writeInterval"` // 0 writes after every exchange
	OverridePath        string        `yaml:"overridePath" mapstructure:"overridePath"`   // JSON or YAML document merged onto the spec
	PackageInfoPath     string        `yaml:"packageInfoPath" mapstructure:"packageInfoPath"`
	Tags                []string      `yaml:"tags" mapstructure:"tags"`
	Environment         string        `yaml:"environment" mapstructure:"environment"`
	IgnoredEnvironments []string      `yaml:"ignoredEnvironments" mapstructure:"ignoredEnvironments"`
	AlwaysServeDocs     bool          `yaml:"alwaysServeDocs" mapstructure:"alwaysServeDocs"`
	MultiVersion        bool          `yaml:"multiVersion" mapstructure:"multiVersion"`
	LiveFeed            bool          `yaml:"liveFeed" mapstructure:"liveFeed"`
	FeedSize            int           `yaml:"feedSize" mapstructure:"feedSize"`
	MaxBodyBytes        int64         `yaml:"maxBodyBytes" mapstructure:"maxBodyBytes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Generator: GeneratorConfig{
			DocsPath:            "api-docs",
			SpecPath:            "api-spec",
			OutputPath:          "./data/openapi.json",
			WriteInterval:       10 * time.Second,
			PackageInfoPath:     "apiinfo.yaml",
			IgnoredEnvironments: []string{"production", "release"},
			MultiVersion:        true,
			LiveFeed:            true,
			FeedSize:            1000,
			MaxBodyBytes:        1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

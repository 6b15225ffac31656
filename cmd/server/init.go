package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prasenjit/go-oasgen/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.yaml and apiinfo.yaml",
	Long: `Creates the default configuration file (config.yaml) and package
metadata file (apiinfo.yaml) used to build the document info section.

This command will:
  - Create config.yaml with default settings
  - Create apiinfo.yaml with placeholder package metadata
  - Create the directory the document is persisted to

Existing files are not overwritten unless --force is used.`,
	RunE: runInit,
}

var (
	initForce bool
	initPath  string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().StringVarP(&initPath, "path", "p", ".", "Path where to initialize (default: current directory)")
}

func runInit(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(initPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cfg := config.Default()
	files, err := initFiles(absPath, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "Created: %s\n", f)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Initialization complete! You can now start the demo server with:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", absPath)
	fmt.Fprintln(out, "  oasgen serve")
	fmt.Fprintln(out)
	return nil
}

// initFiles writes the default files under dir and returns what it created
func initFiles(dir string, cfg *config.Config) ([]string, error) {
	configFile := filepath.Join(dir, "config.yaml")
	infoFile := filepath.Join(dir, cfg.Generator.PackageInfoPath)

	if !initForce {
		for _, f := range []string{configFile, infoFile} {
			if _, err := os.Stat(f); err == nil {
				return nil, fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(f))
			}
		}
	}

	outputDir := filepath.Join(dir, filepath.Dir(cfg.Generator.OutputPath))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate config: %w", err)
	}
	header := "# oasgen demo server configuration\n\n"
	if err := os.WriteFile(configFile, append([]byte(header), data...), 0644); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	data, err = yaml.Marshal(map[string]string{
		"name":        "My API",
		"version":     "1.0.0",
		"license":     "MIT",
		"description": "Generated from observed traffic",
		"baseUrlPath": "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate package info: %w", err)
	}
	if err := os.WriteFile(infoFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write package info: %w", err)
	}

	return []string{outputDir, configFile, infoFile}, nil
}

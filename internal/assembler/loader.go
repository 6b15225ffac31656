package assembler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPackageInfoPath is where package metadata is looked up by default
const DefaultPackageInfoPath = "apiinfo.yaml"

// LoadPackageInfo reads package metadata from a JSON, YAML or TOML file.
// A missing file yields empty metadata.
func LoadPackageInfo(path string) (models.PackageInfo, error) {
	var info models.PackageInfo
	if path == "" {
		path = DefaultPackageInfoPath
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return info, fmt.Errorf("failed to read package info %s: %w", path, err)
	}
	if err := v.Unmarshal(&info); err != nil {
		return info, fmt.Errorf("failed to decode package info %s: %w", path, err)
	}
	return info, nil
}

// LoadOverride reads a Merge override document from a JSON or YAML file
func LoadOverride(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override %s: %w", path, err)
	}

	document := make(map[string]any)
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse override %s: %w", path, err)
	}
	return Merge(document), nil
}

package models

// PackageInfo holds project metadata that drives the document info section
type PackageInfo struct {
	Name        string `json:"name" mapstructure:"name"`
	Version     string `json:"version" mapstructure:"version"`
	License     string `json:"license" mapstructure:"license"`
	Description string `json:"description" mapstructure:"description"`
	BasePath    string `json:"baseUrlPath" mapstructure:"baseUrlPath"`
}

// Package config — .xcsync.yaml configuration file support.
//
// When a .xcsync.yaml file exists in the project root, its fields override
// the auto-detected defaults. Every field is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// XcsyncFileName is the config file name looked up in the project root.
const XcsyncFileName = ".xcsync.yaml"

// XcsyncFile is the top-level .xcsync.yaml structure.
type XcsyncFile struct {
	// Catalog is the .xcstrings catalog path relative to the project root.
	Catalog string `yaml:"catalog,omitempty"`
	// Report is the missing-translations report output path.
	Report string `yaml:"report,omitempty"`
	// Translations is the translated-items input path.
	Translations string `yaml:"translations,omitempty"`
	// Locale is the target locale code (BCP-47).
	Locale string `yaml:"locale,omitempty"`
}

// LoadXcsyncFile loads .xcsync.yaml from the given directory.
// Returns nil if no .xcsync.yaml exists.
func LoadXcsyncFile(rootDir string) (*XcsyncFile, error) {
	path := filepath.Join(rootDir, XcsyncFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var xf XcsyncFile
	if err := yaml.Unmarshal(data, &xf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &xf, nil
}

// apply overrides non-empty fields onto a Project.
func (xf *XcsyncFile) apply(p *Project) {
	if xf.Catalog != "" {
		p.CatalogPath = xf.Catalog
	}
	if xf.Report != "" {
		p.ReportPath = xf.Report
	}
	if xf.Translations != "" {
		p.TranslationsPath = xf.Translations
	}
	if xf.Locale != "" {
		p.TargetLocale = xf.Locale
	}
}

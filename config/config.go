// Package config resolves project settings: catalog location, artifact
// paths, and the target locale. Settings come from auto-detection of the
// project tree, optionally overridden by a .xcsync.yaml file and by command
// flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Default artifact names, relative to the project root. They reproduce the
// fixed paths of the pre-config workflow.
const (
	DefaultReportFile       = "missing_translations.json"
	DefaultTranslationsFile = "translated_items.json"
	DefaultTargetLocale     = "zh-Hans"
)

// PreferredCatalogName is picked first when several .xcstrings catalogs
// exist under the project root.
const PreferredCatalogName = "Localizable.xcstrings"

// Project holds resolved project configuration. All paths are relative to
// Root unless absolute.
type Project struct {
	// Root is the project root directory.
	Root string
	// CatalogPath is the .xcstrings catalog (empty when none was found).
	CatalogPath string
	// ReportPath is where `extract` writes the missing-translations report.
	ReportPath string
	// TranslationsPath is where `import` reads translated items from.
	TranslationsPath string
	// TargetLocale is the locale being synchronized.
	TargetLocale string
}

// skipDirs contains directory names to skip while scanning for catalogs.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"Pods":         true,
	"DerivedData":  true,
	".build":       true,
	"build":        true,
	"dist":         true,
	"vendor":       true,
	".swiftpm":     true,
	"Carthage":     true,
}

// Detect resolves project configuration for rootDir: defaults, then
// catalog auto-detection, then .xcsync.yaml overrides when present.
func Detect(rootDir string) (*Project, error) {
	p := &Project{
		Root:             rootDir,
		ReportPath:       DefaultReportFile,
		TranslationsPath: DefaultTranslationsFile,
		TargetLocale:     DefaultTargetLocale,
	}

	p.CatalogPath = findCatalog(rootDir)

	xf, err := LoadXcsyncFile(rootDir)
	if err != nil {
		return nil, err
	}
	if xf != nil {
		xf.apply(p)
	}

	if err := ValidateLocale(p.TargetLocale); err != nil {
		return nil, err
	}

	return p, nil
}

// ValidateLocale checks that code parses as a BCP-47 language tag.
func ValidateLocale(code string) error {
	if code == "" {
		return fmt.Errorf("target locale is empty")
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid target locale %q: %w", code, err)
	}
	return nil
}

// findCatalog scans rootDir for .xcstrings files and returns the best
// match relative to rootDir: Localizable.xcstrings when present, otherwise
// the lexicographically first catalog found. Returns "" when none exists.
func findCatalog(rootDir string) string {
	var found []string

	_ = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".xcstrings") {
			if rel, err := filepath.Rel(rootDir, path); err == nil {
				found = append(found, rel)
			}
		}
		return nil
	})

	if len(found) == 0 {
		return ""
	}

	sort.Strings(found)
	for _, path := range found {
		if filepath.Base(path) == PreferredCatalogName {
			return path
		}
	}
	return found[0]
}

// ---------------------------------------------------------------------------
// Resolved paths
// ---------------------------------------------------------------------------

// AbsCatalogPath returns the catalog path resolved against Root.
func (p *Project) AbsCatalogPath() string {
	return p.abs(p.CatalogPath)
}

// AbsReportPath returns the report path resolved against Root.
func (p *Project) AbsReportPath() string {
	return p.abs(p.ReportPath)
}

// AbsTranslationsPath returns the translated-items path resolved against Root.
func (p *Project) AbsTranslationsPath() string {
	return p.abs(p.TranslationsPath)
}

func (p *Project) abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// xcsync — synchronizes an Apple .xcstrings string catalog with an external
// translation workflow: export untranslated strings, import translated ones.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/nolon-app/xcsync/config"
	"github.com/nolon-app/xcsync/extract"
	"github.com/nolon-app/xcsync/i18n"
	"github.com/nolon-app/xcsync/merge"
	"github.com/nolon-app/xcsync/transfile"
	"github.com/nolon-app/xcsync/xcstrings"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xcsync",
		Short: "Sync .xcstrings catalogs with an external translation workflow",
		Long: `xcsync — .xcstrings catalog synchronization.

Exports strings that lack a translation for the target locale into a JSON
report, and imports externally translated strings back into the catalog,
marking them as translated. The catalog is auto-detected under the project
root; a .xcsync.yaml file can pin the catalog, artifact paths, and locale.

Commands:
  status      Show catalog info and translation statistics
  extract     Export strings missing a target-locale translation
  import      Merge translated strings back into the catalog

Workflow:
  xcsync extract                 # writes missing_translations.json
  <translate the exported file>  # produces translated_items.json
  xcsync import                  # updates the catalog in place`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newExtractCmd(),
		newImportCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xcsync version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: catalog info + translation stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog info and translation statistics",
		Long: `Show the resolved project configuration and per-locale translation
statistics for the catalog. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := config.Detect(rootDir)
			if err != nil {
				return err
			}
			return runStatus(proj)
		},
	}

	return cmd
}

func runStatus(proj *config.Project) error {
	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Root:          %s\n", proj.Root)
	fmt.Fprintf(os.Stderr, "  Catalog:       %s\n", orNone(proj.CatalogPath))
	fmt.Fprintf(os.Stderr, "  Report:        %s\n", proj.ReportPath)
	fmt.Fprintf(os.Stderr, "  Translations:  %s\n", proj.TranslationsPath)
	fmt.Fprintf(os.Stderr, "  Target locale: %s\n", localeCell(proj.TargetLocale))
	fmt.Fprintln(os.Stderr)

	if proj.CatalogPath == "" {
		logInfo(i18n.T("No .xcstrings catalog found under %s"), proj.Root)
		return nil
	}
	if !fileExists(proj.AbsCatalogPath()) {
		logError(i18n.T("%s not found."), proj.AbsCatalogPath())
		return nil
	}

	cat, err := xcstrings.ParseFile(proj.AbsCatalogPath())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%sTranslation Statistics%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-12s %-12s %-10s %-8s\n", "Locale", "Translated", "Missing", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 44))

	for _, locale := range statusLocales(cat, proj.TargetLocale) {
		total, translated, missing := cat.Stats(locale)
		percent := 0
		if total > 0 {
			percent = translated * 100 / total
		}
		fmt.Fprintf(os.Stderr, "%-12s %-12d %-10d %d%%\n", locale, translated, missing, percent)
	}

	fmt.Fprintln(os.Stderr, strings.Repeat("─", 44))
	fmt.Fprintf(os.Stderr, "Total strings: %d\n", cat.Len())

	_, _, missing := cat.Stats(proj.TargetLocale)
	if missing == 0 {
		logSuccess(i18n.T("Catalog is up to date."))
	} else {
		fmt.Fprintln(os.Stderr)
		logInfo(i18n.N("Found %d missing translation.", "Found %d missing translations.", missing), missing)
		logInfo("Run 'xcsync extract' to export them.")
	}

	fmt.Fprintln(os.Stderr)
	return nil
}

// statusLocales returns the catalog's locales with the target locale
// appended when the catalog has no record for it yet.
func statusLocales(cat *xcstrings.Catalog, target string) []string {
	locales := cat.Locales()
	for _, l := range locales {
		if l == target {
			return locales
		}
	}
	return append(locales, target)
}

// localeCell formats a locale code with its native display name, e.g.
// "zh-Hans (简体中文)". Unparsable codes are shown as-is.
func localeCell(code string) string {
	name := localeDisplayName(code)
	if name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, name)
}

// localeDisplayName returns the native display name for a BCP-47 code,
// or "" when the code does not parse or has no known name.
func localeDisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// ---------------------------------------------------------------------------
// extract (catalog -> missing-translations report)
// ---------------------------------------------------------------------------

func newExtractCmd() *cobra.Command {
	var (
		catalogPath string
		outputPath  string
		locale      string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Export strings missing a target-locale translation",
		Long: `Export every string whose target-locale translation is absent or not in
the "translated" state into a JSON report:

    { "<key>": { "source": "<key>", "comment": "<developer comment>" } }

The report is meant for an external translator, whose answers feed
'xcsync import'. The catalog itself is not modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := config.Detect(rootDir)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				proj.CatalogPath = catalogPath
			}
			if outputPath != "" {
				proj.ReportPath = outputPath
			}
			if locale != "" {
				if err := config.ValidateLocale(locale); err != nil {
					return err
				}
				proj.TargetLocale = locale
			}
			return runExtract(proj)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the .xcstrings catalog")
	cmd.Flags().StringVar(&outputPath, "output", "", "Report output path")
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale code")

	return cmd
}

func runExtract(proj *config.Project) error {
	catalogPath := proj.AbsCatalogPath()
	if catalogPath == "" {
		logError(i18n.T("No .xcstrings catalog found under %s"), proj.Root)
		return nil
	}
	if !fileExists(catalogPath) {
		logError(i18n.T("%s not found."), catalogPath)
		return nil
	}

	cat, err := xcstrings.ParseFile(catalogPath)
	if err != nil {
		return err
	}

	missing := extract.Missing(cat, proj.TargetLocale)
	logInfo(i18n.N("Found %d missing translation.", "Found %d missing translations.", missing.Len()), missing.Len())

	reportPath := proj.AbsReportPath()
	if err := missing.WriteFile(reportPath); err != nil {
		return err
	}

	logSuccess(i18n.T("Exported to %s"), reportPath)
	return nil
}

// ---------------------------------------------------------------------------
// import (translated items -> catalog)
// ---------------------------------------------------------------------------

func newImportCmd() *cobra.Command {
	var (
		catalogPath string
		inputPath   string
		locale      string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge translated strings back into the catalog",
		Long: `Merge a flat JSON map of translated strings

    { "<key>": "<translated text>" }

into the catalog's target-locale slots, marking each as "translated", and
rewrite the catalog in place. Keys not present in the catalog produce a
warning and are skipped; they never create new entries. Records for other
locales and all other entry fields are preserved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := config.Detect(rootDir)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				proj.CatalogPath = catalogPath
			}
			if inputPath != "" {
				proj.TranslationsPath = inputPath
			}
			if locale != "" {
				if err := config.ValidateLocale(locale); err != nil {
					return err
				}
				proj.TargetLocale = locale
			}
			return runImport(proj)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the .xcstrings catalog")
	cmd.Flags().StringVar(&inputPath, "input", "", "Translated-items input path")
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale code")

	return cmd
}

func runImport(proj *config.Project) error {
	catalogPath := proj.AbsCatalogPath()
	if catalogPath == "" {
		logError(i18n.T("No .xcstrings catalog found under %s"), proj.Root)
		return nil
	}
	if !fileExists(catalogPath) {
		logError(i18n.T("%s not found."), catalogPath)
		return nil
	}

	transPath := proj.AbsTranslationsPath()
	if !fileExists(transPath) {
		logError(i18n.T("%s not found."), transPath)
		return nil
	}

	cat, err := xcstrings.ParseFile(catalogPath)
	if err != nil {
		return err
	}
	trans, err := transfile.ParseFile(transPath)
	if err != nil {
		return err
	}

	res := merge.Apply(cat, trans, proj.TargetLocale)
	for _, key := range res.Unknown {
		logWarning(i18n.T("Key '%s' not found in xcstrings file."), key)
	}

	if err := cat.WriteFile(catalogPath); err != nil {
		return err
	}

	logSuccess(i18n.T("Successfully updated %d translations in %s"), res.Updated, catalogPath)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

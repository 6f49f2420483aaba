// Package extract collects untranslated string catalog entries into a
// missing-translations report for an external translation workflow.
package extract

import (
	"github.com/nolon-app/xcsync/report"
	"github.com/nolon-app/xcsync/xcstrings"
)

// Missing walks the catalog in document order and returns a report of every
// entry whose locale record is absent or not in the "translated" state.
// Untranslatable shapes (missing localizations, missing stringUnit, missing
// or malformed state) all count as missing; only an exact "translated"
// state excludes an entry.
func Missing(cat *xcstrings.Catalog, locale string) *report.Report {
	r := report.New()
	for _, key := range cat.Keys() {
		if cat.Translated(key, locale) {
			continue
		}
		// The catalog key is the source text.
		r.Add(key, report.Item{Source: key, Comment: cat.Comment(key)})
	}
	return r
}

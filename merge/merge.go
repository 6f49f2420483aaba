// Package merge applies externally translated strings back into a string
// catalog, the importer half of the extract/import round trip.
package merge

import (
	"github.com/nolon-app/xcsync/transfile"
	"github.com/nolon-app/xcsync/xcstrings"
)

// Result reports the outcome of an Apply run.
type Result struct {
	// Updated counts catalog entries that received a translation.
	Updated int
	// Unknown lists translation keys with no matching catalog entry,
	// in input order. They are skipped, never created.
	Unknown []string
}

// Apply merges each translated pair into the catalog's locale slot, in the
// input file's key order. Matching entries get a create-or-replace
// localization record with state "translated"; records for other locales
// and all other entry fields are preserved. Apply is idempotent: re-running
// with the same input yields the same catalog state.
func Apply(cat *xcstrings.Catalog, trans *transfile.File, locale string) Result {
	var res Result
	for _, key := range trans.Keys() {
		value, _ := trans.Get(key)
		if cat.SetTranslation(key, locale, value) {
			res.Updated++
		} else {
			res.Unknown = append(res.Unknown, key)
		}
	}
	return res
}

// Package xcstrings implements reading and writing of Apple .xcstrings
// string catalog files.
//
// An .xcstrings file is a JSON document:
//
//	{
//	    "sourceLanguage": "en",
//	    "strings": {
//	        "Hello": {
//	            "comment": "greeting",
//	            "localizations": {
//	                "zh-Hans": {
//	                    "stringUnit": { "state": "translated", "value": "你好" }
//	                }
//	            }
//	        }
//	    },
//	    "version": "1.0"
//	}
//
// Keys in the "strings" mapping are the source text. Catalogs are owned by
// Xcode, so round-trip fidelity matters: top-level fields, entry fields, and
// locale records that xcsync does not touch are preserved verbatim, and key
// order from the source document survives a rewrite. Newly created fields
// are appended after the existing ones.
package xcstrings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateTranslated is the only translation state xcsync ever writes.
// Any other state value (or an absent one) counts as untranslated.
const StateTranslated = "translated"

// StringUnit is the innermost translation record of a localization.
type StringUnit struct {
	State string `json:"state"`
	Value string `json:"value"`
}

// Localization is the per-locale record stored under "localizations".
type Localization struct {
	StringUnit StringUnit `json:"stringUnit"`
}

// ---------------------------------------------------------------------------
// Document model
// ---------------------------------------------------------------------------

// field is a single JSON object member kept in document order.
type field struct {
	name string
	raw  json.RawMessage // nil for the parsed "localizations"/"strings" members
	locs bool            // true for an entry's parsed "localizations" member
}

// locRecord is one locale entry of a "localizations" object.
type locRecord struct {
	locale string
	raw    json.RawMessage
}

// entry is a single key of the "strings" mapping.
type entry struct {
	fields []field
	locs   []locRecord
	locIdx map[string]int
	// rawScalar holds the verbatim value for the degenerate case where the
	// entry is not a JSON object. Such entries count as untranslated.
	rawScalar json.RawMessage
}

// Catalog represents a parsed .xcstrings document.
type Catalog struct {
	// fields holds the top-level members in document order; the "strings"
	// member is materialised from keys/entries at marshal time.
	fields  []field
	keys    []string
	entries map[string]*entry
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an .xcstrings catalog from disk.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Parse parses .xcstrings content from a byte slice.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]*entry)}

	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	for dec.More() {
		name, err := objectKey(dec)
		if err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}

		if name == "strings" {
			if err := c.parseStrings(dec); err != nil {
				return nil, err
			}
			c.fields = append(c.fields, field{name: name, locs: true})
			continue
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing catalog field %q: %w", name, err)
		}
		c.fields = append(c.fields, field{name: name, raw: raw})
	}

	return c, nil
}

func (c *Catalog) parseStrings(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("parsing strings: %w", err)
	}

	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return fmt.Errorf("parsing strings: %w", err)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parsing entry %q: %w", key, err)
		}

		e, err := parseEntry(raw)
		if err != nil {
			return fmt.Errorf("parsing entry %q: %w", key, err)
		}

		c.keys = append(c.keys, key)
		c.entries[key] = e
	}

	// Closing '}' of the strings object.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parsing strings: %w", err)
	}
	return nil
}

// parseEntry decodes a single string entry. Entries that are not JSON
// objects are kept verbatim and behave as fully untranslated.
func parseEntry(raw json.RawMessage) (*entry, error) {
	if !startsWith(raw, '{') {
		return &entry{rawScalar: raw}, nil
	}

	e := &entry{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	for dec.More() {
		name, err := objectKey(dec)
		if err != nil {
			return nil, err
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		if name == "localizations" && startsWith(val, '{') {
			if err := e.parseLocalizations(val); err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			e.fields = append(e.fields, field{name: name, locs: true})
			continue
		}

		e.fields = append(e.fields, field{name: name, raw: val})
	}

	return e, nil
}

func (e *entry) parseLocalizations(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	e.locIdx = make(map[string]int)
	for dec.More() {
		locale, err := objectKey(dec)
		if err != nil {
			return err
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("locale %q: %w", locale, err)
		}

		e.locIdx[locale] = len(e.locs)
		e.locs = append(e.locs, locRecord{locale: locale, raw: val})
	}

	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %T", tok)
	}
	return key, nil
}

func startsWith(raw json.RawMessage, b byte) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c == b
	}
	return false
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Keys returns the string keys in document order.
func (c *Catalog) Keys() []string {
	return c.keys
}

// Len returns the number of string entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Has reports whether key exists in the "strings" mapping.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Comment returns the developer comment for key, or "" when the key or the
// comment is absent (or the comment is not a string).
func (c *Catalog) Comment(key string) string {
	e, ok := c.entries[key]
	if !ok {
		return ""
	}
	for _, f := range e.fields {
		if f.name != "comment" {
			continue
		}
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return ""
		}
		return s
	}
	return ""
}

// State returns the stringUnit state for key's locale record. Every missing
// or malformed level — no such key, no localizations, no record for the
// locale, no stringUnit, no state, wrong JSON shape — yields "".
func (c *Catalog) State(key, locale string) string {
	e, ok := c.entries[key]
	if !ok || e.locIdx == nil {
		return ""
	}
	idx, ok := e.locIdx[locale]
	if !ok {
		return ""
	}

	var loc Localization
	if err := json.Unmarshal(e.locs[idx].raw, &loc); err != nil {
		return ""
	}
	return loc.StringUnit.State
}

// Value returns the translated text for key's locale record, with the same
// total fallback rules as State: "" for anything absent or malformed.
func (c *Catalog) Value(key, locale string) string {
	e, ok := c.entries[key]
	if !ok || e.locIdx == nil {
		return ""
	}
	idx, ok := e.locIdx[locale]
	if !ok {
		return ""
	}

	var loc Localization
	if err := json.Unmarshal(e.locs[idx].raw, &loc); err != nil {
		return ""
	}
	return loc.StringUnit.Value
}

// Translated reports whether key's locale record is in the "translated"
// state. The comparison is an exact string match; any other state, and any
// absent or malformed record, counts as not translated.
func (c *Catalog) Translated(key, locale string) bool {
	return c.State(key, locale) == StateTranslated
}

// Stats returns (total, translated, missing) entry counts for a locale.
func (c *Catalog) Stats(locale string) (total, translated, missing int) {
	total = len(c.keys)
	for _, key := range c.keys {
		if c.Translated(key, locale) {
			translated++
		}
	}
	missing = total - translated
	return
}

// Locales returns the union of locale codes present across all entries,
// in first-seen document order.
func (c *Catalog) Locales() []string {
	seen := make(map[string]bool)
	var locales []string
	for _, key := range c.keys {
		for _, lr := range c.entries[key].locs {
			if !seen[lr.locale] {
				seen[lr.locale] = true
				locales = append(locales, lr.locale)
			}
		}
	}
	return locales
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

// SetTranslation replaces (or creates) key's locale record with a
// stringUnit in the "translated" state carrying value. Other locales and
// other entry fields are left untouched. Returns false if key does not
// exist; no entry is ever created for an unknown key.
func (c *Catalog) SetTranslation(key, locale, value string) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}

	raw := encodeValue(Localization{StringUnit: StringUnit{State: StateTranslated, Value: value}})

	// A non-object entry is replaced by an object holding the localization.
	if e.rawScalar != nil {
		e.rawScalar = nil
		e.fields = nil
	}

	if e.locIdx == nil {
		e.locIdx = make(map[string]int)
	}
	if idx, ok := e.locIdx[locale]; ok {
		e.locs[idx].raw = raw
	} else {
		e.locIdx[locale] = len(e.locs)
		e.locs = append(e.locs, locRecord{locale: locale, raw: raw})
	}

	// Make sure a localizations member exists for marshaling; new members
	// go after the existing ones. A malformed (non-object) localizations
	// member is taken over rather than duplicated.
	for i := range e.fields {
		if e.fields[i].locs {
			return true
		}
		if e.fields[i].name == "localizations" {
			e.fields[i] = field{name: "localizations", locs: true}
			return true
		}
	}
	e.fields = append(e.fields, field{name: "localizations", locs: true})
	return true
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the catalog with 2-space indentation, preserving
// document order. Non-ASCII and HTML-significant characters are written
// literally.
func (c *Catalog) Marshal() ([]byte, error) {
	if len(c.fields) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")

	for i, f := range c.fields {
		buf.WriteString("  ")
		buf.Write(encodeString(f.name))
		buf.WriteString(": ")
		if f.locs {
			c.writeStrings(&buf)
		} else {
			writeRaw(&buf, f.raw, "  ")
		}
		if i < len(c.fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (c *Catalog) writeStrings(buf *bytes.Buffer) {
	if len(c.keys) == 0 {
		buf.WriteString("{}")
		return
	}

	buf.WriteString("{\n")
	for i, key := range c.keys {
		buf.WriteString("    ")
		buf.Write(encodeString(key))
		buf.WriteString(": ")
		c.entries[key].write(buf, "    ")
		if i < len(c.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("  }")
}

func (e *entry) write(buf *bytes.Buffer, indent string) {
	if e.rawScalar != nil {
		writeRaw(buf, e.rawScalar, indent)
		return
	}
	if len(e.fields) == 0 {
		buf.WriteString("{}")
		return
	}

	inner := indent + "  "
	buf.WriteString("{\n")
	for i, f := range e.fields {
		buf.WriteString(inner)
		buf.Write(encodeString(f.name))
		buf.WriteString(": ")
		if f.locs {
			e.writeLocalizations(buf, inner)
		} else {
			writeRaw(buf, f.raw, inner)
		}
		if i < len(e.fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent + "}")
}

func (e *entry) writeLocalizations(buf *bytes.Buffer, indent string) {
	if len(e.locs) == 0 {
		buf.WriteString("{}")
		return
	}

	inner := indent + "  "
	buf.WriteString("{\n")
	for i, lr := range e.locs {
		buf.WriteString(inner)
		buf.Write(encodeString(lr.locale))
		buf.WriteString(": ")
		writeRaw(buf, lr.raw, inner)
		if i < len(e.locs)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent + "}")
}

// writeRaw re-indents a raw JSON value so nested objects line up with the
// surrounding output. Scalars pass through unchanged.
func writeRaw(buf *bytes.Buffer, raw json.RawMessage, prefix string) {
	var tmp bytes.Buffer
	if err := json.Indent(&tmp, raw, prefix, "  "); err != nil {
		buf.Write(raw)
		return
	}
	buf.Write(tmp.Bytes())
}

// encodeString JSON-encodes a string without HTML escaping, so text like
// "a < b" and non-ASCII characters stay literal.
func encodeString(s string) []byte {
	return bytes.TrimSuffix(encodeValue(s), []byte("\n"))
}

func encodeValue(v any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// WriteFile serialises the catalog and overwrites path.
func (c *Catalog) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

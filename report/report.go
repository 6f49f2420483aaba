// Package report implements the missing-translations report artifact: a JSON
// object mapping each untranslated string key to its source text and
// developer comment.
//
// The file format is:
//
//	{
//	    "Hello": { "source": "Hello", "comment": "greeting" }
//	}
//
// The report is written by `xcsync extract` and handed to an external
// translator, who answers with a flat key → translated text file (see the
// transfile package).
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Item describes one untranslated string.
type Item struct {
	Source  string `json:"source"`
	Comment string `json:"comment"`
}

// Report is an insertion-ordered collection of missing-translation items.
type Report struct {
	keys  []string
	items map[string]Item
}

// New returns an empty report.
func New() *Report {
	return &Report{items: make(map[string]Item)}
}

// Add records an item under key. Re-adding a key overwrites the item but
// keeps its original position.
func (r *Report) Add(key string, item Item) {
	if _, ok := r.items[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.items[key] = item
}

// Len returns the number of items.
func (r *Report) Len() int {
	return len(r.keys)
}

// Keys returns the item keys in insertion order.
func (r *Report) Keys() []string {
	return r.keys
}

// Get returns the item for key.
func (r *Report) Get(key string) (Item, bool) {
	item, ok := r.items[key]
	return item, ok
}

// Has reports whether key is present.
func (r *Report) Has(key string) bool {
	_, ok := r.items[key]
	return ok
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the report with 2-space indentation, keys in insertion
// order, non-ASCII written literally.
func (r *Report) Marshal() ([]byte, error) {
	if len(r.keys) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range r.keys {
		item := r.items[key]
		buf.WriteString("  ")
		buf.Write(encodeString(key))
		buf.WriteString(": {\n")
		buf.WriteString("    \"source\": ")
		buf.Write(encodeString(item.Source))
		buf.WriteString(",\n")
		buf.WriteString("    \"comment\": ")
		buf.Write(encodeString(item.Comment))
		buf.WriteString("\n  }")
		if i < len(r.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// WriteFile serialises the report and overwrites path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
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

func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a report file.
func ParseFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}

// Parse parses report content, preserving key order.
func Parse(data []byte) (*Report, error) {
	r := New()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected '{', got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", keyTok)
		}

		var item Item
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		r.Add(key, item)
	}

	return r, nil
}

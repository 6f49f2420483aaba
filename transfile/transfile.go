// Package transfile implements reading of translated-items files: flat JSON
// objects mapping a string key to its translated text.
//
//	{
//	    "Hello": "你好",
//	    "Settings": "设置"
//	}
//
// The file is produced by an external translator from the report that
// `xcsync extract` wrote. Key order from the file is preserved, because the
// importer applies (and warns about) pairs in file order.
package transfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// File represents a parsed translated-items file.
type File struct {
	keys   []string
	values map[string]string
}

// ParseFile reads and parses a translated-items file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses translated-items content, preserving key order.
func Parse(data []byte) (*File, error) {
	f := &File{values: make(map[string]string)}

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

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for key %q, got %T", key, valTok)
		}

		if _, exists := f.values[key]; !exists {
			f.keys = append(f.keys, key)
		}
		f.values[key] = value
	}

	return f, nil
}

// Keys returns the keys in file order.
func (f *File) Keys() []string {
	return f.keys
}

// Get returns the translated text for key.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of pairs.
func (f *File) Len() int {
	return len(f.keys)
}

package transfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}
}

func TestParse_PreservesFileOrder(t *testing.T) {
	data := []byte(`{
  "Settings": "设置",
  "Hello": "你好",
  "Bye": "再见"
}`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := []string{"Settings", "Hello", "Bye"}
	if !reflect.DeepEqual(f.Keys(), want) {
		t.Fatalf("Keys() = %v, want %v", f.Keys(), want)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}

	v, ok := f.Get("Hello")
	if !ok || v != "你好" {
		t.Fatalf("Get(Hello) = (%q, %v), want (你好, true)", v, ok)
	}
	if _, ok := f.Get("Missing"); ok {
		t.Fatal("Get(Missing) = true, want false")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`{"Hello":`)); err == nil {
		t.Fatal("expected parse error for invalid JSON")
	}
	if _, err := Parse([]byte(`{"Hello": 5}`)); err == nil {
		t.Fatal("expected parse error for non-string value")
	}
	if _, err := Parse([]byte(`[]`)); err == nil {
		t.Fatal("expected parse error for non-object document")
	}
}

func TestParseFile(t *testing.T) {
	if _, err := ParseFile("/nonexistent/translated_items.json"); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "translated_items.json")
	writeTestFile(t, path, `{"Hello": "你好"}`)

	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if v, _ := f.Get("Hello"); v != "你好" {
		t.Fatalf("Get(Hello) = %q, want 你好", v)
	}
}

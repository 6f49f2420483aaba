package merge

import (
	"reflect"
	"testing"

	"github.com/nolon-app/xcsync/extract"
	"github.com/nolon-app/xcsync/transfile"
	"github.com/nolon-app/xcsync/xcstrings"
)

func parseCatalog(t *testing.T, data string) *xcstrings.Catalog {
	t.Helper()
	cat, err := xcstrings.Parse([]byte(data))
	if err != nil {
		t.Fatalf("xcstrings.Parse() error: %v", err)
	}
	return cat
}

func parseTrans(t *testing.T, data string) *transfile.File {
	t.Helper()
	f, err := transfile.Parse([]byte(data))
	if err != nil {
		t.Fatalf("transfile.Parse() error: %v", err)
	}
	return f
}

func TestApply_ConcreteScenario(t *testing.T) {
	cat := parseCatalog(t, `{"strings": {"Hello": {}}}`)
	trans := parseTrans(t, `{"Hello": "你好"}`)

	res := Apply(cat, trans, "zh-Hans")
	if res.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", res.Updated)
	}
	if len(res.Unknown) != 0 {
		t.Fatalf("Unknown = %v, want empty", res.Unknown)
	}
	if got := cat.Value("Hello", "zh-Hans"); got != "你好" {
		t.Fatalf("Value(Hello) = %q, want 你好", got)
	}
	if got := cat.State("Hello", "zh-Hans"); got != xcstrings.StateTranslated {
		t.Fatalf("State(Hello) = %q, want translated", got)
	}
}

func TestApply_UnknownKeysSkippedInOrder(t *testing.T) {
	cat := parseCatalog(t, `{"strings": {"Hello": {}}}`)
	trans := parseTrans(t, `{"Bye": "再见", "Hello": "你好", "Later": "回头见"}`)

	res := Apply(cat, trans, "zh-Hans")
	if res.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", res.Updated)
	}
	if want := []string{"Bye", "Later"}; !reflect.DeepEqual(res.Unknown, want) {
		t.Fatalf("Unknown = %v, want %v", res.Unknown, want)
	}

	// Unknown keys never create catalog entries.
	if cat.Len() != 1 || cat.Has("Bye") || cat.Has("Later") {
		t.Fatalf("catalog keys changed: %v", cat.Keys())
	}
}

func TestApply_PreservesOtherLocales(t *testing.T) {
	cat := parseCatalog(t, `{
  "strings": {
    "Hello": {
      "localizations": {
        "fr": { "stringUnit": { "state": "translated", "value": "Bonjour" } }
      }
    }
  }
}`)
	trans := parseTrans(t, `{"Hello": "你好"}`)

	Apply(cat, trans, "zh-Hans")

	if got := cat.Value("Hello", "fr"); got != "Bonjour" {
		t.Fatalf("fr value = %q, want Bonjour", got)
	}
	if got := cat.Value("Hello", "zh-Hans"); got != "你好" {
		t.Fatalf("zh-Hans value = %q, want 你好", got)
	}
}

func TestApply_ReplacesExistingState(t *testing.T) {
	cat := parseCatalog(t, `{
  "strings": {
    "Hello": {
      "localizations": {
        "zh-Hans": { "stringUnit": { "state": "needs_review", "value": "您好" } }
      }
    }
  }
}`)
	trans := parseTrans(t, `{"Hello": "你好"}`)

	res := Apply(cat, trans, "zh-Hans")
	if res.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", res.Updated)
	}
	if got := cat.State("Hello", "zh-Hans"); got != xcstrings.StateTranslated {
		t.Fatalf("State = %q, want translated", got)
	}
	if got := cat.Value("Hello", "zh-Hans"); got != "你好" {
		t.Fatalf("Value = %q, want 你好", got)
	}
}

// Import then extract: an imported key must disappear from the
// missing-translations report.
func TestApply_ThenExtractRoundTrip(t *testing.T) {
	cat := parseCatalog(t, `{"strings": {"Hello": {"comment": "greeting"}, "Bye": {}}}`)
	trans := parseTrans(t, `{"Hello": "你好"}`)

	if before := extract.Missing(cat, "zh-Hans"); before.Len() != 2 {
		t.Fatalf("missing before import = %d, want 2", before.Len())
	}

	Apply(cat, trans, "zh-Hans")

	after := extract.Missing(cat, "zh-Hans")
	if after.Has("Hello") {
		t.Fatal("imported key still reported missing")
	}
	if !after.Has("Bye") || after.Len() != 1 {
		t.Fatalf("unexpected report after import: %v", after.Keys())
	}
}

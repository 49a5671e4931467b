package formrelay

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formrelay/pkg/renderers/html"
)

func TestAssetsFSContainsPageScript(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), html.ScriptName)
	if err != nil {
		t.Fatalf("expected page script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "window.formrelay") {
		t.Fatalf("expected page script to read window.formrelay config")
	}
}

func TestAssetsFSContainsStylesheet(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), html.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesListsPageTemplates(t *testing.T) {
	matches, err := fs.Glob(EmbeddedTemplates(), "templates/*.tmpl")
	if err != nil {
		t.Fatalf("glob templates: %v", err)
	}
	want := map[string]bool{"templates/page.tmpl": false, "templates/specs.tmpl": false}
	for _, name := range matches {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected %s in embedded templates, got %v", name, matches)
		}
	}
}

package template_test

import (
	"testing"
	"testing/fstest"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/html/template"
)

func TestRenderTemplateFromFS(t *testing.T) {
	files := fstest.MapFS{
		"greeting.html": {Data: []byte("Hello {{ name }}!")},
	}
	engine, err := template.New(template.WithFS(files))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("RenderTemplate() error: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("RenderTemplate() = %q", got)
	}
}

func TestRenderStringWithGlobals(t *testing.T) {
	engine, err := template.New(
		template.WithFS(fstest.MapFS{}),
		template.WithGlobalData(map[string]any{"brand": "Acme"}),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := engine.RenderString("{{ brand }}: {{ count }}", map[string]any{"count": 3})
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}
	if got != "Acme: 3" {
		t.Fatalf("RenderString() = %q", got)
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := template.New(); err == nil {
		t.Fatal("expected error when no template source is configured")
	}
}

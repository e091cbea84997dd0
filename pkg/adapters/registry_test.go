package adapters_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
)

type stubAdapter struct {
	name string
}

func (s stubAdapter) Name() string        { return s.name }
func (s stubAdapter) ContentType() string { return "text/plain" }
func (s stubAdapter) Render(context.Context, *control.Session, adapters.Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := adapters.NewRegistry()
	if err := reg.Register(stubAdapter{name: "html"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	adapter, err := reg.Get("html")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if adapter.Name() != "html" {
		t.Fatalf("Name = %q", adapter.Name())
	}
	if !reg.Has("html") || reg.Has("missing") {
		t.Fatal("Has misreports registration state")
	}
}

func TestRegistryDuplicateIsError(t *testing.T) {
	reg := adapters.NewRegistry()
	reg.MustRegister(stubAdapter{name: "html"})
	if err := reg.Register(stubAdapter{name: "html"}); err == nil {
		t.Fatal("duplicate registration must error")
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	reg := adapters.NewRegistry()
	if err := reg.Register(nil); err == nil {
		t.Fatal("nil adapter must error")
	}
	if err := reg.Register(stubAdapter{}); err == nil {
		t.Fatal("unnamed adapter must error")
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := adapters.NewRegistry()
	reg.MustRegister(stubAdapter{name: "tui"})
	reg.MustRegister(stubAdapter{name: "html"})
	reg.MustRegister(stubAdapter{name: "jsonform"})

	want := []string{"html", "jsonform", "tui"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := adapters.MergeHiddenFields(base,
		adapters.CSRFToken("_csrf", "token123"),
		adapters.AuthToken(" auth_token ", "abc123"),
		adapters.VersionField("version", 4),
		adapters.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":   "keep",
		"_csrf":      "token123",
		"auth_token": "abc123",
		"version":    "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := adapters.SortedHiddenFields(merged)
	wantSorted := []adapters.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "auth_token", Value: "abc123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

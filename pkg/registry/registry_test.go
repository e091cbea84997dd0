package registry_test

import (
	"testing"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
)

func TestNewDefaultBuiltins(t *testing.T) {
	reg := registry.NewDefault()

	tests := []struct {
		tag  forms.FieldType
		kind forms.ControlKind
	}{
		{forms.TypeText, forms.KindSingle},
		{forms.TypeEmail, forms.KindSingle},
		{forms.TypeNumber, forms.KindSingle},
		{forms.TypeCheckbox, forms.KindSingle},
		{forms.TypeGroup, forms.KindGroup},
		{forms.TypeSubform, forms.KindList},
	}
	for _, tc := range tests {
		kind, ok := reg.Resolve(tc.tag)
		if !ok {
			t.Fatalf("Resolve(%q) not found", tc.tag)
		}
		if kind != tc.kind {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.tag, kind, tc.kind)
		}
	}
}

func TestCheckboxInitialValue(t *testing.T) {
	reg := registry.NewDefault()

	value, ok := reg.InitialValue(forms.TypeCheckbox)
	if !ok {
		t.Fatal("checkbox should declare an initial value")
	}
	if value != false {
		t.Fatalf("checkbox initial value = %v, want false", value)
	}

	if _, ok := reg.InitialValue(forms.TypeText); ok {
		t.Fatal("text should not declare an initial value; nil marks untouched")
	}
}

func TestRegisterOverwriteWins(t *testing.T) {
	reg := registry.NewDefault()
	reg.Register(forms.TypeText, forms.KindSingle, registry.WithInitialValue("n/a"))

	value, ok := reg.InitialValue(forms.TypeText)
	if !ok || value != "n/a" {
		t.Fatalf("overwritten registration not honoured: value=%v ok=%v", value, ok)
	}
}

func TestResolveUnknown(t *testing.T) {
	reg := registry.NewDefault()
	if _, ok := reg.Resolve("holo-picker"); ok {
		t.Fatal("unregistered tag should not resolve")
	}
}

func TestCloneIsolation(t *testing.T) {
	base := registry.NewDefault()
	clone := base.Clone()
	clone.Register("timezone", forms.KindSingle)

	if base.Has("timezone") {
		t.Fatal("registering on the clone must not affect the base registry")
	}
	if !clone.Has("timezone") {
		t.Fatal("clone lost its registration")
	}
}

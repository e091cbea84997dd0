package control_test

import (
	"testing"

	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
	"github.com/Tonio993/dynamic-forms-app/pkg/testsupport"
)

func TestBuildOneNodePerField(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, diags := builder.Build(testsupport.ContactForm())

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	children := root.Children()
	if len(children) != 4 {
		t.Fatalf("built %d nodes, want 4", len(children))
	}
	wantOrder := []string{"email", "nickname", "newsletter", "phones"}
	for i, name := range wantOrder {
		if children[i].Name() != name {
			t.Fatalf("child %d = %q, want %q (declaration order)", i, children[i].Name(), name)
		}
	}
}

func TestBuildKinds(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, _ := builder.Build(testsupport.ContactForm())

	email, _ := root.Child("email")
	if email.Kind != forms.KindSingle {
		t.Fatalf("email kind = %q", email.Kind)
	}
	phones, _ := root.Child("phones")
	if phones.Kind != forms.KindList {
		t.Fatalf("phones kind = %q", phones.Kind)
	}
	if phones.Len() != 0 {
		t.Fatalf("fresh list holds %d items, want 0", phones.Len())
	}
}

func TestBuildInitialValues(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, _ := builder.Build(testsupport.ContactForm())

	email, _ := root.Child("email")
	if email.Value() != nil {
		t.Fatalf("untouched leaf = %v, want the nil empty marker", email.Value())
	}
	newsletter, _ := root.Child("newsletter")
	if newsletter.Value() != false {
		t.Fatalf("checkbox = %v, want false", newsletter.Value())
	}
}

func TestBuildSkipsUnknownType(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, diags := builder.Build(forms.FormDescriptor{
		Name: "mixed",
		Fields: []forms.FieldDescriptor{
			{Name: "ok", Type: forms.TypeText},
			{Name: "odd", Type: "holo-picker"},
			{Name: "alsoOK", Type: forms.TypeText},
		},
	})

	if len(root.Children()) != 2 {
		t.Fatalf("built %d nodes, want 2 (unknown type skipped)", len(root.Children()))
	}
	if len(diags) != 1 || diags[0].Reason != control.ReasonUnknownType {
		t.Fatalf("diagnostics = %v, want one unknown-type entry", diags)
	}
	if diags[0].Path != "mixed.odd" {
		t.Fatalf("diagnostic path = %q", diags[0].Path)
	}
}

func TestBuildSkipsDuplicateNames(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, diags := builder.Build(forms.FormDescriptor{
		Name: "dupes",
		Fields: []forms.FieldDescriptor{
			{Name: "twin", Type: forms.TypeText},
			{Name: "twin", Type: forms.TypeNumber},
		},
	})

	if len(root.Children()) != 1 {
		t.Fatalf("built %d nodes, want 1", len(root.Children()))
	}
	twin, _ := root.Child("twin")
	if twin.Descriptor.Type != forms.TypeText {
		t.Fatal("first declaration must win")
	}
	if len(diags) != 1 || diags[0].Reason != control.ReasonDuplicateField {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestBuildSkipsListWithoutSubForm(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, diags := builder.Build(forms.FormDescriptor{
		Name: "broken",
		Fields: []forms.FieldDescriptor{
			{Name: "items", Type: forms.TypeSubform},
		},
	})

	if len(root.Children()) != 0 {
		t.Fatal("list without a sub-descriptor must be skipped")
	}
	if len(diags) != 1 || diags[0].Reason != control.ReasonMissingSubForm {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestBuildNestedGroup(t *testing.T) {
	builder := control.NewBuilder(nil)
	root, diags := builder.Build(testsupport.AddressForm())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	address, ok := root.Child("address")
	if !ok || address.Kind != forms.KindGroup {
		t.Fatalf("address child missing or wrong kind")
	}
	if len(address.Children()) != 3 {
		t.Fatalf("nested group has %d children, want 3", len(address.Children()))
	}
	street, ok := address.Child("street")
	if !ok || street.Kind != forms.KindSingle {
		t.Fatal("nested leaf missing")
	}
}

func TestBuildHonorsCustomRegistry(t *testing.T) {
	reg := registry.NewDefault()
	reg.Register("timezone", forms.KindSingle, registry.WithInitialValue("UTC"))

	builder := control.NewBuilder(reg)
	root, diags := builder.Build(forms.FormDescriptor{
		Name: "prefs",
		Fields: []forms.FieldDescriptor{
			{Name: "tz", Type: "timezone"},
		},
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	tz, _ := root.Child("tz")
	if tz.Value() != "UTC" {
		t.Fatalf("custom initial value = %v, want UTC", tz.Value())
	}
}

func TestBuildReportsBadPattern(t *testing.T) {
	builder := control.NewBuilder(nil)
	_, diags := builder.Build(forms.FormDescriptor{
		Name: "broken",
		Fields: []forms.FieldDescriptor{
			{Name: "slug", Type: forms.TypeText, Config: map[string]any{
				forms.ConfigPattern: `[unclosed`,
			}},
		},
	})
	if len(diags) != 1 || diags[0].Reason != control.ReasonBadPattern {
		t.Fatalf("diagnostics = %v, want one bad-pattern entry", diags)
	}
}

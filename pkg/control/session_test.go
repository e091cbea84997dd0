package control_test

import (
	"strings"
	"testing"

	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/testsupport"
	"github.com/Tonio993/dynamic-forms-app/pkg/validate"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility/expr"
)

func TestSessionIDsAreUnique(t *testing.T) {
	a := control.NewSession(testsupport.ContactForm())
	b := control.NewSession(testsupport.ContactForm())
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("session ids must be unique: %q vs %q", a.ID(), b.ID())
	}
}

func TestSetExternalValuesAppliesOnceAfterBuild(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	values := map[string]any{"email": "a@b.com"}

	if !sess.SetExternalValues(values) {
		t.Fatal("first apply after build must run")
	}
	if sess.SetExternalValues(values) {
		t.Fatal("structurally equal values must not re-apply")
	}

	// A fresh map with equal content still must not re-apply.
	if sess.SetExternalValues(map[string]any{"email": "a@b.com"}) {
		t.Fatal("equality is structural, not by reference")
	}

	if !sess.SetExternalValues(map[string]any{"email": "c@d.com"}) {
		t.Fatal("materially changed values must apply")
	}
}

func TestChangeDetectionPreservesManualReorder(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	external := map[string]any{"phones": testsupport.PhoneValues("111", "222")}
	sess.SetExternalValues(external)

	phones, _ := sess.Root().Child("phones")
	if !phones.MoveItem(0, 1) {
		t.Fatal("MoveItem refused")
	}
	reordered := phones.Items()

	// The host re-renders and offers the same source object again; the
	// session must not stomp the drag-and-drop order.
	if sess.SetExternalValues(external) {
		t.Fatal("unchanged values must not re-apply")
	}
	after := phones.Items()
	for i := range reordered {
		if reordered[i] != after[i] {
			t.Fatalf("item %d order reset", i)
		}
	}
	number, _ := after[0].Child("number")
	if number.Value() != "222" {
		t.Fatalf("after[0].number = %v, want the reordered 222", number.Value())
	}
}

func TestSetDescriptorRebuildsOnChange(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	before := sess.Root()

	sess.SetDescriptor(testsupport.ContactForm())
	if sess.Root() != before {
		t.Fatal("structurally identical descriptor must not rebuild")
	}

	sess.SetDescriptor(testsupport.AddressForm())
	if sess.Root() == before {
		t.Fatal("changed descriptor must rebuild the tree")
	}

	// After a rebuild the previous snapshot is forgotten; values apply again.
	if !sess.SetExternalValues(map[string]any{"recipient": "Ada"}) {
		t.Fatal("apply after rebuild must run")
	}
}

func TestSubmitValid(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	sess.SetExternalValues(map[string]any{
		"email":  "a@b.com",
		"phones": testsupport.PhoneValues("111"),
	})

	result := sess.Submit()
	if !result.Valid {
		t.Fatalf("submit failed: %v", result.Failures)
	}
	if result.Values["email"] != "a@b.com" {
		t.Fatalf("values = %v", result.Values)
	}
	phones, ok := result.Values["phones"].([]any)
	if !ok || len(phones) != 1 {
		t.Fatalf("phones values = %v", result.Values["phones"])
	}
}

func TestSubmitCollectsFailuresByPath(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	sess.SetExternalValues(map[string]any{"nickname": "x"})

	result := sess.Submit()
	if result.Valid {
		t.Fatal("submit must fail")
	}
	if _, ok := result.Failures["email"]; !ok {
		t.Fatalf("missing email failure: %v", result.Failures)
	}
	if fails := result.Failures["nickname"]; len(fails) != 1 || fails[0].Key != validate.KeyMinLength {
		t.Fatalf("nickname failures = %v", fails)
	}
}

func TestSubmitMarksEverythingTouched(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	sess.Submit()

	email, _ := sess.Root().Child("email")
	if !email.Touched() {
		t.Fatal("submit must mark fields as interacted with")
	}
}

func TestSubmitEndToEndSubformMinItems(t *testing.T) {
	sub := forms.FormDescriptor{
		Name:   "entry",
		Fields: []forms.FieldDescriptor{{Name: "title", Type: forms.TypeText, Required: true}},
	}
	descriptor := forms.FormDescriptor{
		Name: "registration",
		Fields: []forms.FieldDescriptor{
			{Name: "email", Type: forms.TypeEmail, Required: true},
			{
				Name: "entries",
				Type: forms.TypeSubform,
				Config: map[string]any{
					forms.ConfigForm:     sub,
					forms.ConfigMinItems: 1,
				},
			},
		},
	}

	sess := control.NewSession(descriptor)
	sess.SetExternalValues(map[string]any{"email": "a@b.com"})

	result := sess.Submit()
	if result.Valid {
		t.Fatal("submit must fail on the minItems shortfall")
	}
	if _, ok := result.Failures["email"]; ok {
		t.Fatalf("email must not be cited: %v", result.Failures)
	}
	fails, ok := result.Failures["entries"]
	if !ok || len(fails) != 1 || fails[0].Key != validate.KeyMinItems {
		t.Fatalf("entries failures = %v, want only minItems", fails)
	}
}

func TestReset(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	sess.SetExternalValues(map[string]any{
		"email":  "a@b.com",
		"phones": testsupport.PhoneValues("111"),
	})
	root := sess.Root()
	email, _ := root.Child("email")
	email.SetValue("edited@example.com")
	sess.Submit()

	sess.Reset()

	if sess.Root() != root {
		t.Fatal("reset must not rebuild the tree")
	}
	if email.Value() != nil {
		t.Fatalf("email = %v, want the build-time empty marker", email.Value())
	}
	if email.Touched() || !email.Valid() {
		t.Fatal("reset must clear interaction and failure state")
	}
	newsletter, _ := root.Child("newsletter")
	if newsletter.Value() != false {
		t.Fatalf("checkbox = %v, want its declared initial false", newsletter.Value())
	}
	phones, _ := root.Child("phones")
	if phones.Len() != 0 {
		t.Fatal("reset restores the build-time empty list")
	}
}

func TestBindings(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())
	sess.SetExternalValues(map[string]any{"phones": testsupport.PhoneValues("111")})

	bindings := sess.Bindings()
	var paths []string
	for _, b := range bindings {
		paths = append(paths, b.Path)
	}
	want := []string{"email", "nickname", "newsletter", "phones", "phones.0.kind", "phones.0.number"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("binding %d path = %q, want %q", i, paths[i], want[i])
		}
	}
	for _, b := range bindings {
		if !strings.HasPrefix(b.ID, sess.ID()+".") {
			t.Fatalf("binding id %q must embed the session id", b.ID)
		}
	}
}

func TestBindingsErrorState(t *testing.T) {
	sess := control.NewSession(testsupport.ContactForm())

	// Untouched invalid fields do not show errors yet.
	for _, b := range sess.Bindings() {
		if b.ShowError {
			t.Fatalf("untouched field %q shows an error", b.Path)
		}
	}

	sess.Submit()
	var found bool
	for _, b := range sess.Bindings() {
		if b.Path == "email" {
			found = true
			if !b.ShowError {
				t.Fatal("touched invalid email must show its error")
			}
			if b.Message != "Email is required" {
				t.Fatalf("message = %q", b.Message)
			}
		}
	}
	if !found {
		t.Fatal("email binding missing")
	}
}

func TestVisibilityGatesSubmitAndBindings(t *testing.T) {
	descriptor := forms.FormDescriptor{
		Name: "account",
		Fields: []forms.FieldDescriptor{
			{Name: "hasCompany", Type: forms.TypeCheckbox},
			{
				Name:     "companyName",
				Type:     forms.TypeText,
				Required: true,
				Config:   map[string]any{forms.ConfigVisibleWhen: "hasCompany"},
			},
		},
	}
	sess := control.NewSession(descriptor, control.WithVisibility(expr.New()))

	result := sess.Submit()
	if !result.Valid {
		t.Fatalf("hidden required field must not fail the submit: %v", result.Failures)
	}

	for _, b := range sess.Bindings() {
		if b.Path == "companyName" && !b.Hidden {
			t.Fatal("companyName must be hidden while hasCompany is false")
		}
	}

	toggle, _ := sess.Root().Child("hasCompany")
	toggle.SetValue(true)

	result = sess.Submit()
	if result.Valid {
		t.Fatal("visible required field must fail the submit")
	}
	if _, ok := result.Failures["companyName"]; !ok {
		t.Fatalf("companyName not cited: %v", result.Failures)
	}
}

func TestBadVisibilityRuleDegradesToVisible(t *testing.T) {
	descriptor := forms.FormDescriptor{
		Name: "account",
		Fields: []forms.FieldDescriptor{
			{
				Name:   "field",
				Type:   forms.TypeText,
				Config: map[string]any{forms.ConfigVisibleWhen: "status == "},
			},
		},
	}
	sess := control.NewSession(descriptor, control.WithVisibility(expr.New()))

	for _, b := range sess.Bindings() {
		if b.Hidden {
			t.Fatal("unparseable rule must leave the field visible")
		}
	}
	var found bool
	for _, d := range sess.Diagnostics() {
		if d.Reason == control.ReasonBadVisibility {
			found = true
		}
	}
	if !found {
		t.Fatal("bad rule must surface a diagnostic")
	}
}

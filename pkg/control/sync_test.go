package control_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/testsupport"
)

func buildContact(t *testing.T) *control.Node {
	t.Helper()
	root, diags := control.NewBuilder(nil).Build(testsupport.ContactForm())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return root
}

func TestApplySingles(t *testing.T) {
	root := buildContact(t)

	diags := control.Apply(root, map[string]any{
		"email":      "a@b.com",
		"newsletter": true,
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	email, _ := root.Child("email")
	if email.Value() != "a@b.com" {
		t.Fatalf("email = %v", email.Value())
	}
	if email.Touched() || email.Dirty() {
		t.Fatal("external apply must not mark nodes as user-touched")
	}
	nickname, _ := root.Child("nickname")
	if nickname.Value() != nil {
		t.Fatal("absent keys must stay untouched")
	}
}

func TestApplyIgnoresNilValues(t *testing.T) {
	root := buildContact(t)
	control.Apply(root, map[string]any{"email": "a@b.com"})

	control.Apply(root, map[string]any{"email": nil})
	email, _ := root.Child("email")
	if email.Value() != "a@b.com" {
		t.Fatal("explicit nil must not clear a value")
	}
}

func TestApplyNestedGroup(t *testing.T) {
	root, _ := control.NewBuilder(nil).Build(testsupport.AddressForm())

	diags := control.Apply(root, map[string]any{
		"recipient": "Ada",
		"address": map[string]any{
			"street": "1 Main St",
			"city":   "Springfield",
		},
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	address, _ := root.Child("address")
	street, _ := address.Child("street")
	if street.Value() != "1 Main St" {
		t.Fatalf("street = %v", street.Value())
	}
	zip, _ := address.Child("zip")
	if zip.Value() != nil {
		t.Fatal("absent nested keys must stay untouched")
	}
}

func TestApplyMalformedGroupValue(t *testing.T) {
	root, _ := control.NewBuilder(nil).Build(testsupport.AddressForm())

	diags := control.Apply(root, map[string]any{
		"recipient": "Ada",
		"address":   "not a record",
	})
	if len(diags) != 1 || diags[0].Reason != control.ReasonMalformedValue {
		t.Fatalf("diagnostics = %v, want one malformed-value entry", diags)
	}
	recipient, _ := root.Child("recipient")
	if recipient.Value() != "Ada" {
		t.Fatal("the rest of the object must still apply")
	}
}

func TestApplyListInitialLoad(t *testing.T) {
	root := buildContact(t)

	control.Apply(root, map[string]any{
		"phones": testsupport.PhoneValues("111", "222"),
	})
	phones, _ := root.Child("phones")
	if phones.Len() != 2 {
		t.Fatalf("list length = %d, want 2", phones.Len())
	}
	first := phones.Items()[0]
	number, _ := first.Child("number")
	if number.Value() != "111" {
		t.Fatalf("first item number = %v", number.Value())
	}
}

func TestApplyListRebuildOnLengthChange(t *testing.T) {
	root := buildContact(t)
	control.Apply(root, map[string]any{"phones": testsupport.PhoneValues("111", "222")})

	phones, _ := root.Child("phones")
	before := phones.Items()

	control.Apply(root, map[string]any{"phones": testsupport.PhoneValues("111", "222", "333")})
	after := phones.Items()
	if len(after) != 3 {
		t.Fatalf("list length = %d, want 3", len(after))
	}
	for i := range before {
		if before[i] == after[i] {
			t.Fatalf("item %d survived a length-changing apply; want fresh nodes", i)
		}
	}
}

func TestApplyListPatchPreservesIdentity(t *testing.T) {
	root := buildContact(t)
	control.Apply(root, map[string]any{"phones": testsupport.PhoneValues("111", "222")})

	phones, _ := root.Child("phones")
	before := phones.Items()

	control.Apply(root, map[string]any{"phones": testsupport.PhoneValues("999", "888")})
	after := phones.Items()
	if len(after) != 2 {
		t.Fatalf("list length = %d, want 2", len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("item %d identity changed on a same-length patch", i)
		}
	}
	number, _ := after[0].Child("number")
	if number.Value() != "999" {
		t.Fatalf("patched value = %v, want 999", number.Value())
	}
}

func TestApplyListNonRecordElements(t *testing.T) {
	root := buildContact(t)

	control.Apply(root, map[string]any{
		"phones": []any{"oops", map[string]any{"number": "222"}},
	})
	phones, _ := root.Child("phones")
	if phones.Len() != 2 {
		t.Fatalf("list length = %d, want 2", phones.Len())
	}
	number, _ := phones.Items()[0].Child("number")
	if number.Value() != nil {
		t.Fatal("non-record element must become an empty record")
	}
}

func TestApplyMalformedListValue(t *testing.T) {
	root := buildContact(t)

	diags := control.Apply(root, map[string]any{"phones": "not an array"})
	if len(diags) != 1 || diags[0].Reason != control.ReasonMalformedValue {
		t.Fatalf("diagnostics = %v", diags)
	}
	phones, _ := root.Child("phones")
	if phones.Len() != 0 {
		t.Fatal("malformed list value must leave the list unset")
	}
}

func TestApplyIdempotent(t *testing.T) {
	root := buildContact(t)
	values := map[string]any{
		"email":  "a@b.com",
		"phones": testsupport.PhoneValues("111"),
	}

	control.Apply(root, values)
	first := root.Snapshot()
	control.Apply(root, values)
	second := root.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second apply changed state (-first +second):\n%s", diff)
	}
}

func TestApplyRevalidatesOnce(t *testing.T) {
	root := buildContact(t)

	control.Apply(root, map[string]any{"email": "not-an-address"})
	email, _ := root.Child("email")
	if email.Valid() {
		t.Fatal("apply must recompute validity after the writes")
	}

	control.Apply(root, map[string]any{"email": "a@b.com"})
	if !email.Valid() {
		t.Fatal("validity must clear once the value is fixed")
	}
}

func TestApplyUnknownKeysIgnored(t *testing.T) {
	root := buildContact(t)
	diags := control.Apply(root, map[string]any{"mystery": 42})
	if len(diags) != 0 {
		t.Fatalf("unknown keys must be ignored, got %v", diags)
	}
}

package control_test

import (
	"testing"

	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/testsupport"
)

func buildPhonesList(t *testing.T, itemValues ...string) *control.Node {
	t.Helper()
	root := buildContact(t)
	phones, ok := root.Child("phones")
	if !ok {
		t.Fatal("phones list missing")
	}
	for _, number := range itemValues {
		if _, ok := phones.AddItem(map[string]any{"number": number}); !ok {
			t.Fatalf("AddItem(%q) refused", number)
		}
	}
	return phones
}

func TestAddItemSeedsValues(t *testing.T) {
	phones := buildPhonesList(t)

	item, ok := phones.AddItem(map[string]any{"kind": "home", "number": "555"})
	if !ok {
		t.Fatal("AddItem refused")
	}
	number, _ := item.Child("number")
	if number.Value() != "555" {
		t.Fatalf("seeded number = %v", number.Value())
	}
	if phones.Len() != 1 {
		t.Fatalf("list length = %d", phones.Len())
	}
}

func TestAddItemRefusedAtMaxItems(t *testing.T) {
	list, _ := control.NewBuilder(nil).Build(forms.FormDescriptor{
		Name: "bounded",
		Fields: []forms.FieldDescriptor{{
			Name: "entries",
			Type: forms.TypeSubform,
			Config: map[string]any{
				forms.ConfigForm:     testsupport.PhoneForm(),
				forms.ConfigMaxItems: 2,
			},
		}},
	})
	entries, _ := list.Child("entries")
	entries.AddItem(nil)
	entries.AddItem(nil)

	if _, ok := entries.AddItem(nil); ok {
		t.Fatal("AddItem beyond maxItems must be refused")
	}
	if entries.Len() != 2 {
		t.Fatalf("item count = %d, want 2 (no-op)", entries.Len())
	}
}

func TestRemoveItem(t *testing.T) {
	phones := buildPhonesList(t, "111", "222", "333")

	if !phones.RemoveItem(1) {
		t.Fatal("RemoveItem refused")
	}
	if phones.Len() != 2 {
		t.Fatalf("list length = %d", phones.Len())
	}
	number, _ := phones.Items()[1].Child("number")
	if number.Value() != "333" {
		t.Fatalf("remaining order wrong: %v", number.Value())
	}
}

func TestRemoveItemRefusals(t *testing.T) {
	list, _ := control.NewBuilder(nil).Build(forms.FormDescriptor{
		Name: "bounded",
		Fields: []forms.FieldDescriptor{{
			Name: "entries",
			Type: forms.TypeSubform,
			Config: map[string]any{
				forms.ConfigForm:     testsupport.PhoneForm(),
				forms.ConfigMinItems: 1,
			},
		}},
	})
	entries, _ := list.Child("entries")
	entries.AddItem(nil)

	if entries.RemoveItem(0) {
		t.Fatal("removal below minItems must be refused")
	}
	if entries.RemoveItem(5) {
		t.Fatal("out-of-bounds removal must be refused")
	}
	if entries.Len() != 1 {
		t.Fatalf("item count changed to %d", entries.Len())
	}
}

func TestMoveItemReorders(t *testing.T) {
	phones := buildPhonesList(t, "000", "111", "222")
	before := phones.Items()

	if !phones.MoveItem(0, 2) {
		t.Fatal("MoveItem refused")
	}
	after := phones.Items()

	wantNumbers := []string{"111", "222", "000"}
	for i, want := range wantNumbers {
		number, _ := after[i].Child("number")
		if number.Value() != want {
			t.Fatalf("position %d = %v, want %v", i, number.Value(), want)
		}
	}
	// Same node objects, new order.
	if after[2] != before[0] || after[0] != before[1] || after[1] != before[2] {
		t.Fatal("MoveItem must reinsert the same node objects")
	}
}

func TestMoveItemEqualIndicesNoop(t *testing.T) {
	phones := buildPhonesList(t, "111", "222")
	before := phones.Items()

	if !phones.MoveItem(1, 1) {
		t.Fatal("equal indices are a successful no-op")
	}
	after := phones.Items()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("no-op move must not disturb the list")
		}
	}
}

func TestMoveItemOutOfBounds(t *testing.T) {
	phones := buildPhonesList(t, "111")
	if phones.MoveItem(0, 3) {
		t.Fatal("out-of-bounds move must be refused")
	}
	if phones.MoveItem(-1, 0) {
		t.Fatal("negative index must be refused")
	}
}

func TestListOpsRevalidateSizeRules(t *testing.T) {
	list, _ := control.NewBuilder(nil).Build(forms.FormDescriptor{
		Name: "bounded",
		Fields: []forms.FieldDescriptor{{
			Name: "entries",
			Type: forms.TypeSubform,
			Config: map[string]any{
				forms.ConfigForm:     testsupport.PhoneForm(),
				forms.ConfigMinItems: 1,
			},
		}},
	})
	entries, _ := list.Child("entries")
	entries.Validate()
	if entries.Valid() {
		t.Fatal("empty list below minItems must be invalid")
	}

	entries.AddItem(nil)
	if !entries.Valid() {
		t.Fatalf("list with one item must satisfy minItems, failures: %v", entries.Failures())
	}
}

func TestCloneItemIsIndependent(t *testing.T) {
	phones := buildPhonesList(t, "111")

	clone, ok := phones.CloneItem(0)
	if !ok {
		t.Fatal("CloneItem refused")
	}
	if clone == phones.Items()[0] {
		t.Fatal("clone must be a distinct node")
	}

	cloneNumber, _ := clone.Child("number")
	cloneNumber.SetValue("999")

	liveNumber, _ := phones.Items()[0].Child("number")
	if liveNumber.Value() != "111" {
		t.Fatal("editing the clone must not affect the live tree")
	}
}

func TestReplaceItemCommitsClone(t *testing.T) {
	phones := buildPhonesList(t, "111")

	clone, _ := phones.CloneItem(0)
	cloneNumber, _ := clone.Child("number")
	cloneNumber.SetValue("999")

	if !phones.ReplaceItem(0, clone) {
		t.Fatal("ReplaceItem refused")
	}
	liveNumber, _ := phones.Items()[0].Child("number")
	if liveNumber.Value() != "999" {
		t.Fatal("confirmed edit must land in the live tree")
	}
}

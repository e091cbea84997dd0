package forms_test

import (
	"testing"
	"testing/fstest"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

const contactJSON = `{
  "name": "contact",
  "fields": [
    {"name": "email", "type": "email", "required": true},
    {
      "name": "phones",
      "type": "subform",
      "config": {
        "minItems": 1,
        "form": {
          "name": "phone",
          "fields": [{"name": "number", "type": "text", "required": true}]
        }
      }
    }
  ]
}`

const profileYAML = `name: profile
fields:
  - name: nickname
    type: text
    config:
      minLength: 2
  - name: newsletter
    type: checkbox
`

func TestParseDocumentJSON(t *testing.T) {
	doc, err := forms.ParseDocument([]byte(contactJSON), "contact.json")
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Name != "contact" || len(doc.Fields) != 2 {
		t.Fatalf("unexpected descriptor: %+v", doc)
	}

	phones, ok := doc.Field("phones")
	if !ok {
		t.Fatal("phones field missing")
	}
	sub, ok := phones.SubForm()
	if !ok {
		t.Fatal("nested form was not normalised into a FormDescriptor")
	}
	if sub.Name != "phone" || len(sub.Fields) != 1 || sub.Fields[0].Name != "number" {
		t.Fatalf("unexpected sub-form: %+v", sub)
	}
	if min, ok := phones.ConfigInt(forms.ConfigMinItems); !ok || min != 1 {
		t.Fatalf("minItems = %d ok=%v", min, ok)
	}
}

func TestParseDocumentYAML(t *testing.T) {
	doc, err := forms.ParseDocument([]byte(profileYAML), "profile.yaml")
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Name != "profile" || len(doc.Fields) != 2 {
		t.Fatalf("unexpected descriptor: %+v", doc)
	}
	if doc.Fields[1].Type != forms.TypeCheckbox {
		t.Fatalf("field type = %q", doc.Fields[1].Type)
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	if _, err := forms.ParseDocument([]byte("   "), "empty.json"); err == nil {
		t.Fatal("empty document must error")
	}
	if _, err := forms.ParseDocument([]byte("{{nope"), "bad.json"); err == nil {
		t.Fatal("unparseable document must error")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"descriptors/contact.json": {Data: []byte(contactJSON)},
		"descriptors/profile.yaml": {Data: []byte(profileYAML)},
		"notes/readme.txt":         {Data: []byte("not a descriptor")},
	}

	docs, err := forms.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("loaded %d descriptors, want 2", len(docs))
	}
	if _, ok := docs["contact"]; !ok {
		t.Fatal("contact descriptor missing")
	}
	if _, ok := docs["profile"]; !ok {
		t.Fatal("profile descriptor missing")
	}
}

func TestLoadFSDuplicateNames(t *testing.T) {
	fsys := fstest.MapFS{
		"a/contact.json": {Data: []byte(contactJSON)},
		"b/contact.json": {Data: []byte(contactJSON)},
	}
	if _, err := forms.LoadFS(fsys); err == nil {
		t.Fatal("duplicate descriptor names must error")
	}
}

func TestLoadFSNil(t *testing.T) {
	docs, err := forms.LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS(nil): %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(docs))
	}
}

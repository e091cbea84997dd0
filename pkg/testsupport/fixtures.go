// Package testsupport provides shared descriptor fixtures for tests across
// the module.
package testsupport

import "github.com/Tonio993/dynamic-forms-app/pkg/forms"

// PhoneForm is a small sub-descriptor used as a repeating list item.
func PhoneForm() forms.FormDescriptor {
	return forms.FormDescriptor{
		Name: "phone",
		Fields: []forms.FieldDescriptor{
			{
				Name: "kind",
				Type: forms.TypeSelect,
				Config: map[string]any{
					forms.ConfigOptions: []string{"mobile", "home", "work"},
				},
			},
			{Name: "number", Type: forms.TypeText, Required: true},
		},
	}
}

// ContactForm is the canonical fixture: one required email, one optional
// text field, a checkbox, and a repeating phone list with size bounds.
func ContactForm() forms.FormDescriptor {
	return forms.FormDescriptor{
		Name: "contact",
		Fields: []forms.FieldDescriptor{
			{Name: "email", Type: forms.TypeEmail, Required: true},
			{
				Name:   "nickname",
				Type:   forms.TypeText,
				Config: map[string]any{forms.ConfigMinLength: 2},
			},
			{Name: "newsletter", Type: forms.TypeCheckbox},
			{
				Name: "phones",
				Type: forms.TypeSubform,
				Config: map[string]any{
					forms.ConfigForm:     PhoneForm(),
					forms.ConfigMinItems: 0,
					forms.ConfigMaxItems: 3,
				},
			},
		},
	}
}

// AddressForm nests a group field inside the record.
func AddressForm() forms.FormDescriptor {
	return forms.FormDescriptor{
		Name: "shipping",
		Fields: []forms.FieldDescriptor{
			{Name: "recipient", Type: forms.TypeText, Required: true},
			{
				Name: "address",
				Type: forms.TypeGroup,
				Config: map[string]any{
					forms.ConfigForm: forms.FormDescriptor{
						Name: "address",
						Fields: []forms.FieldDescriptor{
							{Name: "street", Type: forms.TypeText, Required: true},
							{Name: "city", Type: forms.TypeText, Required: true},
							{Name: "zip", Type: forms.TypeText, Config: map[string]any{
								forms.ConfigPattern: `^\d{5}$`,
							}},
						},
					},
				},
			},
		},
	}
}

// PhoneValues builds the external value shape for the phones list.
func PhoneValues(numbers ...string) []any {
	out := make([]any, 0, len(numbers))
	for _, number := range numbers {
		out = append(out, map[string]any{"kind": "mobile", "number": number})
	}
	return out
}

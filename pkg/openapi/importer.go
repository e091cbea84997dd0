package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Warning notes an OpenAPI construct the importer could not express as a
// field; the rest of the schema still converts.
type Warning struct {
	Path   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}

// Import converts one operation's request-body schema into a
// FormDescriptor. The operation is looked up by operationId; unknown or
// unsupported schema constructs degrade to warnings rather than failing the
// whole import.
func Import(ctx context.Context, doc Document, operationID string) (forms.FormDescriptor, []Warning, error) {
	if len(doc.Raw()) == 0 {
		return forms.FormDescriptor{}, nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw())
	if err != nil {
		return forms.FormDescriptor{}, nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation, err := findOperation(spec, operationID)
	if err != nil {
		return forms.FormDescriptor{}, nil, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return forms.FormDescriptor{}, nil, fmt.Errorf("openapi: operation %q has no JSON request body schema", operationID)
	}

	var warnings []Warning
	descriptor := forms.FormDescriptor{
		Name:   operationID,
		Fields: convertProperties(schema, operationID, &warnings),
	}
	return descriptor, warnings, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if spec.Paths == nil {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

// convertProperties turns an object schema's properties into field
// descriptors. Property order is not significant in OpenAPI documents, so
// fields are emitted in sorted name order for determinism.
func convertProperties(schema *openapi3.Schema, path string, warnings *[]Warning) []forms.FieldDescriptor {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []forms.FieldDescriptor
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			*warnings = append(*warnings, Warning{
				Path:   joinPath(path, name),
				Reason: "unresolved property schema",
			})
			continue
		}
		field, ok := convertField(name, ref.Value, required[name], joinPath(path, name), warnings)
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func convertField(name string, schema *openapi3.Schema, required bool, path string, warnings *[]Warning) (forms.FieldDescriptor, bool) {
	field := forms.FieldDescriptor{
		Name:        name,
		Required:    required,
		Label:       schema.Title,
		Description: schema.Description,
	}

	switch {
	case typeIs(schema, openapi3.TypeString):
		field.Type = stringFieldType(schema)
		applyStringConstraints(&field, schema)

	case typeIs(schema, openapi3.TypeInteger), typeIs(schema, openapi3.TypeNumber):
		field.Type = forms.TypeNumber
		applyNumericConstraints(&field, schema)

	case typeIs(schema, openapi3.TypeBoolean):
		field.Type = forms.TypeCheckbox

	case typeIs(schema, openapi3.TypeObject):
		sub := forms.FormDescriptor{
			Name:   name,
			Fields: convertProperties(schema, path, warnings),
		}
		field.Type = forms.TypeGroup
		setConfig(&field, forms.ConfigForm, sub)

	case typeIs(schema, openapi3.TypeArray):
		item := itemSchema(schema)
		if item == nil || !typeIs(item, openapi3.TypeObject) {
			*warnings = append(*warnings, Warning{
				Path:   path,
				Reason: "array items must be objects to form a repeating group",
			})
			return forms.FieldDescriptor{}, false
		}
		sub := forms.FormDescriptor{
			Name:   name,
			Fields: convertProperties(item, path, warnings),
		}
		field.Type = forms.TypeSubform
		setConfig(&field, forms.ConfigForm, sub)
		if schema.MinItems > 0 {
			setConfig(&field, forms.ConfigMinItems, int(schema.MinItems))
		}
		if schema.MaxItems != nil {
			setConfig(&field, forms.ConfigMaxItems, int(*schema.MaxItems))
		}

	default:
		*warnings = append(*warnings, Warning{
			Path:   path,
			Reason: fmt.Sprintf("unsupported schema type %v", schema.Type),
		})
		return forms.FieldDescriptor{}, false
	}

	if len(schema.Enum) > 0 && field.Type != forms.TypeGroup && field.Type != forms.TypeSubform {
		field.Type = forms.TypeSelect
		setConfig(&field, forms.ConfigOptions, enumOptions(schema.Enum))
	}

	return field, true
}

func stringFieldType(schema *openapi3.Schema) forms.FieldType {
	switch strings.ToLower(schema.Format) {
	case "email":
		return forms.TypeEmail
	case "date", "date-time":
		return forms.TypeDate
	case "password":
		return forms.TypePassword
	case "textarea":
		return forms.TypeTextarea
	default:
		return forms.TypeText
	}
}

func applyStringConstraints(field *forms.FieldDescriptor, schema *openapi3.Schema) {
	if schema.MinLength > 0 {
		setConfig(field, forms.ConfigMinLength, int(schema.MinLength))
	}
	if schema.MaxLength != nil {
		setConfig(field, forms.ConfigMaxLength, int(*schema.MaxLength))
	}
	if schema.Pattern != "" {
		setConfig(field, forms.ConfigPattern, schema.Pattern)
	}
}

func applyNumericConstraints(field *forms.FieldDescriptor, schema *openapi3.Schema) {
	if schema.Min != nil {
		setConfig(field, forms.ConfigMin, *schema.Min)
	}
	if schema.Max != nil {
		setConfig(field, forms.ConfigMax, *schema.Max)
	}
}

func itemSchema(schema *openapi3.Schema) *openapi3.Schema {
	if schema.Items == nil {
		return nil
	}
	return schema.Items.Value
}

func enumOptions(enum []any) []forms.Option {
	out := make([]forms.Option, 0, len(enum))
	for _, value := range enum {
		text := fmt.Sprint(value)
		out = append(out, forms.Option{Value: text, Label: text})
	}
	return out
}

func setConfig(field *forms.FieldDescriptor, key string, value any) {
	if field.Config == nil {
		field.Config = make(map[string]any)
	}
	field.Config[key] = value
}

func typeIs(schema *openapi3.Schema, kind string) bool {
	return schema.Type != nil && schema.Type.Is(kind)
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

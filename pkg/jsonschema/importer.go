// Package jsonschema imports bare JSON Schema object documents as form
// descriptors, for hosts that describe their records without a full OpenAPI
// document.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Schema is the subset of JSON Schema the importer understands.
type Schema struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Type        string             `json:"type" yaml:"type"`
	Format      string             `json:"format" yaml:"format"`
	Properties  map[string]*Schema `json:"properties" yaml:"properties"`
	Required    []string           `json:"required" yaml:"required"`
	Items       *Schema            `json:"items" yaml:"items"`
	Enum        []any              `json:"enum" yaml:"enum"`
	MinLength   *int               `json:"minLength" yaml:"minLength"`
	MaxLength   *int               `json:"maxLength" yaml:"maxLength"`
	Pattern     string             `json:"pattern" yaml:"pattern"`
	Minimum     *float64           `json:"minimum" yaml:"minimum"`
	Maximum     *float64           `json:"maximum" yaml:"maximum"`
	MinItems    *int               `json:"minItems" yaml:"minItems"`
	MaxItems    *int               `json:"maxItems" yaml:"maxItems"`
}

// Warning notes a construct the importer had to skip.
type Warning struct {
	Path   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}

// Parse decodes a schema document. JSON is attempted first, then YAML.
func Parse(data []byte, source string) (*Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("jsonschema: document %s is empty", source)
	}
	var schema Schema
	if err := json.Unmarshal(data, &schema); err == nil {
		return &schema, nil
	}
	if err := yaml.Unmarshal(data, &schema); err == nil {
		return &schema, nil
	}
	return nil, fmt.Errorf("jsonschema: parse %s: invalid JSON or YAML", source)
}

// ParseFS reads and parses a schema file from a filesystem.
func ParseFS(fsys fs.FS, path string) (*Schema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Import converts an object schema into a FormDescriptor named name.
// Unsupported constructs degrade to warnings; the rest of the schema still
// converts.
func Import(schema *Schema, name string) (forms.FormDescriptor, []Warning, error) {
	if schema == nil {
		return forms.FormDescriptor{}, nil, fmt.Errorf("jsonschema: schema is nil")
	}
	if schema.Type != "" && schema.Type != "object" {
		return forms.FormDescriptor{}, nil, fmt.Errorf("jsonschema: root schema must be an object, got %q", schema.Type)
	}

	var warnings []Warning
	descriptor := forms.FormDescriptor{
		Name:   name,
		Fields: convertProperties(schema, name, &warnings),
	}
	return descriptor, warnings, nil
}

// convertProperties emits fields in sorted name order; JSON object keys
// carry no declaration order once decoded.
func convertProperties(schema *Schema, path string, warnings *[]Warning) []forms.FieldDescriptor {
	if len(schema.Properties) == 0 {
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
		property := schema.Properties[name]
		if property == nil {
			continue
		}
		field, ok := convertField(name, property, required[name], path+"."+name, warnings)
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func convertField(name string, schema *Schema, required bool, path string, warnings *[]Warning) (forms.FieldDescriptor, bool) {
	field := forms.FieldDescriptor{
		Name:        name,
		Required:    required,
		Label:       schema.Title,
		Description: schema.Description,
	}

	switch schema.Type {
	case "string":
		field.Type = stringFieldType(schema.Format)
		if schema.MinLength != nil {
			setConfig(&field, forms.ConfigMinLength, *schema.MinLength)
		}
		if schema.MaxLength != nil {
			setConfig(&field, forms.ConfigMaxLength, *schema.MaxLength)
		}
		if schema.Pattern != "" {
			setConfig(&field, forms.ConfigPattern, schema.Pattern)
		}

	case "integer", "number":
		field.Type = forms.TypeNumber
		if schema.Minimum != nil {
			setConfig(&field, forms.ConfigMin, *schema.Minimum)
		}
		if schema.Maximum != nil {
			setConfig(&field, forms.ConfigMax, *schema.Maximum)
		}

	case "boolean":
		field.Type = forms.TypeCheckbox

	case "object":
		field.Type = forms.TypeGroup
		setConfig(&field, forms.ConfigForm, forms.FormDescriptor{
			Name:   name,
			Fields: convertProperties(schema, path, warnings),
		})

	case "array":
		if schema.Items == nil || schema.Items.Type != "object" {
			*warnings = append(*warnings, Warning{
				Path:   path,
				Reason: "array items must be objects to form a repeating group",
			})
			return forms.FieldDescriptor{}, false
		}
		field.Type = forms.TypeSubform
		setConfig(&field, forms.ConfigForm, forms.FormDescriptor{
			Name:   name,
			Fields: convertProperties(schema.Items, path, warnings),
		})
		if schema.MinItems != nil {
			setConfig(&field, forms.ConfigMinItems, *schema.MinItems)
		}
		if schema.MaxItems != nil {
			setConfig(&field, forms.ConfigMaxItems, *schema.MaxItems)
		}

	default:
		*warnings = append(*warnings, Warning{
			Path:   path,
			Reason: fmt.Sprintf("unsupported schema type %q", schema.Type),
		})
		return forms.FieldDescriptor{}, false
	}

	if len(schema.Enum) > 0 && field.Type != forms.TypeGroup && field.Type != forms.TypeSubform {
		options := make([]forms.Option, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			text := fmt.Sprint(value)
			options = append(options, forms.Option{Value: text, Label: text})
		}
		field.Type = forms.TypeSelect
		setConfig(&field, forms.ConfigOptions, options)
	}

	return field, true
}

func stringFieldType(format string) forms.FieldType {
	switch strings.ToLower(format) {
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

func setConfig(field *forms.FieldDescriptor, key string, value any) {
	if field.Config == nil {
		field.Config = make(map[string]any)
	}
	field.Config[key] = value
}

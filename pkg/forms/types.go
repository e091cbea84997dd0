package forms

import "strings"

// FieldType is an open-ended tag identifying the kind of input a field
// expects. The built-in tags below cover common inputs; hosts extend the set
// by registering new tags with a registry.Registry.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeEmail    FieldType = "email"
	TypeDate     FieldType = "date"
	TypePassword FieldType = "password"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
	TypeRadio    FieldType = "radio"
	TypeCheckbox FieldType = "checkbox"
	TypeGroup    FieldType = "group"
	TypeSubform  FieldType = "subform"
)

// ControlKind is the runtime shape a field's value takes. It is fixed per
// registered field type; the tree builder never second-guesses it.
type ControlKind string

const (
	// KindSingle holds one primitive value.
	KindSingle ControlKind = "single"
	// KindGroup holds a nested record realised once.
	KindGroup ControlKind = "group"
	// KindList holds zero or more independently validated group instances,
	// order significant.
	KindList ControlKind = "list"
)

// Config keys recognised across the module. Unrecognised keys are ignored so
// descriptors can carry forward-compatible extras.
const (
	ConfigMinLength   = "minLength"
	ConfigMaxLength   = "maxLength"
	ConfigMin         = "min"
	ConfigMax         = "max"
	ConfigPattern     = "pattern"
	ConfigRegex       = "regex"
	ConfigMinItems    = "minItems"
	ConfigMaxItems    = "maxItems"
	ConfigForm        = "form"
	ConfigOptions     = "options"
	ConfigDescribe    = "describe"
	ConfigVisibleWhen = "visibleWhen"
	ConfigWidget      = "widget"
)

// RuleFunc is a single validator rule: it inspects the current value and
// returns nil when the value passes.
type RuleFunc func(value any) *Failure

// Failure records one validation failure. Key identifies the rule that
// failed ("required", "min", "pattern", ...); Detail carries the
// failure-specific payload such as the violated bound.
type Failure struct {
	Key    string
	Detail any
}

// FieldDescriptor declares one field of a form.
type FieldDescriptor struct {
	Name        string         `json:"name" yaml:"name"`
	Type        FieldType      `json:"type" yaml:"type"`
	Required    bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty"`

	// Validators holds caller-supplied custom rules; they run after the
	// composed built-in rules. Not serialisable.
	Validators []RuleFunc `json:"-" yaml:"-"`
}

// FormDescriptor declares a record: an ordered field list with unique names.
type FormDescriptor struct {
	Name   string            `json:"name" yaml:"name"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// DisplayLabel returns the declared label or a humanised fallback derived
// from the field name.
func (f FieldDescriptor) DisplayLabel() string {
	if trimmed := strings.TrimSpace(f.Label); trimmed != "" {
		return trimmed
	}
	return DefaultLabeler(f.Name)
}

// ConfigString reads a string-valued config key.
func (f FieldDescriptor) ConfigString(key string) (string, bool) {
	if f.Config == nil {
		return "", false
	}
	value, ok := f.Config[key].(string)
	return value, ok
}

// ConfigInt reads an integer-valued config key, accepting the numeric types
// JSON and YAML decoders produce.
func (f FieldDescriptor) ConfigInt(key string) (int, bool) {
	if f.Config == nil {
		return 0, false
	}
	switch value := f.Config[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}

// SubForm returns the nested FormDescriptor carried by subform and group
// fields, when present.
func (f FieldDescriptor) SubForm() (FormDescriptor, bool) {
	if f.Config == nil {
		return FormDescriptor{}, false
	}
	switch value := f.Config[ConfigForm].(type) {
	case FormDescriptor:
		return value, true
	case *FormDescriptor:
		if value != nil {
			return *value, true
		}
	}
	return FormDescriptor{}, false
}

// Options returns the declared option values for select/radio style fields.
func (f FieldDescriptor) Options() []Option {
	if f.Config == nil {
		return nil
	}
	switch raw := f.Config[ConfigOptions].(type) {
	case []Option:
		return append([]Option(nil), raw...)
	case []string:
		out := make([]Option, 0, len(raw))
		for _, value := range raw {
			out = append(out, Option{Value: value, Label: value})
		}
		return out
	case []any:
		out := make([]Option, 0, len(raw))
		for _, entry := range raw {
			switch typed := entry.(type) {
			case string:
				out = append(out, Option{Value: typed, Label: typed})
			case map[string]any:
				opt := Option{}
				if v, ok := typed["value"].(string); ok {
					opt.Value = v
				}
				if l, ok := typed["label"].(string); ok {
					opt.Label = l
				}
				if opt.Label == "" {
					opt.Label = opt.Value
				}
				if opt.Value != "" {
					out = append(out, opt)
				}
			}
		}
		return out
	}
	return nil
}

// Describe resolves the item-summary describer for subform fields. The
// fallback summarises the first non-empty primitive in the item values.
func (f FieldDescriptor) Describe(item map[string]any) string {
	if f.Config != nil {
		if fn, ok := f.Config[ConfigDescribe].(func(map[string]any) string); ok {
			return fn(item)
		}
	}
	sub, ok := f.SubForm()
	if !ok {
		return ""
	}
	for _, field := range sub.Fields {
		value, present := item[field.Name]
		if !present || value == nil {
			continue
		}
		if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// Option is one selectable choice for select/radio fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field returns the descriptor with the given name, searching top-level
// fields only.
func (d FormDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

package validate

import (
	"regexp"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Compose assembles the ordered rule list for a field: required first, then
// type-intrinsic rules, then one rule per recognised constraint key, then
// the caller's custom rules. Unrecognised config keys are ignored so
// descriptors may carry forward-compatible extras.
func Compose(desc forms.FieldDescriptor, kind forms.ControlKind) []forms.RuleFunc {
	var rules []forms.RuleFunc

	if desc.Required {
		rules = append(rules, Required())
	}

	switch desc.Type {
	case forms.TypeEmail:
		rules = append(rules, Email())
	case forms.TypeNumber:
		rules = append(rules, Number())
	}

	if bound, ok := desc.ConfigInt(forms.ConfigMinLength); ok {
		rules = append(rules, MinLength(bound))
	}
	if bound, ok := desc.ConfigInt(forms.ConfigMaxLength); ok {
		rules = append(rules, MaxLength(bound))
	}
	if bound, ok := configFloat(desc, forms.ConfigMin); ok {
		rules = append(rules, Min(bound))
	}
	if bound, ok := configFloat(desc, forms.ConfigMax); ok {
		rules = append(rules, Max(bound))
	}
	if expression, ok := patternExpression(desc); ok {
		rules = append(rules, Pattern(expression))
	}

	if kind == forms.KindList {
		if bound, ok := desc.ConfigInt(forms.ConfigMinItems); ok {
			rules = append(rules, MinItems(bound))
		}
		if bound, ok := desc.ConfigInt(forms.ConfigMaxItems); ok {
			rules = append(rules, MaxItems(bound))
		}
	}

	rules = append(rules, desc.Validators...)
	return rules
}

// PatternValid reports whether the declared pattern constraint, if any,
// compiles. Used by linting; Compose itself degrades a bad pattern to a rule
// that never fails.
func PatternValid(desc forms.FieldDescriptor) bool {
	expression, ok := patternExpression(desc)
	if !ok {
		return true
	}
	_, err := regexp.Compile(expression)
	return err == nil
}

func patternExpression(desc forms.FieldDescriptor) (string, bool) {
	if expression, ok := desc.ConfigString(forms.ConfigPattern); ok && expression != "" {
		return expression, true
	}
	if expression, ok := desc.ConfigString(forms.ConfigRegex); ok && expression != "" {
		return expression, true
	}
	return "", false
}

func configFloat(desc forms.FieldDescriptor, key string) (float64, bool) {
	if desc.Config == nil {
		return 0, false
	}
	switch value := desc.Config[key].(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	default:
		return 0, false
	}
}

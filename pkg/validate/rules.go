// Package validate composes per-field validator rules from the field
// descriptor: the required flag, type-intrinsic checks, declared constraints
// and caller-supplied custom rules. Every applicable rule runs on each
// evaluation; failures accumulate instead of short-circuiting so a field can
// report several problems at once.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Failure keys produced by the built-in rules.
const (
	KeyRequired  = "required"
	KeyEmail     = "email"
	KeyNumber    = "number"
	KeyMinLength = "minLength"
	KeyMaxLength = "maxLength"
	KeyMin       = "min"
	KeyMax       = "max"
	KeyPattern   = "pattern"
	KeyMinItems  = "minItems"
	KeyMaxItems  = "maxItems"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required fails on the empty value: nil, a blank string, or an empty list.
func Required() forms.RuleFunc {
	return func(value any) *forms.Failure {
		if isEmpty(value) {
			return &forms.Failure{Key: KeyRequired, Detail: true}
		}
		return nil
	}
}

// Email checks the value looks like an address. Empty values pass; pairing
// with Required is the caller's choice.
func Email() forms.RuleFunc {
	return func(value any) *forms.Failure {
		if isEmpty(value) {
			return nil
		}
		text, ok := value.(string)
		if !ok || !emailPattern.MatchString(strings.TrimSpace(text)) {
			return &forms.Failure{Key: KeyEmail, Detail: value}
		}
		return nil
	}
}

// Number checks the value is numeric or a string that parses as a number.
// Empty values pass.
func Number() forms.RuleFunc {
	return func(value any) *forms.Failure {
		if isEmpty(value) {
			return nil
		}
		if _, ok := numeric(value); !ok {
			return &forms.Failure{Key: KeyNumber, Detail: value}
		}
		return nil
	}
}

// MinLength enforces a minimum rune count on non-empty string values.
func MinLength(bound int) forms.RuleFunc {
	return func(value any) *forms.Failure {
		text, ok := value.(string)
		if !ok || text == "" {
			return nil
		}
		if len([]rune(text)) < bound {
			return &forms.Failure{Key: KeyMinLength, Detail: bound}
		}
		return nil
	}
}

// MaxLength enforces a maximum rune count on string values.
func MaxLength(bound int) forms.RuleFunc {
	return func(value any) *forms.Failure {
		text, ok := value.(string)
		if !ok {
			return nil
		}
		if len([]rune(text)) > bound {
			return &forms.Failure{Key: KeyMaxLength, Detail: bound}
		}
		return nil
	}
}

// Min enforces a numeric lower bound. Non-numeric values pass; the Number
// rule reports those.
func Min(bound float64) forms.RuleFunc {
	return func(value any) *forms.Failure {
		n, ok := numeric(value)
		if !ok {
			return nil
		}
		if n < bound {
			return &forms.Failure{Key: KeyMin, Detail: bound}
		}
		return nil
	}
}

// Max enforces a numeric upper bound.
func Max(bound float64) forms.RuleFunc {
	return func(value any) *forms.Failure {
		n, ok := numeric(value)
		if !ok {
			return nil
		}
		if n > bound {
			return &forms.Failure{Key: KeyMax, Detail: bound}
		}
		return nil
	}
}

// Pattern enforces a regular expression on non-empty string values. An
// expression that does not compile yields a rule that never fails; the
// composer reports the bad pattern through its diagnostics instead.
func Pattern(expression string) forms.RuleFunc {
	compiled, err := regexp.Compile(expression)
	if err != nil {
		return func(any) *forms.Failure { return nil }
	}
	return func(value any) *forms.Failure {
		text, ok := value.(string)
		if !ok || text == "" {
			return nil
		}
		if !compiled.MatchString(text) {
			return &forms.Failure{Key: KeyPattern, Detail: expression}
		}
		return nil
	}
}

// MinItems enforces a minimum element count on list values.
func MinItems(bound int) forms.RuleFunc {
	return func(value any) *forms.Failure {
		if count, ok := itemCount(value); ok && count < bound {
			return &forms.Failure{Key: KeyMinItems, Detail: bound}
		}
		return nil
	}
}

// MaxItems enforces a maximum element count on list values.
func MaxItems(bound int) forms.RuleFunc {
	return func(value any) *forms.Failure {
		if count, ok := itemCount(value); ok && count > bound {
			return &forms.Failure{Key: KeyMaxItems, Detail: bound}
		}
		return nil
	}
}

// Run evaluates every rule against the value and returns all failures in
// rule order.
func Run(rules []forms.RuleFunc, value any) []forms.Failure {
	var failures []forms.Failure
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if failure := rule(value); failure != nil {
			failures = append(failures, *failure)
		}
	}
	return failures
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}

func numeric(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func itemCount(value any) (int, bool) {
	switch typed := value.(type) {
	case []any:
		return len(typed), true
	case []map[string]any:
		return len(typed), true
	case int:
		return typed, true
	default:
		return 0, false
	}
}

// DetailMessage extracts caller-provided wording from a failure detail:
// string details verbatim, or the "message" entry of a map detail. The empty
// string means the detail carries no wording.
func DetailMessage(detail any) string {
	switch typed := detail.(type) {
	case string:
		return typed
	case map[string]any:
		if message, ok := typed["message"].(string); ok {
			return message
		}
	case map[string]string:
		if message, ok := typed["message"]; ok {
			return message
		}
	}
	return ""
}

// FailureError renders a failure as an error for callers that want Go error
// plumbing, such as prompt validators.
func FailureError(failure forms.Failure, label string) error {
	if message := DetailMessage(failure.Detail); message != "" {
		return fmt.Errorf("%s", message)
	}
	return fmt.Errorf("%s: %s", label, failure.Key)
}

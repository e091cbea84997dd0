package html

import (
	"sort"
	"strings"
	"sync"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Built-in widget identifiers resolved by the registry. Each name maps to a
// control template under templates/widgets/.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetToggle   = "toggle"
)

// WidgetMatcher decides whether a widget should handle the supplied field.
type WidgetMatcher func(desc forms.FieldDescriptor) bool

type widgetRule struct {
	name     string
	priority int
	match    WidgetMatcher
	order    int
}

// WidgetRegistry selects control widgets for fields based on explicit hints
// or registered matchers. Higher priority wins; ties fall back to
// registration order.
type WidgetRegistry struct {
	mu    sync.RWMutex
	rules []widgetRule
}

// NewWidgetRegistry constructs a registry with the built-in matchers
// registered.
func NewWidgetRegistry() *WidgetRegistry {
	reg := &WidgetRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *WidgetRegistry) Register(name string, priority int, matcher WidgetMatcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, widgetRule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget set in the
// field configuration is honoured before matcher evaluation; unresolved
// fields fall back to the plain input widget.
func (r *WidgetRegistry) Resolve(desc forms.FieldDescriptor) string {
	if raw, ok := desc.ConfigString(forms.ConfigWidget); ok {
		if explicit := strings.TrimSpace(raw); explicit != "" {
			return explicit
		}
	}
	if r == nil {
		return WidgetInput
	}
	r.mu.RLock()
	rules := append([]widgetRule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(desc) {
			return entry.name
		}
	}
	return WidgetInput
}

func (r *WidgetRegistry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(desc forms.FieldDescriptor) bool {
		return desc.Type == forms.TypeCheckbox
	})

	r.Register(WidgetRadio, 80, func(desc forms.FieldDescriptor) bool {
		return desc.Type == forms.TypeRadio
	})

	r.Register(WidgetSelect, 70, func(desc forms.FieldDescriptor) bool {
		if desc.Type == forms.TypeSelect {
			return true
		}
		return len(desc.Options()) > 0
	})

	r.Register(WidgetTextarea, 60, func(desc forms.FieldDescriptor) bool {
		return desc.Type == forms.TypeTextarea
	})
}

// inputType maps a field type onto the matching HTML input type attribute.
func inputType(desc forms.FieldDescriptor) string {
	switch desc.Type {
	case forms.TypeEmail:
		return "email"
	case forms.TypeNumber:
		return "number"
	case forms.TypeDate:
		return "date"
	case forms.TypePassword:
		return "password"
	default:
		return "text"
	}
}

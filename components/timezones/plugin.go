package timezones

import (
	"fmt"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/messages"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
)

// FailureKey identifies the unknown-zone validation failure.
const FailureKey = "timezone"

// Plugin bundles the field type registration, its validation rule, and the
// HTTP catalog endpoint under one configuration.
type Plugin struct {
	opts Options
}

// New constructs a plugin with default options plus any overrides.
func New(fns ...OptionFn) *Plugin {
	return &Plugin{opts: NewOptions(fns...)}
}

// Options returns a copy of the plugin configuration.
func (p *Plugin) Options() Options {
	if p == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = p.opts })
}

// Register installs the timezone field type into the registry and its
// message wording into the message registry. Either argument may be nil when
// the caller only needs one half.
func (p *Plugin) Register(types *registry.Registry, msgs *messages.Registry) error {
	opts := p.Options()
	zones, err := opts.zoneCatalog()
	if err != nil {
		return fmt.Errorf("timezones: load catalog: %w", err)
	}

	if types != nil {
		types.Register(forms.FieldType(opts.FieldType), forms.KindSingle)
	}
	if msgs != nil {
		msgs.Register(FailureKey, func(_ any, label string) string {
			return fmt.Sprintf("%s must be a known IANA timezone", label)
		})
	}
	p.opts.Zones = zones
	return nil
}

// Rule returns the validation rule checking membership in the catalog. Empty
// values pass; required-ness stays a descriptor concern.
func (p *Plugin) Rule() forms.RuleFunc {
	opts := p.Options()
	return func(value any) *forms.Failure {
		text, ok := value.(string)
		if value == nil || (ok && strings.TrimSpace(text) == "") {
			return nil
		}
		if !ok {
			return &forms.Failure{Key: FailureKey, Detail: value}
		}
		zones, err := opts.zoneCatalog()
		if err != nil {
			return nil
		}
		for _, zone := range zones {
			if zone == text {
				return nil
			}
		}
		return &forms.Failure{Key: FailureKey, Detail: text}
	}
}

// Field builds a descriptor for a timezone picker wired to this plugin's
// validation rule.
func (p *Plugin) Field(name string, required bool) forms.FieldDescriptor {
	opts := p.Options()
	return forms.FieldDescriptor{
		Name:       name,
		Type:       forms.FieldType(opts.FieldType),
		Required:   required,
		Validators: []forms.RuleFunc{p.Rule()},
	}
}

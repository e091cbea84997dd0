// Package registry maps field type tags to the control shape and initial
// value the tree builder needs. Registration is declarative: hosts populate a
// registry once at startup and hand it to a builder, nothing self-registers.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

type entry struct {
	kind       forms.ControlKind
	initial    any
	hasInitial bool
}

// Option customises a single registration.
type Option func(*entry)

// WithInitialValue declares the value new leaves of this type are seeded
// with. Types without a declared initial value start at nil, the explicit
// "untouched" marker, so an untouched leaf is distinguishable from one the
// user cleared to "".
func WithInitialValue(value any) Option {
	return func(e *entry) {
		e.initial = value
		e.hasInitial = true
	}
}

// Registry is a mutex-guarded map from field type tag to control kind and
// initial value. A second registration for the same tag silently overwrites
// the first; later wins, so hosts can override the built-ins.
type Registry struct {
	mu      sync.RWMutex
	entries map[forms.FieldType]entry
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[forms.FieldType]entry)}
}

// NewDefault constructs a registry seeded with the built-in field types.
func NewDefault() *Registry {
	reg := New()
	reg.registerBuiltins()
	return reg
}

// Register adds or overwrites the entry for a tag. Empty tags are ignored.
func (r *Registry) Register(tag forms.FieldType, kind forms.ControlKind, options ...Option) {
	if r == nil {
		return
	}
	trimmed := forms.FieldType(strings.TrimSpace(string(tag)))
	if trimmed == "" {
		return
	}

	e := entry{kind: kind}
	for _, opt := range options {
		if opt != nil {
			opt(&e)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[trimmed] = e
}

// Resolve returns the control kind registered for a tag.
func (r *Registry) Resolve(tag forms.FieldType) (forms.ControlKind, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[tag]
	if !ok {
		return "", false
	}
	return e.kind, true
}

// InitialValue returns the declared initial value for a tag. The second
// return is false when the tag is unregistered or declares no initial value.
func (r *Registry) InitialValue(tag forms.FieldType) (any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[tag]
	if !ok || !e.hasInitial {
		return nil, false
	}
	return e.initial, true
}

// Has reports whether a tag is registered.
func (r *Registry) Has(tag forms.FieldType) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[tag]
	return ok
}

// List returns the registered tags in sorted order.
func (r *Registry) List() []forms.FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]forms.FieldType, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Clone returns an isolated copy so hosts can customise a registry without
// affecting the one they derived it from.
func (r *Registry) Clone() *Registry {
	clone := New()
	if r == nil {
		return clone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for tag, e := range r.entries {
		clone.entries[tag] = e
	}
	return clone
}

func (r *Registry) registerBuiltins() {
	singles := []forms.FieldType{
		forms.TypeText,
		forms.TypeNumber,
		forms.TypeEmail,
		forms.TypeDate,
		forms.TypePassword,
		forms.TypeTextarea,
		forms.TypeSelect,
		forms.TypeRadio,
	}
	for _, tag := range singles {
		r.Register(tag, forms.KindSingle)
	}
	r.Register(forms.TypeCheckbox, forms.KindSingle, WithInitialValue(false))
	r.Register(forms.TypeGroup, forms.KindGroup)
	r.Register(forms.TypeSubform, forms.KindList)
}

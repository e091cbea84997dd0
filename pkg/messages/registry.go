// Package messages resolves validation failures into display strings through
// an extensible registry keyed by failure key. Hosts override or extend the
// built-in wordings by registering their own producers; later registrations
// win, mirroring the field type registry.
package messages

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/validate"
)

// Producer turns a failure detail and the field's display label into a
// message string.
type Producer func(detail any, fieldLabel string) string

// Registry maps failure keys to message producers.
type Registry struct {
	mu        sync.RWMutex
	producers map[string]Producer
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{producers: make(map[string]Producer)}
}

// NewDefault constructs a registry with wordings for the built-in failure
// keys.
func NewDefault() *Registry {
	reg := New()
	reg.registerBuiltins()
	return reg
}

// Register adds or overwrites the producer for a failure key. Empty keys and
// nil producers are ignored.
func (r *Registry) Register(failureKey string, producer Producer) {
	if r == nil || producer == nil {
		return
	}
	key := strings.TrimSpace(failureKey)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.producers[key] = producer
}

// Has reports whether a producer is registered for the key.
func (r *Registry) Has(failureKey string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.producers[failureKey]
	return ok
}

// Resolve picks the message for a node's failures. The first failure (in
// recorded order) with a registered producer wins. When no producer matches,
// the first failure carrying its own wording (a string detail, or a detail
// map with a "message" entry) is used verbatim. The second return is false
// when no message could be produced; callers then render only the invalid
// flag.
func (r *Registry) Resolve(failures []forms.Failure, fieldLabel string) (string, bool) {
	if len(failures) == 0 {
		return "", false
	}

	if r != nil {
		r.mu.RLock()
		for _, failure := range failures {
			if producer, ok := r.producers[failure.Key]; ok {
				r.mu.RUnlock()
				return producer(failure.Detail, fieldLabel), true
			}
		}
		r.mu.RUnlock()
	}

	for _, failure := range failures {
		if message := validate.DetailMessage(failure.Detail); message != "" {
			return message, true
		}
	}
	return "", false
}

// Clone returns an isolated copy of the registry.
func (r *Registry) Clone() *Registry {
	clone := New()
	if r == nil {
		return clone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for key, producer := range r.producers {
		clone.producers[key] = producer
	}
	return clone
}

func (r *Registry) registerBuiltins() {
	r.Register(validate.KeyRequired, func(_ any, label string) string {
		return fmt.Sprintf("%s is required", label)
	})
	r.Register(validate.KeyEmail, func(_ any, label string) string {
		return fmt.Sprintf("%s must be a valid email address", label)
	})
	r.Register(validate.KeyNumber, func(_ any, label string) string {
		return fmt.Sprintf("%s must be a number", label)
	})
	r.Register(validate.KeyMinLength, func(detail any, label string) string {
		return fmt.Sprintf("%s must be at least %v characters", label, detail)
	})
	r.Register(validate.KeyMaxLength, func(detail any, label string) string {
		return fmt.Sprintf("%s must be at most %v characters", label, detail)
	})
	r.Register(validate.KeyMin, func(detail any, label string) string {
		return fmt.Sprintf("%s must be %v or more", label, formatBound(detail))
	})
	r.Register(validate.KeyMax, func(detail any, label string) string {
		return fmt.Sprintf("%s must be %v or less", label, formatBound(detail))
	})
	r.Register(validate.KeyPattern, func(_ any, label string) string {
		return fmt.Sprintf("%s has an invalid format", label)
	})
	r.Register(validate.KeyMinItems, func(detail any, label string) string {
		return fmt.Sprintf("%s needs at least %v entries", label, detail)
	})
	r.Register(validate.KeyMaxItems, func(detail any, label string) string {
		return fmt.Sprintf("%s allows at most %v entries", label, detail)
	})
}

func formatBound(detail any) any {
	if n, ok := detail.(float64); ok && n == float64(int64(n)) {
		return int64(n)
	}
	return detail
}

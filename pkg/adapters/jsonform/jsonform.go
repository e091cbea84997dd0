// Package jsonform serialises a form session into a JSON document a remote
// client can render: the descriptor, the current field state, and resolved
// validation messages.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Adapter renders sessions to a JSON snapshot.
type Adapter struct{}

var _ adapters.Adapter = (*Adapter)(nil)

// New constructs the JSON adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return "json"
}

func (a *Adapter) ContentType() string {
	return "application/json"
}

// Document is the serialised form snapshot.
type Document struct {
	ID          string                 `json:"id"`
	Form        forms.FormDescriptor   `json:"form"`
	Values      any                    `json:"values"`
	Fields      []FieldState           `json:"fields"`
	Hidden      []adapters.HiddenField `json:"hidden,omitempty"`
	Action      string                 `json:"action,omitempty"`
	Method      string                 `json:"method,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Valid       bool                   `json:"valid"`
	Diagnostics []control.Diagnostic   `json:"diagnostics,omitempty"`
}

// FieldState is the presentation state of one node in the tree.
type FieldState struct {
	Path      string          `json:"path"`
	ID        string          `json:"id"`
	Type      forms.FieldType `json:"type"`
	Label     string          `json:"label"`
	Required  bool            `json:"required,omitempty"`
	Hidden    bool            `json:"hidden,omitempty"`
	Touched   bool            `json:"touched,omitempty"`
	Dirty     bool            `json:"dirty,omitempty"`
	ShowError bool            `json:"showError,omitempty"`
	Message   string          `json:"message,omitempty"`
	Failures  []forms.Failure `json:"failures,omitempty"`
}

// Render serialises the session. The snapshot reflects the live state: no
// touching or validation happens as a side effect.
func (a *Adapter) Render(_ context.Context, session *control.Session, options adapters.Options) ([]byte, error) {
	if session == nil || session.Root() == nil {
		return nil, fmt.Errorf("jsonform: session has no form")
	}

	doc := Document{
		ID:          session.ID(),
		Form:        session.Descriptor(),
		Values:      session.Root().Snapshot(),
		Hidden:      adapters.SortedHiddenFields(options.HiddenFields),
		Action:      options.Action,
		Method:      options.Method,
		Title:       options.Title,
		Valid:       session.Root().TreeValid(),
		Diagnostics: session.Diagnostics(),
	}

	for _, binding := range session.Bindings() {
		doc.Fields = append(doc.Fields, FieldState{
			Path:      binding.Path,
			ID:        binding.ID,
			Type:      binding.Descriptor.Type,
			Label:     binding.Descriptor.DisplayLabel(),
			Required:  binding.Descriptor.Required,
			Hidden:    binding.Hidden,
			Touched:   binding.Node.Touched(),
			Dirty:     binding.Node.Dirty(),
			ShowError: binding.ShowError,
			Message:   binding.Message,
			Failures:  binding.Node.Failures(),
		})
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonform: serialize document: %w", err)
	}
	return payload, nil
}

// Package dynamicforms exposes the module's most common entry points from
// one import: parsing form descriptors, opening sessions over them, and the
// quick render paths. Hosts with more specific needs import the sub-packages
// directly.
package dynamicforms

import (
	"context"
	"io/fs"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/html"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/jsonform"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/jsonschema"
	"github.com/Tonio993/dynamic-forms-app/pkg/messages"
	"github.com/Tonio993/dynamic-forms-app/pkg/openapi"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility"
)

// Form describes a whole form; alias exported via the root package for
// convenience.
type Form = forms.FormDescriptor

// Field describes one field of a form.
type Field = forms.FieldDescriptor

// Failure is one validation failure emitted by a rule.
type Failure = forms.Failure

// Session is a live editing session over a form.
type Session = control.Session

// SessionOption configures a session at construction time.
type SessionOption = control.SessionOption

// Diagnostic reports a degraded-instead-of-aborted problem.
type Diagnostic = control.Diagnostic

// SubmitResult is the outcome of a submit pass.
type SubmitResult = control.SubmitResult

// RenderOptions aliases the per-request adapter inputs.
type RenderOptions = adapters.Options

// NewSession opens a session over the descriptor with default registries
// unless overridden through options.
func NewSession(descriptor Form, options ...SessionOption) *Session {
	return control.NewSession(descriptor, options...)
}

// WithRegistry overrides the field type registry a session resolves against.
func WithRegistry(reg *registry.Registry) SessionOption {
	return control.WithRegistry(reg)
}

// WithMessages overrides the error message registry.
func WithMessages(reg *messages.Registry) SessionOption {
	return control.WithMessages(reg)
}

// WithVisibility installs a visibility rule evaluator.
func WithVisibility(eval visibility.Evaluator) SessionOption {
	return control.WithVisibility(eval)
}

// ParseForm decodes a descriptor document (JSON or YAML).
func ParseForm(data []byte, source string) (Form, error) {
	return forms.ParseDocument(data, source)
}

// LoadForms walks a filesystem and decodes every descriptor file, keyed by
// form name.
func LoadForms(fsys fs.FS) (map[string]Form, error) {
	return forms.LoadFS(fsys)
}

// ImportOpenAPI loads an OpenAPI document from a path or URL and derives the
// form descriptor for the named operation's request body.
func ImportOpenAPI(ctx context.Context, source, operationID string) (Form, []openapi.Warning, error) {
	doc, err := openapi.Load(ctx, source)
	if err != nil {
		return Form{}, nil, err
	}
	return openapi.Import(ctx, doc, operationID)
}

// ImportJSONSchema derives a form descriptor from a JSON Schema document.
func ImportJSONSchema(data []byte, name string) (Form, []jsonschema.Warning, error) {
	schema, err := jsonschema.Parse(data, name)
	if err != nil {
		return Form{}, nil, err
	}
	return jsonschema.Import(schema, name)
}

// RenderHTML is the simplest path from a descriptor to markup: it opens a
// session, applies the provided values, and renders with the built-in HTML
// adapter.
func RenderHTML(ctx context.Context, descriptor Form, values map[string]any, options RenderOptions) ([]byte, error) {
	session := control.NewSession(descriptor)
	if len(values) > 0 {
		session.SetExternalValues(values)
	}
	adapter, err := html.New()
	if err != nil {
		return nil, err
	}
	return adapter.Render(ctx, session, options)
}

// RenderJSON serialises a session snapshot with the built-in JSON adapter.
func RenderJSON(ctx context.Context, session *Session, options RenderOptions) ([]byte, error) {
	return jsonform.New().Render(ctx, session, options)
}

// Package adapters defines the contract visual adapters satisfy and a named
// registry for discovering them. The engine never renders anything itself;
// an adapter walks a session's bindings and produces whatever surface it
// targets (HTML, terminal interaction, a JSON snapshot).
package adapters

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/Tonio993/dynamic-forms-app/pkg/control"
)

// Adapter converts a live form session into a byte representation.
type Adapter interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, session *control.Session, options Options) ([]byte, error)
}

// Options carries per-request rendering inputs shared across adapters.
// Adapters ignore the parts they have no use for.
type Options struct {
	// Action and Method configure the submit target for document-producing
	// adapters.
	Action string
	Method string

	// Theme selects partials, tokens and asset URLs for themable adapters.
	Theme *theme.RendererConfig

	// HiddenFields are emitted alongside the visible fields (CSRF tokens,
	// versions). See the Hidden helpers.
	HiddenFields map[string]string

	// Title overrides the descriptor name as the rendered heading.
	Title string
}

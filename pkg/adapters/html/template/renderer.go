// Package template provides the template-engine seam the HTML adapter
// renders through, plus a pongo2-backed implementation compatible with the
// github.com/goliatone/go-template engine contract.
package template

import (
	"io"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. The HTML adapter depends on this seam only, so hosts can swap in
// their own engine.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

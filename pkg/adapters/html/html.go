// Package html renders a live form session into a standalone HTML fragment.
// Markup is produced through a swappable template engine; widgets are
// resolved per field through a priority-ordered matcher registry.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	htmltemplate "github.com/Tonio993/dynamic-forms-app/pkg/adapters/html/template"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

const themeAssetStylesheet = "html.stylesheet"

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	renderer    htmltemplate.TemplateRenderer
	widgets     *WidgetRegistry
	submitLabel string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer htmltemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithWidgetRegistry replaces the default widget matcher registry.
func WithWidgetRegistry(registry *WidgetRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithSubmitLabel overrides the submit button caption.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Adapter renders sessions to HTML.
type Adapter struct {
	templates   htmltemplate.TemplateRenderer
	widgets     *WidgetRegistry
	submitLabel string
}

var _ adapters.Adapter = (*Adapter)(nil)

// New constructs the HTML adapter applying any provided options.
func New(options ...Option) (*Adapter, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		widgets:     NewWidgetRegistry(),
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := htmltemplate.New(htmltemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html adapter: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Adapter{
		templates:   renderer,
		widgets:     cfg.widgets,
		submitLabel: cfg.submitLabel,
	}, nil
}

func (a *Adapter) Name() string {
	return "html"
}

func (a *Adapter) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the session tree in declaration order and produces the full
// form markup, hidden fields and theme decoration included.
func (a *Adapter) Render(_ context.Context, session *control.Session, options adapters.Options) ([]byte, error) {
	if a == nil || a.templates == nil {
		return nil, fmt.Errorf("html adapter: template renderer is nil")
	}
	if session == nil || session.Root() == nil {
		return nil, fmt.Errorf("html adapter: session has no form")
	}

	bindings := make(map[string]control.FieldBinding)
	for _, b := range session.Bindings() {
		bindings[b.Path] = b
	}

	var blocks []string
	for _, child := range session.Root().Children() {
		block, err := a.renderNode(child, child.Name(), bindings)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	method := strings.TrimSpace(options.Method)
	if method == "" {
		method = "post"
	}
	title := strings.TrimSpace(options.Title)

	themeCtx := buildThemeContext(options.Theme)
	stylesheetURL := ""
	if resolver := themeAssetResolver(options.Theme); resolver != nil {
		stylesheetURL = strings.TrimSpace(resolver(themeAssetStylesheet))
	}

	result, err := a.templates.RenderTemplate("templates/form.html", map[string]any{
		"form_id":        session.ID(),
		"form_name":      session.Descriptor().Name,
		"title":          title,
		"action":         options.Action,
		"method":         method,
		"theme":          themeCtx,
		"stylesheet_url": stylesheetURL,
		"hidden_fields":  adapters.SortedHiddenFields(options.HiddenFields),
		"fields":         blocks,
		"submit_label":   a.submitLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("html adapter: render form: %w", err)
	}
	return []byte(result), nil
}

func (a *Adapter) renderNode(node *control.Node, path string, bindings map[string]control.FieldBinding) (string, error) {
	binding := bindings[path]
	switch node.Kind {
	case forms.KindGroup:
		nested, err := a.renderChildren(node, path, bindings)
		if err != nil {
			return "", err
		}
		result, err := a.templates.RenderTemplate("templates/group.html", map[string]any{
			"field":       a.fieldView(binding),
			"nested_html": nested,
		})
		if err != nil {
			return "", fmt.Errorf("html adapter: render group %q: %w", path, err)
		}
		return result, nil
	case forms.KindList:
		return a.renderList(node, path, binding, bindings)
	default:
		result, err := a.templates.RenderTemplate("templates/field.html", map[string]any{
			"field": a.fieldView(binding),
		})
		if err != nil {
			return "", fmt.Errorf("html adapter: render field %q: %w", path, err)
		}
		return result, nil
	}
}

func (a *Adapter) renderChildren(node *control.Node, path string, bindings map[string]control.FieldBinding) (string, error) {
	var out strings.Builder
	for _, child := range node.Children() {
		block, err := a.renderNode(child, path+"."+child.Name(), bindings)
		if err != nil {
			return "", err
		}
		out.WriteString(block)
	}
	return out.String(), nil
}

type listItemView struct {
	Path  string
	Index int
	HTML  string
}

func (a *Adapter) renderList(node *control.Node, path string, binding control.FieldBinding, bindings map[string]control.FieldBinding) (string, error) {
	view := a.fieldView(binding)
	view.MinItems, _ = binding.Descriptor.ConfigInt(forms.ConfigMinItems)
	maxItems, hasMax := binding.Descriptor.ConfigInt(forms.ConfigMaxItems)
	view.MaxItems = maxItems

	items := make([]listItemView, 0, node.Len())
	for index, item := range node.Items() {
		itemPath := fmt.Sprintf("%s.%d", path, index)
		nested, err := a.renderChildren(item, itemPath, bindings)
		if err != nil {
			return "", err
		}
		items = append(items, listItemView{Path: itemPath, Index: index, HTML: nested})
	}

	result, err := a.templates.RenderTemplate("templates/list.html", map[string]any{
		"field":      view,
		"items":      items,
		"can_add":    !hasMax || node.Len() < maxItems,
		"can_remove": node.Len() > view.MinItems,
	})
	if err != nil {
		return "", fmt.Errorf("html adapter: render list %q: %w", path, err)
	}
	return result, nil
}

type fieldView struct {
	ID          string
	Path        string
	Label       string
	Widget      string
	InputType   string
	Required    bool
	Hidden      bool
	Placeholder string
	Help        string
	Value       string
	HasValue    bool
	Checked     bool
	Options     []optionView
	ShowError   bool
	Message     string
	MinItems    int
	MaxItems    int
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

func (a *Adapter) fieldView(binding control.FieldBinding) fieldView {
	desc := binding.Descriptor
	view := fieldView{
		ID:          binding.ID,
		Path:        binding.Path,
		Label:       desc.DisplayLabel(),
		Widget:      a.widgets.Resolve(desc),
		InputType:   inputType(desc),
		Required:    desc.Required,
		Hidden:      binding.Hidden,
		Placeholder: desc.Placeholder,
		Help:        sanitizeHelpText(desc.Description),
		ShowError:   binding.ShowError,
		Message:     binding.Message,
	}

	var value any
	if binding.Node != nil {
		value = binding.Node.Value()
	}
	if value != nil {
		view.Value = fmt.Sprint(value)
		view.HasValue = view.Value != ""
	}
	if checked, ok := value.(bool); ok {
		view.Checked = checked
	}

	for _, option := range desc.Options() {
		view.Options = append(view.Options, optionView{
			Value:    option.Value,
			Label:    option.Label,
			Selected: view.HasValue && option.Value == view.Value,
		})
	}
	return view
}

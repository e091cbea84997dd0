// Package tui fills a form session interactively from the terminal. Prompts
// go through a PromptDriver so the fill loop is testable; the default driver
// is backed by survey.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
)

// Invalid input is re-prompted; after this many attempts the value is kept
// as entered and the submit report carries the failure instead.
const defaultMaxAttempts = 3

// Option configures the adapter before construction.
type Option func(*Adapter)

// WithDriver replaces the survey-backed prompt driver.
func WithDriver(driver PromptDriver) Option {
	return func(a *Adapter) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithMaxAttempts bounds how many times an invalid answer is re-prompted.
func WithMaxAttempts(attempts int) Option {
	return func(a *Adapter) {
		if attempts > 0 {
			a.maxAttempts = attempts
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(a *Adapter) {
		if format != "" {
			a.outputFormat = format
		}
	}
}

// Adapter walks a session's control tree prompting for every visible field,
// then serialises the submit outcome.
type Adapter struct {
	driver       PromptDriver
	maxAttempts  int
	outputFormat OutputFormat
}

var _ adapters.Adapter = (*Adapter)(nil)

// New constructs a TUI adapter with defaults (survey driver, JSON output).
func New(options ...Option) (*Adapter, error) {
	a := &Adapter{
		driver:       newSurveyDriver(),
		maxAttempts:  defaultMaxAttempts,
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.driver == nil {
		return nil, ErrDriverRequired
	}
	return a, nil
}

func (a *Adapter) Name() string {
	return "tui"
}

func (a *Adapter) ContentType() string {
	switch a.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// FillReport is the serialised outcome of an interactive fill.
type FillReport struct {
	Form     string                     `json:"form"`
	Valid    bool                       `json:"valid"`
	Values   map[string]any             `json:"values"`
	Messages map[string]string          `json:"messages,omitempty"`
	Failures map[string][]forms.Failure `json:"failures,omitempty"`
}

// Render prompts for every visible field in declaration order, submits the
// session, and returns the JSON report.
func (a *Adapter) Render(ctx context.Context, session *control.Session, _ adapters.Options) ([]byte, error) {
	if a == nil || a.driver == nil {
		return nil, ErrDriverRequired
	}
	if session == nil || session.Root() == nil {
		return nil, fmt.Errorf("tui: session has no form")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, child := range session.Root().Children() {
		if err := a.fillNode(ctx, session, child, child.Name()); err != nil {
			return nil, err
		}
	}

	result := session.Submit()
	report := FillReport{
		Form:     session.Descriptor().Name,
		Valid:    result.Valid,
		Values:   result.Values,
		Failures: result.Failures,
	}
	if len(result.Failures) > 0 {
		report.Messages = make(map[string]string, len(result.Failures))
		for path, fails := range result.Failures {
			label := labelForPath(session, path)
			if message, ok := session.Messages().Resolve(fails, label); ok {
				report.Messages[path] = message
			}
		}
	}

	switch a.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(report.Values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(report.Values)), nil
	default:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: serialize report: %w", err)
		}
		return payload, nil
	}
}

func (a *Adapter) fillNode(ctx context.Context, session *control.Session, node *control.Node, path string) error {
	if hiddenPath(session, path) {
		return nil
	}
	switch node.Kind {
	case forms.KindGroup:
		if err := a.driver.Info(ctx, sectionHeader(node.Descriptor.DisplayLabel())); err != nil {
			return err
		}
		for _, child := range node.Children() {
			if err := a.fillNode(ctx, session, child, path+"."+child.Name()); err != nil {
				return err
			}
		}
		return nil
	case forms.KindList:
		return a.fillList(ctx, session, node, path)
	default:
		return a.fillSingle(ctx, session, node, path)
	}
}

func (a *Adapter) fillList(ctx context.Context, session *control.Session, node *control.Node, path string) error {
	label := node.Descriptor.DisplayLabel()
	minItems, _ := node.Descriptor.ConfigInt(forms.ConfigMinItems)
	maxItems, hasMax := node.Descriptor.ConfigInt(forms.ConfigMaxItems)

	// Items synchronised from external values are edited in place first.
	for index, item := range node.Items() {
		if err := a.fillItem(ctx, session, item, fmt.Sprintf("%s.%d", path, index), label, index); err != nil {
			return err
		}
	}

	for {
		if hasMax && node.Len() >= maxItems {
			return nil
		}
		if node.Len() < minItems {
			if err := a.driver.Info(ctx, fmt.Sprintf("%s needs at least %d entries.", label, minItems)); err != nil {
				return err
			}
		} else {
			more, err := a.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add another %s entry?", strings.ToLower(label)),
			})
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}

		item, ok := node.AddItem(nil)
		if !ok {
			return nil
		}
		index := node.Len() - 1
		if err := a.fillItem(ctx, session, item, fmt.Sprintf("%s.%d", path, index), label, index); err != nil {
			return err
		}
	}
}

func (a *Adapter) fillItem(ctx context.Context, session *control.Session, item *control.Node, itemPath, label string, index int) error {
	if err := a.driver.Info(ctx, sectionHeader(fmt.Sprintf("%s #%d", label, index+1))); err != nil {
		return err
	}
	for _, child := range item.Children() {
		if err := a.fillNode(ctx, session, child, itemPath+"."+child.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) fillSingle(ctx context.Context, session *control.Session, node *control.Node, path string) error {
	label := node.Descriptor.DisplayLabel()

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		value, err := a.promptValue(ctx, node)
		if err != nil {
			return err
		}
		node.SetValue(value)
		if node.Valid() {
			return nil
		}
		message := "invalid value"
		if resolved, ok := session.Messages().Resolve(node.Failures(), label); ok {
			message = resolved
		}
		if err := a.driver.Info(ctx, "✗ "+message); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) promptValue(ctx context.Context, node *control.Node) (any, error) {
	desc := node.Descriptor
	label := desc.DisplayLabel()
	if desc.Required {
		label += " *"
	}
	help := strings.TrimSpace(desc.Description)

	if options := desc.Options(); len(options) > 0 {
		names := make([]string, len(options))
		defaultIndex := 0
		current := fmt.Sprint(node.Value())
		for i, option := range options {
			names[i] = option.Label
			if option.Value == current {
				defaultIndex = i
			}
		}
		index, err := a.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      names,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(options) {
			return nil, nil
		}
		return options[index].Value, nil
	}

	switch desc.Type {
	case forms.TypeCheckbox:
		current, _ := node.Value().(bool)
		return a.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current, Help: help})
	case forms.TypePassword:
		return a.driver.Password(ctx, InputConfig{Message: label, Help: help})
	case forms.TypeTextarea:
		return a.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: stringValue(node), Help: help})
	case forms.TypeNumber:
		raw, err := a.driver.Input(ctx, InputConfig{Message: label, Default: stringValue(node), Help: help})
		if err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil, nil
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return parsed, nil
		}
		return trimmed, nil
	default:
		raw, err := a.driver.Input(ctx, InputConfig{Message: label, Default: stringValue(node), Help: help})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		return raw, nil
	}
}

func stringValue(node *control.Node) string {
	value := node.Value()
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func sectionHeader(label string) string {
	return "── " + label + " ──"
}

// hiddenPath recomputes bindings so answers given earlier in the fill can
// reveal or hide later fields.
func hiddenPath(session *control.Session, path string) bool {
	for _, binding := range session.Bindings() {
		if binding.Path == path {
			return binding.Hidden
		}
	}
	return false
}

func labelForPath(session *control.Session, path string) string {
	for _, binding := range session.Bindings() {
		if binding.Path == path {
			return binding.Descriptor.DisplayLabel()
		}
	}
	return path
}

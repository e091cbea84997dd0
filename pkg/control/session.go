package control

import (
	"fmt"
	"sync/atomic"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/messages"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility"
)

var sessionCounter uint64

// Session ties a control tree to the host-facing lifecycle: descriptor
// changes trigger rebuilds, external value changes trigger applies guarded
// by structural change detection, and submit/reset/bindings expose the tree
// to adapters. A session is single-owner and not safe for concurrent use,
// matching the event-loop model the engine assumes.
type Session struct {
	id         string
	builder    *Builder
	messages   *messages.Registry
	visibility visibility.Evaluator

	descriptor  forms.FormDescriptor
	root        *Node
	diagnostics []Diagnostic

	lastApplied       map[string]any
	appliedSinceBuild bool
}

// SessionOption customises a session at construction.
type SessionOption func(*Session)

// WithRegistry sets the field type registry consulted by the builder.
func WithRegistry(reg *registry.Registry) SessionOption {
	return func(s *Session) {
		if reg != nil {
			s.builder = NewBuilder(reg)
		}
	}
}

// WithMessages sets the message registry used to resolve failure wordings.
func WithMessages(reg *messages.Registry) SessionOption {
	return func(s *Session) {
		if reg != nil {
			s.messages = reg
		}
	}
}

// WithVisibility sets the evaluator for visibleWhen rules. Without one,
// every field is visible.
func WithVisibility(eval visibility.Evaluator) SessionOption {
	return func(s *Session) {
		s.visibility = eval
	}
}

// WithID overrides the generated session id. Hosts rendering several form
// instances concurrently rely on distinct ids for distinct sessions.
func WithID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// NewSession builds the control tree for a descriptor and wraps it in a
// session. Build diagnostics are retained and available via Diagnostics.
func NewSession(descriptor forms.FormDescriptor, options ...SessionOption) *Session {
	s := &Session{
		id:       fmt.Sprintf("form-%d", atomic.AddUint64(&sessionCounter, 1)),
		builder:  NewBuilder(nil),
		messages: messages.NewDefault(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.descriptor = descriptor
	s.root, s.diagnostics = s.builder.Build(descriptor)
	return s
}

// ID returns the per-instance identifier.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Root returns the live tree.
func (s *Session) Root() *Node {
	if s == nil {
		return nil
	}
	return s.root
}

// Descriptor returns the descriptor the current tree was built from.
func (s *Session) Descriptor() forms.FormDescriptor {
	if s == nil {
		return forms.FormDescriptor{}
	}
	return s.descriptor
}

// Diagnostics returns build and synchronisation diagnostics accumulated so
// far.
func (s *Session) Diagnostics() []Diagnostic {
	if s == nil {
		return nil
	}
	return append([]Diagnostic(nil), s.diagnostics...)
}

// Messages returns the message registry bindings resolve against.
func (s *Session) Messages() *messages.Registry {
	if s == nil {
		return nil
	}
	return s.messages
}

// SetDescriptor swaps the descriptor. A structurally identical descriptor is
// a no-op; otherwise the previous tree is discarded wholesale, a new one is
// built, and the external-values snapshot is forgotten so the next
// SetExternalValues applies unconditionally.
func (s *Session) SetDescriptor(descriptor forms.FormDescriptor) {
	if s == nil {
		return
	}
	if structurallyEqual(descriptor, s.descriptor) {
		return
	}
	s.descriptor = descriptor
	s.root, s.diagnostics = s.builder.Build(descriptor)
	s.lastApplied = nil
	s.appliedSinceBuild = false
}

// SetExternalValues applies values to the tree when warranted: always right
// after a (re)build, and otherwise only when the object differs structurally
// from the last applied snapshot. Reference changes with equal content do
// nothing, which breaks the apply-mutate-reapply loop and keeps unrelated
// re-renders from stomping in-progress edits. It reports whether an apply
// ran.
func (s *Session) SetExternalValues(values map[string]any) bool {
	if s == nil || s.root == nil {
		return false
	}
	if s.appliedSinceBuild && structurallyEqual(values, s.lastApplied) {
		return false
	}

	diags := Apply(s.root, values)
	s.diagnostics = append(s.diagnostics, diags...)
	s.lastApplied = deepCopyValues(values)
	s.appliedSinceBuild = true
	return true
}

// SubmitResult is the outcome of an explicit submit.
type SubmitResult struct {
	// Valid reports whether every visible field passed validation.
	Valid bool
	// Values holds the flattened current value object when Valid.
	Values map[string]any
	// Failures maps dotted field paths to their recorded failures when not
	// Valid. Hidden fields are excluded.
	Failures map[string][]forms.Failure
}

// Submit marks every field as interacted with, revalidates the whole tree,
// and returns either the flattened values or the per-field failures.
// Failures on fields hidden by a visibility rule are not counted against
// the submission.
func (s *Session) Submit() SubmitResult {
	if s == nil || s.root == nil {
		return SubmitResult{}
	}

	s.root.TouchAll()
	s.root.ValidateTree()

	failures := make(map[string][]forms.Failure)
	s.collectFailures(s.root, "", failures)

	if len(failures) == 0 {
		values, _ := s.root.Snapshot().(map[string]any)
		return SubmitResult{Valid: true, Values: values}
	}
	return SubmitResult{Failures: failures}
}

// Reset restores every node to its build-time initial value and clears all
// interaction and failure state. The tree is not rebuilt; node identities
// and the external-values snapshot survive, so an unchanged values object
// will not silently re-apply afterwards.
func (s *Session) Reset() {
	if s == nil || s.root == nil {
		return
	}
	s.root.Reset()
}

func (s *Session) collectFailures(node *Node, path string, out map[string][]forms.Failure) {
	if node == nil {
		return
	}
	if path != "" && s.hidden(node.Descriptor, path) {
		return
	}
	if fails := node.Failures(); len(fails) > 0 {
		key := path
		if key == "" {
			key = node.Name()
		}
		out[key] = fails
	}
	for _, child := range node.Children() {
		s.collectFailures(child, joinPath(path, child.Name()), out)
	}
	for i, item := range node.Items() {
		s.collectFailures(item, indexPath(path, i), out)
	}
}

// hidden evaluates a field's visibleWhen rule against the current values.
// Missing rules and rules that fail to parse leave the field visible; parse
// errors additionally surface as diagnostics.
func (s *Session) hidden(desc forms.FieldDescriptor, path string) bool {
	if s.visibility == nil {
		return false
	}
	rule, ok := desc.ConfigString(forms.ConfigVisibleWhen)
	if !ok || rule == "" {
		return false
	}

	values, _ := s.root.Snapshot().(map[string]any)
	visible, err := s.visibility.Eval(path, rule, visibility.Context{Values: values})
	if err != nil {
		s.diagnostics = append(s.diagnostics, Diagnostic{
			Path:   path,
			Reason: ReasonBadVisibility,
			Detail: err.Error(),
		})
		return false
	}
	return !visible
}

// FieldBinding is what a visual adapter receives for one node: the
// descriptor, a stable identifier unique across live sessions, the node
// itself, and the resolved presentation state.
type FieldBinding struct {
	Path       string
	ID         string
	Descriptor forms.FieldDescriptor
	Node       *Node
	Hidden     bool
	ShowError  bool
	Message    string
}

// Bindings walks the tree in declaration order and produces one binding per
// node, nested fields and list items included. ShowError is set when a node
// has been interacted with and carries failures; Message is resolved through
// the session's message registry.
func (s *Session) Bindings() []FieldBinding {
	if s == nil || s.root == nil {
		return nil
	}
	var out []FieldBinding
	s.collectBindings(s.root, "", false, &out)
	return out
}

func (s *Session) collectBindings(node *Node, path string, parentHidden bool, out *[]FieldBinding) {
	for _, child := range node.Children() {
		childPath := joinPath(path, child.Name())
		hidden := parentHidden || s.hidden(child.Descriptor, childPath)
		*out = append(*out, s.binding(child, childPath, hidden))
		switch child.Kind {
		case forms.KindGroup:
			s.collectBindings(child, childPath, hidden, out)
		case forms.KindList:
			for i, item := range child.Items() {
				s.collectBindings(item, indexPath(childPath, i), hidden, out)
			}
		}
	}
}

func (s *Session) binding(node *Node, path string, hidden bool) FieldBinding {
	b := FieldBinding{
		Path:       path,
		ID:         s.id + "." + path,
		Descriptor: node.Descriptor,
		Node:       node,
		Hidden:     hidden,
	}
	if fails := node.Failures(); node.Touched() && len(fails) > 0 {
		b.ShowError = true
		if message, ok := s.messages.Resolve(fails, node.Descriptor.DisplayLabel()); ok {
			b.Message = message
		}
	}
	return b
}

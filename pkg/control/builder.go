package control

import (
	"fmt"

	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
	"github.com/Tonio993/dynamic-forms-app/pkg/validate"
)

// Builder turns FormDescriptors into live control trees using a field type
// registry to decide each field's control kind and initial value.
type Builder struct {
	registry *registry.Registry
}

// NewBuilder constructs a builder bound to the given registry. A nil
// registry falls back to the defaults.
func NewBuilder(reg *registry.Registry) *Builder {
	if reg == nil {
		reg = registry.NewDefault()
	}
	return &Builder{registry: reg}
}

// Registry returns the registry the builder consults.
func (b *Builder) Registry() *registry.Registry {
	if b == nil {
		return nil
	}
	return b.registry
}

// Build constructs the control tree for a descriptor. Fields are realised in
// declaration order; a field whose type is unregistered, whose name repeats
// an earlier sibling, or whose group/list config lacks a sub-descriptor is
// skipped with a diagnostic while the rest of the form still builds.
func (b *Builder) Build(form forms.FormDescriptor) (*Node, []Diagnostic) {
	root := &Node{
		Kind:    forms.KindGroup,
		SubForm: form,
		Descriptor: forms.FieldDescriptor{
			Name: form.Name,
			Type: forms.TypeGroup,
		},
	}
	diags := b.populateGroup(root, form, form.Name)
	root.ValidateTree()
	return root, diags
}

func (b *Builder) populateGroup(group *Node, form forms.FormDescriptor, path string) []Diagnostic {
	group.children = make(map[string]*Node, len(form.Fields))
	group.order = group.order[:0]

	var diags []Diagnostic
	for _, field := range form.Fields {
		fieldPath := joinPath(path, field.Name)
		if _, exists := group.children[field.Name]; exists {
			diags = append(diags, Diagnostic{
				Path:   fieldPath,
				Reason: ReasonDuplicateField,
			})
			continue
		}

		node, fieldDiags := b.buildField(field, fieldPath)
		diags = append(diags, fieldDiags...)
		if node == nil {
			continue
		}
		group.children[field.Name] = node
		group.order = append(group.order, field.Name)
	}
	return diags
}

func (b *Builder) buildField(field forms.FieldDescriptor, path string) (*Node, []Diagnostic) {
	kind, ok := b.registry.Resolve(field.Type)
	if !ok {
		return nil, []Diagnostic{{
			Path:   path,
			Reason: ReasonUnknownType,
			Detail: string(field.Type),
		}}
	}

	var diags []Diagnostic
	if !validate.PatternValid(field) {
		diags = append(diags, Diagnostic{Path: path, Reason: ReasonBadPattern})
	}

	node := &Node{
		Kind:       kind,
		Descriptor: field,
		rules:      validate.Compose(field, kind),
	}

	switch kind {
	case forms.KindSingle:
		initial, declared := b.registry.InitialValue(field.Type)
		if !declared {
			initial = nil
		}
		node.value = initial
		node.initial = deepCopyValue(initial)

	case forms.KindGroup:
		sub, ok := field.SubForm()
		if !ok {
			diags = append(diags, Diagnostic{Path: path, Reason: ReasonMissingSubForm})
			return nil, diags
		}
		node.SubForm = sub
		diags = append(diags, b.populateGroup(node, sub, path)...)

	case forms.KindList:
		sub, ok := field.SubForm()
		if !ok {
			diags = append(diags, Diagnostic{Path: path, Reason: ReasonMissingSubForm})
			return nil, diags
		}
		node.SubForm = sub
		node.newItem = func() *Node {
			item := &Node{
				Kind:    forms.KindGroup,
				SubForm: sub,
				Descriptor: forms.FieldDescriptor{
					Name: sub.Name,
					Type: forms.TypeGroup,
				},
			}
			// Item-level diagnostics repeat the ones already reported for
			// the sub-descriptor at build time, so they are dropped here.
			b.populateGroup(item, sub, path)
			return item
		}
	}

	return node, diags
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func indexPath(parent string, index int) string {
	return joinPath(parent, fmt.Sprintf("%d", index))
}

// Package control holds the live form tree: the value-holding nodes built
// from a descriptor, the synchroniser that folds external values onto an
// existing tree, the list operations, and the session that ties a tree to
// change detection, submit and reset.
package control

import (
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/validate"
)

// Node is the runtime counterpart of one FieldDescriptor. A single node
// holds a primitive value, a group node holds named children in declaration
// order, a list node holds an ordered sequence of group items. Nodes are
// exclusively owned by the tree that created them and are never shared.
type Node struct {
	Kind       forms.ControlKind
	Descriptor forms.FieldDescriptor

	// SubForm is the nested descriptor realised by group children and list
	// items. Unset for single nodes.
	SubForm forms.FormDescriptor

	value    any
	initial  any
	children map[string]*Node
	order    []string
	items    []*Node

	rules    []forms.RuleFunc
	failures []forms.Failure
	touched  bool
	dirty    bool

	// newItem builds a fresh list item from the sub-descriptor; set by the
	// builder on list nodes only.
	newItem func() *Node
}

// Name returns the field name this node realises.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.Descriptor.Name
}

// Value returns the primitive value of a single node. Group and list nodes
// return their Snapshot.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	if n.Kind == forms.KindSingle {
		return n.value
	}
	return n.Snapshot()
}

// SetValue writes a single node's value as a user edit: the node becomes
// dirty and touched and its rules re-run. Group and list nodes ignore
// SetValue; their content changes through children and list operations.
func (n *Node) SetValue(value any) {
	if n == nil || n.Kind != forms.KindSingle {
		return
	}
	n.value = value
	n.dirty = true
	n.touched = true
	n.Validate()
}

// setValueSilent writes a value without flipping touched/dirty. Used by the
// synchroniser and by Reset so external writes do not masquerade as user
// interaction.
func (n *Node) setValueSilent(value any) {
	if n == nil || n.Kind != forms.KindSingle {
		return
	}
	n.value = value
}

// Child returns the named child of a group node.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil || n.children == nil {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Children returns a group node's children in declaration order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		if child, ok := n.children[name]; ok {
			out = append(out, child)
		}
	}
	return out
}

// Items returns a list node's items in order. The returned slice is a copy;
// the nodes are the live ones.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	return append([]*Node(nil), n.items...)
}

// Len returns a list node's item count.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

// Touched reports whether the node has been interacted with.
func (n *Node) Touched() bool { return n != nil && n.touched }

// Dirty reports whether the node's value changed since build or reset.
func (n *Node) Dirty() bool { return n != nil && n.dirty }

// Touch marks the node as interacted with.
func (n *Node) Touch() {
	if n != nil {
		n.touched = true
	}
}

// TouchAll marks the node and every descendant as interacted with, as submit
// does so adapters render every outstanding error.
func (n *Node) TouchAll() {
	if n == nil {
		return
	}
	n.touched = true
	for _, child := range n.Children() {
		child.TouchAll()
	}
	for _, item := range n.items {
		item.TouchAll()
	}
}

// Failures returns the failures recorded by the last validation.
func (n *Node) Failures() []forms.Failure {
	if n == nil {
		return nil
	}
	return append([]forms.Failure(nil), n.failures...)
}

// Valid reports whether the node itself carries no failures. It does not
// aggregate descendants; use TreeValid for that.
func (n *Node) Valid() bool { return n == nil || len(n.failures) == 0 }

// TreeValid reports whether the node and all descendants are failure-free.
func (n *Node) TreeValid() bool {
	if n == nil {
		return true
	}
	if len(n.failures) > 0 {
		return false
	}
	for _, child := range n.Children() {
		if !child.TreeValid() {
			return false
		}
	}
	for _, item := range n.items {
		if !item.TreeValid() {
			return false
		}
	}
	return true
}

// Validate re-runs the node's own rules against its current value and
// records the failures. All rules run; failures accumulate in rule order.
func (n *Node) Validate() {
	if n == nil {
		return
	}
	n.failures = validate.Run(n.rules, n.Value())
}

// ValidateTree revalidates the whole subtree, descendants before the node
// itself so list size rules see the final item count.
func (n *Node) ValidateTree() {
	if n == nil {
		return
	}
	for _, child := range n.Children() {
		child.ValidateTree()
	}
	for _, item := range n.items {
		item.ValidateTree()
	}
	n.Validate()
}

// Snapshot returns the subtree's current values as plain data: the primitive
// for singles, a map for groups, a slice of maps for lists. The result
// shares no structure with the tree.
func (n *Node) Snapshot() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case forms.KindSingle:
		return deepCopyValue(n.value)
	case forms.KindGroup:
		out := make(map[string]any, len(n.order))
		for _, name := range n.order {
			if child, ok := n.children[name]; ok {
				out[name] = child.Snapshot()
			}
		}
		return out
	case forms.KindList:
		out := make([]any, 0, len(n.items))
		for _, item := range n.items {
			out = append(out, item.Snapshot())
		}
		return out
	}
	return nil
}

// Reset restores the subtree to its build-time state: initial values, no
// failures, no interaction flags. List nodes drop their items, matching the
// empty list a fresh build produces. The tree is not rebuilt; node
// identities survive.
func (n *Node) Reset() {
	if n == nil {
		return
	}
	switch n.Kind {
	case forms.KindSingle:
		n.value = deepCopyValue(n.initial)
	case forms.KindGroup:
		for _, child := range n.Children() {
			child.Reset()
		}
	case forms.KindList:
		n.items = nil
	}
	n.failures = nil
	n.touched = false
	n.dirty = false
}

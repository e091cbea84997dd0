package control

import "github.com/Tonio993/dynamic-forms-app/pkg/forms"

// AddItem appends a fresh item built from the list's sub-descriptor, seeded
// with the provided values. The operation is refused (nil, false) when the
// node is not a list or when adding would exceed the declared maxItems.
// Only the list's own size rules are revalidated; siblings are not touched.
func (n *Node) AddItem(values map[string]any) (*Node, bool) {
	if n == nil || n.Kind != forms.KindList || n.newItem == nil {
		return nil, false
	}
	if max, ok := n.Descriptor.ConfigInt(forms.ConfigMaxItems); ok && len(n.items) >= max {
		return nil, false
	}

	item := n.newItem()
	if len(values) > 0 {
		applyGroup(item, values, n.Name())
	}
	item.ValidateTree()
	n.items = append(n.items, item)
	n.dirty = true
	n.Validate()
	return item, true
}

// RemoveItem deletes the item at index. Refused when the index is out of
// bounds or removal would drop the list below minItems.
func (n *Node) RemoveItem(index int) bool {
	if n == nil || n.Kind != forms.KindList {
		return false
	}
	if index < 0 || index >= len(n.items) {
		return false
	}
	if min, ok := n.Descriptor.ConfigInt(forms.ConfigMinItems); ok && len(n.items)-1 < min {
		return false
	}

	n.items = append(n.items[:index], n.items[index+1:]...)
	n.dirty = true
	n.Validate()
	return true
}

// MoveItem removes the item at from and reinserts the same node at to, as a
// drag-and-drop reorder does. Equal indices are a no-op that still reports
// success. Out-of-bounds indices are refused.
func (n *Node) MoveItem(from, to int) bool {
	if n == nil || n.Kind != forms.KindList {
		return false
	}
	if from < 0 || from >= len(n.items) || to < 0 || to >= len(n.items) {
		return false
	}
	if from == to {
		return true
	}

	item := n.items[from]
	n.items = append(n.items[:from], n.items[from+1:]...)
	n.items = append(n.items[:to], append([]*Node{item}, n.items[to:]...)...)
	n.dirty = true
	n.Validate()
	return true
}

// CloneItem builds an independent copy of the item at index: a deep value
// copy rebuilt from the sub-descriptor, never an aliased pointer. Modal
// editing works on the clone so cancellation has zero effect on the live
// tree.
func (n *Node) CloneItem(index int) (*Node, bool) {
	if n == nil || n.Kind != forms.KindList || n.newItem == nil {
		return nil, false
	}
	if index < 0 || index >= len(n.items) {
		return nil, false
	}

	clone := n.newItem()
	if snapshot, ok := n.items[index].Snapshot().(map[string]any); ok {
		applyGroup(clone, snapshot, n.Name())
	}
	clone.ValidateTree()
	return clone, true
}

// ReplaceItem swaps the item at index for the provided node in one step, as
// modal confirmation does with an edited clone. Refused for out-of-bounds
// indices or a nil replacement.
func (n *Node) ReplaceItem(index int, item *Node) bool {
	if n == nil || n.Kind != forms.KindList || item == nil {
		return false
	}
	if index < 0 || index >= len(n.items) {
		return false
	}

	n.items[index] = item
	n.dirty = true
	n.Validate()
	return true
}

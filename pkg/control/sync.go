package control

import "github.com/Tonio993/dynamic-forms-app/pkg/forms"

// Apply folds an external value object onto an existing tree. Fields absent
// from values, or explicitly nil, are left untouched; there is no implicit
// clearing. A field whose external value has the wrong shape for its kind is
// left unset with a diagnostic while the rest of the object still applies.
// Whole-tree validity is recomputed exactly once, after every write.
func Apply(root *Node, values map[string]any) []Diagnostic {
	if root == nil || root.Kind != forms.KindGroup {
		return nil
	}
	diags := applyGroup(root, values, root.Name())
	root.ValidateTree()
	return diags
}

func applyGroup(group *Node, values map[string]any, path string) []Diagnostic {
	if len(values) == 0 {
		return nil
	}

	var diags []Diagnostic
	for _, name := range group.order {
		value, present := values[name]
		if !present || value == nil {
			continue
		}
		child := group.children[name]
		childPath := joinPath(path, name)

		switch child.Kind {
		case forms.KindSingle:
			child.setValueSilent(deepCopyValue(value))

		case forms.KindGroup:
			record, ok := value.(map[string]any)
			if !ok {
				diags = append(diags, Diagnostic{
					Path:   childPath,
					Reason: ReasonMalformedValue,
					Detail: "expected an object",
				})
				continue
			}
			diags = append(diags, applyGroup(child, record, childPath)...)

		case forms.KindList:
			candidates, ok := normalizeCandidates(value)
			if !ok {
				diags = append(diags, Diagnostic{
					Path:   childPath,
					Reason: ReasonMalformedValue,
					Detail: "expected an array",
				})
				continue
			}
			diags = append(diags, reconcileList(child, candidates, childPath)...)
		}
	}
	return diags
}

// normalizeCandidates turns an external array into item records. Elements
// that are not records become empty records rather than failing the apply.
func normalizeCandidates(value any) ([]map[string]any, bool) {
	var raw []any
	switch typed := value.(type) {
	case []any:
		raw = typed
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		copy(out, typed)
		return out, true
	default:
		return nil, false
	}

	out := make([]map[string]any, len(raw))
	for i, element := range raw {
		if record, ok := element.(map[string]any); ok {
			out[i] = record
		} else {
			out[i] = map[string]any{}
		}
	}
	return out, true
}

// reconcileList applies candidate item values to a list node. When the list
// is empty or its length differs from the candidate's, every item is rebuilt
// from scratch (the initial-load path). When lengths match, existing item
// nodes are kept and patched positionally only if the serialised values
// differ; rebuilding here would silently undo a drag-and-drop reorder whose
// values are unchanged.
func reconcileList(list *Node, candidates []map[string]any, path string) []Diagnostic {
	var diags []Diagnostic

	if len(list.items) == 0 || len(list.items) != len(candidates) {
		list.items = nil
		for i, candidate := range candidates {
			item := list.newItem()
			diags = append(diags, applyGroup(item, candidate, indexPath(path, i))...)
			list.items = append(list.items, item)
		}
		return diags
	}

	current, ok := canonicalJSON(list.Snapshot())
	wanted, wok := canonicalJSON(candidates)
	if ok && wok && current == wanted {
		return nil
	}

	for i, candidate := range candidates {
		diags = append(diags, applyGroup(list.items[i], candidate, indexPath(path, i))...)
	}
	return diags
}

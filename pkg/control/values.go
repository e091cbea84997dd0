package control

import "encoding/json"

// deepCopyValue clones plain JSON-shaped data (maps, slices, primitives) so
// snapshots and initial values never alias live structures.
func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopyValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopyValue(v)
		}
		return clone
	case []map[string]any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopyValue(v)
		}
		return clone
	default:
		return typed
	}
}

// deepCopyValues clones a top-level value object.
func deepCopyValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = deepCopyValue(v)
	}
	return out
}

// canonicalJSON serialises a value for structural comparison. encoding/json
// writes map keys in sorted order, so equal structures produce equal bytes
// regardless of construction order. Unserialisable values compare as never
// equal, which errs on the side of re-applying.
func canonicalJSON(value any) (string, bool) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// structurallyEqual compares two value shapes by canonical serialisation,
// not by reference.
func structurallyEqual(a, b any) bool {
	aj, aok := canonicalJSON(a)
	bj, bok := canonicalJSON(b)
	return aok && bok && aj == bj
}

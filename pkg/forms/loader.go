package forms

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a descriptor document. JSON is attempted first, then
// YAML, matching how descriptor files are typically authored. Nested forms
// under a field's config are normalised into FormDescriptor values so the
// tree builder can consume them directly.
func ParseDocument(data []byte, source string) (FormDescriptor, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FormDescriptor{}, fmt.Errorf("forms: document %s is empty", source)
	}

	var doc FormDescriptor
	if err := json.Unmarshal(data, &doc); err == nil {
		return normalizeDescriptor(doc), nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return normalizeDescriptor(doc), nil
	}
	return FormDescriptor{}, fmt.Errorf("forms: parse %s: invalid JSON or YAML", source)
}

// LoadFS walks the provided filesystem and parses every JSON/YAML descriptor
// file, keyed by the descriptor name (falling back to the file stem). When
// fsys is nil or holds no descriptor files, the returned map is empty.
func LoadFS(fsys fs.FS) (map[string]FormDescriptor, error) {
	out := make(map[string]FormDescriptor)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("forms: read %s: %w", path, err)
		}

		doc, err := ParseDocument(data, path)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(doc.Name)
		if name == "" {
			name = fileStem(path)
			doc.Name = name
		}
		if _, exists := out[name]; exists {
			return fmt.Errorf("forms: duplicate descriptor %q (file %s)", name, path)
		}
		out[name] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizeDescriptor(doc FormDescriptor) FormDescriptor {
	for i, field := range doc.Fields {
		doc.Fields[i] = normalizeField(field)
	}
	return doc
}

// normalizeField converts a config.form map (the raw decoder output) into a
// FormDescriptor value, recursively.
func normalizeField(field FieldDescriptor) FieldDescriptor {
	if field.Config == nil {
		return field
	}
	raw, ok := field.Config[ConfigForm]
	if !ok {
		return field
	}
	if _, already := raw.(FormDescriptor); already {
		return field
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return field
	}
	var sub FormDescriptor
	if err := json.Unmarshal(payload, &sub); err != nil {
		return field
	}
	field.Config[ConfigForm] = normalizeDescriptor(sub)
	return field
}

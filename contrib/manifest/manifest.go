// Package manifest reads and updates the gqlgen.yml subset graphforge
// cares about. Updates are idempotent: injecting a binding that is
// already present leaves the document unchanged, so repeated generation
// runs never grow the file.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Manifest is the configuration subset shared with schema-first tooling.
type Manifest struct {
	// SchemaFilename is the path(s) to the exported SDL document(s).
	SchemaFilename StringList `yaml:"schema,omitempty"`

	// Autobind lists packages whose types bind to schema types by name.
	Autobind []string `yaml:"autobind,omitempty"`

	// Models maps schema type names to Go model bindings.
	Models map[string]TypeMapEntry `yaml:"models,omitempty"`
}

// TypeMapEntry is the binding of a single schema type.
type TypeMapEntry struct {
	Model StringList `yaml:"model,omitempty"`
}

// StringList is a YAML value that accepts either a string or a list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler. A single element round-trips as
// a bare string.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// Load reads a manifest file. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Models: make(map[string]TypeMapEntry)}, nil
		}
		return nil, fmt.Errorf("manifest: read: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	if m.Models == nil {
		m.Models = make(map[string]TypeMapEntry)
	}
	return &m, nil
}

// Save writes the manifest, creating parent directories as needed.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("manifest: create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath records a schema path unless already present.
func (m *Manifest) AddSchemaPath(path string) {
	if !slices.Contains(m.SchemaFilename, path) {
		m.SchemaFilename = append(m.SchemaFilename, path)
	}
}

// AddAutobind records an autobind package unless already present.
func (m *Manifest) AddAutobind(pkg string) {
	if !slices.Contains(m.Autobind, pkg) {
		m.Autobind = append(m.Autobind, pkg)
	}
}

// SetModel records a model binding for a schema type unless already
// present.
func (m *Manifest) SetModel(typeName, modelPath string) {
	if m.Models == nil {
		m.Models = make(map[string]TypeMapEntry)
	}
	entry := m.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	m.Models[typeName] = entry
}

// Inject wires a generated package into the manifest: the exported SDL
// path, the autobind entry for the generated models, and the custom
// scalar bindings the generated types rely on.
func (m *Manifest) Inject(modelPackage, schemaPath string) {
	if modelPackage == "" {
		return
	}
	if schemaPath != "" {
		m.AddSchemaPath(schemaPath)
	}
	m.AddAutobind(modelPackage)
	m.SetModel("ID", "github.com/google/uuid.UUID")
	m.SetModel("DateTime", "time.Time")
	m.SetModel("JSON", modelPackage+".Map")
}

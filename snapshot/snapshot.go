// Package snapshot persists introspected schema descriptors between
// generation runs and reports what changed, so callers can regenerate
// only the affected units.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/graphforge/graphforge/compiler/introspect"
)

// ChangeKind classifies one descriptor change.
type ChangeKind uint8

// Change kinds.
const (
	Added ChangeKind = iota
	Removed
	Modified
)

// String returns the kind name.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change is one descriptor difference between two snapshots.
type Change struct {
	Name string
	Kind ChangeKind
}

// Store reads and writes descriptor snapshots at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store persisting to the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted snapshot. A missing file yields an empty
// snapshot.
func (s *Store) Load() (map[string]*introspect.SchemaDescriptor, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*introspect.SchemaDescriptor{}, nil
		}
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}
	var snap map[string]*introspect.SchemaDescriptor
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap == nil {
		snap = map[string]*introspect.SchemaDescriptor{}
	}
	return snap, nil
}

// Save writes the snapshot, creating parent directories as needed.
func (s *Store) Save(snap map[string]*introspect.SchemaDescriptor) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create directory: %w", err)
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Update diffs the given descriptors against the persisted snapshot,
// persists the new state, and returns the changes.
func (s *Store) Update(descriptors []*introspect.SchemaDescriptor) ([]Change, error) {
	old, err := s.Load()
	if err != nil {
		return nil, err
	}
	next := make(map[string]*introspect.SchemaDescriptor, len(descriptors))
	for _, sd := range descriptors {
		next[sd.Name] = sd
	}
	changes := Diff(old, next)
	if len(changes) == 0 {
		return nil, nil
	}
	if err := s.Save(next); err != nil {
		return nil, err
	}
	return changes, nil
}

// Diff compares two snapshots and returns the changes sorted by name.
func Diff(old, next map[string]*introspect.SchemaDescriptor) []Change {
	var changes []Change
	for name, sd := range next {
		prev, ok := old[name]
		switch {
		case !ok:
			changes = append(changes, Change{Name: name, Kind: Added})
		case !reflect.DeepEqual(prev, sd):
			changes = append(changes, Change{Name: name, Kind: Modified})
		}
	}
	for name := range old {
		if _, ok := next[name]; !ok {
			changes = append(changes, Change{Name: name, Kind: Removed})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })
	return changes
}

// Package graphforge derives GraphQL-layer type definitions from data-model
// schema sources and merges the generated blocks into existing project
// artifacts without destroying hand-written additions.
//
// A schema source is any value satisfying the Source capability contract.
// Sources are collected in a Registry and handed to
// compiler/introspect.Introspector, which normalizes them into descriptors
// consumed by the compiler/gen planner.
package graphforge

import (
	"fmt"
	"strings"

	"github.com/graphforge/graphforge/schema/field"
)

// Source is the capability contract a schema-definition value must satisfy
// to be introspectable. All three capabilities are required; a registered
// value lacking any of them is rejected with ErrNotASchema.
type Source interface {
	// FieldNames returns the declared field names in declaration order.
	FieldNames() []string

	// FieldType returns the native type declaration of the named field.
	// The second return value reports whether the field is declared.
	FieldType(name string) (field.TypeInfo, bool)

	// SourceName returns the backing collection name, e.g. "users".
	SourceName() string
}

// AssociationSource is the optional capability for sources that declare
// relations to other schemas. Sources without it introspect with no
// associations.
type AssociationSource interface {
	Associations() []Association
}

// Association declares a relation from one schema to another.
type Association struct {
	// Name is the relation name as declared, e.g. "posts".
	Name string
	// Target is the identity of the related schema, e.g. "blog.Post".
	Target string
	// Many reports the relation cardinality: true for collection
	// relations, false for direct references.
	Many bool
}

// Registry maps schema identities to their definition values. Values are
// stored as any and capability-checked at introspection time, so callers
// may register foreign source implementations alongside Definitions.
type Registry struct {
	names   []string
	sources map[string]any
}

// NewRegistry returns an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]any)}
}

// Register binds a schema identity to a definition value, replacing any
// previous binding. Registration order is preserved by Names.
func (r *Registry) Register(name string, src any) {
	if _, ok := r.sources[name]; !ok {
		r.names = append(r.names, name)
	}
	r.sources[name] = src
}

// Lookup returns the value registered for the given identity.
func (r *Registry) Lookup(name string) (any, bool) {
	src, ok := r.sources[name]
	return src, ok
}

// Names returns the registered identities in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Definition is the in-code schema declaration: an identity, a backing
// collection name, ordered fields, and ordered associations. It satisfies
// both Source and AssociationSource.
type Definition struct {
	name   string
	source string
	fields []*field.Descriptor
	assocs []Association
	byName map[string]*field.Descriptor
}

// NewDefinition declares a schema with the given identity (for example
// "accounts.User") and backing collection name (for example "users").
func NewDefinition(name, source string, fields ...*field.Descriptor) *Definition {
	d := &Definition{
		name:   name,
		source: source,
		fields: fields,
		byName: make(map[string]*field.Descriptor, len(fields)),
	}
	for _, f := range fields {
		d.byName[f.Name] = f
	}
	return d
}

// HasOne declares a direct (cardinality one) relation and returns the
// definition for chaining.
func (d *Definition) HasOne(name, target string) *Definition {
	d.assocs = append(d.assocs, Association{Name: name, Target: target})
	return d
}

// HasMany declares a collection (cardinality many) relation and returns
// the definition for chaining.
func (d *Definition) HasMany(name, target string) *Definition {
	d.assocs = append(d.assocs, Association{Name: name, Target: target, Many: true})
	return d
}

// Name returns the schema identity.
func (d *Definition) Name() string { return d.name }

// FieldNames implements Source.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// FieldType implements Source.
func (d *Definition) FieldType(name string) (field.TypeInfo, bool) {
	f, ok := d.byName[name]
	if !ok {
		return field.TypeInfo{}, false
	}
	return f.Info, true
}

// SourceName implements Source.
func (d *Definition) SourceName() string { return d.source }

// Associations implements AssociationSource.
func (d *Definition) Associations() []Association {
	out := make([]Association, len(d.assocs))
	copy(out, d.assocs)
	return out
}

// LastSegment returns the final dot-separated segment of a schema
// identity: "accounts.User" yields "User". Identities without a dot are
// returned unchanged.
func LastSegment(identity string) string {
	if i := strings.LastIndexByte(identity, '.'); i >= 0 {
		return identity[i+1:]
	}
	return identity
}

// Validate reports a descriptive error when the definition declares the
// same field name twice. Duplicate declarations would otherwise shadow
// each other silently at lookup time.
func (d *Definition) Validate() error {
	seen := make(map[string]struct{}, len(d.fields))
	for _, f := range d.fields {
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("graphforge: schema %q declares field %q twice", d.name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

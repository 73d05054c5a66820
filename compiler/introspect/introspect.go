// Package introspect normalizes registered schema sources into the
// descriptors consumed by the generation planner.
package introspect

import (
	"fmt"
	"strings"

	"github.com/graphforge/graphforge"
	"github.com/graphforge/graphforge/schema/field"
)

// SchemaDescriptor is the normalized, read-only result of one
// introspection call. A fresh descriptor is built on every call; schema
// sources may change between invocations and no descriptor is cached.
type SchemaDescriptor struct {
	// Name is the schema identity, e.g. "accounts.User".
	Name string
	// Source is the backing collection name normalized to singular form.
	Source string
	// Fields holds the declared fields in declaration order.
	Fields []FieldDescriptor
	// Associations holds the declared relations in declaration order.
	Associations []AssociationDescriptor
}

// FieldDescriptor is one declared field with its native type.
type FieldDescriptor struct {
	Name string
	Info field.TypeInfo
}

// AssociationDescriptor is one declared relation.
type AssociationDescriptor struct {
	Name   string
	Target string
	Many   bool
}

// Introspector resolves schema identities against a source registry and
// capability-checks the registered values.
type Introspector struct {
	registry *graphforge.Registry
}

// New returns an introspector over the given registry.
func New(registry *graphforge.Registry) *Introspector {
	return &Introspector{registry: registry}
}

// Introspect resolves the named schema and produces its descriptor.
// Unknown identities fail with graphforge.ErrNotFound; registered values
// that do not satisfy the graphforge.Source contract fail with
// graphforge.ErrNotASchema.
func (i *Introspector) Introspect(name string) (*SchemaDescriptor, error) {
	v, ok := i.registry.Lookup(name)
	if !ok {
		return nil, graphforge.NewNotFoundError(name)
	}
	src, ok := v.(graphforge.Source)
	if !ok {
		return nil, graphforge.NewNotASchemaError(name, missingCapabilities(v)...)
	}
	sd := &SchemaDescriptor{
		Name:   name,
		Source: Singularize(src.SourceName()),
	}
	for _, fname := range src.FieldNames() {
		info, ok := src.FieldType(fname)
		if !ok {
			return nil, fmt.Errorf("introspect %q: no type declaration for field %q", name, fname)
		}
		sd.Fields = append(sd.Fields, FieldDescriptor{Name: fname, Info: info})
	}
	if as, ok := v.(graphforge.AssociationSource); ok {
		for _, a := range as.Associations() {
			sd.Associations = append(sd.Associations, AssociationDescriptor{
				Name:   a.Name,
				Target: a.Target,
				Many:   a.Many,
			})
		}
	}
	return sd, nil
}

// missingCapabilities names the Source methods a value fails to provide,
// for the NotASchema diagnostic.
func missingCapabilities(v any) []string {
	var missing []string
	if _, ok := v.(interface{ FieldNames() []string }); !ok {
		missing = append(missing, "FieldNames")
	}
	if _, ok := v.(interface {
		FieldType(string) (field.TypeInfo, bool)
	}); !ok {
		missing = append(missing, "FieldType")
	}
	if _, ok := v.(interface{ SourceName() string }); !ok {
		missing = append(missing, "SourceName")
	}
	return missing
}

// Singularize normalizes a collection name by stripping exactly one
// trailing "s" character. "users" becomes "user"; "status" becomes
// "statu". The naive reduction is intentional and pinned by tests; see
// DESIGN.md before changing it.
func Singularize(source string) string {
	return strings.TrimSuffix(source, "s")
}

// FromSpecs builds a descriptor directly from name:type tokens, bypassing
// registry introspection. A bare name token defaults its type to string;
// unrecognized type tokens also degrade to string, matching the mapper's
// liveness-over-fidelity rule. The source name is the lowercased target.
func FromSpecs(target string, specs []string) (*SchemaDescriptor, error) {
	sd := &SchemaDescriptor{
		Name:   target,
		Source: strings.ToLower(graphforge.LastSegment(target)),
	}
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		name, typ := spec, "string"
		if i := strings.IndexByte(spec, ':'); i >= 0 {
			name, typ = spec[:i], spec[i+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("introspect: empty field name in spec %q", spec)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("introspect: duplicate field %q in specs", name)
		}
		seen[name] = struct{}{}
		sd.Fields = append(sd.Fields, FieldDescriptor{
			Name: name,
			Info: field.TypeInfo{Type: parseTypeToken(typ)},
		})
	}
	return sd, nil
}

// parseTypeToken maps a manual spec type token to a native tag. Unknown
// tokens fall back to string.
func parseTypeToken(tok string) field.Type {
	switch tok {
	case "id":
		return field.TypeID
	case "binary_id":
		return field.TypeBinaryID
	case "string", "text":
		return field.TypeString
	case "boolean", "bool":
		return field.TypeBool
	case "integer", "int":
		return field.TypeInt
	case "float":
		return field.TypeFloat
	case "decimal":
		return field.TypeDecimal
	case "date":
		return field.TypeDate
	case "time":
		return field.TypeTime
	case "naive_datetime":
		return field.TypeNaiveDatetime
	case "utc_datetime", "datetime":
		return field.TypeUTCDatetime
	case "array":
		return field.TypeArray
	case "map":
		return field.TypeMap
	case "json":
		return field.TypeMapAny
	default:
		return field.TypeString
	}
}

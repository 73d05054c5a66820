package gen

import "github.com/graphforge/graphforge/schema/field"

// Scalar is a target-vocabulary scalar tag.
type Scalar string

// Target scalar tags.
const (
	ScalarID            Scalar = "id"
	ScalarString        Scalar = "string"
	ScalarBoolean       Scalar = "boolean"
	ScalarInteger       Scalar = "integer"
	ScalarFloat         Scalar = "float"
	ScalarDecimal       Scalar = "decimal"
	ScalarDate          Scalar = "date"
	ScalarTime          Scalar = "time"
	ScalarNaiveDatetime Scalar = "naive_datetime"
	ScalarDatetime      Scalar = "datetime"
	ScalarJSON          Scalar = "json"
)

// TargetKind discriminates the TargetType variants.
type TargetKind uint8

// Target type kinds.
const (
	KindScalar TargetKind = iota
	KindEnum
	KindRelation
)

// TargetType is a reference into the generated type vocabulary: a scalar
// tag, a derived enum type, or a relation to another generated type.
type TargetType struct {
	Kind   TargetKind
	Scalar Scalar // set when Kind == KindScalar
	Name   string // derived type name when Kind is KindEnum or KindRelation
	Many   bool   // collection marker for KindRelation
}

// ScalarType returns a scalar target reference.
func ScalarType(s Scalar) TargetType {
	return TargetType{Kind: KindScalar, Scalar: s}
}

// EnumType returns an enum target reference with the derived name.
func EnumType(name string) TargetType {
	return TargetType{Kind: KindEnum, Name: name}
}

// RelationType returns a relation target reference. many marks a
// collection-of-reference that the renderer expands into a list type.
func RelationType(name string, many bool) TargetType {
	return TargetType{Kind: KindRelation, Name: name, Many: many}
}

// String returns the target vocabulary name of the reference.
func (t TargetType) String() string {
	switch t.Kind {
	case KindScalar:
		return string(t.Scalar)
	case KindRelation:
		if t.Many {
			return "[" + t.Name + "]"
		}
		return t.Name
	default:
		return t.Name
	}
}

// MapType maps a native field type to its target type reference. The
// mapping is total: unrecognized native tags degrade to the string
// scalar instead of failing, preserving generation liveness. Enum fields
// derive their type name from the owning schema identity and field name.
func MapType(schemaIdentity, fieldName string, info field.TypeInfo) TargetType {
	switch info.Type {
	case field.TypeID, field.TypeBinaryID:
		return ScalarType(ScalarID)
	case field.TypeString:
		return ScalarType(ScalarString)
	case field.TypeBool:
		return ScalarType(ScalarBoolean)
	case field.TypeInt:
		return ScalarType(ScalarInteger)
	case field.TypeFloat:
		return ScalarType(ScalarFloat)
	case field.TypeDecimal:
		return ScalarType(ScalarDecimal)
	case field.TypeDate:
		return ScalarType(ScalarDate)
	case field.TypeTime, field.TypeTimeUsec:
		return ScalarType(ScalarTime)
	case field.TypeNaiveDatetime, field.TypeNaiveDatetimeUsec:
		return ScalarType(ScalarNaiveDatetime)
	case field.TypeUTCDatetime, field.TypeUTCDatetimeUsec:
		return ScalarType(ScalarDatetime)
	case field.TypeArray, field.TypeMap, field.TypeMapAny:
		return ScalarType(ScalarJSON)
	case field.TypeEnum:
		return EnumType(EnumTypeName(schemaIdentity, fieldName))
	default:
		return ScalarType(ScalarString)
	}
}

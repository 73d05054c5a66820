// Package field defines the native type vocabulary of introspected schemas
// and the descriptor builders used to declare schema sources in Go.
package field

// A Type represents a native field type tag as declared by a schema source.
// The zero value is TypeInvalid.
type Type uint8

// Native type tags. The order of the scalar block is relied upon by
// Type.Valid and must not be changed.
const (
	TypeInvalid Type = iota
	TypeID
	TypeBinaryID
	TypeString
	TypeBool
	TypeInt
	TypeFloat
	TypeDecimal
	TypeDate
	TypeTime
	TypeTimeUsec
	TypeNaiveDatetime
	TypeNaiveDatetimeUsec
	TypeUTCDatetime
	TypeUTCDatetimeUsec
	TypeArray
	TypeMap
	TypeMapAny
	TypeEnum
	TypeOther
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:           "invalid",
	TypeID:                "id",
	TypeBinaryID:          "binary_id",
	TypeString:            "string",
	TypeBool:              "boolean",
	TypeInt:               "integer",
	TypeFloat:             "float",
	TypeDecimal:           "decimal",
	TypeDate:              "date",
	TypeTime:              "time",
	TypeTimeUsec:          "time_usec",
	TypeNaiveDatetime:     "naive_datetime",
	TypeNaiveDatetimeUsec: "naive_datetime_usec",
	TypeUTCDatetime:       "utc_datetime",
	TypeUTCDatetimeUsec:   "utc_datetime_usec",
	TypeArray:             "array",
	TypeMap:               "map",
	TypeMapAny:            "map_any",
	TypeEnum:              "enum",
	TypeOther:             "other",
}

// String returns the schema-source name of the type tag.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a declared native tag.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Temporal reports if the type is one of the date/time variants.
func (t Type) Temporal() bool {
	return t >= TypeDate && t <= TypeUTCDatetimeUsec
}

// TypeInfo holds the full native type declaration of a field: the tag
// plus the parameters some tags carry (enum values, temporal precision).
type TypeInfo struct {
	Type      Type
	Enums     []string // declared values, in declaration order (TypeEnum only)
	Precision int      // sub-second precision for *Usec variants, 0 otherwise
}

// String returns the type tag name.
func (t TypeInfo) String() string { return t.Type.String() }

// A Descriptor is a declared field: a name bound to a native type.
// Descriptors are built with the typed constructors below and consumed
// by schema sources; they are not mutated after construction.
type Descriptor struct {
	Name string
	Info TypeInfo
}

// ID returns a new id field descriptor.
func ID(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeID}}
}

// BinaryID returns a new binary-id field descriptor.
func BinaryID(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeBinaryID}}
}

// String returns a new string field descriptor.
func String(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeString}}
}

// Bool returns a new boolean field descriptor.
func Bool(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeBool}}
}

// Int returns a new integer field descriptor.
func Int(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeInt}}
}

// Float returns a new float field descriptor.
func Float(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeFloat}}
}

// Decimal returns a new arbitrary-precision decimal field descriptor.
func Decimal(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeDecimal}}
}

// Date returns a new calendar-date field descriptor.
func Date(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeDate}}
}

// Time returns a new time-of-day field descriptor.
func Time(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeTime}}
}

// NaiveDatetime returns a new zone-less datetime field descriptor.
func NaiveDatetime(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeNaiveDatetime}}
}

// UTCDatetime returns a new UTC datetime field descriptor.
func UTCDatetime(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeUTCDatetime}}
}

// JSONArray returns a new array-of-any field descriptor.
func JSONArray(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeArray}}
}

// JSONMap returns a new map field descriptor.
func JSONMap(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeMap}}
}

// Other returns a new structured/opaque field descriptor.
func Other(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeOther}}
}

// Enum returns a new enum field descriptor. Declare the members with
// Values; their order is preserved all the way to the generated output.
func Enum(name string) *Descriptor {
	return &Descriptor{Name: name, Info: TypeInfo{Type: TypeEnum}}
}

// Values sets the declared enum values and returns the descriptor.
func (d *Descriptor) Values(values ...string) *Descriptor {
	d.Info.Enums = values
	return d
}

// WithPrecision sets the sub-second precision on a temporal descriptor
// and upgrades the tag to its precision-carrying variant.
func (d *Descriptor) WithPrecision(p int) *Descriptor {
	switch d.Info.Type {
	case TypeTime:
		d.Info.Type = TypeTimeUsec
	case TypeNaiveDatetime:
		d.Info.Type = TypeNaiveDatetimeUsec
	case TypeUTCDatetime:
		d.Info.Type = TypeUTCDatetimeUsec
	}
	d.Info.Precision = p
	return d
}

package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphforge/graphforge/schema/field"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  field.Type
		name string
	}{
		{field.TypeID, "id"},
		{field.TypeBinaryID, "binary_id"},
		{field.TypeString, "string"},
		{field.TypeBool, "boolean"},
		{field.TypeInt, "integer"},
		{field.TypeFloat, "float"},
		{field.TypeDecimal, "decimal"},
		{field.TypeDate, "date"},
		{field.TypeTime, "time"},
		{field.TypeNaiveDatetime, "naive_datetime"},
		{field.TypeUTCDatetime, "utc_datetime"},
		{field.TypeArray, "array"},
		{field.TypeMap, "map"},
		{field.TypeMapAny, "map_any"},
		{field.TypeEnum, "enum"},
		{field.TypeOther, "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.True(t, tt.typ.Valid())
		})
	}
	assert.Equal(t, "invalid", field.TypeInvalid.String())
	assert.False(t, field.TypeInvalid.Valid())
	assert.Equal(t, "invalid", field.Type(200).String())
}

func TestTemporal(t *testing.T) {
	assert.True(t, field.TypeDate.Temporal())
	assert.True(t, field.TypeUTCDatetimeUsec.Temporal())
	assert.False(t, field.TypeString.Temporal())
	assert.False(t, field.TypeEnum.Temporal())
}

func TestDescriptors(t *testing.T) {
	t.Run("scalar constructors", func(t *testing.T) {
		fd := field.String("email")
		assert.Equal(t, "email", fd.Name)
		assert.Equal(t, field.TypeString, fd.Info.Type)

		assert.Equal(t, field.TypeBool, field.Bool("active").Info.Type)
		assert.Equal(t, field.TypeDecimal, field.Decimal("price").Info.Type)
		assert.Equal(t, field.TypeBinaryID, field.BinaryID("id").Info.Type)
	})

	t.Run("enum preserves declaration order", func(t *testing.T) {
		fd := field.Enum("status").Values("active", "inactive", "pending")
		assert.Equal(t, field.TypeEnum, fd.Info.Type)
		assert.Equal(t, []string{"active", "inactive", "pending"}, fd.Info.Enums)
	})

	t.Run("precision upgrades the temporal tag", func(t *testing.T) {
		fd := field.UTCDatetime("inserted_at").WithPrecision(6)
		assert.Equal(t, field.TypeUTCDatetimeUsec, fd.Info.Type)
		assert.Equal(t, 6, fd.Info.Precision)

		fd = field.Time("opens_at").WithPrecision(3)
		assert.Equal(t, field.TypeTimeUsec, fd.Info.Type)

		fd = field.NaiveDatetime("seen_at").WithPrecision(6)
		assert.Equal(t, field.TypeNaiveDatetimeUsec, fd.Info.Type)
	})
}

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/schema/field"
)

func enumDescriptor() *introspect.SchemaDescriptor {
	return &introspect.SchemaDescriptor{
		Name:   "accounts.User",
		Source: "user",
		Fields: []introspect.FieldDescriptor{
			{Name: "id", Info: field.TypeInfo{Type: field.TypeID}},
			{Name: "status", Info: field.TypeInfo{Type: field.TypeEnum, Enums: []string{"active", "inactive", "pending"}}},
			{Name: "role", Info: field.TypeInfo{Type: field.TypeEnum, Enums: []string{"admin", "member"}}},
		},
	}
}

func TestPlanEnums(t *testing.T) {
	t.Run("derived name and declaration-ordered values", func(t *testing.T) {
		plan, err := NewPlan(NewRequest("user", enumDescriptor(), KindObject))
		require.NoError(t, err)
		require.Len(t, plan.Enums, 2)
		assert.Equal(t, EnumDef{Name: "user_status", Values: []string{"active", "inactive", "pending"}}, plan.Enums[0])
		assert.Equal(t, EnumDef{Name: "user_role", Values: []string{"admin", "member"}}, plan.Enums[1])
	})

	t.Run("enum dropped with its filtered owner", func(t *testing.T) {
		plan, err := NewPlan(NewRequest("user", enumDescriptor(), KindObject, Except("role")))
		require.NoError(t, err)
		require.Len(t, plan.Enums, 1)
		assert.Equal(t, "user_status", plan.Enums[0].Name)
	})

	t.Run("enum dropped with its overridden owner", func(t *testing.T) {
		plan, err := NewPlan(NewRequest("user", enumDescriptor(), KindObject,
			WithCustomBlock(`graph.Field("status", graph.String)`)))
		require.NoError(t, err)
		require.Len(t, plan.Enums, 1)
		assert.Equal(t, "user_role", plan.Enums[0].Name)
	})
}

func TestPlanMetadata(t *testing.T) {
	plan, err := NewPlan(NewRequest("user", enumDescriptor(), KindObject))
	require.NoError(t, err)
	assert.Equal(t, "user", plan.Target)
	assert.Equal(t, "accounts.User", plan.Schema)
	assert.Equal(t, "user", plan.Source)
	assert.Equal(t, KindObject, plan.Kind)
}

func TestPlanFieldTypes(t *testing.T) {
	plan, err := NewPlan(NewRequest("user", enumDescriptor(), KindObject))
	require.NoError(t, err)
	assert.Equal(t, ScalarType(ScalarID), plan.Fields[0].Type)
	assert.Equal(t, EnumType("user_status"), plan.Fields[1].Type)
}

package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/schema/field"
)

func userDescriptor() *introspect.SchemaDescriptor {
	return &introspect.SchemaDescriptor{
		Name:   "accounts.User",
		Source: "user",
		Fields: []introspect.FieldDescriptor{
			{Name: "id", Info: field.TypeInfo{Type: field.TypeID}},
			{Name: "name", Info: field.TypeInfo{Type: field.TypeString}},
			{Name: "email", Info: field.TypeInfo{Type: field.TypeString}},
			{Name: "age", Info: field.TypeInfo{Type: field.TypeInt}},
		},
		Associations: []introspect.AssociationDescriptor{
			{Name: "posts", Target: "blog.Post", Many: true},
			{Name: "profile", Target: "accounts.Profile"},
		},
	}
}

func fieldNames(fields []PlannedField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func TestResolveExcept(t *testing.T) {
	// Scenario: except drops the named field, everything else keeps
	// declaration order and stays nullable.
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindObject,
		Except("age"), WithoutAssociations()))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email"}, fieldNames(plan.Fields))
	for _, f := range plan.Fields {
		assert.False(t, f.NonNull, f.Name)
	}
}

func TestResolveOnly(t *testing.T) {
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindObject,
		Only("email", "id"), WithoutAssociations()))
	require.NoError(t, err)
	// only is a membership filter; declaration order still rules.
	assert.Equal(t, []string{"id", "email"}, fieldNames(plan.Fields))
}

func TestResolveConflictingFilter(t *testing.T) {
	tests := []struct {
		name string
		opts []RequestOption
	}{
		{"disjoint sets", []RequestOption{Only("id"), Except("age")}},
		{"overlapping sets", []RequestOption{Only("id", "name"), Except("name")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(NewRequest("user", userDescriptor(), KindObject, tt.opts...))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConflictingFilter))
			assert.True(t, IsConflictingFilter(err))
		})
	}

	t.Run("empty except does not conflict", func(t *testing.T) {
		_, err := NewPlan(NewRequest("user", userDescriptor(), KindObject, Only("id")))
		assert.NoError(t, err)
	})
}

func TestResolveNullablePrecedence(t *testing.T) {
	// Scenario: nonNull=[id,name], nullable=[id] resolves the non-null
	// set to exactly {name}.
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindObject,
		NonNull("id", "name"), Nullable("id"), WithoutAssociations()))
	require.NoError(t, err)

	got := make(map[string]bool)
	for _, f := range plan.Fields {
		got[f.Name] = f.NonNull
	}
	assert.False(t, got["id"])
	assert.True(t, got["name"])
	assert.False(t, got["email"])
	assert.False(t, got["age"])
}

func TestResolveInputErasesNullability(t *testing.T) {
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindInput,
		NonNull("id", "name", "email", "age")))
	require.NoError(t, err)
	for _, f := range plan.Fields {
		assert.False(t, f.NonNull, f.Name)
	}
}

func TestResolveInputExcludesAssociations(t *testing.T) {
	// Hard override: the input kind drops associations even when the
	// request asks for them.
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindInput))
	require.NoError(t, err)
	assert.Empty(t, plan.Associations)
}

func TestResolveOverridePrecedence(t *testing.T) {
	block := "\ts.Object(\"user\",\n\t\tgraph.Field(\"email\", graph.String),\n\t)\n"
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindObject,
		Only("id", "email"), WithCustomBlock(block), WithoutAssociations()))
	require.NoError(t, err)
	// The hand-written email field wins even though it is in only.
	assert.Equal(t, []string{"id"}, fieldNames(plan.Fields))
	assert.Equal(t, block, plan.CustomBlock)
}

func TestResolveAssociations(t *testing.T) {
	plan, err := NewPlan(NewRequest("user", userDescriptor(), KindObject))
	require.NoError(t, err)

	t.Run("appended after scalar fields in declaration order", func(t *testing.T) {
		require.Len(t, plan.Associations, 2)
		assert.Equal(t, "posts", plan.Associations[0].Name)
		assert.Equal(t, "profile", plan.Associations[1].Name)
	})

	t.Run("many yields a collection of the derived name", func(t *testing.T) {
		assert.Equal(t, RelationType("post", true), plan.Associations[0].Type)
		assert.Equal(t, "[post]", plan.Associations[0].Type.String())
		assert.Equal(t, RelationType("profile", false), plan.Associations[1].Type)
	})

	t.Run("associations never non-null", func(t *testing.T) {
		for _, a := range plan.Associations {
			assert.Equal(t, KindRelation, a.Type.Kind)
		}
	})

	t.Run("excluded on request", func(t *testing.T) {
		p, err := NewPlan(NewRequest("user", userDescriptor(), KindObject, WithoutAssociations()))
		require.NoError(t, err)
		assert.Empty(t, p.Associations)
	})
}

func TestExtractOverrides(t *testing.T) {
	block := `
	s.Object("user",
		graph.Field("email", graph.String, graph.NonNull),
		graph.InputField("secret", graph.String),
	)
`
	assert.Equal(t, []string{"email", "secret"}, ExtractOverrides(block))
	assert.Empty(t, ExtractOverrides("nothing here"))
}

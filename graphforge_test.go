package graphforge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/graphforge"
	"github.com/graphforge/graphforge/schema/field"
)

func TestRegistry(t *testing.T) {
	r := graphforge.NewRegistry()
	r.Register("accounts.User", graphforge.NewDefinition("accounts.User", "users"))
	r.Register("blog.Post", graphforge.NewDefinition("blog.Post", "posts"))

	t.Run("lookup", func(t *testing.T) {
		src, ok := r.Lookup("accounts.User")
		require.True(t, ok)
		assert.NotNil(t, src)

		_, ok = r.Lookup("missing.Thing")
		assert.False(t, ok)
	})

	t.Run("names keep registration order", func(t *testing.T) {
		assert.Equal(t, []string{"accounts.User", "blog.Post"}, r.Names())
	})

	t.Run("re-register replaces without duplicating", func(t *testing.T) {
		r.Register("accounts.User", graphforge.NewDefinition("accounts.User", "accounts"))
		assert.Equal(t, []string{"accounts.User", "blog.Post"}, r.Names())
		src, _ := r.Lookup("accounts.User")
		assert.Equal(t, "accounts", src.(graphforge.Source).SourceName())
	})
}

func TestDefinition(t *testing.T) {
	def := graphforge.NewDefinition("accounts.User", "users",
		field.ID("id"),
		field.String("name"),
		field.Enum("status").Values("active", "inactive"),
	).HasMany("posts", "blog.Post").HasOne("profile", "accounts.Profile")

	t.Run("field names in declaration order", func(t *testing.T) {
		assert.Equal(t, []string{"id", "name", "status"}, def.FieldNames())
	})

	t.Run("field type lookup", func(t *testing.T) {
		info, ok := def.FieldType("status")
		require.True(t, ok)
		assert.Equal(t, field.TypeEnum, info.Type)
		assert.Equal(t, []string{"active", "inactive"}, info.Enums)

		_, ok = def.FieldType("nope")
		assert.False(t, ok)
	})

	t.Run("source name", func(t *testing.T) {
		assert.Equal(t, "users", def.SourceName())
	})

	t.Run("associations in declaration order", func(t *testing.T) {
		assocs := def.Associations()
		require.Len(t, assocs, 2)
		assert.Equal(t, graphforge.Association{Name: "posts", Target: "blog.Post", Many: true}, assocs[0])
		assert.Equal(t, graphforge.Association{Name: "profile", Target: "accounts.Profile"}, assocs[1])
	})

	t.Run("validate rejects duplicate fields", func(t *testing.T) {
		dup := graphforge.NewDefinition("x.Y", "ys", field.String("a"), field.Int("a"))
		assert.Error(t, dup.Validate())
		assert.NoError(t, def.Validate())
	})
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "User", graphforge.LastSegment("accounts.User"))
	assert.Equal(t, "User", graphforge.LastSegment("my_app.accounts.User"))
	assert.Equal(t, "User", graphforge.LastSegment("User"))
}

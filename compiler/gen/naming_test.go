package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct{ in, out string }{
		{"User", "user"},
		{"UserToken", "user_token"},
		{"HTTPLog", "http_log"},
		{"APIKey", "api_key"},
		{"already_snake", "already_snake"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, snake(tt.in), tt.in)
	}
}

func TestPascalCamel(t *testing.T) {
	assert.Equal(t, "UserToken", pascal("user_token"))
	assert.Equal(t, "userToken", camel("user_token"))
	assert.Equal(t, "User", pascal("user"))
	assert.Equal(t, "", pascal(""))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "users", plural("user"))
	assert.Equal(t, "categories", plural("category"))
	assert.Equal(t, "statuses", plural("status"))
}

func TestEnumTypeName(t *testing.T) {
	// Determinism: same inputs always derive the same name.
	for i := 0; i < 3; i++ {
		assert.Equal(t, "user_status", EnumTypeName("accounts.User", "status"))
	}
	assert.Equal(t, "user_token_kind", EnumTypeName("auth.UserToken", "kind"))
	assert.Equal(t, "post_visibility", EnumTypeName("Post", "visibility"))
}

func TestRelationTypeName(t *testing.T) {
	assert.Equal(t, "post", RelationTypeName("blog.Post"))
	assert.Equal(t, "user_token", RelationTypeName("auth.UserToken"))
}

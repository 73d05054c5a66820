package graphforge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("accounts.User")

	assert.Equal(t, `graphforge: schema "accounts.User" not found`, err.Error())
	assert.Equal(t, "accounts.User", err.Name())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrNotASchema))

	wrapped := fmt.Errorf("introspect: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestNotASchemaError(t *testing.T) {
	t.Run("with missing capabilities", func(t *testing.T) {
		err := NewNotASchemaError("accounts.Token", "FieldNames", "SourceName")
		assert.Equal(t, `graphforge: "accounts.Token" is not a schema (missing FieldNames, SourceName)`, err.Error())
		assert.Equal(t, []string{"FieldNames", "SourceName"}, err.Missing())
		assert.True(t, errors.Is(err, ErrNotASchema))
	})

	t.Run("without missing capabilities", func(t *testing.T) {
		err := NewNotASchemaError("accounts.Token")
		assert.Equal(t, `graphforge: "accounts.Token" is not a schema`, err.Error())
	})

	t.Run("wrapped detection", func(t *testing.T) {
		wrapped := fmt.Errorf("introspect: %w", NewNotASchemaError("x"))
		assert.True(t, IsNotASchema(wrapped))
		assert.False(t, IsNotFound(wrapped))
	})
}

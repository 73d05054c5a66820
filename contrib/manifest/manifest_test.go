package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "forge.yml"))
	require.NoError(t, err)
	assert.Empty(t, m.SchemaFilename)
	assert.NotNil(t, m.Models)
}

func TestLoadScalarAndListForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yml")
	doc := `
schema: gql/schema.graphql
autobind:
  - example.com/app/gql
models:
  ID:
    model: github.com/google/uuid.UUID
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"gql/schema.graphql"}, m.SchemaFilename)
	assert.Equal(t, []string{"example.com/app/gql"}, m.Autobind)
	assert.Equal(t, StringList{"github.com/google/uuid.UUID"}, m.Models["ID"].Model)
}

func TestInjectIsIdempotent(t *testing.T) {
	m := &Manifest{Models: make(map[string]TypeMapEntry)}
	m.Inject("example.com/app/gql", "gql/schema.graphql")
	m.Inject("example.com/app/gql", "gql/schema.graphql")

	assert.Equal(t, StringList{"gql/schema.graphql"}, m.SchemaFilename)
	assert.Equal(t, []string{"example.com/app/gql"}, m.Autobind)
	assert.Equal(t, StringList{"github.com/google/uuid.UUID"}, m.Models["ID"].Model)
	assert.Len(t, m.Models["DateTime"].Model, 1)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forge.yml")
	m := &Manifest{Models: make(map[string]TypeMapEntry)}
	m.Inject("example.com/app/gql", "gql/schema.graphql")
	require.NoError(t, Save(path, m))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.SchemaFilename, got.SchemaFilename)
	assert.Equal(t, m.Autobind, got.Autobind)
	assert.Equal(t, m.Models["JSON"], got.Models["JSON"])
}

func TestSaveIsStableAcrossInjections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yml")
	m := &Manifest{Models: make(map[string]TypeMapEntry)}
	m.Inject("example.com/app/gql", "gql/schema.graphql")
	require.NoError(t, Save(path, m))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	m, err = Load(path)
	require.NoError(t, err)
	m.Inject("example.com/app/gql", "gql/schema.graphql")
	require.NoError(t, Save(path, m))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestInjectWithoutPackageIsNoop(t *testing.T) {
	m := &Manifest{}
	m.Inject("", "gql/schema.graphql")
	assert.Empty(t, m.SchemaFilename)
	assert.Nil(t, m.Models)
}

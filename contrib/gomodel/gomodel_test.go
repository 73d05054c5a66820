package gomodel

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/graphforge/compiler/gen"
	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/schema/field"
)

func articlePlan(t *testing.T, kind gen.Kind, opts ...gen.RequestOption) *gen.Plan {
	t.Helper()
	sd := &introspect.SchemaDescriptor{
		Name:   "cms.Article",
		Source: "article",
		Fields: []introspect.FieldDescriptor{
			{Name: "id", Info: field.TypeInfo{Type: field.TypeID}},
			{Name: "title", Info: field.TypeInfo{Type: field.TypeString}},
			{Name: "word_count", Info: field.TypeInfo{Type: field.TypeInt}},
			{Name: "state", Info: field.TypeInfo{Type: field.TypeEnum, Enums: []string{"draft", "published"}}},
			{Name: "published_at", Info: field.TypeInfo{Type: field.TypeUTCDatetime}},
			{Name: "metadata", Info: field.TypeInfo{Type: field.TypeMapAny}},
		},
		Associations: []introspect.AssociationDescriptor{
			{Name: "comments", Target: "cms.Comment", Many: true},
			{Name: "author", Target: "accounts.User"},
		},
	}
	plan, err := gen.NewPlan(gen.NewRequest("article", sd, kind, opts...))
	require.NoError(t, err)
	return plan
}

func TestRenderModel(t *testing.T) {
	out, err := NewEmitter("gql").Render(articlePlan(t, gen.KindObject, gen.NonNull("id", "title")))
	require.NoError(t, err)

	assert.Contains(t, out, "package gql")
	assert.Contains(t, out, "type Article struct {")
	assert.Contains(t, out, "uuid.UUID")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "WordCount")
	assert.Contains(t, out, "*int")
	assert.Contains(t, out, "*time.Time")
	assert.Contains(t, out, "map[string]any")
	assert.Contains(t, out, "[]*Comment")
	assert.Contains(t, out, "*User")
}

func TestRenderEnums(t *testing.T) {
	out, err := NewEmitter("gql").Render(articlePlan(t, gen.KindObject))
	require.NoError(t, err)

	assert.Contains(t, out, "type ArticleState string")
	assert.Contains(t, out, "ArticleStateDraft")
	assert.Contains(t, out, `ArticleState = "published"`)
	assert.Contains(t, out, "func (v ArticleState) Valid() bool")
}

func TestRenderSkipsInputPlans(t *testing.T) {
	out, err := NewEmitter("gql").Render(articlePlan(t, gen.KindInput))
	require.NoError(t, err)
	assert.NotContains(t, out, "type Article struct")
}

func TestRenderedSourceParses(t *testing.T) {
	out, err := NewEmitter("gql").Render(articlePlan(t, gen.KindObject, gen.NonNull("id")))
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "models.go", out, 0)
	require.NoError(t, err)
}

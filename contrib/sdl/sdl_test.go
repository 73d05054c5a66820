package sdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/graphforge/compiler/gen"
	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/schema/field"
)

func articleDescriptor() *introspect.SchemaDescriptor {
	return &introspect.SchemaDescriptor{
		Name:   "cms.Article",
		Source: "article",
		Fields: []introspect.FieldDescriptor{
			{Name: "id", Info: field.TypeInfo{Type: field.TypeID}},
			{Name: "title", Info: field.TypeInfo{Type: field.TypeString}},
			{Name: "state", Info: field.TypeInfo{Type: field.TypeEnum, Enums: []string{"draft", "published"}}},
			{Name: "published_at", Info: field.TypeInfo{Type: field.TypeUTCDatetime}},
		},
		Associations: []introspect.AssociationDescriptor{
			{Name: "comments", Target: "cms.Comment", Many: true},
		},
	}
}

func articlePlan(t *testing.T, kind gen.Kind, opts ...gen.RequestOption) *gen.Plan {
	t.Helper()
	plan, err := gen.NewPlan(gen.NewRequest("article", articleDescriptor(), kind, opts...))
	require.NoError(t, err)
	return plan
}

func TestExportObject(t *testing.T) {
	e := NewExporter()
	e.AddPlan(articlePlan(t, gen.KindObject, gen.NonNull("id", "title")))
	out := e.String()

	assert.Contains(t, out, "type Article {")
	assert.Contains(t, out, "id: ID!")
	assert.Contains(t, out, "title: String!")
	assert.Contains(t, out, "state: ArticleState")
	assert.Contains(t, out, "publishedAt: DateTime")
	assert.Contains(t, out, "comments: [Comment]")
	assert.Contains(t, out, "enum ArticleState {")
	assert.Contains(t, out, "DRAFT")
	assert.Contains(t, out, "PUBLISHED")
}

func TestExportInput(t *testing.T) {
	e := NewExporter()
	e.AddPlan(articlePlan(t, gen.KindInput, gen.NonNull("title")))
	out := e.String()

	assert.Contains(t, out, "input ArticleInput {")
	assert.NotContains(t, out, "comments", "input types carry no associations")
	assert.NotContains(t, out, "title: String!", "input types carry no non-null markers")
}

func TestExportDeclaresCustomScalarsOnce(t *testing.T) {
	e := NewExporter()
	e.AddPlan(articlePlan(t, gen.KindObject))
	e.AddPlan(articlePlan(t, gen.KindInput))
	out := e.String()

	assert.Equal(t, 1, strings.Count(out, "scalar DateTime"))
	assert.NotContains(t, out, "scalar String")
	assert.NotContains(t, out, "scalar ID")
}

func TestExportRoots(t *testing.T) {
	e := NewExporter()
	plan := articlePlan(t, gen.KindObject)
	e.AddPlan(plan)
	e.AddRoots(plan)
	out := e.String()

	assert.Contains(t, out, "extend type Query {")
	assert.Contains(t, out, "article(id: ID!): Article")
	assert.Contains(t, out, "articles: [Article]")
	assert.Contains(t, out, "extend type Mutation {")
	assert.Contains(t, out, "createArticle(input: ArticleInput): Article")
	assert.Contains(t, out, "deleteArticle(id: ID!): Article")
}

func TestExportedDocumentParses(t *testing.T) {
	e := NewExporter()
	plan := articlePlan(t, gen.KindObject)
	e.AddPlan(plan)
	e.AddPlan(articlePlan(t, gen.KindInput))
	e.AddRoots(plan)

	require.NoError(t, Check(e.String()))
}

func TestCheckRejectsBrokenDocuments(t *testing.T) {
	assert.Error(t, Check("type Article {"))
	assert.NoError(t, Check("type Article { id: ID! }"))
}


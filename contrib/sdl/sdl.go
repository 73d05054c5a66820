// Package sdl exports generation plans as a GraphQL schema definition
// language document. The export is a read-only projection: artifacts are
// still generated and merged as Go registrations, the SDL document serves
// schema-first tooling and review.
package sdl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/graphforge/graphforge/compiler/gen"
)

var rules = inflect.NewDefaultRuleset()

// Builtin SDL scalar names; everything else gets a scalar declaration.
var builtinScalars = map[string]bool{
	"ID": true, "String": true, "Boolean": true, "Int": true, "Float": true,
}

// scalarNames maps target scalars to their SDL spelling.
var scalarNames = map[gen.Scalar]string{
	gen.ScalarID:            "ID",
	gen.ScalarString:        "String",
	gen.ScalarBoolean:       "Boolean",
	gen.ScalarInteger:       "Int",
	gen.ScalarFloat:         "Float",
	gen.ScalarDecimal:       "Decimal",
	gen.ScalarDate:          "Date",
	gen.ScalarTime:          "Time",
	gen.ScalarNaiveDatetime: "NaiveDateTime",
	gen.ScalarDatetime:      "DateTime",
	gen.ScalarJSON:          "JSON",
}

// Exporter accumulates plans into one schema document.
type Exporter struct {
	doc     *ast.SchemaDocument
	scalars []string
	seen    map[string]bool
}

// NewExporter returns an empty exporter.
func NewExporter() *Exporter {
	return &Exporter{
		doc:  &ast.SchemaDocument{},
		seen: make(map[string]bool),
	}
}

// AddPlan appends the type definitions of one plan: the object or input
// type, its enums, and declarations for any custom scalars it uses.
func (e *Exporter) AddPlan(p *gen.Plan) {
	def := &ast.Definition{
		Kind: ast.Object,
		Name: TypeName(p),
	}
	if p.Kind == gen.KindInput {
		def.Kind = ast.InputObject
	}
	for _, f := range p.Fields {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: fieldName(f.Name),
			Type: e.fieldType(f.Type, f.NonNull),
		})
	}
	for _, a := range p.Associations {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: fieldName(a.Name),
			Type: e.fieldType(a.Type, false),
		})
	}
	e.doc.Definitions = append(e.doc.Definitions, def)
	for _, enum := range p.Enums {
		e.doc.Definitions = append(e.doc.Definitions, enumDefinition(enum))
	}
}

// AddRoots appends Query and Mutation extensions carrying the root fields
// of an object plan, mirroring the generated queries artifact.
func (e *Exporter) AddRoots(p *gen.Plan) {
	if p.Kind != gen.KindObject {
		return
	}
	typ := TypeName(p)
	input := rules.Camelize(p.Target) + "Input"
	idArg := &ast.ArgumentDefinition{Name: "id", Type: ast.NonNullNamedType("ID", nil)}
	inputArg := &ast.ArgumentDefinition{Name: "input", Type: ast.NamedType(input, nil)}

	query := &ast.Definition{Kind: ast.Object, Name: "Query"}
	query.Fields = append(query.Fields,
		&ast.FieldDefinition{
			Name:      fieldName(p.Source),
			Type:      ast.NamedType(typ, nil),
			Arguments: ast.ArgumentDefinitionList{idArg},
		},
		&ast.FieldDefinition{
			Name: fieldName(rules.Pluralize(p.Source)),
			Type: ast.ListType(ast.NamedType(typ, nil), nil),
		},
	)
	mutation := &ast.Definition{Kind: ast.Object, Name: "Mutation"}
	for _, op := range []struct {
		name string
		args ast.ArgumentDefinitionList
	}{
		{"create_" + p.Source, ast.ArgumentDefinitionList{inputArg}},
		{"update_" + p.Source, ast.ArgumentDefinitionList{idArg, inputArg}},
		{"delete_" + p.Source, ast.ArgumentDefinitionList{idArg}},
	} {
		mutation.Fields = append(mutation.Fields, &ast.FieldDefinition{
			Name:      fieldName(op.name),
			Type:      ast.NamedType(typ, nil),
			Arguments: op.args,
		})
	}
	e.doc.Extensions = append(e.doc.Extensions, query, mutation)
}

// Document returns the accumulated schema document.
func (e *Exporter) Document() *ast.SchemaDocument { return e.doc }

// String renders the document as SDL, custom scalar declarations first.
func (e *Exporter) String() string {
	var buf bytes.Buffer
	for _, s := range e.scalars {
		fmt.Fprintf(&buf, "scalar %s\n\n", s)
	}
	formatter.NewFormatter(&buf).FormatSchemaDocument(e.doc)
	return buf.String()
}

// fieldType converts a target type to an SDL type reference, collecting
// custom scalar names along the way.
func (e *Exporter) fieldType(t gen.TargetType, nonNull bool) *ast.Type {
	var name string
	switch t.Kind {
	case gen.KindScalar:
		name = scalarNames[t.Scalar]
		if name == "" {
			name = "String"
		}
		if !builtinScalars[name] && !e.seen[name] {
			e.seen[name] = true
			e.scalars = append(e.scalars, name)
		}
	default:
		name = rules.Camelize(t.Name)
	}
	typ := ast.NamedType(name, nil)
	typ.NonNull = nonNull
	if t.Kind == gen.KindRelation && t.Many {
		typ = ast.ListType(typ, nil)
	}
	return typ
}

// TypeName returns the SDL name of a plan's type: "user" becomes "User",
// input plans get an "Input" suffix.
func TypeName(p *gen.Plan) string {
	name := rules.Camelize(p.Target)
	if p.Kind == gen.KindInput && !strings.HasSuffix(name, "Input") {
		name += "Input"
	}
	return name
}

// fieldName camelizes a snake_case field for the SDL surface:
// "published_at" becomes "publishedAt".
func fieldName(name string) string {
	return rules.CamelizeDownFirst(name)
}

// enumDefinition converts a derived enum into an SDL enum with
// conventionally uppercased values.
func enumDefinition(enum gen.EnumDef) *ast.Definition {
	def := &ast.Definition{
		Kind: ast.Enum,
		Name: rules.Camelize(enum.Name),
	}
	for _, v := range enum.Values {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
			Name: strings.ToUpper(v),
		})
	}
	return def
}

// Check parses an SDL document and reports syntax errors. It accepts
// partial documents; unresolved type references are not an error here.
func Check(input string) error {
	_, err := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: input})
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	return nil
}

package gen

import (
	"strings"
	"text/template"
)

// A Template is one named rendering unit. Templates are collected in a
// Registry whose lifecycle is scoped to a single generation run; there
// is no process-global template state.
type Template struct {
	name string
	tmpl *template.Template
}

// NewTemplate creates an empty template with the given name.
func NewTemplate(name string) *Template {
	return &Template{name: name, tmpl: template.New(name).Funcs(templateFuncs)}
}

// Parse parses text into the template.
func (t *Template) Parse(text string) (*Template, error) {
	tmpl, err := t.tmpl.Parse(text)
	if err != nil {
		return nil, &RenderError{Template: t.name, Cause: err}
	}
	t.tmpl = tmpl
	return t, nil
}

// MustParse is like Parse but panics on error. Reserved for the builtin
// templates, which are validated by tests.
func (t *Template) MustParse(text string) *Template {
	tt, err := t.Parse(text)
	if err != nil {
		panic(err)
	}
	return tt
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Registry holds the templates for one generation run. The renderer is a
// pure function of (template name, data context).
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns a registry preloaded with the builtin artifact
// templates. Callers may Register replacements before running.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]*Template)}
	for name, text := range builtinTemplates {
		r.Register(NewTemplate(name).MustParse(text))
	}
	return r
}

// Register adds or replaces a template by name.
func (r *Registry) Register(t *Template) {
	r.templates[t.name] = t
}

// Lookup returns the named template.
func (r *Registry) Lookup(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Render executes the named template against data. Unknown names and
// execution failures are reported as RenderError.
func (r *Registry) Render(name string, data any) (string, error) {
	t, ok := r.templates[name]
	if !ok {
		return "", &RenderError{Template: name, Cause: errUnknownTemplate}
	}
	var b strings.Builder
	if err := t.tmpl.Execute(&b, data); err != nil {
		return "", &RenderError{Template: name, Cause: err}
	}
	return b.String(), nil
}

var errUnknownTemplate = errorString("unknown template")

type errorString string

func (e errorString) Error() string { return string(e) }

// FileContext is the data context of the artifact wrapper templates.
type FileContext struct {
	Package  string
	GraphPkg string
	Target   string
	Block    string
}

// templateFuncs is the function map shared by all templates.
var templateFuncs = template.FuncMap{
	"pascal":    pascal,
	"camel":     camel,
	"snake":     snake,
	"plural":    plural,
	"fieldExpr": fieldExpr,
	"assocExpr": assocExpr,
	"inputName": inputName,
}

// inputName derives the registered name of an input type from the
// request target: "user" yields "user_input".
func inputName(target string) string {
	if strings.HasSuffix(target, "_input") {
		return target
	}
	return target + "_input"
}

// scalarExpr maps a target scalar to its graph package expression.
func scalarExpr(s Scalar) string {
	switch s {
	case ScalarID:
		return "graph.ID"
	case ScalarBoolean:
		return "graph.Boolean"
	case ScalarInteger:
		return "graph.Int"
	case ScalarFloat:
		return "graph.Float"
	case ScalarDecimal:
		return "graph.Decimal"
	case ScalarDate:
		return "graph.Date"
	case ScalarTime:
		return "graph.Time"
	case ScalarNaiveDatetime:
		return "graph.NaiveDatetime"
	case ScalarDatetime:
		return "graph.Datetime"
	case ScalarJSON:
		return "graph.JSON"
	default:
		return "graph.String"
	}
}

// typeExpr renders a target type reference as a graph expression.
func typeExpr(t TargetType) string {
	switch t.Kind {
	case KindScalar:
		return scalarExpr(t.Scalar)
	case KindRelation:
		expr := `graph.TypeRef("` + t.Name + `")`
		if t.Many {
			expr = "graph.ListOf(" + expr + ")"
		}
		return expr
	default:
		return `graph.TypeRef("` + t.Name + `")`
	}
}

// fieldExpr renders a planned field's type, wrapping non-null fields.
func fieldExpr(f PlannedField) string {
	expr := typeExpr(f.Type)
	if f.NonNull {
		expr = "graph.NonNull(" + expr + ")"
	}
	return expr
}

// assocExpr renders a planned association's type. Associations are never
// wrapped non-null.
func assocExpr(a PlannedAssociation) string {
	return typeExpr(a.Type)
}

// Builtin template names.
const (
	TmplTypesBlock     = "block/types"
	TmplQueriesBlock   = "block/queries"
	TmplResolversBlock = "block/resolvers"
	TmplTypesFile      = "file/types"
	TmplQueriesFile    = "file/queries"
	TmplResolversFile  = "file/resolvers"
	TmplTypesRoot      = "file/types_root"
	TmplSchemaRoot     = "file/schema_root"
)

const generatedHeader = `// Code generated by graphforge. Hand-written additions inside the
// register functions are preserved on regeneration.`

var builtinTemplates = map[string]string{
	TmplTypesBlock: `{{if eq .Kind "input"}}	s.Input("{{inputName .Target}}",
{{else}}	s.Object("{{.Target}}",
{{end}}{{range .Fields}}		graph.Field("{{.Name}}", {{fieldExpr .}}),
{{end}}{{range .Associations}}		graph.Field("{{.Name}}", {{assocExpr .}}),
{{end}}	)
{{range .Enums}}	s.Enum("{{.Name}}"{{range .Values}}, "{{.}}"{{end}})
{{end}}{{if .CustomBlock}}{{.CustomBlock}}{{end}}`,

	TmplQueriesBlock: `	s.Query("{{.Source}}", graph.TypeRef("{{.Target}}"), graph.Arg("id", graph.NonNull(graph.ID)))
	s.Query("{{plural .Source}}", graph.ListOf(graph.TypeRef("{{.Target}}")))
	s.Mutation("create_{{.Source}}", graph.TypeRef("{{.Target}}"), graph.Arg("input", graph.TypeRef("{{inputName .Target}}")))
	s.Mutation("update_{{.Source}}", graph.TypeRef("{{.Target}}"), graph.Arg("id", graph.NonNull(graph.ID)), graph.Arg("input", graph.TypeRef("{{inputName .Target}}")))
	s.Mutation("delete_{{.Source}}", graph.TypeRef("{{.Target}}"), graph.Arg("id", graph.NonNull(graph.ID)))
`,

	TmplResolversBlock: `{{range $name := rootNames .Source}}	s.Resolve("{{$name}}", func(ctx context.Context, args map[string]any) (any, error) {
		return nil, graph.ErrNotImplemented
	})
{{end}}`,

	TmplTypesFile: generatedHeader + `

package {{.Package}}

import "{{.GraphPkg}}"

func register{{pascal .Target}}Types(s *graph.Builder) {
{{.Block}}}
`,

	TmplQueriesFile: generatedHeader + `

package {{.Package}}

import "{{.GraphPkg}}"

func register{{pascal .Target}}Queries(s *graph.Builder) {
{{.Block}}}
`,

	TmplResolversFile: generatedHeader + `

package {{.Package}}

import (
	"context"

	"{{.GraphPkg}}"
)

func register{{pascal .Target}}Resolvers(s *graph.Builder) {
{{.Block}}}
`,

	TmplTypesRoot: generatedHeader + `

package {{.Package}}

import "{{.GraphPkg}}"

// RegisterTypes wires every generated type group into the builder.
func RegisterTypes(s *graph.Builder) {
{{.Block}}}
`,

	TmplSchemaRoot: generatedHeader + `

package {{.Package}}

import "{{.GraphPkg}}"

// RegisterSchema wires every generated root-field and resolver group
// into the builder. Call RegisterTypes first.
func RegisterSchema(s *graph.Builder) {
{{.Block}}}
`,
}

func init() {
	// rootNames needs plural and is registered here to keep the func map
	// literal free of self-references.
	templateFuncs["rootNames"] = rootNames
}

// rootNames lists the root-field names a generation unit registers, in
// the order the queries template declares them.
func rootNames(target string) []string {
	return []string{
		target,
		plural(target),
		"create_" + target,
		"update_" + target,
		"delete_" + target,
	}
}

// Package gomodel emits Go model structs for generation plans. The models
// are plain data carriers for resolver implementations; they are written
// next to the generated registration artifacts but never merged, a fresh
// emit replaces the file.
package gomodel

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/graphforge/graphforge/compiler/gen"
)

const uuidPkg = "github.com/google/uuid"

var rules = inflect.NewDefaultRuleset()

// Emitter renders model files for a target package.
type Emitter struct {
	pkg string
}

// NewEmitter returns an emitter for the named package.
func NewEmitter(pkg string) *Emitter {
	return &Emitter{pkg: pkg}
}

// File builds the model file for the given plans. Input plans are
// skipped; their shape is the object plan with pointer fields, which the
// resolver layer derives itself.
func (e *Emitter) File(plans ...*gen.Plan) *jen.File {
	f := jen.NewFile(e.pkg)
	f.HeaderComment("Code generated by graphforge. DO NOT EDIT.")
	for _, p := range plans {
		if p.Kind != gen.KindObject {
			continue
		}
		e.emitEnums(f, p)
		e.emitStruct(f, p)
	}
	return f
}

// Render builds and renders the model file as Go source.
func (e *Emitter) Render(plans ...*gen.Plan) (string, error) {
	var buf bytes.Buffer
	if err := e.File(plans...).Render(&buf); err != nil {
		return "", fmt.Errorf("gomodel: render: %w", err)
	}
	return buf.String(), nil
}

func (e *Emitter) emitEnums(f *jen.File, p *gen.Plan) {
	for _, enum := range p.Enums {
		name := rules.Camelize(enum.Name)
		f.Commentf("%s is the %q enumeration.", name, enum.Name)
		f.Type().Id(name).String()

		f.Const().DefsFunc(func(g *jen.Group) {
			for _, v := range enum.Values {
				g.Id(name + rules.Camelize(v)).Id(name).Op("=").Lit(v)
			}
		})

		f.Commentf("Valid reports whether v is a declared %s value.", name)
		f.Func().Params(jen.Id("v").Id(name)).Id("Valid").Params().Bool().Block(
			jen.Switch(jen.Id("v")).Block(
				jen.CaseFunc(func(g *jen.Group) {
					for _, v := range enum.Values {
						g.Id(name + rules.Camelize(v))
					}
				}).Block(jen.Return(jen.True())),
			),
			jen.Return(jen.False()),
		)
	}
}

func (e *Emitter) emitStruct(f *jen.File, p *gen.Plan) {
	name := rules.Camelize(p.Target)
	f.Commentf("%s is the model backing the %q type.", name, p.Target)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, fd := range p.Fields {
			stmt := g.Id(rules.Camelize(fd.Name))
			fieldGoType(stmt, fd)
			stmt.Tag(map[string]string{"json": fd.Name})
		}
		for _, a := range p.Associations {
			stmt := g.Id(rules.Camelize(a.Name))
			if a.Many {
				stmt.Index().Op("*").Id(rules.Camelize(a.Type.Name))
			} else {
				stmt.Op("*").Id(rules.Camelize(a.Type.Name))
			}
			stmt.Tag(map[string]string{"json": a.Name + ",omitempty"})
		}
	})
}

// fieldGoType appends the Go type of a planned field. Nullable scalars
// become pointers so absent values round-trip; identifiers and container
// types stay by-value.
func fieldGoType(stmt *jen.Statement, fd gen.PlannedField) {
	if fd.Type.Kind == gen.KindEnum {
		if !fd.NonNull {
			stmt.Op("*")
		}
		stmt.Id(rules.Camelize(fd.Type.Name))
		return
	}
	switch fd.Type.Scalar {
	case gen.ScalarID:
		stmt.Qual(uuidPkg, "UUID")
	case gen.ScalarBoolean:
		maybePtr(stmt, fd).Bool()
	case gen.ScalarInteger:
		maybePtr(stmt, fd).Int()
	case gen.ScalarFloat:
		maybePtr(stmt, fd).Float64()
	case gen.ScalarDecimal:
		// Decimals travel as strings to avoid float drift.
		maybePtr(stmt, fd).String()
	case gen.ScalarDate, gen.ScalarTime, gen.ScalarNaiveDatetime, gen.ScalarDatetime:
		maybePtr(stmt, fd).Qual("time", "Time")
	case gen.ScalarJSON:
		stmt.Map(jen.String()).Any()
	default:
		maybePtr(stmt, fd).String()
	}
}

func maybePtr(stmt *jen.Statement, fd gen.PlannedField) *jen.Statement {
	if !fd.NonNull {
		stmt.Op("*")
	}
	return stmt
}

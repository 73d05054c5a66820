// Package graph is the runtime registry the generated artifacts compile
// against. Generated register functions add object, input, and enum
// definitions plus root query/mutation fields to a Builder; resolver
// stubs attach resolver functions to field paths. The builder preserves
// registration order throughout.
package graph

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by generated resolver stubs until they
// are filled in by hand.
var ErrNotImplemented = errors.New("graph: resolver not implemented")

// TypeExpr is a type expression in a field or argument declaration:
// a scalar, a named type reference, or a list of either.
type TypeExpr struct {
	Name    string
	List    bool
	NonNull bool
}

// Built-in scalar type expressions.
var (
	ID            = TypeExpr{Name: "ID"}
	String        = TypeExpr{Name: "String"}
	Boolean       = TypeExpr{Name: "Boolean"}
	Int           = TypeExpr{Name: "Int"}
	Float         = TypeExpr{Name: "Float"}
	Decimal       = TypeExpr{Name: "Decimal"}
	Date          = TypeExpr{Name: "Date"}
	Time          = TypeExpr{Name: "Time"}
	NaiveDatetime = TypeExpr{Name: "NaiveDateTime"}
	Datetime      = TypeExpr{Name: "DateTime"}
	JSON          = TypeExpr{Name: "JSON"}
)

// TypeRef returns a reference to a named generated type.
func TypeRef(name string) TypeExpr {
	return TypeExpr{Name: name}
}

// ListOf wraps a type expression into a list.
func ListOf(expr TypeExpr) TypeExpr {
	expr.List = true
	return expr
}

// NonNull marks a type expression non-null.
func NonNull(expr TypeExpr) TypeExpr {
	expr.NonNull = true
	return expr
}

// String renders the expression in type-modifier notation.
func (t TypeExpr) String() string {
	s := t.Name
	if t.List {
		s = "[" + s + "]"
	}
	if t.NonNull {
		s += "!"
	}
	return s
}

// FieldDef is one field of an object or input definition.
type FieldDef struct {
	Name string
	Type TypeExpr
}

// Field declares an object or input field.
func Field(name string, typ TypeExpr) *FieldDef {
	return &FieldDef{Name: name, Type: typ}
}

// InputField declares an input field. It is an alias of Field kept so
// hand-written input registrations read naturally.
func InputField(name string, typ TypeExpr) *FieldDef {
	return Field(name, typ)
}

// ArgDef is one argument of a root field.
type ArgDef struct {
	Name string
	Type TypeExpr
}

// Arg declares a root-field argument.
func Arg(name string, typ TypeExpr) *ArgDef {
	return &ArgDef{Name: name, Type: typ}
}

// TypeDef is a registered object or input definition.
type TypeDef struct {
	Name   string
	Input  bool
	Fields []*FieldDef
}

// EnumDef is a registered enumeration.
type EnumDef struct {
	Name   string
	Values []string
}

// RootField is a registered query or mutation field.
type RootField struct {
	Name     string
	Type     TypeExpr
	Args     []*ArgDef
	Mutation bool
}

// ResolverFunc resolves one field. The generated stubs return
// ErrNotImplemented.
type ResolverFunc func(ctx context.Context, args map[string]any) (any, error)

// Builder collects the registered schema pieces.
type Builder struct {
	types     []*TypeDef
	enums     []*EnumDef
	roots     []*RootField
	resolvers map[string]ResolverFunc
	byName    map[string]*TypeDef
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		resolvers: make(map[string]ResolverFunc),
		byName:    make(map[string]*TypeDef),
	}
}

// Object registers an object type definition.
func (b *Builder) Object(name string, fields ...*FieldDef) {
	b.addType(&TypeDef{Name: name, Fields: fields})
}

// Input registers an input type definition.
func (b *Builder) Input(name string, fields ...*FieldDef) {
	b.addType(&TypeDef{Name: name, Input: true, Fields: fields})
}

func (b *Builder) addType(td *TypeDef) {
	if _, ok := b.byName[td.Name]; !ok {
		b.types = append(b.types, td)
	}
	b.byName[td.Name] = td
}

// Enum registers an enumeration with its values in declaration order.
func (b *Builder) Enum(name string, values ...string) {
	b.enums = append(b.enums, &EnumDef{Name: name, Values: values})
}

// Query registers a root query field.
func (b *Builder) Query(name string, typ TypeExpr, args ...*ArgDef) {
	b.roots = append(b.roots, &RootField{Name: name, Type: typ, Args: args})
}

// Mutation registers a root mutation field.
func (b *Builder) Mutation(name string, typ TypeExpr, args ...*ArgDef) {
	b.roots = append(b.roots, &RootField{Name: name, Type: typ, Args: args, Mutation: true})
}

// Resolve attaches a resolver to a field path such as "user" or
// "user.posts". A later registration for the same path replaces the
// earlier one.
func (b *Builder) Resolve(path string, fn ResolverFunc) {
	b.resolvers[path] = fn
}

// Types returns the registered type definitions in registration order.
func (b *Builder) Types() []*TypeDef { return b.types }

// Enums returns the registered enums in registration order.
func (b *Builder) Enums() []*EnumDef { return b.enums }

// Roots returns the registered root fields in registration order.
func (b *Builder) Roots() []*RootField { return b.roots }

// Type returns the named type definition.
func (b *Builder) Type(name string) (*TypeDef, bool) {
	td, ok := b.byName[name]
	return td, ok
}

// Resolver returns the resolver registered for the field path.
func (b *Builder) Resolver(path string) (ResolverFunc, bool) {
	fn, ok := b.resolvers[path]
	return fn, ok
}

// Validate checks that every type referenced by a field or root exists
// as a registered type, enum, or built-in scalar.
func (b *Builder) Validate() error {
	known := map[string]struct{}{
		"ID": {}, "String": {}, "Boolean": {}, "Int": {}, "Float": {},
		"Decimal": {}, "Date": {}, "Time": {}, "NaiveDateTime": {},
		"DateTime": {}, "JSON": {},
	}
	for _, td := range b.types {
		known[td.Name] = struct{}{}
	}
	for _, ed := range b.enums {
		known[ed.Name] = struct{}{}
	}
	for _, td := range b.types {
		for _, f := range td.Fields {
			if _, ok := known[f.Type.Name]; !ok {
				return fmt.Errorf("graph: type %q field %q references unknown type %q", td.Name, f.Name, f.Type.Name)
			}
		}
	}
	for _, rf := range b.roots {
		if _, ok := known[rf.Type.Name]; !ok {
			return fmt.Errorf("graph: root field %q references unknown type %q", rf.Name, rf.Type.Name)
		}
		for _, a := range rf.Args {
			if _, ok := known[a.Type.Name]; !ok {
				return fmt.Errorf("graph: root field %q argument %q references unknown type %q", rf.Name, a.Name, a.Type.Name)
			}
		}
	}
	return nil
}

package gen

import (
	"regexp"
	"strings"

	"github.com/graphforge/graphforge/compiler/introspect"
)

// Kind selects the generation target family.
type Kind string

// Generation kinds.
const (
	// KindObject generates a readable object type.
	KindObject Kind = "object"
	// KindInput generates a write-argument input type. Input plans carry
	// no associations and no non-null markers.
	KindInput Kind = "input"
)

// Request describes one generation unit. Construct it with NewRequest
// and the With* options; the zero value is not usable.
type Request struct {
	// Target is the name of the generated type, e.g. "user".
	Target string
	// Schema is the introspected descriptor the fields derive from.
	Schema *introspect.SchemaDescriptor
	// Kind is the generation kind.
	Kind Kind

	only         []string
	except       []string
	nonNull      []string
	nullable     []string
	customBlock  string
	overridden   []string
	includeAssoc bool
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// NewRequest returns a generation request for the given target over the
// given descriptor. Associations are included by default for object
// requests; input requests never carry associations regardless of
// options.
func NewRequest(target string, schema *introspect.SchemaDescriptor, kind Kind, opts ...RequestOption) *Request {
	r := &Request{
		Target:       target,
		Schema:       schema,
		Kind:         kind,
		includeAssoc: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Only restricts the generated fields to the given names. Mutually
// exclusive with a non-empty Except; resolution fails with
// ErrConflictingFilter when both are set.
func Only(names ...string) RequestOption {
	return func(r *Request) { r.only = names }
}

// Except removes the given field names from the generated set.
func Except(names ...string) RequestOption {
	return func(r *Request) { r.except = names }
}

// NonNull marks the given fields non-null in object plans. Ignored for
// input plans, where nullability is never propagated.
func NonNull(names ...string) RequestOption {
	return func(r *Request) { r.nonNull = names }
}

// Nullable forces the given fields nullable, taking precedence over
// NonNull membership.
func Nullable(names ...string) RequestOption {
	return func(r *Request) { r.nullable = names }
}

// WithoutAssociations drops relation fields from an object plan.
func WithoutAssociations() RequestOption {
	return func(r *Request) { r.includeAssoc = false }
}

// WithCustomBlock supplies a hand-written block the caller will append to
// the generated artifact. Field registrations found in the block take
// precedence: the matching auto-generated fields are not emitted.
func WithCustomBlock(block string) RequestOption {
	return func(r *Request) {
		r.customBlock = block
		r.overridden = ExtractOverrides(block)
	}
}

// CustomBlock returns the caller-supplied block, if any.
func (r *Request) CustomBlock() string { return r.customBlock }

// fieldRegistration matches field registrations in a hand-written block,
// e.g. graph.Field("name", ...) or graph.InputField("name", ...).
var fieldRegistration = regexp.MustCompile(`graph\.(?:Input)?Field\(\s*"([A-Za-z0-9_]+)"`)

// ExtractOverrides scans a hand-written block for field registrations and
// returns the field names it defines, in order of appearance.
func ExtractOverrides(block string) []string {
	var names []string
	for _, m := range fieldRegistration.FindAllStringSubmatch(block, -1) {
		names = append(names, m[1])
	}
	return names
}

// PlannedField is one resolved output field.
type PlannedField struct {
	Name    string
	Type    TargetType
	NonNull bool
}

// PlannedAssociation is one resolved relation field.
type PlannedAssociation struct {
	Name string
	Type TargetType
	Many bool
}

// EnumDef is a derived enumeration type.
type EnumDef struct {
	Name   string
	Values []string
}

// Plan is the assembled generation plan handed to the renderer. It is
// read-only and consumed exactly once.
type Plan struct {
	Target       string
	Schema       string // schema identity, for diagnostics
	Source       string // singularized source name, for query naming
	Kind         Kind
	Fields       []PlannedField
	Enums        []EnumDef
	Associations []PlannedAssociation
	CustomBlock  string
}

// NewPlan resolves the request into a plan: the ordered field set, the
// deduplicated enum definitions owned by surviving fields, and the
// resolved associations.
func NewPlan(req *Request) (*Plan, error) {
	fields, enums, err := resolveFields(req)
	if err != nil {
		return nil, err
	}
	custom := req.customBlock
	if custom != "" && !strings.HasSuffix(custom, "\n") {
		custom += "\n"
	}
	return &Plan{
		Target:       req.Target,
		Schema:       req.Schema.Name,
		Source:       req.Schema.Source,
		Kind:         req.Kind,
		Fields:       fields,
		Enums:        enums,
		Associations: resolveAssociations(req),
		CustomBlock:  custom,
	}, nil
}

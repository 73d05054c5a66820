package gen

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/tools/imports"

	"github.com/graphforge/graphforge/merge"
)

// Root aggregator artifacts. Per-unit artifacts register into these via
// linkage injection.
const (
	TypesAggregator  = "types.go"
	SchemaAggregator = "schema.go"
)

// DefaultGraphPkg is the import path of the runtime builder package the
// generated artifacts compile against.
const DefaultGraphPkg = "github.com/graphforge/graphforge/graph"

// Generator renders generation requests into artifacts under a target
// directory. Existing artifacts are merged: generated blocks are spliced
// before the closing delimiter of the register function, preserving
// hand-written content byte for byte.
type Generator struct {
	registry *Registry
	engine   *merge.Engine
	outDir   string
	pkg      string
	graphPkg string
	logger   *log.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRegistry replaces the builtin template registry.
func WithRegistry(r *Registry) GeneratorOption {
	return func(g *Generator) { g.registry = r }
}

// WithPackage sets the package name of the generated artifacts.
// Defaults to "gql".
func WithPackage(name string) GeneratorOption {
	return func(g *Generator) { g.pkg = name }
}

// WithGraphPackage sets the import path of the runtime builder package.
func WithGraphPackage(path string) GeneratorOption {
	return func(g *Generator) { g.graphPkg = path }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a generator writing artifacts under outDir.
func NewGenerator(outDir string, opts ...GeneratorOption) *Generator {
	g := &Generator{
		registry: NewRegistry(),
		engine:   merge.NewEngine("}"),
		outDir:   outDir,
		pkg:      "gql",
		graphPkg: DefaultGraphPkg,
		logger:   log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// linkage is a pending aggregator injection, applied after all per-unit
// artifacts of a run have been written.
type linkage struct {
	file string
	tmpl string
	stmt string
}

// Run processes the requests strictly in order. Per-unit artifacts are
// written first, then the root aggregators receive their linkage
// injections. A failing request aborts its own remaining steps but not
// the run; an unmergeable artifact is skipped with a diagnostic. The
// returned error joins the per-request failures.
func (g *Generator) Run(ctx context.Context, reqs ...*Request) error {
	runID := uuid.NewString()
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return &ArtifactError{Path: g.outDir, Op: "create", Cause: err}
	}
	var (
		errs  []error
		links []linkage
	)
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		unitLinks, err := g.generateUnit(req)
		if err != nil {
			g.logger.Printf("run %s: %s: %v", runID, req.Target, err)
			errs = append(errs, err)
			continue
		}
		links = append(links, unitLinks...)
	}
	for _, l := range links {
		if err := g.link(l); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// generateUnit writes the artifacts of one request and returns the
// aggregator injections they require.
func (g *Generator) generateUnit(req *Request) ([]linkage, error) {
	plan, err := NewPlan(req)
	if err != nil {
		return nil, err
	}
	base := snake(req.Target)
	name := pascal(req.Target)

	block, err := g.registry.Render(TmplTypesBlock, plan)
	if err != nil {
		return nil, err
	}
	if err := g.emit(base+"_types.go", TmplTypesFile, req.Target, block); err != nil {
		return nil, err
	}
	links := []linkage{{
		file: TypesAggregator,
		tmpl: TmplTypesRoot,
		stmt: "\tregister" + name + "Types(s)\n",
	}}
	if plan.Kind != KindObject {
		return links, nil
	}

	block, err = g.registry.Render(TmplQueriesBlock, plan)
	if err != nil {
		return nil, err
	}
	if err := g.emit(base+"_queries.go", TmplQueriesFile, req.Target, block); err != nil {
		return nil, err
	}
	block, err = g.registry.Render(TmplResolversBlock, plan)
	if err != nil {
		return nil, err
	}
	if err := g.emit(base+"_resolvers.go", TmplResolversFile, req.Target, block); err != nil {
		return nil, err
	}
	links = append(links,
		linkage{SchemaAggregator, TmplSchemaRoot, "\tregister" + name + "Queries(s)\n"},
		linkage{SchemaAggregator, TmplSchemaRoot, "\tregister" + name + "Resolvers(s)\n"},
	)
	return links, nil
}

// emit writes one per-unit artifact. Absent artifacts are created from
// the wrapper template and formatted; present artifacts get the block
// appended before the register function's closing brace, untouched
// otherwise.
func (g *Generator) emit(file, fileTmpl, target, block string) error {
	path := filepath.Join(g.outDir, file)
	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return &ArtifactError{Path: file, Op: "read", Cause: err}
	}
	if os.IsNotExist(err) {
		out, rerr := g.registry.Render(fileTmpl, FileContext{
			Package:  g.pkg,
			GraphPkg: g.graphPkg,
			Target:   target,
			Block:    block,
		})
		if rerr != nil {
			return rerr
		}
		return g.create(path, file, out)
	}
	merged, err := g.engine.Append(string(current), block)
	if errors.Is(err, merge.ErrUnmergeable) {
		g.logger.Printf("skip %s: no closing %q delimiter, resolve manually", file, g.engine.Closing())
		return nil
	}
	if err != nil {
		return &ArtifactError{Path: file, Op: "append", Cause: err}
	}
	if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
		return &ArtifactError{Path: file, Op: "append", Cause: err}
	}
	return nil
}

// link injects one registration statement into a root aggregator,
// creating the aggregator when absent. Injection is idempotent: a
// statement already present leaves the file byte-identical.
func (g *Generator) link(l linkage) error {
	path := filepath.Join(g.outDir, l.file)
	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return &ArtifactError{Path: l.file, Op: "link", Cause: err}
	}
	if os.IsNotExist(err) {
		out, rerr := g.registry.Render(l.tmpl, FileContext{
			Package:  g.pkg,
			GraphPkg: g.graphPkg,
			Block:    l.stmt,
		})
		if rerr != nil {
			return rerr
		}
		return g.create(path, l.file, out)
	}
	out, injected, err := g.engine.Inject(string(current), l.stmt)
	if errors.Is(err, merge.ErrUnmergeable) {
		g.logger.Printf("skip %s: no closing %q delimiter, resolve manually", l.file, g.engine.Closing())
		return nil
	}
	if err != nil {
		return &ArtifactError{Path: l.file, Op: "link", Cause: err}
	}
	if !injected {
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return &ArtifactError{Path: l.file, Op: "link", Cause: err}
	}
	return nil
}

// create formats a freshly rendered artifact with goimports and writes
// it. Appends never reformat, so creation is the only point where the
// file passes through the formatter.
func (g *Generator) create(path, file, content string) error {
	formatted, err := imports.Process(path, []byte(content), nil)
	if err != nil {
		return &ArtifactError{Path: file, Op: "create", Message: "format", Cause: err}
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return &ArtifactError{Path: file, Op: "create", Cause: err}
	}
	return nil
}

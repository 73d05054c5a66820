// Command graphforge derives GraphQL registration artifacts from schema
// sources: database tables or manual field specs. Artifacts merge into
// existing files, so hand-written registrations survive regeneration.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/graphforge/graphforge"
	"github.com/graphforge/graphforge/compiler/gen"
	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/compiler/introspect/sqlsource"
	"github.com/graphforge/graphforge/contrib/gomodel"
	"github.com/graphforge/graphforge/contrib/manifest"
	"github.com/graphforge/graphforge/contrib/sdl"
	"github.com/graphforge/graphforge/snapshot"
	"github.com/graphforge/graphforge/watch"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(ctx, os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "version":
		fmt.Println("graphforge", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("graphforge: %v", err)
	}
}

var version = "devel"

func usage() {
	fmt.Fprintln(os.Stderr, `usage: graphforge <command> [flags]

commands:
  generate  derive and merge artifacts from a database or field specs
  check     parse an exported SDL document and report syntax errors
  version   print the version`)
}

// config carries the environment-derived settings. Flags take
// precedence over the environment.
type config struct {
	dsn     string
	dialect string
}

// loadConfig reads .env (if present) and the environment.
func loadConfig() config {
	_ = godotenv.Load()
	return config{
		dsn:     os.Getenv("DATABASE_URL"),
		dialect: os.Getenv("GRAPHFORGE_DIALECT"),
	}
}

type generateOptions struct {
	dsn      string
	dialect  string
	out      string
	pkg      string
	targets  string
	specs    multiFlag
	models   bool
	schema   string
	manifest string
	snapshot string
	watchDir string
}

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func runGenerate(ctx context.Context, args []string) error {
	env := loadConfig()
	opts := generateOptions{}
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.StringVar(&opts.dsn, "dsn", env.dsn, "database connection string (defaults to DATABASE_URL)")
	fs.StringVar(&opts.dialect, "dialect", env.dialect, "database dialect: postgres, mysql or sqlite")
	fs.StringVar(&opts.out, "out", "gql", "output directory for generated artifacts")
	fs.StringVar(&opts.pkg, "pkg", "gql", "package name of generated artifacts")
	fs.StringVar(&opts.targets, "targets", "", "comma-separated schema identities (default: all registered)")
	fs.Var(&opts.specs, "spec", "manual schema as name=field:type,... (repeatable, no database needed)")
	fs.BoolVar(&opts.models, "models", false, "emit Go model structs next to the artifacts")
	fs.StringVar(&opts.schema, "schema", "", "export the derived types as SDL to this path")
	fs.StringVar(&opts.manifest, "manifest", "", "inject bindings into this gqlgen.yml-style manifest")
	fs.StringVar(&opts.snapshot, "snapshot", "", "descriptor snapshot path; only changed schemas regenerate")
	fs.StringVar(&opts.watchDir, "watch", "", "watch this directory and regenerate on change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	run := func(ctx context.Context) error { return generate(ctx, opts) }
	if opts.watchDir == "" {
		return run(ctx)
	}
	if err := run(ctx); err != nil {
		log.Printf("generate: %v", err)
	}
	w, err := watch.New(func(paths []string) {
		log.Printf("change detected in %s", strings.Join(paths, ", "))
		if err := generate(ctx, opts); err != nil {
			log.Printf("generate: %v", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(opts.watchDir); err != nil {
		return err
	}
	log.Printf("watching %s", opts.watchDir)
	return w.Run(ctx)
}

func generate(ctx context.Context, opts generateOptions) error {
	registry := graphforge.NewRegistry()
	if opts.dsn != "" {
		dialect, err := resolveDialect(opts.dialect, opts.dsn)
		if err != nil {
			return err
		}
		db, err := sql.Open(driverName(dialect), opts.dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := sqlsource.RegisterAll(ctx, db, dialect, registry); err != nil {
			return err
		}
	}
	specDescriptors, err := parseSpecs(opts.specs)
	if err != nil {
		return err
	}
	targets := registry.Names()
	for _, s := range opts.specs {
		name, _, _ := strings.Cut(s, "=")
		targets = append(targets, name)
	}
	if opts.targets != "" {
		targets = strings.Split(opts.targets, ",")
	}

	introspector := introspect.New(registry)
	descriptors := make([]*introspect.SchemaDescriptor, 0, len(targets))
	for _, name := range targets {
		if sd, ok := specDescriptors[name]; ok {
			descriptors = append(descriptors, sd)
			continue
		}
		sd, err := introspector.Introspect(name)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, sd)
	}

	if opts.snapshot != "" {
		store := snapshot.NewStore(opts.snapshot)
		changes, err := store.Update(descriptors)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			log.Println("schemas unchanged, nothing to generate")
			return nil
		}
		descriptors = changedOnly(descriptors, changes)
		for _, c := range changes {
			log.Printf("%s %s", c.Kind, c.Name)
		}
	}

	var (
		requests []*gen.Request
		plans    []*gen.Plan
	)
	for _, sd := range descriptors {
		for _, kind := range []gen.Kind{gen.KindObject, gen.KindInput} {
			req := gen.NewRequest(sd.Source, sd, kind)
			requests = append(requests, req)
			plan, err := gen.NewPlan(req)
			if err != nil {
				return err
			}
			plans = append(plans, plan)
		}
	}

	g := gen.NewGenerator(opts.out, gen.WithPackage(opts.pkg))
	if err := g.Run(ctx, requests...); err != nil {
		return err
	}
	log.Printf("generated %d unit(s) into %s", len(descriptors), opts.out)

	if opts.models {
		if err := emitModels(opts, plans); err != nil {
			return err
		}
	}
	if opts.schema != "" {
		if err := exportSchema(opts.schema, plans); err != nil {
			return err
		}
	}
	if opts.manifest != "" {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		m.Inject(opts.pkg, opts.schema)
		if err := manifest.Save(opts.manifest, m); err != nil {
			return err
		}
	}
	return nil
}

func emitModels(opts generateOptions, plans []*gen.Plan) error {
	out, err := gomodel.NewEmitter(opts.pkg).Render(plans...)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(opts.out, "models.go"), []byte(out), 0o644)
}

func exportSchema(path string, plans []*gen.Plan) error {
	e := sdl.NewExporter()
	for _, p := range plans {
		e.AddPlan(p)
	}
	for _, p := range plans {
		e.AddRoots(p)
	}
	doc := e.String()
	if err := sdl.Check(doc); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	schema := fs.String("schema", "gql/schema.graphql", "SDL document to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := os.ReadFile(*schema)
	if err != nil {
		return err
	}
	if err := sdl.Check(string(data)); err != nil {
		return err
	}
	log.Printf("%s ok", *schema)
	return nil
}

// parseSpecs turns -spec name=field:type,... flags into descriptors.
func parseSpecs(specs []string) (map[string]*introspect.SchemaDescriptor, error) {
	out := make(map[string]*introspect.SchemaDescriptor, len(specs))
	for _, s := range specs {
		name, rest, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid -spec %q, want name=field:type,...", s)
		}
		sd, err := introspect.FromSpecs(name, strings.Split(rest, ","))
		if err != nil {
			return nil, err
		}
		out[name] = sd
	}
	return out, nil
}

func changedOnly(descriptors []*introspect.SchemaDescriptor, changes []snapshot.Change) []*introspect.SchemaDescriptor {
	changed := make(map[string]bool, len(changes))
	for _, c := range changes {
		if c.Kind != snapshot.Removed {
			changed[c.Name] = true
		}
	}
	var out []*introspect.SchemaDescriptor
	for _, sd := range descriptors {
		if changed[sd.Name] {
			out = append(out, sd)
		}
	}
	return out
}

func resolveDialect(dialect, dsn string) (sqlsource.Dialect, error) {
	switch dialect {
	case "postgres", "":
		if dialect == "" && !strings.HasPrefix(dsn, "postgres") {
			return "", errors.New("dialect not set and not derivable from dsn, pass -dialect")
		}
		return sqlsource.Postgres, nil
	case "mysql":
		return sqlsource.MySQL, nil
	case "sqlite":
		return sqlsource.SQLite, nil
	default:
		return "", fmt.Errorf("unknown dialect %q", dialect)
	}
}

func driverName(d sqlsource.Dialect) string {
	// modernc.org/sqlite registers as "sqlite"; the others match their
	// dialect name.
	return string(d)
}

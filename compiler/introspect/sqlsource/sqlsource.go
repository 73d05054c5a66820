// Package sqlsource derives schema sources from live database tables.
// A scanned table satisfies the graphforge.Source contract, so generation
// requests can run directly against an existing database.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/graphforge/graphforge"
	"github.com/graphforge/graphforge/compiler/introspect"
	"github.com/graphforge/graphforge/schema/field"
)

// Dialect selects the inspection queries.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// Column is one inspected table column.
type Column struct {
	Name    string
	Info    field.TypeInfo
	Null    bool
	Primary bool
}

// foreignKey is one outgoing reference of a table.
type foreignKey struct {
	column   string
	refTable string
}

// inspector is the per-dialect query surface.
type inspector interface {
	tables(ctx context.Context) ([]string, error)
	columns(ctx context.Context, table string) ([]Column, error)
	foreignKeys(ctx context.Context, table string) ([]foreignKey, error)
}

func newInspector(db *sql.DB, d Dialect) (inspector, error) {
	switch d {
	case Postgres:
		return &postgresInspector{db: db}, nil
	case MySQL:
		return &mysqlInspector{db: db}, nil
	case SQLite:
		return &sqliteInspector{db: db}, nil
	default:
		return nil, fmt.Errorf("sqlsource: unsupported dialect %q", d)
	}
}

// TableSource is a schema source backed by one inspected table. It
// implements graphforge.Source and graphforge.AssociationSource.
type TableSource struct {
	table   string
	columns []Column
	index   map[string]int
	assocs  []graphforge.Association
}

// Identity returns the registry identity of the source, the singularized
// table name.
func (s *TableSource) Identity() string {
	return introspect.Singularize(s.table)
}

// SourceName returns the backing table name.
func (s *TableSource) SourceName() string { return s.table }

// FieldNames returns the column names in table order.
func (s *TableSource) FieldNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// FieldType returns the native type of the named column.
func (s *TableSource) FieldType(name string) (field.TypeInfo, bool) {
	i, ok := s.index[name]
	if !ok {
		return field.TypeInfo{}, false
	}
	return s.columns[i].Info, true
}

// Associations returns the relations derived from foreign keys.
func (s *TableSource) Associations() []graphforge.Association { return s.assocs }

// Columns returns the inspected columns in table order.
func (s *TableSource) Columns() []Column { return s.columns }

func newTableSource(table string, cols []Column) *TableSource {
	s := &TableSource{
		table:   table,
		columns: cols,
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		s.index[c.Name] = i
	}
	return s
}

// belongsTo derives the owning-side association of a foreign key:
// a "user_id" column referencing "users" becomes a "user" relation.
func belongsTo(fk foreignKey) graphforge.Association {
	name := strings.TrimSuffix(fk.column, "_id")
	return graphforge.Association{
		Name:   name,
		Target: introspect.Singularize(fk.refTable),
	}
}

// Scan inspects a single table. Only the owning side of its foreign keys
// is visible; use ScanAll to wire reverse has-many relations.
func Scan(ctx context.Context, db *sql.DB, dialect Dialect, table string) (*TableSource, error) {
	insp, err := newInspector(db, dialect)
	if err != nil {
		return nil, err
	}
	return scanTable(ctx, insp, table)
}

func scanTable(ctx context.Context, insp inspector, table string) (*TableSource, error) {
	cols, err := insp.columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: inspect %q: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("sqlsource: table %q has no columns", table)
	}
	s := newTableSource(table, cols)
	fks, err := insp.foreignKeys(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: foreign keys of %q: %w", table, err)
	}
	for _, fk := range fks {
		s.assocs = append(s.assocs, belongsTo(fk))
	}
	return s, nil
}

// ScanAll inspects every user table and wires both directions of each
// foreign key: the referencing table gets a belongs-to relation, the
// referenced table a has-many named after the referencing table.
func ScanAll(ctx context.Context, db *sql.DB, dialect Dialect) ([]*TableSource, error) {
	insp, err := newInspector(db, dialect)
	if err != nil {
		return nil, err
	}
	tables, err := insp.tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: list tables: %w", err)
	}
	sources := make([]*TableSource, 0, len(tables))
	byIdentity := make(map[string]*TableSource, len(tables))
	for _, t := range tables {
		s, err := scanTable(ctx, insp, t)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
		byIdentity[s.Identity()] = s
	}
	for _, s := range sources {
		for _, a := range s.assocs {
			if a.Many {
				continue
			}
			ref, ok := byIdentity[a.Target]
			if !ok || ref == s {
				continue
			}
			ref.assocs = append(ref.assocs, graphforge.Association{
				Name:   s.table,
				Target: s.Identity(),
				Many:   true,
			})
		}
	}
	return sources, nil
}

// RegisterAll scans the database and registers every table source in the
// registry under its singularized identity.
func RegisterAll(ctx context.Context, db *sql.DB, dialect Dialect, reg *graphforge.Registry) error {
	sources, err := ScanAll(ctx, db, dialect)
	if err != nil {
		return err
	}
	for _, s := range sources {
		reg.Register(s.Identity(), s)
	}
	return nil
}

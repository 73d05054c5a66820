package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/graphforge/graphforge/schema/field"
)

// sqliteInspector inspects a database through sqlite_master and the
// table_info/foreign_key_list pragmas.
type sqliteInspector struct {
	db *sql.DB
}

func (i *sqliteInspector) tables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (i *sqliteInspector) columns(ctx context.Context, table string) ([]Column, error) {
	// Pragmas take no bind parameters; the identifier is quoted instead.
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, declType   string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, Column{
			Name:    name,
			Info:    sqliteTypeInfo(declType, pk > 0),
			Null:    notNull == 0,
			Primary: pk > 0,
		})
	}
	return cols, rows.Err()
}

// sqliteTypeInfo maps a declared column type by affinity. SQLite stores
// declared types verbatim, so matching is prefix-based and case-blind.
func sqliteTypeInfo(declType string, primary bool) field.TypeInfo {
	if primary {
		return field.TypeInfo{Type: field.TypeID}
	}
	decl := strings.ToUpper(declType)
	switch {
	case strings.HasPrefix(decl, "BOOL"):
		return field.TypeInfo{Type: field.TypeBool}
	case strings.Contains(decl, "INT"):
		return field.TypeInfo{Type: field.TypeInt}
	case strings.HasPrefix(decl, "REAL"), strings.HasPrefix(decl, "FLOA"), strings.HasPrefix(decl, "DOUB"):
		return field.TypeInfo{Type: field.TypeFloat}
	case strings.HasPrefix(decl, "NUMERIC"), strings.HasPrefix(decl, "DECIMAL"):
		return field.TypeInfo{Type: field.TypeDecimal}
	case decl == "DATE":
		return field.TypeInfo{Type: field.TypeDate}
	case decl == "TIME":
		return field.TypeInfo{Type: field.TypeTime}
	case strings.HasPrefix(decl, "DATETIME"), strings.HasPrefix(decl, "TIMESTAMP"):
		return field.TypeInfo{Type: field.TypeNaiveDatetime}
	case strings.HasPrefix(decl, "JSON"):
		return field.TypeInfo{Type: field.TypeMapAny}
	case strings.Contains(decl, "CHAR"), strings.Contains(decl, "CLOB"), strings.Contains(decl, "TEXT"):
		return field.TypeInfo{Type: field.TypeString}
	default:
		return field.TypeInfo{Type: field.TypeOther}
	}
}

func (i *sqliteInspector) foreignKeys(ctx context.Context, table string) ([]foreignKey, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []foreignKey
	for rows.Next() {
		var (
			id, seq                     int
			refTable, from              string
			to                          sql.NullString
			onUpdate, onDelete, matchBy string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matchBy); err != nil {
			return nil, err
		}
		fks = append(fks, foreignKey{column: from, refTable: refTable})
	}
	return fks, rows.Err()
}

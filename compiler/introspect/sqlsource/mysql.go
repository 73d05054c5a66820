package sqlsource

import (
	"context"
	"database/sql"
	"strings"

	"github.com/graphforge/graphforge/schema/field"
)

// mysqlInspector inspects the current database through the
// information_schema catalog views.
type mysqlInspector struct {
	db *sql.DB
}

func (i *mysqlInspector) tables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`
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

func (i *mysqlInspector) columns(ctx context.Context, table string) ([]Column, error) {
	const query = `
		SELECT column_name, data_type, column_type, is_nullable, column_key, datetime_precision
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`
	rows, err := i.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			name, dataType, columnType string
			nullable, key              string
			prec                       sql.NullInt64
		)
		if err := rows.Scan(&name, &dataType, &columnType, &nullable, &key, &prec); err != nil {
			return nil, err
		}
		primary := key == "PRI"
		cols = append(cols, Column{
			Name:    name,
			Info:    mysqlTypeInfo(dataType, columnType, primary, prec),
			Null:    nullable == "YES",
			Primary: primary,
		})
	}
	return cols, rows.Err()
}

func mysqlTypeInfo(dataType, columnType string, primary bool, prec sql.NullInt64) field.TypeInfo {
	if primary {
		if dataType == "binary" || dataType == "char" {
			return field.TypeInfo{Type: field.TypeBinaryID}
		}
		return field.TypeInfo{Type: field.TypeID}
	}
	usec := prec.Valid && prec.Int64 > 0
	switch dataType {
	case "tinyint":
		// tinyint(1) is the MySQL bool convention.
		if strings.HasPrefix(columnType, "tinyint(1)") {
			return field.TypeInfo{Type: field.TypeBool}
		}
		return field.TypeInfo{Type: field.TypeInt}
	case "smallint", "mediumint", "int", "bigint", "year":
		return field.TypeInfo{Type: field.TypeInt}
	case "float", "double":
		return field.TypeInfo{Type: field.TypeFloat}
	case "decimal", "numeric":
		return field.TypeInfo{Type: field.TypeDecimal}
	case "date":
		return field.TypeInfo{Type: field.TypeDate}
	case "time":
		return field.TypeInfo{Type: field.TypeTime}
	case "datetime":
		if usec {
			return field.TypeInfo{Type: field.TypeNaiveDatetimeUsec}
		}
		return field.TypeInfo{Type: field.TypeNaiveDatetime}
	case "timestamp":
		if usec {
			return field.TypeInfo{Type: field.TypeUTCDatetimeUsec}
		}
		return field.TypeInfo{Type: field.TypeUTCDatetime}
	case "json":
		return field.TypeInfo{Type: field.TypeMapAny}
	case "enum":
		return field.TypeInfo{Type: field.TypeEnum, Enums: parseEnumLiteral(columnType)}
	case "char", "varchar", "tinytext", "text", "mediumtext", "longtext":
		return field.TypeInfo{Type: field.TypeString}
	default:
		return field.TypeInfo{Type: field.TypeOther}
	}
}

// parseEnumLiteral extracts the values of a column_type literal such as
// enum('draft','published').
func parseEnumLiteral(columnType string) []string {
	open := strings.IndexByte(columnType, '(')
	end := strings.LastIndexByte(columnType, ')')
	if open < 0 || end <= open {
		return nil
	}
	var values []string
	for _, v := range strings.Split(columnType[open+1:end], ",") {
		values = append(values, strings.Trim(strings.TrimSpace(v), "'"))
	}
	return values
}

func (i *mysqlInspector) foreignKeys(ctx context.Context, table string) ([]foreignKey, error) {
	const query = `
		SELECT column_name, referenced_table_name
		FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND referenced_table_name IS NOT NULL
		ORDER BY column_name`
	rows, err := i.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []foreignKey
	for rows.Next() {
		var fk foreignKey
		if err := rows.Scan(&fk.column, &fk.refTable); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

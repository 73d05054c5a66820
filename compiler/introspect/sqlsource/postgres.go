package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/postgres"

	"github.com/graphforge/graphforge/schema/field"
)

// postgresInspector inspects the public schema through the
// information_schema catalog views.
type postgresInspector struct {
	db *sql.DB
}

func (i *postgresInspector) tables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
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

func (i *postgresInspector) columns(ctx context.Context, table string) ([]Column, error) {
	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.udt_name,
			c.is_nullable,
			c.datetime_precision,
			COALESCE(pk.is_pk, false)
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.table_name, kcu.column_name, true AS is_pk
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON tc.constraint_name = kcu.constraint_name
			 AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
			  AND tc.table_schema = 'public'
		) pk ON c.table_name = pk.table_name AND c.column_name = pk.column_name
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position`
	rows, err := i.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type rawColumn struct {
		name     string
		dataType string
		udt      string
		primary  bool
		nullable bool
		prec     sql.NullInt64
	}
	var raws []rawColumn
	for rows.Next() {
		var (
			r        rawColumn
			nullable string
		)
		if err := rows.Scan(&r.name, &r.dataType, &r.udt, &nullable, &r.prec, &r.primary); err != nil {
			return nil, err
		}
		r.nullable = nullable == "YES"
		raws = append(raws, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := make([]Column, 0, len(raws))
	for _, r := range raws {
		info, err := i.typeInfo(ctx, r.dataType, r.udt, r.primary, r.prec)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", r.name, err)
		}
		cols = append(cols, Column{
			Name:    r.name,
			Info:    info,
			Null:    r.nullable,
			Primary: r.primary,
		})
	}
	return cols, nil
}

func (i *postgresInspector) typeInfo(ctx context.Context, dataType, udt string, primary bool, prec sql.NullInt64) (field.TypeInfo, error) {
	if primary {
		if strings.EqualFold(dataType, postgres.TypeUUID) {
			return field.TypeInfo{Type: field.TypeBinaryID}, nil
		}
		return field.TypeInfo{Type: field.TypeID}, nil
	}
	usec := prec.Valid && prec.Int64 > 0
	switch strings.ToLower(dataType) {
	case postgres.TypeBoolean, postgres.TypeBool:
		return field.TypeInfo{Type: field.TypeBool}, nil
	case postgres.TypeSmallInt, postgres.TypeInteger, postgres.TypeBigInt, postgres.TypeInt,
		postgres.TypeSerial, postgres.TypeBigSerial, postgres.TypeSmallSerial:
		return field.TypeInfo{Type: field.TypeInt}, nil
	case postgres.TypeReal, postgres.TypeDouble, postgres.TypeFloat:
		return field.TypeInfo{Type: field.TypeFloat}, nil
	case postgres.TypeNumeric, postgres.TypeDecimal, postgres.TypeMoney:
		return field.TypeInfo{Type: field.TypeDecimal}, nil
	case postgres.TypeDate:
		return field.TypeInfo{Type: field.TypeDate}, nil
	case postgres.TypeTime, postgres.TypeTimeWTZ, postgres.TypeTimeWOTZ:
		return field.TypeInfo{Type: field.TypeTime}, nil
	case postgres.TypeTimestamp, postgres.TypeTimestampWOTZ:
		if usec {
			return field.TypeInfo{Type: field.TypeNaiveDatetimeUsec}, nil
		}
		return field.TypeInfo{Type: field.TypeNaiveDatetime}, nil
	case postgres.TypeTimestampTZ, postgres.TypeTimestampWTZ:
		if usec {
			return field.TypeInfo{Type: field.TypeUTCDatetimeUsec}, nil
		}
		return field.TypeInfo{Type: field.TypeUTCDatetime}, nil
	case postgres.TypeUUID:
		return field.TypeInfo{Type: field.TypeBinaryID}, nil
	case postgres.TypeJSON, postgres.TypeJSONB:
		return field.TypeInfo{Type: field.TypeMapAny}, nil
	case postgres.TypeArray:
		return field.TypeInfo{Type: field.TypeArray}, nil
	case postgres.TypeCharacter, postgres.TypeChar, postgres.TypeCharVar,
		postgres.TypeVarChar, postgres.TypeText:
		return field.TypeInfo{Type: field.TypeString}, nil
	case postgres.TypeUserDefined:
		values, err := i.enumValues(ctx, udt)
		if err != nil {
			return field.TypeInfo{}, err
		}
		if len(values) == 0 {
			return field.TypeInfo{Type: field.TypeOther}, nil
		}
		return field.TypeInfo{Type: field.TypeEnum, Enums: values}, nil
	default:
		return field.TypeInfo{Type: field.TypeOther}, nil
	}
}

// enumValues resolves the labels of a user-defined enum type, in sort
// order. A non-enum user-defined type yields no labels.
func (i *postgresInspector) enumValues(ctx context.Context, udt string) ([]string, error) {
	const query = `
		SELECT e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON e.enumtypid = t.oid
		WHERE t.typname = $1
		ORDER BY e.enumsortorder`
	rows, err := i.db.QueryContext(ctx, query, udt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (i *postgresInspector) foreignKeys(ctx context.Context, table string) ([]foreignKey, error) {
	const query = `
		SELECT kcu.column_name, ccu.table_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON ccu.constraint_name = tc.constraint_name
		 AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = 'public'
		  AND tc.table_name = $1
		ORDER BY kcu.column_name`
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

package storage

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/nonibytes/metricexpr/metricexpr/field"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts the database a field catalog is discovered from.
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// Columns lists the columns of table in declaration order. A missing
	// table yields an empty slice, not an error.
	Columns(ctx context.Context, db *sql.DB, table string) ([]Column, error)
}

// Column is a table column as reported by the backend.
type Column struct {
	Name     string
	Type     string
	Position int
	NotNull  bool
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether table is a plain identifier.
func ValidTableName(table string) bool {
	return tableNameRe.MatchString(table)
}

// DataTypeFor maps a declared SQL column type onto a field data type.
// Unknown declarations fall back to SQLite's affinity rules.
func DataTypeFor(sqlType string) field.DataType {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	switch t {
	case "double", "double precision", "float8", "real", "numeric", "decimal", "money":
		return field.TypeDouble
	case "float", "float4":
		return field.TypeFloat
	case "bigint", "int8", "bigserial":
		return field.TypeLong
	case "integer", "int", "int4", "serial":
		return field.TypeInteger
	case "smallint", "int2", "smallserial":
		return field.TypeShort
	case "tinyint":
		return field.TypeByte
	case "boolean", "bool":
		return field.TypeBoolean
	case "date", "datetime", "time", "timestamp", "timestamptz",
		"timestamp with time zone", "timestamp without time zone":
		return field.TypeDate
	case "text", "clob":
		return field.TypeText
	}

	switch {
	case strings.Contains(t, "int"):
		return field.TypeLong
	case strings.Contains(t, "real"), strings.Contains(t, "floa"), strings.Contains(t, "doub"):
		return field.TypeDouble
	case strings.Contains(t, "timestamp"):
		return field.TypeDate
	default:
		return field.TypeKeyword
	}
}

package database

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the string-level differences between supported SQL
// dialects. It is pure string manipulation, shared between the query
// builder here and the SQL output writer.
type Dialect interface {
	// Name returns the lowercase driver name ("mysql", "postgres",
	// "sqlite"). Used for output metadata only, never for branching.
	Name() string
	// QuoteIdent quotes a table, column or schema identifier.
	QuoteIdent(s string) string
	// SchemaPrefix returns the "schema." prefix for a qualified table
	// reference, or "" for dialects without schema namespaces.
	SchemaPrefix(schema string) string
	// SQLLiteral renders a canonical-model value as a SQL literal.
	SQLLiteral(v any) string
}

// DialectFor returns the dialect for a driver name, defaulting to MySQL.
func DialectFor(driver string) Dialect {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return PostgresDialect{}
	case "sqlite", "sqlite3":
		return SQLiteDialect{}
	default:
		return MySQLDialect{}
	}
}

type baseDialect struct{}

// sqlLiteral renders the dialect-independent literal forms; jsonLiteral is
// the per-dialect hook for object and array values.
func (baseDialect) sqlLiteral(v any, jsonLiteral func(string) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []any, map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return "NULL"
		}
		return jsonLiteral(strings.ReplaceAll(string(b), "'", "''"))
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", val), "'", "''") + "'"
	}
}

// MySQLDialect quotes with backticks and renders JSON as a plain string
// literal.
type MySQLDialect struct{ baseDialect }

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) QuoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func (d MySQLDialect) SchemaPrefix(schema string) string {
	return d.QuoteIdent(schema) + "."
}

func (d MySQLDialect) SQLLiteral(v any) string {
	return d.sqlLiteral(v, func(s string) string { return "'" + s + "'" })
}

// PostgresDialect quotes with double quotes and casts JSON literals to
// jsonb.
type PostgresDialect struct{ baseDialect }

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (d PostgresDialect) SchemaPrefix(schema string) string {
	return d.QuoteIdent(schema) + "."
}

func (d PostgresDialect) SQLLiteral(v any) string {
	return d.sqlLiteral(v, func(s string) string { return "'" + s + "'::jsonb" })
}

// SQLiteDialect quotes with double quotes; SQLite has no schema
// namespace, so the prefix is empty.
type SQLiteDialect struct{ baseDialect }

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (SQLiteDialect) SchemaPrefix(string) string { return "" }

func (d SQLiteDialect) SQLLiteral(v any) string {
	return d.sqlLiteral(v, func(s string) string { return "'" + s + "'" })
}

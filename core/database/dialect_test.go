package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, "mysql", DialectFor("mysql").Name())
	assert.Equal(t, "postgres", DialectFor("postgresql").Name())
	assert.Equal(t, "sqlite", DialectFor("sqlite3").Name())
	assert.Equal(t, "mysql", DialectFor("something-else").Name())
}

func TestSQLLiteral(t *testing.T) {
	my := MySQLDialect{}
	pg := PostgresDialect{}

	tests := []struct {
		name    string
		dialect Dialect
		in      any
		want    string
	}{
		{"null", my, nil, "NULL"},
		{"true", my, true, "TRUE"},
		{"false", my, false, "FALSE"},
		{"number", my, 19.99, "19.99"},
		{"integer-valued number", my, float64(42), "42"},
		{"string", my, "plain", "'plain'"},
		{"string with quote", my, "O'Brien", "'O''Brien'"},
		{"json object mysql", my, map[string]any{"a": float64(1)}, `'{"a":1}'`},
		{"json object postgres", pg, map[string]any{"a": float64(1)}, `'{"a":1}'::jsonb`},
		{"json array postgres", pg, []any{float64(1), float64(2)}, `'[1,2]'::jsonb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.SQLLiteral(tt.in))
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`items`", MySQLDialect{}.QuoteIdent("items"))
	assert.Equal(t, "`weird``name`", MySQLDialect{}.QuoteIdent("weird`name"))
	assert.Equal(t, `"items"`, PostgresDialect{}.QuoteIdent("items"))
	assert.Equal(t, `"items"`, SQLiteDialect{}.QuoteIdent("items"))
}

func TestSchemaPrefix(t *testing.T) {
	assert.Equal(t, "`staging`.", MySQLDialect{}.SchemaPrefix("staging"))
	assert.Equal(t, `"staging".`, PostgresDialect{}.SchemaPrefix("staging"))
	assert.Equal(t, "", SQLiteDialect{}.SchemaPrefix("staging"))
}

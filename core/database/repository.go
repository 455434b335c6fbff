package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"diffly/core/row"

	"gorm.io/gorm"
)

// Repository fetches a table's rows and decodes them into the canonical
// value model. It implements diff.RowRepository.
type Repository struct {
	db      *gorm.DB
	dialect Dialect
}

// NewRepository wraps an open connection with the dialect matching its
// driver.
func NewRepository(db *gorm.DB, driver string) *Repository {
	return &Repository{db: db, dialect: DialectFor(driver)}
}

// FetchRows selects every row of a table, ordered by primary key for a
// stable scan, and decodes the result set. Excluded columns are stripped
// during decoding so callers only ever see the comparable column set.
func (r *Repository) FetchRows(ctx context.Context, schema, table string, pkCols, excluded []string) ([]row.Map, error) {
	query := r.buildSelect(schema, table, pkCols)

	rows, err := r.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows from %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	decoded, err := decodeRows(rows, excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rows from %s.%s: %w", schema, table, err)
	}
	return decoded, nil
}

// buildSelect produces "SELECT * FROM <schema>.<table> ORDER BY <pk>".
// ORDER BY is omitted for an empty PK list to avoid a syntax error.
func (r *Repository) buildSelect(schema, table string, pkCols []string) string {
	from := r.dialect.SchemaPrefix(schema) + r.dialect.QuoteIdent(table)
	if len(pkCols) == 0 {
		return "SELECT * FROM " + from
	}
	quoted := make([]string, 0, len(pkCols))
	for _, c := range pkCols {
		quoted = append(quoted, r.dialect.QuoteIdent(c))
	}
	return "SELECT * FROM " + from + " ORDER BY " + strings.Join(quoted, ", ")
}

// decodeRows scans a result set into canonical row maps.
func decodeRows(rows *sql.Rows, excluded []string) ([]row.Map, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, c := range excluded {
		skip[c] = struct{}{}
	}

	var result []row.Map
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		r := make(row.Map, len(cols))
		for i, col := range cols {
			if _, drop := skip[col]; drop {
				continue
			}
			r[col] = decodeValue(raw[i], types[i].DatabaseTypeName())
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// decodeValue maps one driver value into the canonical model: numbers as
// float64, booleans as bool, JSON columns as nested structures,
// timestamps as RFC 3339 strings, everything else as string.
func decodeValue(v any, dbType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case int64:
		if isBoolType(dbType) {
			return val != 0
		}
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case []byte:
		return decodeText(string(val), dbType)
	case string:
		return decodeText(val, dbType)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// decodeText resolves the text-ish driver values: the mysql driver returns
// numeric and JSON columns as []byte, so the column type decides the
// canonical kind.
func decodeText(s, dbType string) any {
	switch {
	case isJSONType(dbType):
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return parsed
		}
		return s
	case isNumericType(dbType):
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err == nil {
			return f
		}
		return s
	case isBoolType(dbType):
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return s
	}
}

func isJSONType(dbType string) bool {
	t := strings.ToUpper(dbType)
	return t == "JSON" || t == "JSONB"
}

func isBoolType(dbType string) bool {
	t := strings.ToUpper(dbType)
	return t == "BOOL" || t == "BOOLEAN" || t == "TINYINT(1)"
}

func isNumericType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL",
		"INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
		"INT2", "INT4", "INT8", "FLOAT4", "FLOAT8", "UNSIGNED BIGINT":
		return true
	default:
		return false
	}
}

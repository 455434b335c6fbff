package output

import (
	"fmt"
	"sort"
	"strings"

	"diffly/core/database"
	"diffly/core/diff"
	"diffly/core/row"
)

// SQLWriter renders the changeset as a migration script for the target
// schema: deletes, then updates, then inserts per table, wrapped in a
// single transaction.
type SQLWriter struct{}

func (SQLWriter) Format(cs *diff.Changeset) (string, error) {
	dialect := database.DialectFor(cs.Driver)
	var sql strings.Builder

	fmt.Fprintf(&sql, "-- Changeset: %s\n", cs.ChangesetID)
	fmt.Fprintf(&sql, "-- Source: %s\n", cs.SourceSchema)
	fmt.Fprintf(&sql, "-- Target: %s\n", cs.TargetSchema)
	fmt.Fprintf(&sql, "-- Driver: %s\n", cs.Driver)
	fmt.Fprintf(&sql, "-- Generated: %s\n", cs.CreatedAt)
	fmt.Fprintf(&sql, "-- Summary: %d inserts, %d updates, %d deletes\n",
		cs.Summary.TotalInserts, cs.Summary.TotalUpdates, cs.Summary.TotalDeletes)
	sql.WriteString("\nBEGIN;\n\n")

	target := dialect.SchemaPrefix(cs.TargetSchema)

	for _, table := range cs.Tables {
		if table.IsEmpty() {
			continue
		}

		sql.WriteString("-- ============================================\n")
		fmt.Fprintf(&sql, "-- Table: %s\n", table.TableName)
		sql.WriteString("-- ============================================\n\n")

		qualified := target + dialect.QuoteIdent(table.TableName)

		for _, del := range table.Deletes {
			fmt.Fprintf(&sql, "DELETE FROM %s\n", qualified)
			fmt.Fprintf(&sql, "  WHERE %s;\n\n", pkWhereClause(del.PK, dialect))
		}

		for _, upd := range table.Updates {
			fmt.Fprintf(&sql, "UPDATE %s\n", qualified)
			fmt.Fprintf(&sql, "  SET %s\n", setClause(upd.ChangedColumns, dialect))
			fmt.Fprintf(&sql, "  WHERE %s;\n\n", pkWhereClause(upd.PK, dialect))
		}

		for _, ins := range table.Inserts {
			cols, vals := insertColumnsValues(ins.Data, dialect)
			fmt.Fprintf(&sql, "INSERT INTO %s (%s)\n", qualified, cols)
			fmt.Fprintf(&sql, "  VALUES (%s);\n\n", vals)
		}
	}

	sql.WriteString("COMMIT;\n")
	return sql.String(), nil
}

func (SQLWriter) Extension() string { return "sql" }

// pkWhereClause renders a primary-key equality predicate, with IS NULL
// for null key parts. Columns are emitted in sorted order so the script
// is deterministic.
func pkWhereClause(pk row.Map, dialect database.Dialect) string {
	parts := make([]string, 0, len(pk))
	for _, col := range sortedKeys(pk) {
		colQ := dialect.QuoteIdent(col)
		if pk[col] == nil {
			parts = append(parts, colQ+" IS NULL")
		} else {
			parts = append(parts, colQ+" = "+dialect.SQLLiteral(pk[col]))
		}
	}
	return strings.Join(parts, " AND ")
}

func setClause(columns []diff.ColumnDiff, dialect database.Dialect) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, dialect.QuoteIdent(c.Column)+" = "+dialect.SQLLiteral(c.After))
	}
	return strings.Join(parts, ", ")
}

func insertColumnsValues(data row.Map, dialect database.Dialect) (string, string) {
	keys := sortedKeys(data)
	cols := make([]string, 0, len(keys))
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, dialect.QuoteIdent(k))
		vals = append(vals, dialect.SQLLiteral(data[k]))
	}
	return strings.Join(cols, ", "), strings.Join(vals, ", ")
}

func sortedKeys(m row.Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

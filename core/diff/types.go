package diff

import (
	"context"

	"diffly/core/row"
)

// RowRepository is the row-fetch capability the engine consumes. Concrete
// implementations live in core/database; instrumentation wrappers in
// core/monitor. Returned rows already have excluded columns stripped and
// values decoded into the canonical value model.
type RowRepository interface {
	FetchRows(ctx context.Context, schema, table string, pkCols, excluded []string) ([]row.Map, error)
}

// Differ is the table diff algorithm port, implemented by TableDiffer and
// wrapped by the monitoring decorator.
type Differ interface {
	DiffTable(source, target []row.Map, pkCols []string, tableName string) TableDiff
}

// TableConfig describes one table to diff: its name, ordered primary-key
// columns, and columns to exclude from comparison (volatile columns such
// as updated_at).
type TableConfig struct {
	// Name is the table name, identical in source and target schemas.
	Name string `mapstructure:"name" json:"name"`
	// PrimaryKey is the ordered, non-empty list of PK column names.
	PrimaryKey []string `mapstructure:"primary_key" json:"primary_key"`
	// ExcludedColumns are stripped before fetching rows.
	ExcludedColumns []string `mapstructure:"excluded_columns" json:"excluded_columns,omitempty"`
}

// TableDiff is the insert/update/delete classification of one table's rows
// between source and target. A row's PK key appears in exactly one of the
// three collections or in neither (unchanged).
type TableDiff struct {
	TableName  string      `json:"table_name"`
	PrimaryKey []string    `json:"primary_key"`
	Inserts    []RowChange `json:"inserts"`
	Updates    []RowUpdate `json:"updates"`
	Deletes    []RowChange `json:"deletes"`
}

// IsEmpty reports whether the diff holds no changes.
func (d TableDiff) IsEmpty() bool {
	return len(d.Inserts) == 0 && len(d.Updates) == 0 && len(d.Deletes) == 0
}

// RowChange is a full row present on only one side: an insert (source only)
// or a delete (target only).
type RowChange struct {
	PK   row.Map `json:"pk"`
	Data row.Map `json:"data"`
}

// RowUpdate is a row present on both sides whose non-PK columns differ.
// Before is the target's row, After the source's.
type RowUpdate struct {
	PK             row.Map      `json:"pk"`
	Before         row.Map      `json:"before"`
	After          row.Map      `json:"after"`
	ChangedColumns []ColumnDiff `json:"changed_columns"`
}

// ColumnDiff is a single changed cell within an update.
type ColumnDiff struct {
	Column string `json:"column"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

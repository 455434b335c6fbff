package row

import (
	"encoding/json"
	"strings"
)

// NullKeyPart is the sentinel rendered into a PK key for a missing
// primary-key column. Distinct from "null", which an explicit JSON null
// renders as.
const NullKeyPart = "NULL"

// Map is one database row: column name to decoded value.
// Values are nil, bool, float64, string, []any or map[string]any.
type Map = map[string]any

// PKKey builds the deterministic key string for a row from its primary-key
// columns: one part per column, joined with "|". String values are used
// raw; anything else is rendered as canonical JSON. A row missing a PK
// column contributes the NULL sentinel instead of failing.
func PKKey(r Map, pkCols []string) string {
	parts := make([]string, 0, len(pkCols))
	for _, col := range pkCols {
		v, ok := r[col]
		if !ok {
			parts = append(parts, NullKeyPart)
			continue
		}
		if s, isStr := v.(string); isStr {
			parts = append(parts, s)
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			parts = append(parts, NullKeyPart)
			continue
		}
		parts = append(parts, string(b))
	}
	return strings.Join(parts, "|")
}

// ExtractPK returns the PK column subset of a row. Columns absent from the
// row are omitted rather than filled with nil, matching the key rendering.
func ExtractPK(r Map, pkCols []string) Map {
	pk := make(Map, len(pkCols))
	for _, col := range pkCols {
		if v, ok := r[col]; ok {
			pk[col] = v
		}
	}
	return pk
}

// CanonicalJSON serialises a row to its canonical form: JSON with object
// keys sorted recursively (encoding/json sorts map keys at every level).
// Two rows with identical content produce identical bytes regardless of
// how the maps were populated.
func CanonicalJSON(r Map) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		// Rows come from JSON decoding or the database mapper, both of
		// which only produce marshalable values.
		return nil
	}
	return b
}

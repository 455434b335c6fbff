// Package fingerprint computes a stable content hash over a collection of
// rows, used to detect "nothing changed" for a table without comparing
// rows one by one.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"diffly/core/row"
)

// Compute returns the SHA-256 fingerprint of a row collection as lowercase
// hex. Each row is serialised to its canonical JSON form, the row strings
// are sorted so the result does not depend on fetch order, then joined with
// a newline and hashed. An empty collection yields the hash of the empty
// string, a well-defined value rather than an error.
func Compute(rows []row.Map) string {
	rowStrings := make([]string, 0, len(rows))
	for _, r := range rows {
		rowStrings = append(rowStrings, string(row.CanonicalJSON(r)))
	}
	sort.Strings(rowStrings)

	sum := sha256.Sum256([]byte(strings.Join(rowStrings, "\n")))
	return hex.EncodeToString(sum[:])
}

package munge

import (
	"strings"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// Dedupe removes exact-duplicate rows (equal on every schema column),
// keeping the first occurrence. Order is preserved.
func Dedupe(t *table.Table) *table.Table {
	seen := make(map[string]bool, t.Len())
	return t.Filter(func(r table.Row) bool {
		k := rowKey(r, t.Columns)
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

// rowKey builds a collision-safe string key over the schema columns.
// Nulls and empty strings must not collide, and cell boundaries are
// escaped so adjacent values can't merge.
func rowKey(r table.Row, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		v := r.Get(c)
		if v.Valid {
			b.WriteByte('v')
			b.WriteString(strings.ReplaceAll(v.String, "\x00", "\x00\x00"))
		} else {
			b.WriteByte('n')
		}
		b.WriteByte('\x00')
		b.WriteByte('\x1f')
	}
	return b.String()
}

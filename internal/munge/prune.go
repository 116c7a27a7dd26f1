package munge

import (
	"go.uber.org/zap"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// DropEmptyColumns removes columns whose values are null in every row.
// An empty input table keeps its schema: with no rows there is no
// evidence a column is dead. Warns when more than half the schema is
// dropped, which usually means the wrong export was fed in.
func DropEmptyColumns(t *table.Table) *table.Table {
	if t.Len() == 0 {
		return t
	}

	var dead []string
	for _, c := range t.Columns {
		empty := true
		for _, r := range t.Rows {
			if !r.IsNull(c) {
				empty = false
				break
			}
		}
		if empty {
			dead = append(dead, c)
		}
	}
	if len(dead) == 0 {
		return t
	}

	if len(dead)*2 > len(t.Columns) {
		zap.L().Warn("more than half of columns are entirely empty",
			zap.Int("columns", len(t.Columns)),
			zap.Int("dropped", len(dead)),
		)
	}
	return t.DropColumns(dead...)
}

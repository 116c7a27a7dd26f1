package munge

import (
	"strings"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// orgColumns are the organizational-identifier columns the punctuation
// pass cleans.
var orgColumns = []string{
	"assigning_districts",
	"assigning_schools",
	"assigning_groups",
	"assigning_classes",
}

// strayChars is the fixed punctuation set stripped from identifiers.
// These show up when IDs are copied out of spreadsheets or quoted CSV.
const strayChars = `.'",;:!?`

// StripPunctuation removes stray punctuation from the organizational
// identifier columns of every row. Values that become empty after
// stripping turn into nulls. Only columns present in the schema are
// touched; the input table is not mutated.
func StripPunctuation(t *table.Table) *table.Table {
	var cols []string
	for _, c := range orgColumns {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return t
	}

	out := &table.Table{Columns: t.Columns}
	for _, r := range t.Rows {
		nr := make(table.Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		for _, c := range cols {
			v := nr.Get(c)
			if !v.Valid {
				continue
			}
			cleaned := stripStray(v.String)
			if cleaned == "" {
				nr[c] = table.Null()
			} else {
				nr[c] = table.V(cleaned)
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

func stripStray(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(strayChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

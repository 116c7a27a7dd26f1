// Package munge holds the single-pass table-cleaning utilities that
// run around the account and assessment filters: opt-out removal,
// identifier normalization, empty-column pruning, deduplication, and
// grade canonicalization.
package munge

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// idColumnPriority lists identifier column names checked in order when
// matching opt-outs; the first one present in the schema wins.
var idColumnPriority = []string{"assessment_pid", "pid", "participant_id"}

// LoadOptOuts reads an opt-out list: one identifier per line, or the
// first field of each line for single-column CSV exports. Blank lines
// and a leading header of "pid"-like names are ignored.
func LoadOptOuts(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "munge: open opt-out list %s", path)
	}
	defer f.Close() //nolint:errcheck

	ids := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || isIDHeader(line) {
			continue
		}
		ids[normID(line)] = true
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "munge: read opt-out list %s", path)
	}
	return ids, nil
}

func isIDHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, c := range idColumnPriority {
		if lower == c {
			return true
		}
	}
	return false
}

// RemoveOptOuts drops rows whose identifier appears in the opt-out
// set. Returns the reduced table and the column it matched against;
// when no identifier column is present the table is returned
// unchanged with an empty column name.
func RemoveOptOuts(t *table.Table, ids map[string]bool) (*table.Table, string) {
	if len(ids) == 0 {
		return t, ""
	}
	col := ""
	for _, c := range idColumnPriority {
		if t.HasColumn(c) {
			col = c
			break
		}
	}
	if col == "" {
		return t, ""
	}

	out := t.Filter(func(r table.Row) bool {
		v := r.Get(col)
		return !v.Valid || !ids[normID(v.String)]
	})
	return out, col
}

// normID canonicalizes identifiers for comparison: NFC-normalized and
// whitespace-trimmed. Exports from different tools disagree on Unicode
// composition for accented names.
func normID(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

package table

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// na markers treated as missing on read. Survey exports come from R
// tooling, which writes empty strings or literal "NA" for nulls.
var naMarkers = map[string]bool{
	"":    true,
	"NA":  true,
	"N/A": true,
}

// ReadCSV loads a table from a CSV file. The first record is the
// schema; empty and "NA" cells become nulls. Short records are
// padded with nulls so ragged exports don't fail the whole file.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := readCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "table: read %s", path)
	}
	return t, nil
}

func readCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, eris.New("table: empty file, no header")
	}
	if err != nil {
		return nil, eris.Wrap(err, "table: read header")
	}

	t := &Table{Columns: make([]string, len(header))}
	for i, c := range header {
		t.Columns[i] = strings.TrimSpace(c)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "table: read record")
		}
		t.Rows = append(t.Rows, rowFromRecord(t.Columns, rec))
	}

	return t, nil
}

func rowFromRecord(columns, rec []string) Row {
	row := make(Row, len(columns))
	for i, c := range columns {
		if i >= len(rec) {
			row[c] = Null()
			continue
		}
		cell := rec[i]
		if naMarkers[strings.TrimSpace(cell)] {
			row[c] = Null()
		} else {
			row[c] = V(cell)
		}
	}
	return row
}

// WriteCSV writes the table to a CSV file. Nulls become empty fields.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "table: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return eris.Wrap(err, "table: write header")
	}

	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			v := row.Get(c)
			if v.Valid {
				rec[i] = v.String
			} else {
				rec[i] = ""
			}
		}
		if err := w.Write(rec); err != nil {
			return eris.Wrap(err, "table: write record")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "table: flush %s", path)
	}
	return nil
}

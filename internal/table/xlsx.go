package table

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX loads a table from the first sheet of an XLSX workbook.
// The first row is the schema; the same NA rules as ReadCSV apply.
func ReadXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("table: xlsx %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("table: xlsx %s first sheet is empty", path)
	}

	header := rowToStrings(sheet.Rows[0])
	t := &Table{Columns: make([]string, len(header))}
	for i, c := range header {
		t.Columns[i] = strings.TrimSpace(c)
	}

	for _, row := range sheet.Rows[1:] {
		t.Rows = append(t.Rows, rowFromRecord(t.Columns, rowToStrings(row)))
	}

	return t, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}

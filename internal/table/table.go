package table

// Value is a single nullable cell. Survey exports are untyped text;
// booleans and numbers arrive as strings and missing cells as nulls.
type Value struct {
	String string
	Valid  bool
}

// V wraps a non-null string value.
func V(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns the missing-value marker.
func Null() Value {
	return Value{}
}

// Row maps column name to cell value. Columns absent from the schema
// are absent from the map.
type Row map[string]Value

// Table is an ordered set of rows over a named-column schema.
// Filtering produces a new Table sharing the underlying row maps;
// rows are never mutated in place.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds an empty table with the given schema.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the schema contains the named column.
// Passes consult this before touching a column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. Cells for columns outside the schema are ignored
// by readers, so callers are expected to pass schema-shaped rows.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Filter returns a new table containing the rows for which keep
// returns true, in their original order. The schema is shared.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// DropColumns returns a new table without the named columns. Row maps
// are rebuilt so the dropped cells are not retained.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	out := &Table{}
	for _, c := range t.Columns {
		if !drop[c] {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range t.Rows {
		nr := make(Row, len(out.Columns))
		for _, c := range out.Columns {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Clone returns a deep copy with an independent schema slice and row maps.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Get returns the cell for the named column, or null when the column
// is absent from the row.
func (r Row) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Null()
}

// IsNull reports whether the named cell is missing.
func (r Row) IsNull(name string) bool {
	return !r.Get(name).Valid
}

// Equal reports whether two rows agree on every column in the schema.
func Equal(a, b Row, columns []string) bool {
	for _, c := range columns {
		if a.Get(c) != b.Get(c) {
			return false
		}
	}
	return true
}

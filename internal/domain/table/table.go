// Package table models the store's tabular blobs: an ordered header plus
// rows of string cells. A missing cell and an empty cell both read as "".
package table

// Kind names one of the four canonical tables. The kind is also the
// blob name in the store.
type Kind string

const (
	KindProjects   Kind = "Projects"
	KindEmployees  Kind = "Employees"
	KindReports    Kind = "Reports"
	KindSignatures Kind = "WeeklySignatures"
)

// Row maps column name to cell value. Absent key means null/absent.
type Row map[string]string

// Get returns the cell value, "" when absent.
func (r Row) Get(col string) string { return r[col] }

// Has reports whether the cell is present and non-empty.
func (r Row) Has(col string) bool { return r[col] != "" }

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory copy of one store blob. Columns carry the exact
// header order; round-tripping through the CSV codec preserves it.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given column order.
func New(cols ...string) *Table {
	return &Table{Columns: append([]string(nil), cols...)}
}

// HasColumn reports whether the header contains col.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// ColumnEmpty reports whether every row has a null/empty cell for col.
// Vacuously true for zero rows.
func (t *Table) ColumnEmpty(col string) bool {
	for _, r := range t.Rows {
		if r.Has(col) {
			return false
		}
	}
	return true
}

// Append adds a row to the table.
func (t *Table) Append(r Row) { t.Rows = append(t.Rows, r) }

// Clone returns a deep copy, used to keep normalization side-effect free.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

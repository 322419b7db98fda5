package table

import "fmt"

// Table is an ordered grid of cells: a fixed declared column order plus rows
// of Values aligned to that order. Tables are treated as immutable: every
// transformation builds a fresh Table and never aliases a predecessor's rows.
type Table struct {
	cols []string
	rows [][]Value
}

// New builds a Table from a column list and rows. Every row must match the
// column count exactly; ragged input is a caller bug at this layer (sources
// pad before constructing).
func New(cols []string, rows [][]Value) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("table: row %d has %d cells, want %d", i, len(row), len(cols))
		}
	}
	t := &Table{
		cols: append([]string(nil), cols...),
		rows: make([][]Value, len(rows)),
	}
	for i, row := range rows {
		t.rows[i] = append([]Value(nil), row...)
	}
	return t, nil
}

// FromStrings builds a Table whose cells are all string values. Convenient
// for sources, which deliver raw text cells.
func FromStrings(cols []string, rows [][]string) (*Table, error) {
	vals := make([][]Value, len(rows))
	for i, row := range rows {
		vals[i] = make([]Value, len(row))
		for j, s := range row {
			vals[i][j] = String(s)
		}
	}
	return New(cols, vals)
}

// Columns returns a copy of the declared column order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnIndex returns the position of the named column, or false if absent.
// When a raw source carries duplicate headers, the first match wins.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.cols {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at (row, col index).
func (t *Table) Cell(row, col int) Value {
	return t.rows[row][col]
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Lookup returns the value of the named column in row i.
func (t *Table) Lookup(i int, name string) (Value, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return Missing, false
	}
	return t.rows[i][idx], true
}

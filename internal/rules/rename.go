package rules

import (
	"fmt"

	"github.com/couchcryptid/tidytable/internal/table"
)

// Mapping renames one column, addressed either by its current name or by
// positional index. Positional addressing is how scraped tables with
// duplicate or garbage headers get workable names.
type Mapping struct {
	From    string
	Index   int
	To      string
	byIndex bool
}

// ByName maps a current column name to a new one.
func ByName(from, to string) Mapping {
	return Mapping{From: from, To: to}
}

// ByIndex maps a zero-based column position to a new name.
func ByIndex(index int, to string) Mapping {
	return Mapping{Index: index, To: to, byIndex: true}
}

// Rename relabels columns without touching cell values or row order.
type Rename struct {
	mappings []Mapping
}

func NewRename(mappings ...Mapping) *Rename {
	return &Rename{mappings: mappings}
}

func (r *Rename) Name() string { return "rename" }

func (r *Rename) Apply(t *table.Table) (*table.Table, error) {
	cols := t.Columns()

	// Resolve every mapping before relabeling anything.
	targets := make([]int, len(r.mappings))
	for i, m := range r.mappings {
		if m.byIndex {
			if m.Index < 0 || m.Index >= len(cols) {
				return nil, &table.SchemaError{Rule: r.Name(), Column: fmt.Sprintf("#%d", m.Index)}
			}
			targets[i] = m.Index
			continue
		}
		idx, ok := t.ColumnIndex(m.From)
		if !ok {
			return nil, &table.SchemaError{Rule: r.Name(), Column: m.From}
		}
		targets[i] = idx
	}

	for i, m := range r.mappings {
		cols[targets[i]] = m.To
	}

	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return table.New(cols, rows)
}

package rules

import (
	"github.com/couchcryptid/tidytable/internal/table"
)

// FillDown replaces blank cells in the designated columns with the nearest
// preceding non-blank value, in original row order. This carries a category
// stated once (an airline name, a year) forward through the rows it covers.
//
// Boundary policy: a column whose first rows are blank keeps them missing,
// since there is nothing to carry. A second application is a no-op on those cells,
// which keeps the rule idempotent.
type FillDown struct {
	Columns []string
}

func (r *FillDown) Name() string { return "fill_down" }

func (r *FillDown) Apply(t *table.Table) (*table.Table, error) {
	idxs, err := columnIndexes(r.Name(), t, r.Columns)
	if err != nil {
		return nil, err
	}

	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}

	for _, c := range idxs {
		last := table.Missing
		for i := range rows {
			if isBlank(rows[i][c]) {
				if last.IsMissing() {
					rows[i][c] = table.Missing
					continue
				}
				rows[i][c] = last
				continue
			}
			last = rows[i][c]
		}
	}
	return table.New(t.Columns(), rows)
}

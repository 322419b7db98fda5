package rules

import (
	"strings"

	"github.com/couchcryptid/tidytable/internal/table"
)

// PivotLong converts the designated wide columns into two columns: a key
// holding the former column name and a value holding the former cell. One
// input row becomes one output row per pivoted column; all other columns are
// repeated unchanged.
type PivotLong struct {
	Columns  []string
	NamesTo  string
	ValuesTo string
	// DropMissing drops generated rows whose value is blank
	// (values_drop_na semantics).
	DropMissing bool
	// CleanKeys lower-cases the key and normalizes separators to underscores,
	// so "San Francisco" and "San-Francisco" both become "san_francisco".
	CleanKeys bool
}

func (r *PivotLong) Name() string { return "pivot_long" }

func (r *PivotLong) Apply(t *table.Table) (*table.Table, error) {
	pivotIdxs, err := columnIndexes(r.Name(), t, r.Columns)
	if err != nil {
		return nil, err
	}

	pivoted := make(map[int]bool, len(pivotIdxs))
	for _, i := range pivotIdxs {
		pivoted[i] = true
	}

	oldCols := t.Columns()
	var keepIdxs []int
	var cols []string
	for i, c := range oldCols {
		if !pivoted[i] {
			keepIdxs = append(keepIdxs, i)
			cols = append(cols, c)
		}
	}
	cols = append(cols, r.NamesTo, r.ValuesTo)

	keys := make([]table.Value, len(pivotIdxs))
	for i, idx := range pivotIdxs {
		key := oldCols[idx]
		if r.CleanKeys {
			key = cleanKey(key)
		}
		keys[i] = table.String(key)
	}

	var rows [][]table.Value
	for i := 0; i < t.NumRows(); i++ {
		old := t.Row(i)
		for j, idx := range pivotIdxs {
			v := old[idx]
			if r.DropMissing && isBlank(v) {
				continue
			}
			row := make([]table.Value, 0, len(cols))
			for _, k := range keepIdxs {
				row = append(row, old[k])
			}
			row = append(row, keys[j], v)
			rows = append(rows, row)
		}
	}
	return table.New(cols, rows)
}

func cleanKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '/':
			return '_'
		}
		return r
	}, s)
}

package rules

import (
	"sort"

	"github.com/couchcryptid/tidytable/internal/table"
)

// SortKey orders rows by one column, ascending by default.
type SortKey struct {
	Column     string
	Descending bool
}

// Sort orders rows by one or more keys. The sort is stable: rows equal on
// all keys keep their original relative order. Missing values order after
// present values regardless of direction; when kinds differ, numbers order
// before strings.
type Sort struct {
	Keys []SortKey
}

func (r *Sort) Name() string { return "sort" }

func (r *Sort) Apply(t *table.Table) (*table.Table, error) {
	cols := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		cols[i] = k.Column
	}
	idxs, err := columnIndexes(r.Name(), t, cols)
	if err != nil {
		return nil, err
	}

	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		for ki, k := range r.Keys {
			va, vb := rows[a][idxs[ki]], rows[b][idxs[ki]]
			// Missing orders last regardless of direction.
			if va.IsMissing() || vb.IsMissing() {
				if va.IsMissing() == vb.IsMissing() {
					continue
				}
				return vb.IsMissing()
			}
			c := compareValues(va, vb)
			if c == 0 {
				continue
			}
			if k.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return table.New(t.Columns(), rows)
}

// compareValues returns -1, 0, or 1 for two present values. When kinds
// differ, numbers order before strings.
func compareValues(a, b table.Value) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a.Kind() {
	case table.KindNumber:
		na, _ := a.Num()
		nb, _ := b.Num()
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
	case table.KindString:
		sa, _ := a.Str()
		sb, _ := b.Str()
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return 0
}

func kindRank(v table.Value) int {
	switch v.Kind() {
	case table.KindNumber:
		return 0
	case table.KindString:
		return 1
	default:
		return 2
	}
}

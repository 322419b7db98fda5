package rules

import (
	"strings"

	"github.com/couchcryptid/tidytable/internal/table"
)

// NormalizeNull converts empty-string cells (and any configured placeholder
// tokens, e.g. "NA" or "NaN") to the explicit missing marker. With no
// columns designated it covers the whole table.
type NormalizeNull struct {
	Columns []string
	Tokens  []string
}

func (r *NormalizeNull) Name() string { return "normalize_null" }

func (r *NormalizeNull) Apply(t *table.Table) (*table.Table, error) {
	var idxs []int
	if len(r.Columns) == 0 {
		idxs = make([]int, t.NumCols())
		for i := range idxs {
			idxs[i] = i
		}
	} else {
		var err error
		idxs, err = columnIndexes(r.Name(), t, r.Columns)
		if err != nil {
			return nil, err
		}
	}

	nullTokens := make(map[string]bool, len(r.Tokens))
	for _, tok := range r.Tokens {
		nullTokens[tok] = true
	}

	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
		for _, c := range idxs {
			s, ok := rows[i][c].Str()
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" || nullTokens[s] {
				rows[i][c] = table.Missing
			}
		}
	}
	return table.New(t.Columns(), rows)
}

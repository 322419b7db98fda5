package rules

import (
	"github.com/couchcryptid/tidytable/internal/table"
)

// ColumnMatch selects rows whose named column equals a literal string.
type ColumnMatch struct {
	Column string
	Equals string
}

// DropRows removes rows matching any of the configured predicates: explicit
// positional indexes, fully-blank separator rows, header rows re-embedded as
// data, or a column-equals match.
type DropRows struct {
	Indexes         []int
	Blank           bool
	DuplicateHeader bool
	Match           *ColumnMatch
}

func (r *DropRows) Name() string { return "drop_rows" }

func (r *DropRows) Apply(t *table.Table) (*table.Table, error) {
	var matchIdx int
	if r.Match != nil {
		idxs, err := columnIndexes(r.Name(), t, []string{r.Match.Column})
		if err != nil {
			return nil, err
		}
		matchIdx = idxs[0]
	}

	dropIdx := make(map[int]bool, len(r.Indexes))
	for _, i := range r.Indexes {
		dropIdx[i] = true
	}
	cols := t.Columns()

	var rows [][]table.Value
	for i := 0; i < t.NumRows(); i++ {
		if dropIdx[i] {
			continue
		}
		row := t.Row(i)
		if r.Blank && allBlank(row) {
			continue
		}
		if r.DuplicateHeader && equalsHeader(row, cols) {
			continue
		}
		if r.Match != nil {
			if s, ok := row[matchIdx].Str(); ok && s == r.Match.Equals {
				continue
			}
		}
		rows = append(rows, row)
	}
	return table.New(cols, rows)
}

func allBlank(row []table.Value) bool {
	for _, v := range row {
		if !isBlank(v) {
			return false
		}
	}
	return true
}

// equalsHeader reports whether every cell string-equals its column label,
// the signature of a header row scraped back in as data.
func equalsHeader(row []table.Value, cols []string) bool {
	for i, v := range row {
		s, ok := v.Str()
		if !ok || s != cols[i] {
			return false
		}
	}
	return true
}

package rules

import (
	"fmt"
	"regexp"

	"github.com/couchcryptid/tidytable/internal/table"
)

// SplitColumn decomposes one column's string value into multiple new columns
// using a regular expression with capture groups. Group i fills output
// column i.
//
// Alignment policy: ALIGN-START. When the pattern yields fewer groups than
// declared output columns, groups fill from the first output column and the
// remainder are missing. A value that does not match at all (or is missing)
// produces missing in every output column.
type SplitColumn struct {
	column  string
	pattern *regexp.Regexp
	into    []string
	keep    bool
}

// NewSplitColumn compiles the pattern and validates the group arity against
// the declared output columns.
func NewSplitColumn(column, pattern string, into []string, keep bool) (*SplitColumn, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("split_column %s: %w", column, err)
	}
	if re.NumSubexp() == 0 {
		return nil, fmt.Errorf("split_column %s: pattern %q has no capture groups", column, pattern)
	}
	if re.NumSubexp() > len(into) {
		return nil, fmt.Errorf("split_column %s: pattern has %d groups but only %d output columns declared",
			column, re.NumSubexp(), len(into))
	}
	return &SplitColumn{column: column, pattern: re, into: into, keep: keep}, nil
}

func (r *SplitColumn) Name() string { return "split_column" }

func (r *SplitColumn) Apply(t *table.Table) (*table.Table, error) {
	idxs, err := columnIndexes(r.Name(), t, []string{r.column})
	if err != nil {
		return nil, err
	}
	src := idxs[0]

	// New columns take the source column's position; the source itself is
	// retained before them only when keep is set.
	oldCols := t.Columns()
	var cols []string
	cols = append(cols, oldCols[:src]...)
	if r.keep {
		cols = append(cols, oldCols[src])
	}
	cols = append(cols, r.into...)
	cols = append(cols, oldCols[src+1:]...)

	rows := make([][]table.Value, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		old := t.Row(i)
		parts := r.extract(old[src])

		row := make([]table.Value, 0, len(cols))
		row = append(row, old[:src]...)
		if r.keep {
			row = append(row, old[src])
		}
		row = append(row, parts...)
		row = append(row, old[src+1:]...)
		rows[i] = row
	}
	return table.New(cols, rows)
}

// extract runs the pattern against one cell, returning a value per output
// column aligned from the start.
func (r *SplitColumn) extract(v table.Value) []table.Value {
	out := make([]table.Value, len(r.into))
	for i := range out {
		out[i] = table.Missing
	}

	s, ok := v.Str()
	if !ok {
		return out
	}
	m := r.pattern.FindStringSubmatch(s)
	if m == nil {
		return out
	}
	for i, g := range m[1:] {
		if i >= len(out) {
			break
		}
		if g == "" {
			continue
		}
		out[i] = table.String(g)
	}
	return out
}

package rules

import (
	"strconv"
	"strings"

	"github.com/couchcryptid/tidytable/internal/table"
)

// FailureFunc receives each cell that could not be coerced. The pipeline
// wires it to structured logging and the conversion-error counter.
type FailureFunc func(column string, row int, raw string)

// CoerceType converts the designated columns from string to number. Sentinel
// tokens map to fixed values (a snowfall trace marker "T" coerces to 0) and
// thousands separators are stripped before parsing. A cell that still fails
// to parse becomes missing and is reported through the failure callback;
// one bad cell never aborts the pipeline.
type CoerceType struct {
	Columns   []string
	Sentinels map[string]float64
	OnFailure FailureFunc
}

func (r *CoerceType) Name() string { return "coerce_type" }

func (r *CoerceType) Apply(t *table.Table) (*table.Table, error) {
	idxs, err := columnIndexes(r.Name(), t, r.Columns)
	if err != nil {
		return nil, err
	}

	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}

	for ci, c := range idxs {
		colName := r.Columns[ci]
		for i := range rows {
			rows[i][c] = r.coerce(colName, i, rows[i][c])
		}
	}
	return table.New(t.Columns(), rows)
}

func (r *CoerceType) coerce(column string, row int, v table.Value) table.Value {
	if v.IsMissing() {
		return v
	}
	if _, ok := v.Num(); ok {
		return v
	}

	s, _ := v.Str()
	s = strings.TrimSpace(s)
	if s == "" {
		return table.Missing
	}
	if n, ok := r.Sentinels[s]; ok {
		return table.Number(n)
	}

	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		if r.OnFailure != nil {
			r.OnFailure(column, row, s)
		}
		return table.Missing
	}
	return table.Number(n)
}

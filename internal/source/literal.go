package source

import (
	"context"
	"errors"

	"github.com/couchcryptid/tidytable/internal/table"
)

// Literal is an inline table declared directly in code or in a pipeline spec.
// Used for datasets small enough to have no file source at all.
type Literal struct {
	Columns []string
	Rows    [][]string
}

func (s *Literal) Describe() string { return "literal" }

func (s *Literal) Extract(_ context.Context) (*table.Table, error) {
	if len(s.Columns) == 0 {
		return nil, &table.SourceError{Source: s.Describe(), Err: errors.New("no columns declared")}
	}
	// Pad ragged rows so sloppy inline declarations still load.
	rows := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = padRow(r, len(s.Columns))
	}
	tbl, err := table.FromStrings(s.Columns, rows)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}
	return tbl, nil
}

func padRow(row []string, width int) []string {
	if len(row) == width {
		return append([]string(nil), row...)
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// Package sink serializes tidy tables to flat delimited files. Writes are
// atomic: the table is written to a temp file in the destination directory
// and renamed into place, so a failed run never leaves a partial or
// clobbered output file.
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/tidytable/internal/table"
)

// CSV writes a table as a delimited file: header row first, then one line
// per row in final order.
type CSV struct {
	Path string
	// Comma overrides the delimiter; zero means ','.
	Comma rune
	// MissingToken renders missing cells; default is the empty string.
	MissingToken string
}

func (s *CSV) Describe() string { return s.Path }

// Load writes the whole table or nothing.
func (s *CSV) Load(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return &table.SinkError{Path: s.Path, Err: err}
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return &table.SinkError{Path: s.Path, Err: err}
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	if err := s.write(tmp, t); err != nil {
		return &table.SinkError{Path: s.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &table.SinkError{Path: s.Path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return &table.SinkError{Path: s.Path, Err: err}
	}
	return nil
}

func (s *CSV) write(f *os.File, t *table.Table) error {
	w := csv.NewWriter(f)
	if s.Comma != 0 {
		w.Comma = s.Comma
	}

	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j, v := range row {
			record[j] = v.Render(s.MissingToken)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

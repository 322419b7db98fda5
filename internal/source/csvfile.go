package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/tidytable/internal/table"
)

// CSVFile reads a delimited file, taking column names from the header row.
// Ragged rows are padded or truncated to the header width; duplicate headers
// are tolerated (rename by index downstream).
type CSVFile struct {
	Path string
	// Comma overrides the delimiter; zero means ','.
	Comma rune
}

func (s *CSVFile) Describe() string { return s.Path }

func (s *CSVFile) Extract(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	if s.Comma != 0 {
		r.Comma = s.Comma
	}
	// Scraped and hand-edited files are routinely ragged; width is
	// reconciled against the header below.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: fmt.Errorf("parse csv: %w", err)}
	}
	if len(records) == 0 {
		return nil, &table.SourceError{Source: s.Describe(), Err: errors.New("file has no header row")}
	}

	header := records[0]
	rows := make([][]string, len(records)-1)
	for i, rec := range records[1:] {
		rows[i] = padRow(rec, len(header))
	}

	tbl, err := table.FromStrings(header, rows)
	if err != nil {
		return nil, &table.SourceError{Source: s.Describe(), Err: err}
	}
	return tbl, nil
}

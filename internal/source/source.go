// Package source implements the input adapters of the tidy-reshape pipeline:
// inline literal tables, delimited flat files, and HTML tables scraped from a
// URL. Sources return raw tables with no tidiness guarantees: duplicate
// headers, blank separator rows, and combined tokens are the rules' problem.
package source

import (
	"context"

	"github.com/couchcryptid/tidytable/internal/table"
)

// Source produces the initial raw table for a pipeline run.
type Source interface {
	// Extract reads the source into a table. Failures surface as a
	// *table.SourceError; an empty or missing source is never silently
	// returned as an empty table.
	Extract(ctx context.Context) (*table.Table, error)
	// Describe identifies the source in logs and errors (path, URL, "literal").
	Describe() string
}

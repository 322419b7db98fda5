// Package rules implements the transformation rules of the tidy-reshape
// pipeline. Each rule consumes the table produced by the prior rule and
// returns a fresh table; nothing is mutated in place. A rule that references
// a column absent at its stage fails with a table.SchemaError before
// producing any output.
package rules

import (
	"strings"

	"github.com/couchcryptid/tidytable/internal/table"
)

// Rule is one declarative transformation step.
type Rule interface {
	// Name identifies the rule kind in errors, logs, and metrics.
	Name() string
	// Apply transforms the table, returning a new table.
	Apply(t *table.Table) (*table.Table, error)
}

// columnIndexes resolves the given column names, failing with a SchemaError
// naming the first absent column. Resolution happens before any rule output
// is built, so schema failures never leave partial mutations.
func columnIndexes(rule string, t *table.Table, cols []string) ([]int, error) {
	idxs := make([]int, len(cols))
	for i, c := range cols {
		idx, ok := t.ColumnIndex(c)
		if !ok {
			return nil, &table.SchemaError{Rule: rule, Column: c}
		}
		idxs[i] = idx
	}
	return idxs, nil
}

// isBlank reports whether a cell is missing or a whitespace-only string.
// Raw sources represent empty cells as empty strings until normalize_null
// runs, so rules that care about emptiness treat both states as blank.
func isBlank(v table.Value) bool {
	if v.IsMissing() {
		return true
	}
	s, ok := v.Str()
	return ok && strings.TrimSpace(s) == ""
}

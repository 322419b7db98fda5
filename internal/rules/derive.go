package rules

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/tidytable/internal/table"
)

// DeriveFunc computes a new cell from a row snapshot keyed by column name.
// It must be pure: same row in, same value out, no side effects. Undefined
// inputs (an unmapped month abbreviation, a zero denominator) return missing
// rather than an error.
type DeriveFunc func(row map[string]table.Value) table.Value

// DeriveColumn appends a new column computed per row from existing columns.
type DeriveColumn struct {
	Column   string
	Requires []string
	Fn       DeriveFunc
}

func (r *DeriveColumn) Name() string { return "derive_column" }

func (r *DeriveColumn) Apply(t *table.Table) (*table.Table, error) {
	reqIdxs, err := columnIndexes(r.Name(), t, r.Requires)
	if err != nil {
		return nil, err
	}

	cols := append(t.Columns(), r.Column)
	rows := make([][]table.Value, t.NumRows())
	for i := range rows {
		snapshot := make(map[string]table.Value, len(r.Requires))
		old := t.Row(i)
		for j, name := range r.Requires {
			snapshot[name] = old[reqIdxs[j]]
		}
		rows[i] = append(old, r.Fn(snapshot))
	}
	return table.New(cols, rows)
}

// monthNumbers maps three-letter month abbreviations (any case) to 1-12.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNumber(v table.Value) (int, bool) {
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	n, ok := monthNumbers[strings.ToLower(strings.TrimSpace(s))]
	return n, ok
}

// SeasonYear derives the absolute calendar year for a month inside a
// July-June season labeled "YYYY-YY" or "YYYY-YYYY" (Buffalo snowfall style):
// July through December fall in the season's start year, January through
// June in the following year.
func SeasonYear(column, monthCol, seasonCol string) *DeriveColumn {
	return &DeriveColumn{
		Column:   column,
		Requires: []string{monthCol, seasonCol},
		Fn: func(row map[string]table.Value) table.Value {
			m, ok := monthNumber(row[monthCol])
			if !ok {
				return table.Missing
			}
			season, ok := row[seasonCol].Str()
			if !ok {
				return table.Missing
			}
			start, ok := seasonStartYear(season)
			if !ok {
				return table.Missing
			}
			if m >= 7 {
				return table.Number(float64(start))
			}
			return table.Number(float64(start + 1))
		},
	}
}

func seasonStartYear(season string) (int, bool) {
	head, _, ok := strings.Cut(strings.TrimSpace(season), "-")
	if !ok || len(head) != 4 {
		return 0, false
	}
	var y int
	if _, err := fmt.Sscanf(head, "%d", &y); err != nil {
		return 0, false
	}
	return y, true
}

// ComposeDate derives an ISO "YYYY-MM-DD" date string from a year column, a
// month-abbreviation column, and a day-of-month column.
func ComposeDate(column, yearCol, monthCol, dayCol string) *DeriveColumn {
	return &DeriveColumn{
		Column:   column,
		Requires: []string{yearCol, monthCol, dayCol},
		Fn: func(row map[string]table.Value) table.Value {
			year, okY := cellInt(row[yearCol])
			month, okM := monthNumber(row[monthCol])
			day, okD := cellInt(row[dayCol])
			if !okY || !okM || !okD {
				return table.Missing
			}
			return table.String(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
		},
	}
}

// Percent derives 100 * numerator / denominator, missing when either side is
// not a number or the denominator is zero.
func Percent(column, numCol, denCol string) *DeriveColumn {
	return &DeriveColumn{
		Column:   column,
		Requires: []string{numCol, denCol},
		Fn: func(row map[string]table.Value) table.Value {
			n, okN := row[numCol].Num()
			d, okD := row[denCol].Num()
			if !okN || !okD || d == 0 {
				return table.Missing
			}
			return table.Number(100 * n / d)
		},
	}
}

// cellInt accepts either a numeric cell or a string cell holding an integer.
func cellInt(v table.Value) (int, bool) {
	if n, ok := v.Num(); ok {
		return int(n), true
	}
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	var i int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &i); err != nil {
		return 0, false
	}
	return i, true
}

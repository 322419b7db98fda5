// Package datasets bundles the built-in reference pipelines: four small
// messy datasets and the rule sequences that tidy them. They double as
// executable documentation of the rule set and as fixtures for the CLI's
// fixtures command.
package datasets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/tidytable/internal/pipeline"
)

//go:embed fixtures
var fixturesFS embed.FS

var monthColumns = []string{
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
}

// FlightDelays is the airline on-time/delayed count table. It has no file
// source: the whole dataset is five rows, one of them a blank separator, with
// the airline name stated once per pair of status rows.
func FlightDelays() pipeline.Spec {
	return pipeline.Spec{
		Name: "flight-delays",
		Source: pipeline.SourceSpec{
			Kind:    "literal",
			Columns: []string{"V1", "V2", "Los Angeles", "Phoenix", "San Diego", "San Francisco", "Seattle"},
			Rows: [][]string{
				{"ALASKA", "on time", "497", "221", "212", "503", "1841"},
				{"", "delayed", "62", "12", "20", "102", "305"},
				{"", "", "", "", "", "", ""},
				{"AM WEST", "on time", "694", "840", "383", "320", "201"},
				{"", "delayed", "117", "415", "65", "129", "61"},
			},
		},
		Rules: []pipeline.RuleSpec{
			{Rename: &pipeline.RenameSpec{Mappings: []pipeline.MappingSpec{
				{Index: intPtr(0), To: "airline"},
				{Index: intPtr(1), To: "flight_status"},
			}}},
			{DropRows: &pipeline.DropRowsSpec{Blank: true}},
			{FillDown: &pipeline.FillDownSpec{Columns: []string{"airline"}}},
			{PivotLong: &pipeline.PivotSpec{
				Columns:   []string{"Los Angeles", "Phoenix", "San Diego", "San Francisco", "Seattle"},
				NamesTo:   "city",
				ValuesTo:  "flight_count",
				CleanKeys: true,
			}},
			{CoerceType: &pipeline.CoerceSpec{Columns: []string{"flight_count"}}},
			{Sort: &pipeline.SortSpec{Keys: []pipeline.SortKeySpec{
				{Column: "flight_count", Descending: true},
			}}},
		},
	}
}

/// Snowfall tidies a Buffalo-style seasonal snowfall table: one row per
// season, one column per month plus an annual total, trace amounts marked
// "T". The annual column is pivoted along with the months and then dropped
// by key, keeping the rule sequence free of a dedicated column-drop step.
func Snowfall(csvPath string) pipeline.Spec {
	pivotCols := append(append([]string(nil), monthColumns...), "ANNUAL")
	return pipeline.Spec{
		Name: "snowfall",
		Source: pipeline.SourceSpec{
			Kind: "csv",
			Path: csvPath,
		},
		Rules: []pipeline.RuleSpec{
			{Rename: &pipeline.RenameSpec{Mappings: []pipeline.MappingSpec{
				{From: "SEASON", To: "season"},
			}}},
			{DropRows: &pipeline.DropRowsSpec{Blank: true}},
			{PivotLong: &pipeline.PivotSpec{
				Columns:   pivotCols,
				NamesTo:   "month",
				ValuesTo:  "snowfall",
				CleanKeys: true,
			}},
			{DropRows: &pipeline.DropRowsSpec{Match: &pipeline.MatchSpec{Column: "month", Equals: "annual"}}},
			{NormalizeNull: &pipeline.NormalizeSpec{}},
			{CoerceType: &pipeline.CoerceSpec{
				Columns:   []string{"snowfall"},
				Sentinels: map[string]float64{"T": 0},
			}},
			{DeriveColumn: &pipeline.DeriveSpec{
				Column: "year",
				Fn:     "season_year",
				Args:   map[string]string{"month": "month", "season": "season"},
			}},
			{Sort: &pipeline.SortSpec{Keys: []pipeline.SortKeySpec{
				{Column: "season"},
				{Column: "year"},
			}}},
		},
	}
}

// TropicalStorms tidies a storm-record CSV whose identifier column combines
// year and storm name ("2024-Helene") and whose date column combines month
// abbreviation and day ("Sep 26"). Concatenated exports re-embed the header
// row as data, so it is dropped first.
func TropicalStorms(csvPath string) pipeline.Spec {
	return pipeline.Spec{
		Name: "tropical-storms",
		Source: pipeline.SourceSpec{
			Kind: "csv",
			Path: csvPath,
		},
		Rules: []pipeline.RuleSpec{
			{DropRows: &pipeline.DropRowsSpec{DuplicateHeader: true}},
			{SplitColumn: &pipeline.SplitSpec{
				Column:  "storm_id",
				Pattern: `^(\d{4})-(.+)$`,
				Into:    []string{"year", "storm"},
			}},
			{SplitColumn: &pipeline.SplitSpec{
				Column:  "date",
				Pattern: `^([A-Za-z]{3})\s+(\d{1,2})$`,
				Into:    []string{"month", "day"},
			}},
			{DeriveColumn: &pipeline.DeriveSpec{
				Column: "date",
				Fn:     "compose_date",
				Args:   map[string]string{"year": "year", "month": "month", "day": "day"},
			}},
			{CoerceType: &pipeline.CoerceSpec{
				Columns: []string{"year", "max_wind_mph", "pressure_mb"},
			}},
			{Sort: &pipeline.SortSpec{Keys: []pipeline.SortKeySpec{
				{Column: "year", Descending: true},
				{Column: "max_wind_mph", Descending: true},
			}}},
		},
	}
}

// WorldPopulation tidies a scraped population-by-country table: thousands
// separators in the counts, a summary row with blank rank, mixed-case
// headers.
func WorldPopulation(url string) pipeline.Spec {
	return pipeline.Spec{
		Name: "world-population",
		Source: pipeline.SourceSpec{
			Kind:   "html",
			URL:    url,
			Marker: "wikitable",
		},
		Rules: []pipeline.RuleSpec{
			{Rename: &pipeline.RenameSpec{Mappings: []pipeline.MappingSpec{
				{From: "Rank", To: "rank"},
				{From: "Country", To: "country"},
				{From: "Population", To: "population"},
			}}},
			{NormalizeNull: &pipeline.NormalizeSpec{}},
			{CoerceType: &pipeline.CoerceSpec{Columns: []string{"rank", "population"}}},
			{DropRows: &pipeline.DropRowsSpec{Match: &pipeline.MatchSpec{Column: "country", Equals: "World"}}},
			{Sort: &pipeline.SortSpec{Keys: []pipeline.SortKeySpec{
				{Column: "population", Descending: true},
			}}},
		},
	}
}

// WriteFixtures copies the bundled raw datasets into dir so the CSV-backed
// reference pipelines have something to run against.
func WriteFixtures(dir string) error {
	entries, err := fixturesFS.ReadDir("fixtures")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, e := range entries {
		data, err := fixturesFS.ReadFile("fixtures/" + e.Name())
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, e.Name())
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write fixture %s: %w", dst, err)
		}
	}
	return nil
}

func intPtr(i int) *int { return &i }

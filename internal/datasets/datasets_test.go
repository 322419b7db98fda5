package datasets

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/tidytable/internal/observability"
	"github.com/couchcryptid/tidytable/internal/pipeline"
	"github.com/couchcryptid/tidytable/internal/table"
)

func runSpec(t *testing.T, spec pipeline.Spec) *table.Table {
	t.Helper()
	p, err := spec.Build(pipeline.BuildOptions{
		Logger:  slog.Default(),
		Metrics: observability.NewMetricsForTesting(),
	})
	require.NoError(t, err)

	out, err := p.Run(context.Background())
	require.NoError(t, err)
	return out
}

func fixturesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, WriteFixtures(dir))
	return dir
}

func num(t *testing.T, tbl *table.Table, row int, col string) float64 {
	t.Helper()
	v, ok := tbl.Lookup(row, col)
	require.True(t, ok)
	n, ok := v.Num()
	require.True(t, ok, "row %d column %s is not a number", row, col)
	return n
}

func str(t *testing.T, tbl *table.Table, row int, col string) string {
	t.Helper()
	v, ok := tbl.Lookup(row, col)
	require.True(t, ok)
	s, ok := v.Str()
	require.True(t, ok, "row %d column %s is not a string", row, col)
	return s
}

func TestFlightDelays(t *testing.T) {
	out := runSpec(t, FlightDelays())

	// 4 data rows x 5 cities.
	require.Equal(t, 20, out.NumRows())
	assert.Equal(t, []string{"airline", "flight_status", "city", "flight_count"}, out.Columns())

	// Descending by count: the dataset maximum leads.
	assert.Equal(t, 1841.0, num(t, out, 0, "flight_count"))
	assert.Equal(t, "ALASKA", str(t, out, 0, "airline"))
	assert.Equal(t, "on time", str(t, out, 0, "flight_status"))
	assert.Equal(t, "seattle", str(t, out, 0, "city"))

	// No cell is missing anywhere in the tidy output.
	for i := 0; i < out.NumRows(); i++ {
		for _, col := range out.Columns() {
			v, _ := out.Lookup(i, col)
			assert.False(t, v.IsMissing(), "row %d column %s", i, col)
		}
	}
}

func TestSnowfall(t *testing.T) {
	dir := fixturesDir(t)
	out := runSpec(t, Snowfall(filepath.Join(dir, "snowfall.csv")))

	// 4 seasons x 12 months; annual rows dropped by key.
	require.Equal(t, 48, out.NumRows())
	assert.Equal(t, []string{"season", "month", "snowfall", "year"}, out.Columns())

	seen := map[string]float64{}
	for i := 0; i < out.NumRows(); i++ {
		key := str(t, out, i, "season") + "/" + str(t, out, i, "month")
		seen[key] = num(t, out, i, "snowfall")
	}

	// Trace amounts coerce to zero, not missing.
	assert.Equal(t, 0.0, seen["2018-19/oct"])
	assert.Equal(t, 0.0, seen["2019-20/apr"])
	assert.Equal(t, 39.1, seen["2018-19/jan"])

	// Months map into absolute calendar years across the season boundary.
	for i := 0; i < out.NumRows(); i++ {
		if str(t, out, i, "season") != "2019-20" {
			continue
		}
		year := num(t, out, i, "year")
		switch str(t, out, i, "month") {
		case "jul", "aug", "sep", "oct", "nov", "dec":
			assert.Equal(t, 2019.0, year)
		default:
			assert.Equal(t, 2020.0, year)
		}
	}
}

func TestTropicalStorms(t *testing.T) {
	dir := fixturesDir(t)
	out := runSpec(t, TropicalStorms(filepath.Join(dir, "storms.csv")))

	// 5 storms; the re-embedded header row is gone.
	require.Equal(t, 5, out.NumRows())

	// Year-name token split, then recent-first, strongest-first ordering.
	assert.Equal(t, 2024.0, num(t, out, 0, "year"))
	assert.Equal(t, "Milton", str(t, out, 0, "storm"))
	assert.Equal(t, 180.0, num(t, out, 0, "max_wind_mph"))
	assert.Equal(t, "Helene", str(t, out, 1, "storm"))
	assert.Equal(t, "2024-09-26", str(t, out, 1, "date"))
	assert.Equal(t, 2022.0, num(t, out, 4, "year"))
	assert.Equal(t, "Nicole", str(t, out, 4, "storm"))
}

func TestWorldPopulation(t *testing.T) {
	dir := fixturesDir(t)
	page, err := os.ReadFile(filepath.Join(dir, "population.html"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(page)
	}))
	t.Cleanup(srv.Close)

	out := runSpec(t, WorldPopulation(srv.URL))

	// Five countries; the summary row is dropped.
	require.Equal(t, 5, out.NumRows())
	assert.Equal(t, []string{"rank", "country", "population"}, out.Columns())

	// Thousands separators stripped during coercion, descending order.
	assert.Equal(t, "India", str(t, out, 0, "country"))
	assert.Equal(t, 1417173173.0, num(t, out, 0, "population"))
	assert.Equal(t, "Pakistan", str(t, out, 4, "country"))
}

func TestWriteFixtures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fixtures")

	require.NoError(t, WriteFixtures(dir))

	for _, name := range []string{"storms.csv", "snowfall.csv", "population.html"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

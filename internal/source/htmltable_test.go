package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/tidytable/internal/table"
)

const populationPage = `<html><body>
<p>Some prose.</p>
<table class="toc"><tr><td>nav</td></tr></table>
<table id="population" class="wikitable sortable">
  <thead>
    <tr><th>Rank</th><th>Country</th><th>Population</th></tr>
  </thead>
  <tbody>
    <tr><td>1</td><td>India</td><td>1,417,173,173</td></tr>
    <tr><td>2</td><td>China</td><td>1,412,175,000</td></tr>
    <tr><td>3</td><td>United
      States</td><td>333,287,557</td></tr>
  </tbody>
</table>
</body></html>`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTMLTable(t *testing.T) {
	t.Run("locate by index", func(t *testing.T) {
		srv := serve(t, populationPage)

		tbl, err := (&HTMLTable{URL: srv.URL, TableIndex: 1}).Extract(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"Rank", "Country", "Population"}, tbl.Columns())
		assert.Equal(t, 3, tbl.NumRows())
	})

	t.Run("locate by id marker", func(t *testing.T) {
		srv := serve(t, populationPage)

		tbl, err := (&HTMLTable{URL: srv.URL, Marker: "population"}).Extract(context.Background())
		require.NoError(t, err)

		v, _ := tbl.Lookup(0, "Country")
		s, _ := v.Str()
		assert.Equal(t, "India", s)
	})

	t.Run("locate by class marker", func(t *testing.T) {
		srv := serve(t, populationPage)

		tbl, err := (&HTMLTable{URL: srv.URL, Marker: "wikitable"}).Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, tbl.NumRows())
	})

	t.Run("whitespace collapsed in cells", func(t *testing.T) {
		srv := serve(t, populationPage)

		tbl, err := (&HTMLTable{URL: srv.URL, Marker: "population"}).Extract(context.Background())
		require.NoError(t, err)

		v, _ := tbl.Lookup(2, "Country")
		s, _ := v.Str()
		assert.Equal(t, "United States", s)
	})

	t.Run("colspan expands cells", func(t *testing.T) {
		srv := serve(t, `<table>
			<tr><th>a</th><th>b</th></tr>
			<tr><td colspan="2">wide</td></tr>
		</table>`)

		tbl, err := (&HTMLTable{URL: srv.URL}).Extract(context.Background())
		require.NoError(t, err)

		va, _ := tbl.Lookup(0, "a")
		vb, _ := tbl.Lookup(0, "b")
		sa, _ := va.Str()
		sb, _ := vb.Str()
		assert.Equal(t, "wide", sa)
		assert.Equal(t, "wide", sb)
	})

	t.Run("index out of range names the count", func(t *testing.T) {
		srv := serve(t, populationPage)

		_, err := (&HTMLTable{URL: srv.URL, TableIndex: 7}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
		assert.Contains(t, err.Error(), "document has 2 tables")
	})

	t.Run("ambiguous marker fails", func(t *testing.T) {
		srv := serve(t, `<table class="data"><tr><th>a</th></tr><tr><td>1</td></tr></table>
			<table class="data"><tr><th>a</th></tr><tr><td>2</td></tr></table>`)

		_, err := (&HTMLTable{URL: srv.URL, Marker: "data"}).Extract(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("no tables fails", func(t *testing.T) {
		srv := serve(t, `<html><body><p>nothing here</p></body></html>`)

		_, err := (&HTMLTable{URL: srv.URL}).Extract(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tables")
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		_, err := (&HTMLTable{URL: srv.URL}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("network failure is a source error", func(t *testing.T) {
		srv := serve(t, "")
		srv.Close()

		_, err := (&HTMLTable{URL: srv.URL}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := (&HTMLTable{URL: srv.URL}).Extract(ctx)
		require.Error(t, err)
	})
}

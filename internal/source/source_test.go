package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/tidytable/internal/table"
)

func TestLiteral(t *testing.T) {
	t.Run("builds table", func(t *testing.T) {
		src := &Literal{
			Columns: []string{"airline", "status", "seattle"},
			Rows: [][]string{
				{"ALASKA", "on time", "1841"},
				{"", "delayed", "305"},
			},
		}

		tbl, err := src.Extract(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"airline", "status", "seattle"}, tbl.Columns())
		assert.Equal(t, 2, tbl.NumRows())
	})

	t.Run("pads ragged rows", func(t *testing.T) {
		src := &Literal{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}}

		tbl, err := src.Extract(context.Background())
		require.NoError(t, err)

		v, _ := tbl.Lookup(0, "b")
		s, ok := v.Str()
		require.True(t, ok)
		assert.Equal(t, "", s)
	})

	t.Run("no columns is a source error", func(t *testing.T) {
		_, err := (&Literal{}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
	})
}

func TestCSVFile(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("header and rows", func(t *testing.T) {
		path := writeFile(t, "SEASON,JUL,AUG\n2019-20,T,0.4\n2020-21,,1.2\n")

		tbl, err := (&CSVFile{Path: path}).Extract(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"SEASON", "JUL", "AUG"}, tbl.Columns())
		assert.Equal(t, 2, tbl.NumRows())
		v, _ := tbl.Lookup(0, "JUL")
		s, _ := v.Str()
		assert.Equal(t, "T", s)
	})

	t.Run("ragged rows padded", func(t *testing.T) {
		path := writeFile(t, "a,b,c\n1,2\n")

		tbl, err := (&CSVFile{Path: path}).Extract(context.Background())
		require.NoError(t, err)

		v, _ := tbl.Lookup(0, "c")
		s, ok := v.Str()
		require.True(t, ok)
		assert.Equal(t, "", s)
	})

	t.Run("duplicate headers tolerated", func(t *testing.T) {
		path := writeFile(t, "name,name\nx,y\n")

		tbl, err := (&CSVFile{Path: path}).Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "name"}, tbl.Columns())
	})

	t.Run("missing file is a source error", func(t *testing.T) {
		_, err := (&CSVFile{Path: "/nonexistent/data.csv"}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
	})

	t.Run("empty file is a source error", func(t *testing.T) {
		path := writeFile(t, "")

		_, err := (&CSVFile{Path: path}).Extract(context.Background())

		var srcErr *table.SourceError
		require.ErrorAs(t, err, &srcErr)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("custom delimiter", func(t *testing.T) {
		path := writeFile(t, "a\tb\n1\t2\n")

		tbl, err := (&CSVFile{Path: path, Comma: '\t'}).Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	})
}

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/tidytable/internal/table"
)

func TestDropRows(t *testing.T) {
	t.Run("blank separator rows", func(t *testing.T) {
		in := mkTable(t, []string{"airline", "status"}, [][]string{
			{"ALASKA", "on time"},
			{"", "  "},
			{"AM WEST", "delayed"},
		})

		out, err := (&DropRows{Blank: true}).Apply(in)
		require.NoError(t, err)

		require.Equal(t, 2, out.NumRows())
		assert.Equal(t, "ALASKA", cellString(t, out, 0, "airline"))
		assert.Equal(t, "AM WEST", cellString(t, out, 1, "airline"))
	})

	t.Run("re-embedded header rows", func(t *testing.T) {
		in := mkTable(t, []string{"year", "storm"}, [][]string{
			{"2023", "Idalia"},
			{"year", "storm"},
			{"2024", "Helene"},
		})

		out, err := (&DropRows{DuplicateHeader: true}).Apply(in)
		require.NoError(t, err)

		require.Equal(t, 2, out.NumRows())
		assert.Equal(t, "2024", cellString(t, out, 1, "year"))
	})

	t.Run("positional indexes", func(t *testing.T) {
		in := mkTable(t, []string{"a"}, [][]string{{"0"}, {"1"}, {"2"}})

		out, err := (&DropRows{Indexes: []int{0, 2}}).Apply(in)
		require.NoError(t, err)

		require.Equal(t, 1, out.NumRows())
		assert.Equal(t, "1", cellString(t, out, 0, "a"))
	})

	t.Run("column match", func(t *testing.T) {
		in := mkTable(t, []string{"month", "snow"}, [][]string{
			{"ANNUAL", "97.1"},
			{"Jan", "25.3"},
		})

		out, err := (&DropRows{Match: &ColumnMatch{Column: "month", Equals: "ANNUAL"}}).Apply(in)
		require.NoError(t, err)

		require.Equal(t, 1, out.NumRows())
		assert.Equal(t, "Jan", cellString(t, out, 0, "month"))
	})

	t.Run("match on absent column", func(t *testing.T) {
		in := mkTable(t, []string{"a"}, [][]string{{"1"}})

		_, err := (&DropRows{Match: &ColumnMatch{Column: "gone", Equals: "x"}}).Apply(in)

		var schemaErr *table.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "gone", schemaErr.Column)
	})
}

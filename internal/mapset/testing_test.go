package mapset

import (
	"testing"

	"gogeomap/domain/dataset"

	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, header []string, rows ...[]string) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable(header, rows)
	require.NoError(t, err)
	return table
}

func mustClean(t *testing.T, table *dataset.Table) *CleanedTable {
	t.Helper()
	cleaned, err := CleanCoordinates(table, DetectCoordinateColumns(table.Headers))
	require.NoError(t, err)
	return cleaned
}

func mustGenerator(t *testing.T) *Generator {
	t.Helper()
	gen, err := NewGenerator(DefaultRenderOptions())
	require.NoError(t, err)
	return gen
}

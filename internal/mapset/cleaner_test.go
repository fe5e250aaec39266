package mapset

import (
	"testing"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumeric(t *testing.T) {
	got := CoerceNumeric([]string{"1", " -2.5 ", "1e3", "", "abc", "NaN", "inf", "12,5"})

	assert.Equal(t, dataset.NumericColumn{
		dataset.Some(1.0),
		dataset.Some(-2.5),
		dataset.Some(1000.0),
		dataset.None[float64](),
		dataset.None[float64](),
		dataset.None[float64](),
		dataset.None[float64](),
		dataset.None[float64](),
	}, got)
}

func TestCleanCoordinatesDropsInvalidRows(t *testing.T) {
	table := mustTable(t, []string{"city", "lat", "lon"},
		[]string{"A", "1", "1"},
		[]string{"A", "3", "x"},
		[]string{"B", "", "10"},
		[]string{"B", "10", "10"},
	)

	cleaned, err := CleanCoordinates(table, DetectCoordinateColumns(table.Headers))
	require.NoError(t, err)

	assert.Equal(t, 2, cleaned.Len())
	assert.Equal(t, 2, cleaned.Dropped)
	assert.Equal(t, "lat", cleaned.LatColumn)
	assert.Equal(t, "lon", cleaned.LonColumn)
	for _, p := range cleaned.Points {
		assert.NotEmpty(t, p.Record["lat"])
		assert.NotEmpty(t, p.Record["lon"])
	}
	assert.Equal(t, LatLon{Lat: 10, Lon: 10}, cleaned.Points[1].LatLon)
}

func TestCleanCoordinatesCopiesRecords(t *testing.T) {
	table := mustTable(t, []string{"lat", "lon", "name"}, []string{"1", "2", "before"})

	cleaned := mustClean(t, table)
	cleaned.Points[0].Record["name"] = "after"

	assert.Equal(t, "before", table.Rows[0]["name"])
}

func TestCleanCoordinatesNoValidPoints(t *testing.T) {
	table := mustTable(t, []string{"lat", "lon"},
		[]string{"north", "east"},
		[]string{"", ""},
	)

	cleaned, err := CleanCoordinates(table, DetectCoordinateColumns(table.Headers))
	assert.ErrorIs(t, err, core.ErrNoValidPoints)
	require.NotNil(t, cleaned)
	assert.Equal(t, 1, cleaned.Dropped, "the all-empty row is skipped when the table is built")
}

func TestCleanCoordinatesUnavailable(t *testing.T) {
	table := mustTable(t, []string{"name"}, []string{"x"})

	_, err := CleanCoordinates(table, DetectCoordinateColumns(table.Headers))
	assert.ErrorIs(t, err, core.ErrCoordinatesUnavailable)

	_, err = CleanCoordinates(table, CoordinateColumns{Latitude: "lat", Longitude: "lon"})
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}

package app

import (
	"context"
	"testing"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
	"gogeomap/internal/errors"
	"gogeomap/internal/mapset"
	"gogeomap/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *MapSetService {
	t.Helper()
	svc, err := NewMapSetService(DefaultMapSetServiceConfig())
	require.NoError(t, err)
	return svc
}

func cityTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable([]string{"city", "Latitude", "Longitude", "name"}, [][]string{
		{"A", "1", "1", "one"},
		{"A", "3", "3", "two"},
		{"B", "10", "10", "three"},
		{"B", "bad", "10", "four"},
	})
	require.NoError(t, err)
	table.Source = "cities.csv"
	return table
}

func TestGenerateMapSet(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.GenerateMapSet(context.Background(), cityTable(t), ports.Selection{
		GroupColumns: []string{"city", "name"},
		VisualizeMap: true,
	})
	require.NoError(t, err)

	require.True(t, result.HasMaps())
	assert.Equal(t, "city", result.GroupColumn, "only the first group column is used")
	assert.Equal(t, []string{"A_map.html", "B_map.html"}, result.MapSet.Names())
	assert.Equal(t, 3, result.PointCount)
	assert.Equal(t, 1, result.DroppedRows)
	assert.Equal(t, "generated_maps.zip", result.ArchiveName)
	assert.Equal(t, "Generated 2 map(s) for groups based on 'city'.", result.Message)
	assert.Nil(t, result.Summary)
	assert.False(t, result.RunID.IsEmpty())
	assert.False(t, result.GeneratedAt.IsZero())

	entries, err := mapset.ReadArchive(result.Archive)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		doc, ok := result.MapSet.Get(e.Name)
		require.True(t, ok)
		assert.Equal(t, doc.Content, e.Content)
	}

	a, _ := result.MapSet.Get("A_map.html")
	assert.Equal(t, mapset.LatLon{Lat: 2, Lon: 2}, a.Center)
}

func TestGenerateMapSetLabelsOnly(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.GenerateMapSet(context.Background(), cityTable(t), ports.Selection{
		LabelColumns: []string{"name"},
		VisualizeMap: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"all_locations_map.html"}, result.MapSet.Names())
	assert.Equal(t, "Generated 1 map(s) for all locations.", result.Message)
	doc, _ := result.MapSet.Get("all_locations_map.html")
	assert.Contains(t, doc.Content, `"popup":"name: one"`)
}

func TestGenerateMapSetNoSelection(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateMapSet(context.Background(), cityTable(t), ports.Selection{VisualizeMap: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoSelection)
	assert.Equal(t, errors.CodeNoSelection, errors.GetCode(err))
}

func TestGenerateMapSetUnknownColumn(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateMapSet(context.Background(), cityTable(t), ports.Selection{
		GroupColumns: []string{"country"},
		VisualizeMap: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestGenerateMapSetNoValidPoints(t *testing.T) {
	svc := newTestService(t)
	table, err := dataset.NewTable([]string{"city", "lat", "lon"}, [][]string{{"A", "x", "y"}})
	require.NoError(t, err)

	_, err = svc.GenerateMapSet(context.Background(), table, ports.Selection{
		GroupColumns: []string{"city"},
		VisualizeMap: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoValidPoints)
	assert.Equal(t, errors.CodeNoValidPoints, errors.GetCode(err))
}

func TestGenerateMapSetCoordinatesUnavailable(t *testing.T) {
	svc := newTestService(t)
	table, err := dataset.NewTable([]string{"region", "kind"}, [][]string{
		{"North", "shop"},
		{"North", "shop"},
		{"South", "depot"},
	})
	require.NoError(t, err)

	assert.False(t, svc.DetectCoordinateColumns(table).Found())

	result, err := svc.GenerateMapSet(context.Background(), table, ports.Selection{
		GroupColumns: []string{"region", "kind"},
		VisualizeMap: true,
	})
	require.NoError(t, err)

	assert.False(t, result.HasMaps())
	assert.Nil(t, result.Archive)
	assert.Equal(t, ports.SkipCoordinatesUnavailable, result.SkipReason)
	require.NotNil(t, result.Summary)
	assert.Equal(t, [][]string{{"North", "shop"}, {"South", "depot"}}, result.Summary.Rows)
}

func TestGenerateMapSetNotRequested(t *testing.T) {
	svc := newTestService(t)
	table := cityTable(t)

	result, err := svc.GenerateMapSet(context.Background(), table, ports.Selection{
		GroupColumns: []string{"city"},
	})
	require.NoError(t, err)

	assert.Equal(t, table.Fingerprint(), result.Fingerprint)
	assert.False(t, result.HasMaps())
	assert.Equal(t, ports.SkipNotRequested, result.SkipReason)
	assert.Equal(t, [][]string{{"A"}, {"B"}}, result.Summary.Rows)
}

func TestInspect(t *testing.T) {
	svc := newTestService(t)
	table := cityTable(t)

	info := svc.Inspect(table)

	assert.Equal(t, "cities.csv", info.Source)
	assert.Equal(t, table.Headers, info.Headers)
	assert.Equal(t, 4, info.RowCount)
	assert.True(t, info.MapAvailable)
	assert.Equal(t, mapset.CoordinateColumns{Latitude: "Latitude", Longitude: "Longitude"}, info.Coordinates)
	assert.Equal(t, table.Fingerprint(), info.Fingerprint)
}

func TestSelectionHelpers(t *testing.T) {
	assert.True(t, ports.Selection{}.IsEmpty())
	assert.Equal(t, "", ports.Selection{}.GroupColumn())
	assert.Equal(t, "a", ports.Selection{GroupColumns: []string{"a", "b"}}.GroupColumn())
	assert.False(t, ports.Selection{LabelColumns: []string{"x"}}.IsEmpty())
}

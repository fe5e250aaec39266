package mapset

import (
	"maps"
	"math"
	"strconv"
	"strings"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
)

// LatLon is a coordinate pair in decimal degrees
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point is a record whose coordinates both coerced to numbers
type Point struct {
	LatLon
	Record dataset.Record
}

// CleanedTable is the filtered copy of a table holding only valid points
type CleanedTable struct {
	Headers   []string
	LatColumn string
	LonColumn string
	Points    []Point
	Dropped   int
}

// Len returns the number of valid points
func (c *CleanedTable) Len() int {
	return len(c.Points)
}

// CoerceNumeric converts text cells to numbers. Empty, non-numeric, NaN and
// infinite cells become missing rather than failing the column.
func CoerceNumeric(values []string) dataset.NumericColumn {
	out := make(dataset.NumericColumn, len(values))
	for i, v := range values {
		out[i] = coerceFloat(v)
	}
	return out
}

func coerceFloat(s string) dataset.Optional[float64] {
	s = strings.TrimSpace(s)
	if s == "" {
		return dataset.None[float64]()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return dataset.None[float64]()
	}
	return dataset.Some(f)
}

// CleanCoordinates coerces both coordinate columns and keeps the rows where
// both values are present. Records are copied so the input table is never
// shared with the result. An empty result is reported as ErrNoValidPoints.
func CleanCoordinates(table *dataset.Table, cols CoordinateColumns) (*CleanedTable, error) {
	if !cols.Found() {
		return nil, core.ErrCoordinatesUnavailable
	}
	if !table.HasColumn(cols.Latitude) {
		return nil, core.NewUnknownColumnError(cols.Latitude)
	}
	if !table.HasColumn(cols.Longitude) {
		return nil, core.NewUnknownColumnError(cols.Longitude)
	}

	lats := CoerceNumeric(table.Column(cols.Latitude))
	lons := CoerceNumeric(table.Column(cols.Longitude))

	cleaned := &CleanedTable{
		Headers:   append([]string(nil), table.Headers...),
		LatColumn: cols.Latitude,
		LonColumn: cols.Longitude,
		Points:    make([]Point, 0, len(table.Rows)),
	}
	for i, row := range table.Rows {
		if !lats[i].Valid || !lons[i].Valid {
			cleaned.Dropped++
			continue
		}
		cleaned.Points = append(cleaned.Points, Point{
			LatLon: LatLon{Lat: lats[i].Value, Lon: lons[i].Value},
			Record: maps.Clone(row),
		})
	}

	if len(cleaned.Points) == 0 {
		return cleaned, core.ErrNoValidPoints
	}
	return cleaned, nil
}

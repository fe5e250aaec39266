package mapset

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Bounds is the bounding box of a group of points
type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// MedianCenter returns the per-axis median of the points
func MedianCenter(points []Point) (LatLon, error) {
	lats, lons := splitAxes(points)

	lat, err := stats.Median(lats)
	if err != nil {
		return LatLon{}, err
	}
	lon, err := stats.Median(lons)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{Lat: lat, Lon: lon}, nil
}

// BoundsOf returns the bounding box of the points; points must not be empty
func BoundsOf(points []Point) Bounds {
	lats, lons := splitAxes(points)
	return Bounds{
		SouthWest: LatLon{Lat: floats.Min(lats), Lon: floats.Min(lons)},
		NorthEast: LatLon{Lat: floats.Max(lats), Lon: floats.Max(lons)},
	}
}

func splitAxes(points []Point) (stats.Float64Data, stats.Float64Data) {
	lats := make(stats.Float64Data, len(points))
	lons := make(stats.Float64Data, len(points))
	for i, p := range points {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}
	return lats, lons
}

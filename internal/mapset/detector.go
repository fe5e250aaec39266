// Package mapset turns a table of points into one Leaflet map document per
// group and packages the documents as a zip archive.
package mapset

import "strings"

var (
	latitudeTokens  = []string{"latitude", "lat"}
	longitudeTokens = []string{"longitude", "lon", "lng"}
)

// CoordinateColumns is the outcome of column detection. Each axis is decided
// independently; an empty name means the axis was not found.
type CoordinateColumns struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// HasLatitude reports whether a latitude column was found
func (c CoordinateColumns) HasLatitude() bool { return c.Latitude != "" }

// HasLongitude reports whether a longitude column was found
func (c CoordinateColumns) HasLongitude() bool { return c.Longitude != "" }

// Found reports whether both axes were detected, the precondition for maps
func (c CoordinateColumns) Found() bool {
	return c.HasLatitude() && c.HasLongitude()
}

// DetectCoordinateColumns returns the first header whose lower-cased name
// contains a latitude token and, independently, the first containing a
// longitude token. Headers are scanned in declaration order.
func DetectCoordinateColumns(headers []string) CoordinateColumns {
	return CoordinateColumns{
		Latitude:  firstMatching(headers, latitudeTokens),
		Longitude: firstMatching(headers, longitudeTokens),
	}
}

func firstMatching(headers []string, tokens []string) string {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				return h
			}
		}
	}
	return ""
}

package ports

import (
	"context"
	"io"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
	"gogeomap/internal/mapset"
)

// TableReaderPort reads an uploaded CSV or XLSX file into a table
type TableReaderPort interface {
	Read(name string, src io.Reader) (*dataset.Table, error)
	ReadFile(path string) (*dataset.Table, error)
}

// MapSetPort is the core entry point used by every presentation layer.
// Implementations hold no state between calls.
type MapSetPort interface {
	// DetectCoordinateColumns finds latitude/longitude columns by name
	DetectCoordinateColumns(table *dataset.Table) mapset.CoordinateColumns

	// Inspect describes a table: headers, detected coordinates, row count
	Inspect(table *dataset.Table) TableInfo

	// GenerateMapSet renders one map per group, or a grouping summary when
	// maps are unavailable or not requested
	GenerateMapSet(ctx context.Context, table *dataset.Table, sel Selection) (*MapSetResult, error)
}

// Selection carries the caller's column choices
type Selection struct {
	GroupColumns []string `json:"group_columns"` // only the first is used to partition
	LabelColumns []string `json:"label_columns"`
	VisualizeMap bool     `json:"visualize_map"`
}

// GroupColumn returns the column used for partitioning, or "" when none
func (s Selection) GroupColumn() string {
	if len(s.GroupColumns) == 0 {
		return ""
	}
	return s.GroupColumns[0]
}

// IsEmpty reports whether no grouping or label column was chosen
func (s Selection) IsEmpty() bool {
	return len(s.GroupColumns) == 0 && len(s.LabelColumns) == 0
}

// TableInfo is the detection result shown before generation
type TableInfo struct {
	Source       string                   `json:"source"`
	Format       dataset.Format           `json:"format"`
	Headers      []string                 `json:"headers"`
	RowCount     int                      `json:"row_count"`
	Coordinates  mapset.CoordinateColumns `json:"coordinates"`
	MapAvailable bool                     `json:"map_available"`
	Fingerprint  core.Hash                `json:"fingerprint"`
}

// SkipReason explains why no maps were generated
type SkipReason string

const (
	SkipNone                   SkipReason = ""
	SkipNotRequested           SkipReason = "not_requested"
	SkipCoordinatesUnavailable SkipReason = "coordinates_unavailable"
)

// MapSetResult is the outcome of one generation run. Exactly one of MapSet
// (with Archive) and Summary is set.
type MapSetResult struct {
	RunID       core.RunID               `json:"run_id"`
	GeneratedAt core.Timestamp           `json:"generated_at"`
	Fingerprint core.Hash                `json:"fingerprint"`
	Coordinates mapset.CoordinateColumns `json:"coordinates"`
	GroupColumn string                   `json:"group_column,omitempty"`
	MapSet      *mapset.MapSet           `json:"-"`
	Maps        []mapset.MapDocument     `json:"maps,omitempty"`
	Archive     []byte                   `json:"-"`
	ArchiveName string                   `json:"archive_name,omitempty"`
	PointCount  int                      `json:"point_count"`
	DroppedRows int                      `json:"dropped_rows"`
	Summary     *mapset.Summary          `json:"summary,omitempty"`
	SkipReason  SkipReason               `json:"skip_reason,omitempty"`
	Message     string                   `json:"message"`
}

// HasMaps reports whether the run produced an archive
func (r *MapSetResult) HasMaps() bool {
	return r.MapSet != nil && r.Archive != nil
}

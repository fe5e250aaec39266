package app

import (
	"context"
	"fmt"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
	"gogeomap/internal"
	"gogeomap/internal/config"
	"gogeomap/internal/errors"
	"gogeomap/internal/mapset"
	"gogeomap/ports"
)

// MapSetServiceConfig holds the read-only settings shared by all runs
type MapSetServiceConfig struct {
	Render       mapset.RenderOptions
	ArchiveName  string
	SummaryLimit int
}

// DefaultMapSetServiceConfig mirrors config.Default
func DefaultMapSetServiceConfig() MapSetServiceConfig {
	return MapSetServiceConfigFrom(config.Default())
}

// MapSetServiceConfigFrom maps application configuration onto the service
func MapSetServiceConfigFrom(cfg *config.Config) MapSetServiceConfig {
	return MapSetServiceConfig{
		Render: mapset.RenderOptions{
			Zoom:         cfg.Render.Zoom,
			MarkerRadius: cfg.Render.MarkerRadius,
			MarkerColor:  cfg.Render.MarkerColor,
			TileURL:      cfg.Render.TileURL,
			Attribution:  cfg.Render.Attribution,
		},
		ArchiveName:  cfg.Render.ArchiveName,
		SummaryLimit: cfg.Render.SummaryLimit,
	}
}

// MapSetService runs detection, cleaning, generation and packaging for one
// table per call. It is safe for concurrent use.
type MapSetService struct {
	config    MapSetServiceConfig
	generator *mapset.Generator
	logger    *internal.Logger
}

var _ ports.MapSetPort = (*MapSetService)(nil)

// NewMapSetService creates a map-set service
func NewMapSetService(cfg MapSetServiceConfig) (*MapSetService, error) {
	generator, err := mapset.NewGenerator(cfg.Render)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create map generator")
	}
	return &MapSetService{
		config:    cfg,
		generator: generator,
		logger:    internal.DefaultLogger.WithComponent("MapSetService"),
	}, nil
}

// DetectCoordinateColumns finds latitude/longitude columns by name
func (s *MapSetService) DetectCoordinateColumns(table *dataset.Table) mapset.CoordinateColumns {
	return mapset.DetectCoordinateColumns(table.Headers)
}

// Inspect describes a table before the caller picks columns
func (s *MapSetService) Inspect(table *dataset.Table) ports.TableInfo {
	cols := s.DetectCoordinateColumns(table)
	return ports.TableInfo{
		Source:       table.Source,
		Format:       table.Format,
		Headers:      append([]string(nil), table.Headers...),
		RowCount:     table.Len(),
		Coordinates:  cols,
		MapAvailable: cols.Found(),
		Fingerprint:  table.Fingerprint(),
	}
}

// GenerateMapSet validates the selection and either renders one map per group
// (when maps are requested and coordinates were detected) or falls back to a
// summary of the selected columns. A selection with no columns is rejected
// before any processing; a table without valid coordinates is terminal.
func (s *MapSetService) GenerateMapSet(ctx context.Context, table *dataset.Table, sel ports.Selection) (*ports.MapSetResult, error) {
	if sel.IsEmpty() {
		return nil, errors.NoSelection()
	}
	if err := validateColumns(table, sel); err != nil {
		return nil, errors.Wrap(err, "invalid column selection")
	}

	result := &ports.MapSetResult{
		RunID:       core.NewRunID(),
		GeneratedAt: core.Now(),
		Fingerprint: table.Fingerprint(),
		Coordinates: s.DetectCoordinateColumns(table),
		GroupColumn: sel.GroupColumn(),
	}
	if len(sel.GroupColumns) > 1 {
		s.logger.Debug("run %s: using %q for grouping, ignoring %v", result.RunID.Short(), sel.GroupColumn(), sel.GroupColumns[1:])
	}

	if !sel.VisualizeMap || !result.Coordinates.Found() {
		if err := s.summarize(table, sel, result); err != nil {
			return nil, err
		}
		s.logger.Info("run %s: summary of %s (%s, %d distinct)", result.RunID.Short(), result.Fingerprint.Short(), result.SkipReason, result.Summary.Distinct)
		return result, nil
	}

	cleaned, err := mapset.CleanCoordinates(table, result.Coordinates)
	if err != nil {
		return nil, errors.Wrapf(err, "no valid coordinates in %s/%s", result.Coordinates.Latitude, result.Coordinates.Longitude)
	}
	result.PointCount = cleaned.Len()
	result.DroppedRows = cleaned.Dropped

	set, err := s.generator.Generate(ctx, cleaned, mapset.GenerateOptions{
		GroupColumn:  result.GroupColumn,
		LabelColumns: sel.LabelColumns,
	})
	if err != nil {
		return nil, errors.Wrap(err, "map generation failed")
	}

	archive, err := mapset.PackageArchive(set)
	if err != nil {
		return nil, errors.Wrap(err, "archive packaging failed")
	}

	result.MapSet = set
	result.Maps = set.Documents()
	result.Archive = archive
	result.ArchiveName = s.config.ArchiveName
	result.Message = successMessage(set.Len(), result.GroupColumn)

	s.logger.Info("run %s: %d map(s) from %d points (%d dropped) in %.2fms",
		result.RunID.Short(), set.Len(), result.PointCount, result.DroppedRows, float64(result.GeneratedAt.Since().Nanoseconds())/1e6)

	return result, nil
}

func (s *MapSetService) summarize(table *dataset.Table, sel ports.Selection, result *ports.MapSetResult) error {
	columns := sel.GroupColumns
	if len(columns) == 0 {
		columns = sel.LabelColumns
	}

	summary, err := mapset.Summarize(table, columns, s.config.SummaryLimit)
	if err != nil {
		return errors.Wrap(err, "summary failed")
	}

	result.Summary = summary
	if !result.Coordinates.Found() {
		result.SkipReason = ports.SkipCoordinatesUnavailable
		result.Message = "GPS coordinate columns not found. Map visualization not available; showing grouping summary instead."
	} else {
		result.SkipReason = ports.SkipNotRequested
		result.Message = "Map visualization skipped. Showing grouping summary instead."
	}
	return nil
}

func validateColumns(table *dataset.Table, sel ports.Selection) error {
	for _, cols := range [][]string{sel.GroupColumns, sel.LabelColumns} {
		for _, col := range cols {
			if !table.HasColumn(col) {
				return core.NewUnknownColumnError(col)
			}
		}
	}
	return nil
}

func successMessage(count int, groupColumn string) string {
	if groupColumn == "" {
		return fmt.Sprintf("Generated %d map(s) for all locations.", count)
	}
	return fmt.Sprintf("Generated %d map(s) for groups based on '%s'.", count, groupColumn)
}

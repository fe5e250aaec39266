package mapset

import (
	"context"
	"fmt"

	"gogeomap/internal"
)

// GenerateOptions selects how points are grouped and annotated
type GenerateOptions struct {
	GroupColumn  string   // empty: one "All Locations" group
	LabelColumns []string // popup lines; empty falls back to the group column
}

// Group is a partition of the cleaned points sharing one group value
type Group struct {
	Value  string
	Points []Point
}

// Partition splits points by the value of groupColumn in first-seen order.
// Points with an empty group value belong to no group. Without a group column
// every point lands in a single AllLocationsGroup.
func Partition(points []Point, groupColumn string) []Group {
	if groupColumn == "" {
		if len(points) == 0 {
			return nil
		}
		return []Group{{Value: AllLocationsGroup, Points: points}}
	}

	var groups []Group
	index := make(map[string]int)
	for _, p := range points {
		value := p.Record[groupColumn]
		if value == "" {
			continue
		}
		i, ok := index[value]
		if !ok {
			i = len(groups)
			index[value] = i
			groups = append(groups, Group{Value: value})
		}
		groups[i].Points = append(groups[i].Points, p)
	}
	return groups
}

// Generator renders one map document per group
type Generator struct {
	renderer *Renderer
	logger   *internal.Logger
}

// NewGenerator creates a generator using the given render options
func NewGenerator(options RenderOptions) (*Generator, error) {
	renderer, err := NewRenderer(options)
	if err != nil {
		return nil, err
	}
	return &Generator{
		renderer: renderer,
		logger:   internal.DefaultLogger.WithComponent("MapSet"),
	}, nil
}

// Generate partitions the cleaned points, centers each group on its median
// and renders it. Groups without points contribute no document. The context
// is checked between groups.
func (g *Generator) Generate(ctx context.Context, cleaned *CleanedTable, opts GenerateOptions) (*MapSet, error) {
	set := NewMapSet()
	names := newNameAllocator()

	for _, group := range Partition(cleaned.Points, opts.GroupColumn) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(group.Points) == 0 {
			continue
		}

		doc, err := g.renderGroup(group, opts)
		if err != nil {
			return nil, err
		}
		if opts.GroupColumn == "" {
			doc.Name = names.allocate(allLocations)
		} else {
			doc.Name = names.allocate(SafeName(group.Value))
		}
		set.Add(doc)

		g.logger.Debug("rendered %s (%d points, center %.6f,%.6f)", doc.Name, doc.PointCount, doc.Center.Lat, doc.Center.Lon)
	}

	return set, nil
}

func (g *Generator) renderGroup(group Group, opts GenerateOptions) (MapDocument, error) {
	center, err := MedianCenter(group.Points)
	if err != nil {
		return MapDocument{}, fmt.Errorf("failed to compute center of %q: %w", group.Value, err)
	}

	markers := make([]Marker, len(group.Points))
	for i, p := range group.Points {
		markers[i] = Marker{
			Lat:   p.Lat,
			Lon:   p.Lon,
			Popup: Annotate(opts.LabelColumns, opts.GroupColumn, p.Record),
		}
	}

	title := group.Value
	if opts.GroupColumn != "" {
		title = fmt.Sprintf("%s: %s", opts.GroupColumn, group.Value)
	}
	content, err := g.renderer.Render(title, center, markers)
	if err != nil {
		return MapDocument{}, err
	}

	return MapDocument{
		Group:      group.Value,
		Content:    content,
		PointCount: len(group.Points),
		Center:     center,
		Bounds:     BoundsOf(group.Points),
	}, nil
}

package mapset

import (
	"strings"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
)

// Summary lists distinct combinations of the selected columns, shown when no
// map is generated
type Summary struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Distinct int        `json:"distinct"`
}

// Summarize returns the first limit distinct value combinations of columns in
// first-seen order. Distinct counts every combination, not only those shown.
func Summarize(table *dataset.Table, columns []string, limit int) (*Summary, error) {
	if len(columns) == 0 {
		return nil, core.ErrNoSelection
	}
	for _, col := range columns {
		if !table.HasColumn(col) {
			return nil, core.NewUnknownColumnError(col)
		}
	}

	summary := &Summary{Columns: append([]string(nil), columns...), Rows: [][]string{}}
	seen := make(map[string]bool)
	for _, row := range table.Rows {
		combo := make([]string, len(columns))
		for i, col := range columns {
			combo[i] = row[col]
		}
		key := strings.Join(combo, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		summary.Distinct++
		if limit <= 0 || len(summary.Rows) < limit {
			summary.Rows = append(summary.Rows, combo)
		}
	}
	return summary, nil
}

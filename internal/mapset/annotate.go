package mapset

import (
	"fmt"
	"strings"

	"gogeomap/domain/dataset"
)

// DefaultAnnotation is used when neither label nor group columns are set
const DefaultAnnotation = "Location"

// Annotate builds the popup text of one point. Label columns win and are
// rendered one "column: value" per line; otherwise the group column is shown.
func Annotate(labelColumns []string, groupColumn string, rec dataset.Record) string {
	if len(labelColumns) > 0 {
		lines := make([]string, len(labelColumns))
		for i, col := range labelColumns {
			lines[i] = fmt.Sprintf("%s: %s", col, rec[col])
		}
		return strings.Join(lines, "\n")
	}
	if groupColumn != "" {
		return fmt.Sprintf("%s: %s", groupColumn, rec[groupColumn])
	}
	return DefaultAnnotation
}

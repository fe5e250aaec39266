package dataset

import (
	"fmt"

	"gogeomap/domain/core"
)

// Format identifies the file format a table was read from
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Record is one row of the table keyed by column name. All values are text.
type Record map[string]string

// Table is an ordered, schema-free dataset: unique column names in declaration
// order and rows of text cells. Numeric interpretation happens only through
// explicit coercion.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Record `json:"-"`
	Source  string   `json:"source,omitempty"`
	Format  Format   `json:"format,omitempty"`
}

// NewTable builds a table from a header row and raw data rows.
// Blank headers become "Unnamed: <index>" and repeated headers get ".1", ".2"
// suffixes so every column name is unique. Cells are kept verbatim. Rows with
// no cells or only empty cells are skipped; short rows are padded with empty
// cells and extra cells are dropped.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, core.ErrEmptyInput
	}

	headers := uniqueHeaders(header)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		rec := make(Record, len(headers))
		for j, h := range headers {
			if j < len(row) {
				rec[h] = row[j]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}

	return &Table{Headers: headers, Rows: records}, nil
}

func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[name]; n > 0 {
			base := name
			for seen[fmt.Sprintf("%s.%d", base, n)] > 0 {
				n++
			}
			seen[base] = n + 1
			name = fmt.Sprintf("%s.%d", base, n)
		}
		seen[name]++
		headers[i] = name
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table headers
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns the text values of one column in row order
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// Values returns the rows as ordered cell slices following Headers
func (t *Table) Values() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for j, h := range t.Headers {
			cells[j] = row[h]
		}
		out[i] = cells
	}
	return out
}

// Fingerprint hashes headers and cells so log lines can correlate uploads
func (t *Table) Fingerprint() core.Hash {
	return core.ComputeTableHash(t.Headers, t.Values())
}

// Optional is a value that may be missing
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns the missing marker
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// NumericColumn is a column after numeric coercion; failed cells are missing
type NumericColumn []Optional[float64]

// ValidCount returns how many cells coerced successfully
func (c NumericColumn) ValidCount() int {
	n := 0
	for _, v := range c {
		if v.Valid {
			n++
		}
	}
	return n
}

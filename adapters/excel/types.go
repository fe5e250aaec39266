package excel

import (
	"bytes"
	"path/filepath"
	"strings"

	"gogeomap/domain/dataset"
)

var zipMagic = []byte("PK\x03\x04")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatFromName guesses the table format from a file name.
// Anything that is not .xlsx/.xlsm is treated as CSV.
func FormatFromName(name string) dataset.Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return dataset.FormatXLSX
	default:
		return dataset.FormatCSV
	}
}

// sniffFormat looks at the content: workbooks are zip containers
func sniffFormat(data []byte) dataset.Format {
	if bytes.HasPrefix(data, zipMagic) {
		return dataset.FormatXLSX
	}
	return dataset.FormatCSV
}

package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
	"gogeomap/internal"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// DataReader handles reading Excel and CSV uploads into tables
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig) *DataReader {
	if config.Comma == 0 {
		config.Comma = ','
	}
	return &DataReader{
		config: config,
		logger: internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// ReadFile reads a table from disk
func (r *DataReader) ReadFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(string(FormatFromName(path))), path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return r.Read(filepath.Base(path), f)
}

// Read reads a table from src. The name is only a hint: workbooks are
// recognised by their zip signature, everything else is parsed as CSV.
func (r *DataReader) Read(name string, src io.Reader) (*dataset.Table, error) {
	startTime := time.Now()

	data, err := r.readAll(src)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, core.ErrEmptyInput
	}

	format := sniffFormat(data)
	if hinted := FormatFromName(name); hinted != format {
		r.logger.Debug("%s is named like %s but its content is %s", name, hinted, format)
	}

	table, err := r.parse(format, data)
	if err != nil {
		r.logger.Warn("could not read %s: %v", name, err)
		if errors.Is(err, core.ErrInputUnreadable) {
			return nil, err
		}
		return nil, core.NewUnreadableError(string(format), err)
	}

	table.Source = name
	r.logger.Info("%s file processed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(table.Format)), float64(time.Since(startTime).Nanoseconds())/1e6, len(table.Headers), table.Len())

	return table, nil
}

func (r *DataReader) readAll(src io.Reader) ([]byte, error) {
	if r.config.MaxBytes <= 0 {
		return io.ReadAll(src)
	}
	data, err := io.ReadAll(io.LimitReader(src, r.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > r.config.MaxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", core.ErrInputTooLarge, r.config.MaxBytes)
	}
	return data, nil
}

func (r *DataReader) parse(format dataset.Format, data []byte) (*dataset.Table, error) {
	var rows [][]string
	var err error
	switch format {
	case dataset.FormatXLSX:
		rows, err = r.readExcelRows(data)
	case dataset.FormatCSV:
		rows, err = r.readCSVRows(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", format)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, core.ErrEmptyInput
	}

	table, err := dataset.NewTable(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}
	table.Format = format
	return table, nil
}

// readExcelRows reads the configured sheet (default: first) with raw cell values,
// so number formats cannot round coordinates away.
func (r *DataReader) readExcelRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := r.config.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheetName, err)
	}
	r.logger.Debug("sheet %s read (%d rows)", sheetName, len(rows))
	return rows, nil
}

// readCSVRows reads comma separated text with cells kept verbatim. Input that
// is not valid UTF-8 is decoded as Windows-1252, the usual encoding of
// spreadsheet CSV exports.
func (r *DataReader) readCSVRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode CSV file: %w", err)
		}
		r.logger.Debug("CSV is not UTF-8, decoded as Windows-1252")
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = r.config.Comma
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

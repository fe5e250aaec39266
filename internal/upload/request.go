// Package upload turns multipart form requests into tables and column
// selections for the HTTP layers.
package upload

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gogeomap/domain/core"
	"gogeomap/domain/dataset"
	"gogeomap/internal/errors"
	"gogeomap/ports"
)

// Form field names shared by the UI page and the JSON API
const (
	FieldDataset   = "dataset"
	FieldGroup     = "group"
	FieldLabel     = "label"
	FieldVisualize = "visualize"
)

// multipartMemory is how much of a form is held in memory before spilling to disk
const multipartMemory = 8 << 20

// ReadTable parses the multipart form and reads the uploaded dataset file.
// The body is capped at maxBytes; larger uploads fail with ErrInputTooLarge.
func ReadTable(w http.ResponseWriter, r *http.Request, reader ports.TableReaderPort, maxBytes int64) (*dataset.Table, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, errors.Wrapf(core.ErrInputTooLarge, "upload exceeds %d bytes", maxBytes)
		}
		return nil, &errors.AppError{Code: errors.CodeInvalidInput, Message: "expected a multipart form", Cause: err}
	}

	file, header, err := r.FormFile(FieldDataset)
	if err != nil {
		return nil, errors.InvalidInput("No file uploaded")
	}
	defer file.Close()

	table, err := reader.Read(header.Filename, file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", header.Filename)
	}
	return table, nil
}

// ParseSelection reads group/label columns and the visualize switch.
// Columns are taken from repeated fields; blank values are ignored.
// visualizeDefault applies when the field is absent.
func ParseSelection(form url.Values, visualizeDefault bool) ports.Selection {
	sel := ports.Selection{
		GroupColumns: nonBlank(form[FieldGroup]),
		LabelColumns: nonBlank(form[FieldLabel]),
		VisualizeMap: visualizeDefault,
	}
	if raw, ok := form[FieldVisualize]; ok && len(raw) > 0 {
		sel.VisualizeMap = parseBool(raw[len(raw)-1])
	}
	return sel
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "on" || s == "yes" {
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

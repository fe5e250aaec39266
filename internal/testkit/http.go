package testkit

import (
	"bytes"
	"context"
	"mime/multipart"

	"gogeomap/domain/dataset"
	"gogeomap/internal/mapset"
	"gogeomap/ports"

	"github.com/stretchr/testify/mock"
)

// Upload describes a multipart form submission
type Upload struct {
	FileField string
	FileName  string
	Content   []byte
	Fields    map[string][]string
}

// MultipartBody encodes the upload and returns the body with its content type
func MultipartBody(u Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for name, values := range u.Fields {
		for _, v := range values {
			if err := mw.WriteField(name, v); err != nil {
				return nil, "", err
			}
		}
	}

	if u.FileName != "" {
		field := u.FileField
		if field == "" {
			field = "dataset"
		}
		fw, err := mw.CreateFormFile(field, u.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(u.Content); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return body, mw.FormDataContentType(), nil
}

// MockMapSetPort is a testify mock of ports.MapSetPort
type MockMapSetPort struct {
	mock.Mock
}

var _ ports.MapSetPort = (*MockMapSetPort)(nil)

func (m *MockMapSetPort) DetectCoordinateColumns(table *dataset.Table) mapset.CoordinateColumns {
	args := m.Called(table)
	return args.Get(0).(mapset.CoordinateColumns)
}

func (m *MockMapSetPort) Inspect(table *dataset.Table) ports.TableInfo {
	args := m.Called(table)
	return args.Get(0).(ports.TableInfo)
}

func (m *MockMapSetPort) GenerateMapSet(ctx context.Context, table *dataset.Table, sel ports.Selection) (*ports.MapSetResult, error) {
	args := m.Called(ctx, table, sel)
	var result *ports.MapSetResult
	if r := args.Get(0); r != nil {
		result = r.(*ports.MapSetResult)
	}
	return result, args.Error(1)
}

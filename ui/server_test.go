package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gogeomap/adapters/excel"
	"gogeomap/app"
	"gogeomap/domain/core"
	"gogeomap/internal/config"
	"gogeomap/internal/mapset"
	"gogeomap/internal/testkit"
	"gogeomap/ports"
	"gogeomap/ui/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sitesCSV = "city,Latitude,Longitude,name\nA,1,1,one\nA,3,3,two\nB,10,10,three\n"

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.GinMode = "test"
	return cfg
}

func newTestServer(t *testing.T, service ports.MapSetPort) *Server {
	t.Helper()
	cfg := testConfig()
	if service == nil {
		svc, err := app.NewMapSetService(app.MapSetServiceConfigFrom(cfg))
		require.NoError(t, err)
		service = svc
	}
	s, err := NewServer(cfg, service, excel.NewDataReader(excel.DefaultReaderConfig()))
	require.NoError(t, err)
	return s
}

func postUpload(t *testing.T, s *Server, path string, upload testkit.Upload, accept string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType, err := testkit.MultipartBody(upload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersInstructions(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Flexible GPS &amp; Data Visualization Tool")
	assert.Contains(t, rec.Body.String(), "<strong>Excel</strong>", "instructions are rendered from markdown")
	assert.Contains(t, rec.Body.String(), `action="/generate"`)
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.HeaderRequestID, "0190a4d2-1c2b-7def-8000-000000000001")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "0190a4d2-1c2b-7def-8000-000000000001", rec.Header().Get(middleware.HeaderRequestID))
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postUpload(t, s, "/inspect", testkit.Upload{FileName: "sites.csv", Content: []byte(sitesCSV)}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var info ports.TableInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, []string{"city", "Latitude", "Longitude", "name"}, info.Headers)
	assert.Equal(t, 3, info.RowCount)
	assert.True(t, info.MapAvailable)
	assert.Equal(t, "Latitude", info.Coordinates.Latitude)
	assert.Equal(t, "Longitude", info.Coordinates.Longitude)
}

func TestInspectWithoutFile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postUpload(t, s, "/inspect", testkit.Upload{Fields: map[string][]string{"group": {"city"}}}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file uploaded")
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_INPUT"`)
}

func TestGenerateReturnsArchive(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postUpload(t, s, "/generate", testkit.Upload{
		FileName: "sites.csv",
		Content:  []byte(sitesCSV),
		Fields:   map[string][]string{"group": {"city"}, "visualize": {"on"}},
	}, "text/html")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="generated_maps.zip"`)
	assert.Equal(t, "2", rec.Header().Get("X-Map-Count"))
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))

	entries, err := mapset.ReadArchive(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "A_map.html", entries[0].Name)
	assert.Equal(t, "B_map.html", entries[1].Name)
}

func TestGenerateSummaryWhenMapNotRequested(t *testing.T) {
	s := newTestServer(t, nil)
	upload := testkit.Upload{
		FileName: "sites.csv",
		Content:  []byte(sitesCSV),
		Fields:   map[string][]string{"group": {"city"}},
	}

	rec := postUpload(t, s, "/generate", upload, "text/html")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<th>city</th>")
	assert.Contains(t, rec.Body.String(), "<td>B</td>")

	rec = postUpload(t, s, "/generate", upload, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var result ports.MapSetResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, ports.SkipNotRequested, result.SkipReason)
	require.NotNil(t, result.Summary)
	assert.Equal(t, [][]string{{"A"}, {"B"}}, result.Summary.Rows)
}

func TestGenerateErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		upload testkit.Upload
		status int
		code   string
	}{
		{
			name:   "no selection",
			upload: testkit.Upload{FileName: "sites.csv", Content: []byte(sitesCSV), Fields: map[string][]string{"visualize": {"on"}}},
			status: http.StatusBadRequest,
			code:   "NO_SELECTION",
		},
		{
			name:   "unknown column",
			upload: testkit.Upload{FileName: "sites.csv", Content: []byte(sitesCSV), Fields: map[string][]string{"group": {"country"}}},
			status: http.StatusBadRequest,
			code:   "INVALID_INPUT",
		},
		{
			name:   "no valid points",
			upload: testkit.Upload{FileName: "sites.csv", Content: []byte("city,lat,lon\nA,x,y\n"), Fields: map[string][]string{"group": {"city"}, "visualize": {"true"}}},
			status: http.StatusUnprocessableEntity,
			code:   "NO_VALID_POINTS",
		},
		{
			name:   "empty file",
			upload: testkit.Upload{FileName: "sites.csv", Content: []byte("  \n"), Fields: map[string][]string{"group": {"city"}}},
			status: http.StatusUnprocessableEntity,
			code:   "INPUT_UNREADABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postUpload(t, s, "/generate", tt.upload, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGenerateUploadTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxUploadMB = 1
	s, err := NewServer(cfg, &testkit.MockMapSetPort{}, excel.NewDataReader(excel.DefaultReaderConfig()))
	require.NoError(t, err)

	big := make([]byte, 2<<20)
	for i := range big {
		big[i] = 'a'
	}
	rec := postUpload(t, s, "/generate", testkit.Upload{FileName: "big.csv", Content: big}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGeneratePassesSelection(t *testing.T) {
	port := &testkit.MockMapSetPort{}
	port.On("GenerateMapSet", mock.Anything, mock.Anything, ports.Selection{
		GroupColumns: []string{"city"},
		LabelColumns: []string{"name"},
		VisualizeMap: false,
	}).Return(&ports.MapSetResult{
		RunID:      core.RunID("run-1"),
		SkipReason: ports.SkipNotRequested,
		Summary:    &mapset.Summary{Columns: []string{"city"}, Rows: [][]string{{"A"}}, Distinct: 1},
		Message:    "summary only",
	}, nil).Once()

	s := newTestServer(t, port)
	rec := postUpload(t, s, "/generate", testkit.Upload{
		FileName: "sites.csv",
		Content:  []byte(sitesCSV),
		Fields:   map[string][]string{"group": {"city", " "}, "label": {"name"}},
	}, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"message":"summary only"`)
	port.AssertExpectations(t)
}

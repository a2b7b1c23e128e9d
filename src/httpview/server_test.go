package httpview

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/BitonicBenchViewer/src/figure"
)

const scenarioCSV = `SIZE,Serial,Parallel CPU,Parallel Intel GPU,Parallel Nvidia GPU
100,500,120,200,80
200,1000,240,400,160
`

func init() { gin.SetMode(gin.TestMode) }

func newTestServer(t *testing.T, content string) (*Server, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "results.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return New(p, figure.Options{Width: 600, Height: 360}), p
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestChartPNG(t *testing.T) {
	s, _ := newTestServer(t, scenarioCSV)
	rec := get(t, s.Handler(), "/chart.png?caption=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())
}

func TestChartSVG(t *testing.T) {
	s, _ := newTestServer(t, scenarioCSV)
	rec := get(t, s.Handler(), "/chart.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestFigureJSON(t *testing.T) {
	s, _ := newTestServer(t, scenarioCSV)
	rec := get(t, s.Handler(), "/api/figure")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Title  string `json:"title"`
		Series []struct {
			Name   string         `json:"name"`
			Points []figure.Point `json:"points"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, figure.Title, got.Title)
	require.Len(t, got.Series, 4)
	assert.Equal(t, "Parallel Nvidia GPU", got.Series[3].Name)
	assert.Equal(t, []figure.Point{{X: 100, Y: 80}, {X: 200, Y: 160}}, got.Series[3].Points)
}

func TestErrorStatuses(t *testing.T) {
	missing, _ := newTestServer(t, "")
	rec := get(t, missing.Handler(), "/chart.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "results file")

	noIntel, _ := newTestServer(t, "SIZE,Serial,Parallel CPU,Parallel Nvidia GPU\n1,2,3,4\n")
	rec = get(t, noIntel.Handler(), "/api/figure")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Parallel Intel GPU")

	bad, _ := newTestServer(t, "SIZE,Serial\n1,quick\n")
	rec = get(t, bad.Handler(), "/chart.svg")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReloadsPerRequest(t *testing.T) {
	s, path := newTestServer(t, scenarioCSV)
	h := s.Handler()
	require.Equal(t, http.StatusOK, get(t, h, "/api/figure").Code)

	require.NoError(t, os.Remove(path))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/figure").Code)
}

func TestIndexAndHealth(t *testing.T) {
	s, _ := newTestServer(t, scenarioCSV)
	h := s.Handler()
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/chart.png"`)
	assert.Contains(t, rec.Body.String(), "background:#ffffff")
	assert.Contains(t, rec.Body.String(), "max-width:100%")

	s.Options.Dark = true
	rec = get(t, s.Handler(), "/")
	assert.Contains(t, rec.Body.String(), "background:#121212")

	rec = get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

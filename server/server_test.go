package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tsawler/pagelayout/config"
	"github.com/tsawler/pagelayout/model"
)

var pageBBox = model.NewRect(0, 0, 500, 700)

func twoColumnLines() []model.TextLine {
	var lines []model.TextLine
	for k := 0; k < 8; k++ {
		top := 100 + 20*float64(k)
		lines = append(lines,
			model.TextLine{BBox: model.NewRect(0, top, 200, top+12), Text: "left column text"},
			model.TextLine{BBox: model.NewRect(260, top, 480, top+12), Text: "right column text"},
		)
	}
	return lines
}

func lineBoxDocument(t *testing.T, pages int) []byte {
	t.Helper()

	var doc []map[string]any
	for i := 0; i < pages; i++ {
		doc = append(doc, map[string]any{
			"bbox":    pageBBox,
			"tblocks": []map[string]any{{"lines": twoColumnLines()}},
		})
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	return data
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}

	s, err := New(cfg)
	require.NoError(t, err)

	return s.Handler()
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestLayout(t *testing.T) {
	h := newTestServer(t, nil)

	var rects []model.Rect
	for _, l := range twoColumnLines() {
		rects = append(rects, l.BBox)
	}
	body, err := json.Marshal(LayoutRequest{Page: 2, BBox: &pageBBox, Rects: rects})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result model.PageLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, 2, result.Number)
	assert.True(t, result.DoubleColumn)
	assert.Equal(t, pageBBox, result.BBox)
	assert.Equal(t, 200.0, result.Regions.Left.TextColumnWidth)
	assert.Equal(t, 260.0, result.Regions.Right.TextColumnLeftEdge)
}

func TestLayoutBadRequest(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"bbox": [0, 0`},
		{"missing bbox", `{"rects": [[0, 0, 10, 10]]}`},
		{"rect as object", `{"bbox": [0, 0, 500, 700], "rects": [{"left": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyzeRawBody(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewReader(lineBoxDocument(t, 2)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc model.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, model.LayoutVersion, doc.Version)
	require.Len(t, doc.Pages, 2)
	assert.True(t, doc.Pages[0].DoubleColumn)
	assert.Equal(t, 2, doc.Pages[1].Number)
}

func TestAnalyzeMultipart(t *testing.T) {
	h := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "pages.json")
	require.NoError(t, err)
	_, err = fw.Write(lineBoxDocument(t, 3))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("pages", "1,3"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc model.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, 3, doc.Pages[1].Number)
}

func TestAnalyzeErrors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name  string
		body  []byte
		pages string
		want  int
	}{
		{"empty body", nil, "", http.StatusBadRequest},
		{"unsupported format", []byte("hello world"), "", http.StatusUnsupportedMediaType},
		{"broken line boxes", []byte(`[{"bbox": 1}]`), "", http.StatusBadRequest},
		{"page out of range", lineBoxDocument(t, 1), "2", http.StatusBadRequest},
		{"invalid pages", lineBoxDocument(t, 1), "one", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/v1/analyze"
			if tt.pages != "" {
				target += "?pages=" + url.QueryEscape(tt.pages)
			}

			req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/octet-stream")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAnalyzeHOCRIgnoresServerImages(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "secret.png")
	f, err := os.Create(imagePath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 1234, 4321))))
	require.NoError(t, f.Close())

	hocr := `<html><body>
<div class='ocr_page' title='image "` + imagePath + `"'>
  <span class='ocr_line' title='bbox 10 10 50 20'><span class='ocrx_word'>text</span></span>
</div>
</body></html>`

	cfg := config.Default()
	cfg.SkipPreprocess = true
	h := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(hocr))
	req.Header.Set("Content-Type", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc model.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, model.NewRect(10, 10, 50, 20), doc.Pages[0].BBox, "page bbox must come from the lines, not the server file")
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Limiter = rate.NewLimiter(rate.Limit(0.001), 1)

	h := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestNewInvalidParams(t *testing.T) {
	cfg := config.Default()
	cfg.Params.PageWidth = 0

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestValuePages(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?pages="+url.QueryEscape("1,3-4"), nil)

	got, err := valuePages(req)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, got)

	got, err = valuePages(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, got)
}

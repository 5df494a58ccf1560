package handlers_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"stickr/internal/api"
	"stickr/internal/api/handlers"
	"stickr/internal/engine/stickers"
	"stickr/internal/platform/config"
	"stickr/internal/platform/store"
	"stickr/internal/web"
)

func testDefaults() config.StickersConfig {
	return config.StickersConfig{
		SizeCM:           4.0,
		LogoScalePct:     25,
		CutoutPaddingPct: 120,
		SerialWidthPct:   50,
		DPI:              300,
		ErrorCorrection:  "H",
		BoxSize:          10,
		BorderModules:    2,
		BatchTTL:         time.Minute,
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	defaults := testDefaults()
	service := stickers.NewService(50)
	batchStore := store.NewBatchStore(defaults.BatchTTL)

	webHandler, err := web.NewHandler(defaults)
	if err != nil {
		t.Fatalf("web.NewHandler() error = %v", err)
	}

	return api.NewRouter(&api.Dependencies{
		StickerHandler: handlers.NewStickerHandler(service, batchStore, defaults),
		HealthHandler:  handlers.NewHealthHandler(batchStore),
		WebHandler:     webHandler,
		MaxUploadBytes: 8 << 20,
	})
}

func logoPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
	draw.Draw(img, image.Rect(16, 16, 112, 112),
		image.NewUniform(color.Black), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, csv string, logo []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if csv != "" {
		fw, err := mw.CreateFormFile("csv", "serials.csv")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(csv))
	}
	if logo != nil {
		fw, err := mw.CreateFormFile("logo", "logo.png")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(logo)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	return &buf, mw.FormDataContentType()
}

type generateResponse struct {
	BatchID    string   `json:"batch_id"`
	Count      int      `json:"count"`
	Serials    []string `json:"serials"`
	ArchiveURL string   `json:"archive_url"`
	Previews   []string `json:"previews"`
}

func TestGenerateDownloadFlow(t *testing.T) {
	router := newTestRouter(t)

	csv := "Serial,URL\nHX-001,https://example.com/a\nHX-002,https://example.com/b\n"
	body, contentType := multipartBody(t, csv, logoPNG(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stickers", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 || len(resp.Serials) != 2 {
		t.Fatalf("response = %+v, want 2 stickers", resp)
	}
	if len(resp.Previews) != 2 {
		t.Errorf("previews = %v, want 2 urls", resp.Previews)
	}

	// Archive download: 2N entries.
	req = httptest.NewRequest(http.MethodGet, resp.ArchiveURL, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("archive status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("archive content type = %q", ct)
	}

	zipData := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		t.Fatalf("archive is not a valid zip: %v", err)
	}
	if len(zr.File) != 4 {
		t.Errorf("archive has %d entries, want 4", len(zr.File))
	}

	// Preview serves a decodable PNG.
	req = httptest.NewRequest(http.MethodGet, resp.Previews[0], nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Errorf("preview is not valid png: %v", err)
	}

	// Metadata endpoint.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stickers/"+resp.BatchID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metadata status = %d", rec.Code)
	}
	var meta stickers.Batch
	if err := json.NewDecoder(rec.Body).Decode(&meta); err != nil {
		t.Fatalf("decoding metadata: %v", err)
	}
	if meta.ID != resp.BatchID || meta.Count != 2 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestGenerateErrors(t *testing.T) {
	router := newTestRouter(t)
	logo := logoPNG(t)

	tests := []struct {
		name       string
		csv        string
		logo       []byte
		fields     map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Missing CSV File",
			logo:       logo,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Missing Logo File",
			csv:        "Serial,URL\nHX-001,https://example.com\n",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Missing Serial Column",
			csv:        "Name,URL\nfoo,https://example.com\n",
			logo:       logo,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "MISSING_COLUMN",
		},
		{
			name:       "Empty CSV",
			csv:        "Serial,URL\n",
			logo:       logo,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Unencodable URL",
			csv:        "Serial,URL\nHX-001,https://example.com/" + strings.Repeat("x", 8000) + "\n",
			logo:       logo,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNENCODABLE_URL",
		},
		{
			name:       "Bad Settings Value",
			csv:        "Serial,URL\nHX-001,https://example.com\n",
			logo:       logo,
			fields:     map[string]string{"dpi": "42"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Non Numeric Setting",
			csv:        "Serial,URL\nHX-001,https://example.com\n",
			logo:       logo,
			fields:     map[string]string{"box_size": "big"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Logo Not An Image",
			csv:        "Serial,URL\nHX-001,https://example.com\n",
			logo:       []byte("not a png"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.csv, tt.logo, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/stickers", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var errResp struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", errResp.Code, tt.wantCode)
			}
		})
	}
}

func TestBatchNotFound(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/stickers/unknown",
		"/api/v1/stickers/unknown/archive",
		"/api/v1/stickers/unknown/preview/" + url.PathEscape("HX-001"),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}

	var resp struct {
		Status      string `json:"status"`
		LiveBatches int    `json:"live_batches"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestFormPage(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("form page status = %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Sticker Settings") {
		t.Error("form page missing settings sidebar")
	}
	// Defaults are injected into the controls.
	if !strings.Contains(page, `value="4"`) && !strings.Contains(page, `value="4.0"`) {
		t.Error("form page missing default sticker size")
	}
}

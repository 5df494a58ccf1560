package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	apiContext "stickr/internal/api/context"
	"stickr/internal/engine/stickers"
	apierrors "stickr/internal/pkg/errors"
	"stickr/internal/platform/config"
	"stickr/internal/platform/store"
)

// multipartMemory is the in-memory threshold for multipart parsing; larger
// parts spill to temp files.
const multipartMemory = 8 << 20

type StickerHandler struct {
	service  *stickers.Service
	store    *store.BatchStore
	defaults config.StickersConfig
}

func NewStickerHandler(service *stickers.Service, batchStore *store.BatchStore, defaults config.StickersConfig) *StickerHandler {
	return &StickerHandler{
		service:  service,
		store:    batchStore,
		defaults: defaults,
	}
}

type generateResponse struct {
	BatchID    string   `json:"batch_id"`
	Count      int      `json:"count"`
	Serials    []string `json:"serials"`
	ArchiveURL string   `json:"archive_url"`
	Previews   []string `json:"previews"`
}

// Generate accepts the multipart form (csv, logo, settings fields), runs the
// batch and stores the result for download.
func (h *StickerHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.WriteError(w, http.StatusRequestEntityTooLarge,
				apierrors.ErrCodePayloadTooLarge, "Upload exceeds the size limit", nil)
			return
		}
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, "Invalid multipart form", nil)
		return
	}

	csvFile, _, err := r.FormFile("csv")
	if err != nil {
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, "Missing csv file", nil)
		return
	}
	defer csvFile.Close()

	logoFile, _, err := r.FormFile("logo")
	if err != nil {
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, "Missing logo file", nil)
		return
	}
	defer logoFile.Close()

	logo, _, err := image.Decode(logoFile)
	if err != nil {
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, "Logo is not a decodable image", nil)
		return
	}

	settings, err := h.settingsFromForm(r)
	if err != nil {
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	batch, err := h.service.GenerateBatch(csvFile, logo, settings)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	h.store.Put(batch)

	previews := batch.Serials
	if len(previews) > 3 {
		previews = previews[:3]
	}
	previewURLs := make([]string, 0, len(previews))
	for _, serial := range previews {
		previewURLs = append(previewURLs,
			fmt.Sprintf("/api/v1/stickers/%s/preview/%s", batch.ID, serial))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(generateResponse{
		BatchID:    batch.ID,
		Count:      batch.Count,
		Serials:    batch.Serials,
		ArchiveURL: fmt.Sprintf("/api/v1/stickers/%s/archive", batch.ID),
		Previews:   previewURLs,
	})
}

func writeGenerateError(w http.ResponseWriter, err error) {
	var missingCol *stickers.MissingColumnError
	var rowLimit *stickers.RowLimitError

	switch {
	case errors.As(err, &missingCol):
		apierrors.WriteError(w, http.StatusUnprocessableEntity,
			apierrors.ErrCodeMissingColumn, err.Error(),
			map[string]string{"column": missingCol.Column})
	case errors.As(err, &rowLimit):
		apierrors.WriteError(w, http.StatusUnprocessableEntity,
			apierrors.ErrCodeRowLimitExceeded, err.Error(), nil)
	case errors.Is(err, stickers.ErrNoJobs):
		apierrors.WriteError(w, http.StatusUnprocessableEntity,
			apierrors.ErrCodeInvalidInput, err.Error(), nil)
	case errors.Is(err, stickers.ErrUnencodable):
		apierrors.WriteError(w, http.StatusUnprocessableEntity,
			apierrors.ErrCodeUnencodableURL, err.Error(), nil)
	default:
		apierrors.WriteError(w, http.StatusBadRequest,
			apierrors.ErrCodeInvalidInput, err.Error(), nil)
	}
}

// settingsFromForm starts from the configured defaults and applies any
// sidebar value present in the form. Range enforcement happens in the
// service's validator.
func (h *StickerHandler) settingsFromForm(r *http.Request) (stickers.Settings, error) {
	s := stickers.Settings{
		SizeCM:           h.defaults.SizeCM,
		LogoScalePct:     h.defaults.LogoScalePct,
		CutoutPaddingPct: h.defaults.CutoutPaddingPct,
		SerialWidthPct:   h.defaults.SerialWidthPct,
		DPI:              h.defaults.DPI,
		ErrorCorrection:  h.defaults.ErrorCorrection,
		BoxSize:          h.defaults.BoxSize,
		BorderModules:    h.defaults.BorderModules,
	}

	if v := r.FormValue("size_cm"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, errors.New("size_cm must be a number")
		}
		s.SizeCM = f
	}

	intFields := []struct {
		name string
		dst  *int
	}{
		{"logo_scale_pct", &s.LogoScalePct},
		{"cutout_padding_pct", &s.CutoutPaddingPct},
		{"serial_width_pct", &s.SerialWidthPct},
		{"dpi", &s.DPI},
		{"box_size", &s.BoxSize},
	}
	for _, field := range intFields {
		if v := r.FormValue(field.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return s, fmt.Errorf("%s must be an integer", field.name)
			}
			*field.dst = n
		}
	}

	if v := r.FormValue("error_correction"); v != "" {
		s.ErrorCorrection = strings.ToUpper(strings.TrimSpace(v))
	}

	return s, nil
}

// Get returns batch metadata.
func (h *StickerHandler) Get(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.batchFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch)
}

// DownloadArchive streams the batch ZIP.
func (h *StickerHandler) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.batchFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "hexmodal_stickers.zip"))
	w.Write(batch.Archive)
}

// Preview serves one sticker's PNG.
func (h *StickerHandler) Preview(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.batchFromRequest(w, r)
	if !ok {
		return
	}

	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	serial := params.ByName("serial")

	png, ok := batch.PreviewPNG(serial)
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound,
			apierrors.ErrCodeNotFound, "No sticker with that serial in this batch", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *StickerHandler) batchFromRequest(w http.ResponseWriter, r *http.Request) (*stickers.Batch, bool) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	batchID := params.ByName("batch_id")

	batch, ok := h.store.Get(batchID)
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound,
			apierrors.ErrCodeNotFound, "Batch not found or expired", nil)
		return nil, false
	}
	return batch, true
}

package stickers

import (
	"time"
)

// Job is a single CSV row: one serial number and the URL its QR encodes.
type Job struct {
	Serial string `json:"serial"`
	URL    string `json:"url"`
}

// Settings are the render options exposed in the form sidebar. Ranges match
// ValidateSettings; values outside them reject the whole run.
type Settings struct {
	SizeCM           float64 `json:"size_cm"`            // physical sticker edge, 2-20
	LogoScalePct     int     `json:"logo_scale_pct"`     // logo width as % of QR width, 10-40
	CutoutPaddingPct int     `json:"cutout_padding_pct"` // cutout size as % of logo size, 100-160
	SerialWidthPct   int     `json:"serial_width_pct"`   // serial text width as % of QR width, 20-80
	DPI              int     `json:"dpi"`                // PNG export resolution
	ErrorCorrection  string  `json:"error_correction"`   // L, M, Q or H
	BoxSize          int     `json:"box_size"`           // pixels per QR module, 10-40
	BorderModules    int     `json:"border_modules"`     // quiet zone width in modules
}

// RenderedSticker is the pair of outputs produced for one job.
type RenderedSticker struct {
	Serial string
	PNG    []byte
	PDF    []byte
}

// Batch is a completed generation run. The archive is the only artifact that
// outlives the run; per-serial PNGs are retained for the preview endpoints
// until the batch expires from the store.
type Batch struct {
	ID        string    `json:"batch_id"`
	Count     int       `json:"count"`
	Serials   []string  `json:"serials"`
	CreatedAt time.Time `json:"created_at"`

	Archive  []byte            `json:"-"`
	previews map[string][]byte
}

// PreviewPNG returns the rendered sticker PNG for a serial in this batch.
func (b *Batch) PreviewPNG(serial string) ([]byte, bool) {
	png, ok := b.previews[serial]
	return png, ok
}

package stickers

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	maxRows int
}

func NewService(maxRows int) *Service {
	return &Service{maxRows: maxRows}
}

// RowLimitError reports a CSV with more data rows than the service accepts.
type RowLimitError struct {
	Rows, Limit int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("csv has %d rows, limit is %d", e.Rows, e.Limit)
}

// GenerateBatch runs one full generation: parse the CSV, render a sticker
// pair per row, package everything into one archive. Rows render
// sequentially; the first failing row aborts the batch.
func (s *Service) GenerateBatch(csvData io.Reader, logo image.Image, set Settings) (*Batch, error) {
	if err := ValidateSettings(set); err != nil {
		return nil, err
	}

	jobs, err := ParseJobs(csvData)
	if err != nil {
		return nil, err
	}
	if err := ValidateJobs(jobs); err != nil {
		return nil, err
	}
	if s.maxRows > 0 && len(jobs) > s.maxRows {
		return nil, &RowLimitError{Rows: len(jobs), Limit: s.maxRows}
	}

	rendered := make([]RenderedSticker, 0, len(jobs))
	previews := make(map[string][]byte, len(jobs))
	serials := make([]string, 0, len(jobs))

	for _, job := range jobs {
		sticker, err := s.renderOne(job, logo, set)
		if err != nil {
			return nil, fmt.Errorf("rendering serial %q: %w", job.Serial, err)
		}
		rendered = append(rendered, sticker)
		previews[sticker.Serial] = sticker.PNG
		serials = append(serials, sticker.Serial)
	}

	archive, err := BuildArchive(rendered)
	if err != nil {
		return nil, err
	}

	return &Batch{
		ID:        uuid.New().String(),
		Count:     len(rendered),
		Serials:   serials,
		CreatedAt: time.Now(),
		Archive:   archive,
		previews:  previews,
	}, nil
}

func (s *Service) renderOne(job Job, logo image.Image, set Settings) (RenderedSticker, error) {
	qr, err := EncodeQR(job.URL, set)
	if err != nil {
		return RenderedSticker{}, err
	}

	qr = PasteLogoHex(qr, logo, set)

	composed, layout, err := ComposeSticker(job.Serial, qr, set)
	if err != nil {
		return RenderedSticker{}, err
	}

	pngBytes, err := EncodePNG(composed, set.DPI)
	if err != nil {
		return RenderedSticker{}, err
	}

	pdfBytes, err := RenderPDF(job.Serial, qr, layout, set)
	if err != nil {
		return RenderedSticker{}, err
	}

	return RenderedSticker{Serial: job.Serial, PNG: pngBytes, PDF: pdfBytes}, nil
}

package stickers

import (
	"fmt"
	"image"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
)

// PointsPerCM converts centimetres to PDF points.
const PointsPerCM = 72.0 / 2.54

const pdfFontFamily = "go-bold"

// RenderPDF writes one vector page mirroring the raster layout: serial in
// the top band, QR centered below. The page is exactly SizeCM square in
// points, which is what print shops key on.
func RenderPDF(serial string, qr image.Image, layout Layout, s Settings) ([]byte, error) {
	pagePt := s.SizeCM * PointsPerCM

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: pagePt, H: pagePt}})
	pdf.AddPage()

	if err := pdf.AddTTFFontData(pdfFontFamily, gobold.TTF); err != nil {
		return nil, fmt.Errorf("embedding font: %w", err)
	}

	fontPt := layout.ToPoints(layout.FontPx)
	if err := pdf.SetFont(pdfFontFamily, "", fontPt); err != nil {
		return nil, fmt.Errorf("selecting font: %w", err)
	}

	textAreaPt := layout.ToPoints(float64(layout.TextArea))
	textW, err := pdf.MeasureTextWidth(serial)
	if err != nil {
		return nil, fmt.Errorf("measuring serial: %w", err)
	}
	pdf.SetX((pagePt - textW) / 2)
	pdf.SetY((textAreaPt - fontPt) / 2)
	if err := pdf.Cell(nil, serial); err != nil {
		return nil, fmt.Errorf("writing serial: %w", err)
	}

	marginPt := layout.ToPoints(float64(layout.SideMargin))
	qrPt := layout.ToPoints(float64(layout.QRSize))
	qrRect := gopdf.Rect{W: qrPt, H: qrPt}
	if err := pdf.ImageFrom(qr, (pagePt-qrPt)/2, pagePt-marginPt-qrPt, &qrRect); err != nil {
		return nil, fmt.Errorf("placing qr image: %w", err)
	}

	return pdf.GetBytesPdf(), nil
}

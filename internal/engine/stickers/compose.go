package stickers

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Layout records the pixel geometry of a composed sticker so the PDF sink
// can reproduce the same arrangement in points.
type Layout struct {
	CanvasPx   int
	SideMargin int
	TextArea   int
	Gap        int
	QRSize     int
	QRX        int
	QRY        int
	FontPx     float64
	DPI        int
}

// ToPoints converts a pixel measure of this layout to PDF points.
func (l Layout) ToPoints(px float64) float64 {
	return px / float64(l.DPI) * 72.0
}

var (
	boldOnce sync.Once
	boldFont *sfnt.Font
	boldErr  error
)

func loadBoldFont() (*sfnt.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

func boldFace(sizePx float64) (font.Face, error) {
	fnt, err := loadBoldFont()
	if err != nil {
		return nil, err
	}
	// DPI 72 makes Size a pixel measure.
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// serialFontPx picks the font size whose rendered width is targetW pixels,
// capped at 90% of the text band height. TrueType advances scale linearly
// with size, so one measurement at a reference size is enough.
func serialFontPx(serial string, targetW, bandH float64) (float64, error) {
	const refSize = 100.0

	face, err := boldFace(refSize)
	if err != nil {
		return 0, err
	}
	defer face.Close()

	maxSize := bandH * 0.9
	refW := float64(font.MeasureString(face, serial)) / 64.0
	if refW <= 0 {
		return maxSize, nil
	}

	size := refSize * targetW / refW
	if size > maxSize {
		size = maxSize
	}
	return size, nil
}

// ComposeSticker lays out the final sticker canvas: the serial centered in a
// band across the top, the QR centered underneath. The canvas edge is
// SizeCM at the configured DPI.
func ComposeSticker(serial string, qr image.Image, s Settings) (image.Image, Layout, error) {
	px := int(s.SizeCM / 2.54 * float64(s.DPI))

	sideMargin := int(0.10 * float64(px))
	textArea := int(0.18 * float64(px))
	gap := int(0.02 * float64(px))

	qrDraw := px - 2*sideMargin
	if maxH := px - textArea - gap - sideMargin; maxH < qrDraw {
		qrDraw = maxH
	}

	dc := gg.NewContext(px, px)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Nearest neighbor keeps module edges sharp.
	resized := imaging.Resize(qr, qrDraw, qrDraw, imaging.NearestNeighbor)
	qrX := (px - qrDraw) / 2
	qrY := px - sideMargin - qrDraw
	dc.DrawImage(resized, qrX, qrY)

	targetW := float64(s.SerialWidthPct) / 100.0 * float64(qrDraw)
	fontPx, err := serialFontPx(serial, targetW, float64(textArea))
	if err != nil {
		return nil, Layout{}, err
	}

	face, err := boldFace(fontPx)
	if err != nil {
		return nil, Layout{}, err
	}
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(serial, float64(px)/2, float64(textArea)/2, 0.5, 0.5)

	layout := Layout{
		CanvasPx:   px,
		SideMargin: sideMargin,
		TextArea:   textArea,
		Gap:        gap,
		QRSize:     qrDraw,
		QRX:        qrX,
		QRY:        qrY,
		FontPx:     fontPx,
		DPI:        s.DPI,
	}
	return dc.Image(), layout, nil
}

package stickers

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

// fastTestSettings keeps rendered canvases small so the suite stays quick.
func fastTestSettings() Settings {
	s := defaultTestSettings()
	s.SizeCM = 4.0
	s.DPI = 300
	s.BoxSize = 10
	return s
}

// testLogo builds a solid black square logo with a transparent margin.
func testLogo(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	inset := size / 8
	draw.Draw(img,
		image.Rect(inset, inset, size-inset, size-inset),
		image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func decodeQRImage(t *testing.T, img image.Image) string {
	t.Helper()

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("creating bitmap: %v", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := gozxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		t.Fatalf("no QR code found in image: %v", err)
	}
	return result.GetText()
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

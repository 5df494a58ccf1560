package stickers

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// hexPath traces a regular hexagon with a vertex on the positive x axis,
// matching the cutout shape of the original stickers.
func hexPath(dc *gg.Context, cx, cy, radius float64) {
	for i := 0; i < 6; i++ {
		angle := gg.Radians(float64(i * 60))
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// PasteLogoHex clears a hexagonal area at the QR center and draws the logo
// inside it. The cutout is padded beyond the logo so a white rim separates
// logo ink from the surrounding modules; at the default settings the cleared
// area stays within the symbol's error correction tolerance.
func PasteLogoHex(qr image.Image, logo image.Image, s Settings) image.Image {
	bounds := qr.Bounds()
	width := bounds.Dx()

	logoSize := width * s.LogoScalePct / 100
	cutoutSize := logoSize * s.CutoutPaddingPct / 100

	dc := gg.NewContextForImage(qr)
	cx := float64(width) / 2
	cy := float64(bounds.Dy()) / 2

	// White out the cutout hexagon.
	hexPath(dc, cx, cy, float64(cutoutSize)/2)
	dc.SetRGB(1, 1, 1)
	dc.Fill()

	// Draw the logo clipped to a concentric, smaller hexagon.
	resized := imaging.Resize(logo, logoSize, logoSize, imaging.Lanczos)
	hexPath(dc, cx, cy, float64(logoSize)/2)
	dc.Clip()
	dc.DrawImageAnchored(resized, int(cx), int(cy), 0.5, 0.5)
	dc.ResetClip()

	return dc.Image()
}

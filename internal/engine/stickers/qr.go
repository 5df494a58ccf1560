package stickers

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

// ErrUnencodable marks URLs the QR encoder cannot fit at the requested
// error correction level.
var ErrUnencodable = errors.New("url cannot be encoded as a qr code")

func recoveryLevel(ec string) qrcode.RecoveryLevel {
	switch ec {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	default:
		return qrcode.Highest
	}
}

// EncodeQR renders url as a QR matrix at BoxSize pixels per module with a
// BorderModules quiet zone. Modules are drawn as solid squares so edges stay
// crisp through the later nearest-neighbor rescale.
func EncodeQR(url string, s Settings) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty url", ErrUnencodable)
	}

	code, err := qrcode.New(url, recoveryLevel(s.ErrorCorrection))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnencodable, err)
	}

	modules := trimQuietZone(code.Bitmap())
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrUnencodable)
	}

	side := (len(modules) + 2*s.BorderModules) * s.BoxSize
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	black := image.NewUniform(color.Black)
	offset := s.BorderModules * s.BoxSize
	for y, row := range modules {
		for x, set := range row {
			if !set {
				continue
			}
			rect := image.Rect(
				offset+x*s.BoxSize,
				offset+y*s.BoxSize,
				offset+(x+1)*s.BoxSize,
				offset+(y+1)*s.BoxSize,
			)
			draw.Draw(img, rect, black, image.Point{}, draw.Src)
		}
	}

	return img, nil
}

// trimQuietZone strips the encoder's own border down to the symbol's set
// modules so the configured quiet zone width is authoritative.
func trimQuietZone(bitmap [][]bool) [][]bool {
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1
	for y, row := range bitmap {
		for x, set := range row {
			if !set {
				continue
			}
			if minRow == -1 || y < minRow {
				minRow = y
			}
			if y > maxRow {
				maxRow = y
			}
			if minCol == -1 || x < minCol {
				minCol = x
			}
			if x > maxCol {
				maxCol = x
			}
		}
	}
	if minRow == -1 {
		return nil
	}

	trimmed := make([][]bool, 0, maxRow-minRow+1)
	for y := minRow; y <= maxRow; y++ {
		trimmed = append(trimmed, bitmap[y][minCol:maxCol+1])
	}
	return trimmed
}

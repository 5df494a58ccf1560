package stickers

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"math"
)

// pngHeaderLen is the PNG signature plus the fixed-size IHDR chunk.
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// EncodePNG encodes the sticker raster and stamps it with a pHYs chunk so
// print software reads back the intended physical size. The standard encoder
// never writes resolution metadata itself.
func EncodePNG(img image.Image, dpi int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	data := buf.Bytes()
	if len(data) < pngHeaderLen {
		return nil, fmt.Errorf("encoded png shorter than header")
	}

	out := make([]byte, 0, len(data)+21)
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, physChunk(dpi)...)
	out = append(out, data[pngHeaderLen:]...)
	return out, nil
}

// physChunk builds a pHYs chunk: pixels per metre on both axes, unit=metre.
func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9) // data length
	chunk = append(chunk, "pHYs"...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1)

	crc := crc32.ChecksumIEEE(chunk[4:])
	return binary.BigEndian.AppendUint32(chunk, crc)
}

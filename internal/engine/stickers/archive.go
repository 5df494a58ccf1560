package stickers

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// BuildArchive packs every sticker's PDF and PNG into a single flat ZIP,
// named by serial. Two entries per sticker, input order preserved.
func BuildArchive(rendered []RenderedSticker) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, sticker := range rendered {
		if err := addEntry(zw, sticker.Serial+"_sticker.pdf", sticker.PDF); err != nil {
			return nil, err
		}
		if err := addEntry(zw, sticker.Serial+"_sticker.png", sticker.PNG); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func addEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing archive entry %s: %w", name, err)
	}
	return nil
}

package render

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/go-pdf/fpdf"
)

var pngOptions = fpdf.ImageOptions{ImageType: "PNG"}

// safeImage draws the image file at the given position, or a small italic
// placeholder label when the file is absent or unreadable. Rendering of the
// rest of the document continues either way.
func safeImage(pdf *fpdf.Fpdf, tr func(string) string, path string, x, y, w float64, placeholder string) {
	if _, err := os.Stat(path); err != nil {
		pdf.SetXY(x, y)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, tr(placeholder), "", 0, "L", false, 0, "")
		return
	}
	pdf.ImageOptions(path, x, y, w, 0, false, fpdf.ImageOptions{ReadDpi: false}, 0, "")
}

// validPNG reports whether blob decodes as a PNG image. Record QR cells may
// hold garbage written by older tooling; those render as placeholders.
func validPNG(blob []byte) bool {
	if len(blob) == 0 {
		return false
	}
	_, err := png.DecodeConfig(bytes.NewReader(blob))
	return err == nil
}

// embedPNG materializes blob as a temporary file, hands it to the image
// primitive and removes it again. The file is fully written and closed before
// the embed call, and removed on every exit path, including embed failure.
func embedPNG(pdf *fpdf.Fpdf, blob []byte, x, y, w float64) error {
	tmp, err := os.CreateTemp("", "candapp-qr-*.png")
	if err != nil {
		return fmt.Errorf("render: temp asset: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("render: write temp asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("render: close temp asset: %w", err)
	}

	pdf.ImageOptions(name, x, y, w, 0, false, pngOptions, 0, "")
	if pdf.Err() {
		return fmt.Errorf("render: embed image: %w", pdf.Error())
	}
	return nil
}

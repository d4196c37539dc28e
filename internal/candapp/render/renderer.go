// Package render composes record data into PDF documents: the fixed-size
// LOTO tag card, the A4 batch report with embedded QR, the pre-commissioning
// ITR sheet and the dynamic-form result page.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Field is one labeled value of a report section. Wrap marks the free-text
// fields that flow over multiple lines; all other cells keep a fixed height
// and truncate instead of reflowing, so pages stay uniform across a batch.
type Field struct {
	Label string
	Value string
	Wrap  bool
}

// Section is the content of one batch-report page: the field table plus the
// record's QR image bytes (may be nil or unreadable; the page then carries a
// textual placeholder instead).
type Section struct {
	Fields []Field
	QR     []byte
}

// Renderer draws documents. Logo and warning-icon paths point at optional
// asset files; a missing file degrades to a text placeholder, never an error.
type Renderer struct {
	logoPath string
	iconPath string
	now      func() time.Time
}

// New returns a renderer using the given asset files.
func New(logoPath, iconPath string) *Renderer {
	return &Renderer{
		logoPath: logoPath,
		iconPath: iconPath,
		now:      time.Now,
	}
}

// timestamp is the footer stamp, e.g. "25/03/2024 16:40".
func (r *Renderer) timestamp() string {
	return r.now().Format("02/01/2006 15:04")
}

// output closes the document and returns its bytes.
func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: output pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateToWidth shortens s so it fits in width, appending an ellipsis when
// anything was cut. Non-wrapping table cells truncate instead of reflowing.
func truncateToWidth(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if candidate := string(runes) + "..."; pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

// Package qr encodes record identification payloads as QR raster images.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoding configuration. Fixed so that the same payload always produces
// bit-identical bytes, which the round-trip tests rely on.
const (
	// PNGSize is the edge length in pixels of the produced image.
	PNGSize = 256
	// Level is the error-correction level.
	Level = qrcode.Medium
)

// ErrEmptyPayload is returned when there is nothing to encode. Encoding an
// empty string is rejected rather than producing a degenerate image so that
// a caller passing a blank identifier fails loudly.
var ErrEmptyPayload = errors.New("qr: empty payload")

// Encode renders payload as a PNG image. Deterministic: identical payloads
// yield identical bytes across calls.
func Encode(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	code, err := qrcode.New(payload, Level)
	if err != nil {
		return nil, fmt.Errorf("qr: encode %q: %w", payload, err)
	}
	png, err := code.PNG(PNGSize)
	if err != nil {
		return nil, fmt.Errorf("qr: render png: %w", err)
	}
	return png, nil
}

// LockPayload builds the identification payload of a LOTO record. The key
// names and the ", " delimiter are the persisted format; printed tags in the
// field scan to exactly this string.
func LockPayload(noCandado, area, fecha string) string {
	return fmt.Sprintf("NoCandado=%s, Area=%s, Fecha=%s", noCandado, area, fecha)
}

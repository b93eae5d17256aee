// Package qr derives scannable codes from derived-image URLs.
package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Emit encodes the URL as a PNG QR code. Output is deterministic for a
// given URL (fixed size and recovery level).
func Emit(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, pngSize)
}

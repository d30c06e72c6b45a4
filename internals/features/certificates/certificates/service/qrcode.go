package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRPixels = 256
	MaxQRPixels     = 1024
)

// QRCodePNG encodes url as a PNG of size×size pixels (clamped to 64..1024).
func QRCodePNG(url string, size int) ([]byte, error) {
	switch {
	case size <= 0:
		size = DefaultQRPixels
	case size < 64:
		size = 64
	case size > MaxQRPixels:
		size = MaxQRPixels
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

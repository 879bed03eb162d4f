package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Encode, verilen içerik için PNG formatında QR kod bayt dizisi oluşturur
func Encode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}

package qr

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoCode means the frame held no readable QR code. Expected on most
// frames while scanning; callers swallow it.
var ErrNoCode = errors.New("nenhum QR code encontrado")

// DecodeImage extracts the QR text from one camera frame.
func DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("preparing frame: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		// The reader reports NotFound for blank frames; fold every
		// decode miss into the one sentinel.
		return "", ErrNoCode
	}
	return result.GetText(), nil
}

// DecodeFile reads and decodes a single image file.
func DecodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding image %s: %w", path, err)
	}
	return DecodeImage(img)
}

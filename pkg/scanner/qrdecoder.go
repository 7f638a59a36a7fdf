package scanner

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRDecoder decodes QR codes out of raw frames.
type QRDecoder struct {
	reader gozxing.Reader
}

func NewQRDecoder() *QRDecoder {
	return &QRDecoder{reader: qrcode.NewQRCodeReader()}
}

func (d *QRDecoder) Decode(frame image.Image) (string, error) {
	bitmap, err := gozxing.NewBinaryBitmapFromImage(frame)
	if err != nil {
		return "", fmt.Errorf("failed to prepare frame: %w", err)
	}
	result, err := d.reader.Decode(bitmap, nil)
	if err != nil {
		return "", fmt.Errorf("no code in frame: %w", err)
	}
	return result.GetText(), nil
}

// DecodeImage is the one-shot variant used by the photo-upload fallback when
// no live frame source is available.
func DecodeImage(frame image.Image) (string, error) {
	return NewQRDecoder().Decode(frame)
}

// Package imaging downscales offender photos before upload so slope-side
// mobile connections only ever push bounded payloads.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// MaxWidth is the widest an uploaded photo gets stored at.
	MaxWidth = 1200

	jpegQuality = 80
)

// Downscale decodes an image, scales it down to MaxWidth when wider and
// re-encodes it as JPEG. Images at or below MaxWidth are re-encoded without
// scaling, so the stored format is always JPEG.
func Downscale(reader io.Reader) ([]byte, error) {
	source, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := source.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image has empty bounds %dx%d", width, height)
	}

	target := source
	if width > MaxWidth {
		scaledHeight := height * MaxWidth / width
		if scaledHeight < 1 {
			scaledHeight = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, MaxWidth, scaledHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), source, bounds, draw.Over, nil)
		target = scaled
	}

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, target, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buffer.Bytes(), nil
}

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width int, height int) *bytes.Buffer {
	t.Helper()
	source := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			source.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, source); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buffer
}

func TestDownscaleWideImage(t *testing.T) {
	result, err := Downscale(encodePNG(t, 2400, 1600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not a valid jpeg: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != MaxWidth {
		t.Errorf("expected width %d, got %d", MaxWidth, bounds.Dx())
	}
	if bounds.Dy() != 800 {
		t.Errorf("expected aspect ratio to be kept, got height %d", bounds.Dy())
	}
}

func TestDownscaleKeepsSmallImageSize(t *testing.T) {
	result, err := Downscale(encodePNG(t, 640, 480))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not a valid jpeg: %v", err)
	}
	if decoded.Bounds().Dx() != 640 || decoded.Bounds().Dy() != 480 {
		t.Errorf("expected 640x480, got %dx%d", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestDownscaleRejectsGarbage(t *testing.T) {
	if _, err := Downscale(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected a decode error")
	}
}

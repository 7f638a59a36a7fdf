package scanner

import (
	"context"
	"errors"
	"image"
	"testing"
)

type fakeSource struct {
	frames   chan image.Image
	openErr  error
	released int
}

func newFakeSource(frameCount int) *fakeSource {
	frames := make(chan image.Image, frameCount)
	for i := 0; i < frameCount; i++ {
		frames <- image.NewGray(image.Rect(0, 0, 8, 8))
	}
	close(frames)
	return &fakeSource{frames: frames}
}

func (s *fakeSource) Open() (<-chan image.Image, func(), error) {
	if s.openErr != nil {
		return nil, nil, s.openErr
	}
	return s.frames, func() { s.released++ }, nil
}

type scriptedDecoder struct {
	results []string
	calls   int
}

func (d *scriptedDecoder) Decode(frame image.Image) (string, error) {
	defer func() { d.calls++ }()
	if d.calls >= len(d.results) || d.results[d.calls] == "" {
		return "", errors.New("no code")
	}
	return d.results[d.calls], nil
}

func TestScanReturnsFirstPayload(t *testing.T) {
	source := newFakeSource(3)
	decoder := &scriptedDecoder{results: []string{"", "QR-4821", "QR-9999"}}

	payload, err := NewSession(source, decoder).Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != "QR-4821" {
		t.Errorf("expected first decoded payload, got %q", payload)
	}
	if source.released != 1 {
		t.Errorf("source must be released exactly once, got %d", source.released)
	}
}

func TestScanReleasesWhenSourceRunsOut(t *testing.T) {
	source := newFakeSource(2)
	decoder := &scriptedDecoder{}

	_, err := NewSession(source, decoder).Scan(context.Background())
	if !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
	if source.released != 1 {
		t.Errorf("source must be released exactly once, got %d", source.released)
	}
}

func TestScanReleasesOnCancellation(t *testing.T) {
	source := &fakeSource{frames: make(chan image.Image)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSession(source, &scriptedDecoder{}).Scan(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if source.released != 1 {
		t.Errorf("source must be released exactly once, got %d", source.released)
	}
}

func TestScanPropagatesOpenError(t *testing.T) {
	source := &fakeSource{openErr: errors.New("camera busy")}

	_, err := NewSession(source, &scriptedDecoder{}).Scan(context.Background())
	if err == nil || err.Error() != "camera busy" {
		t.Errorf("expected open error to surface, got %v", err)
	}
}

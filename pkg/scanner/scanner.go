// Package scanner runs a scoped QR capture session: it acquires a frame
// source, feeds frames through a decoder until one carries a QR payload and
// releases the source on every exit path, success, cancellation or failure
// alike.
package scanner

import (
	"context"
	"errors"
	"image"
)

// FrameSource produces frames for the duration of one scan session. Open
// returns the frame channel together with a release function; the session
// calls release exactly once, no matter how it ends.
type FrameSource interface {
	Open() (<-chan image.Image, func(), error)
}

// Decoder extracts a QR payload from a single frame. A frame without a
// readable code returns an error; the session just moves on to the next one.
type Decoder interface {
	Decode(frame image.Image) (string, error)
}

var ErrNoCode = errors.New("no code detected before the source ended")

type Session struct {
	source  FrameSource
	decoder Decoder
}

func NewSession(source FrameSource, decoder Decoder) *Session {
	return &Session{source: source, decoder: decoder}
}

// Scan consumes frames until a payload decodes, the context is cancelled or
// the source runs out of frames.
func (s *Session) Scan(ctx context.Context) (string, error) {
	frames, release, err := s.source.Open()
	if err != nil {
		return "", err
	}
	defer release()

	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				return "", ErrNoCode
			}
			payload, err := s.decoder.Decode(frame)
			if err != nil {
				continue
			}
			return payload, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

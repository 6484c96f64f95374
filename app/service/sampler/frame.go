package sampler

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// Frame is one captured screen image as it arrived from the capture source.
type Frame struct {
	Width  int
	Height int
	JPEG   []byte
}

// FrameSource yields the most recent captured frame, if any. Sources replace
// their frame as new captures arrive, the sampler only ever sees the newest.
type FrameSource interface {
	CurrentFrame() (Frame, bool)
}

// FromImage encodes an in-process image into a Frame. Used by capture
// sources that produce decoded images rather than JPEG bytes.
func FromImage(img image.Image) (Frame, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return Frame{}, fmt.Errorf("failed to encode frame: %w", err)
	}

	bounds := img.Bounds()

	return Frame{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		JPEG:   buf.Bytes(),
	}, nil
}

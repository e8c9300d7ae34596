package dataset

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	// Formats registered for the default decoder.
	_ "image/jpeg"
	_ "image/png"
)

// Decoder converts raw image bytes into single-channel pixel data. It is
// an optional collaborator: Options.Decoder selects an implementation at
// configuration time, nil meaning GrayDecoder.
type Decoder interface {
	Decode(r io.Reader) (*image.Gray, error)
}

// GrayDecoder decodes PNG and JPEG bytes and converts the result to
// 8-bit grayscale.
type GrayDecoder struct{}

// Decode reads one image and returns it as grayscale pixel data.
func (GrayDecoder) Decode(r io.Reader) (*image.Gray, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if gray, ok := src.(*image.Gray); ok {
		return gray, nil
	}

	gray := image.NewGray(src.Bounds())
	draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)

	return gray, nil
}

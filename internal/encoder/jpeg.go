package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"math"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 0.92

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() imgfmt.Format { return imgfmt.JPEG }
func (e *JPEGEncoder) Extension() string     { return imgfmt.JPEG.Extension() }
func (e *JPEGEncoder) Available() bool       { return true }

// Encode maps q to the 1-100 JPEG scale. image/jpeg clamps values outside
// that range.
func (e *JPEGEncoder) Encode(img image.Image, q Quality) ([]byte, error) {
	quality := int(math.Round(q.Or(DefaultJPEGQuality) * 100))

	var buf bytes.Buffer
	buf.Grow(256 * 1024) // pre-alloc 256KB, enough for typical photos

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

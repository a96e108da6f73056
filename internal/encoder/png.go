package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// Quality has no meaning for PNG and is ignored.
type PNGEncoder struct {
	Compression png.CompressionLevel
}

func (e *PNGEncoder) Format() imgfmt.Format { return imgfmt.PNG }
func (e *PNGEncoder) Extension() string     { return imgfmt.PNG.Extension() }
func (e *PNGEncoder) Available() bool       { return true }

func (e *PNGEncoder) Encode(img image.Image, _ Quality) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024) // pre-alloc 512KB

	enc := &png.Encoder{CompressionLevel: e.Compression}
	err := enc.Encode(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCompression maps a config value to a png.CompressionLevel.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch s {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("unknown png compression %q (want default, none, speed or best)", s)
}

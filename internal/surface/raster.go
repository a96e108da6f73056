package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// DefaultMaxPixels is the pixel budget of a raster built with maxPixels <= 0.
const DefaultMaxPixels = 100_000_000

// ErrTooLarge is returned by SetSize when the buffer would exceed the pixel
// budget.
var ErrTooLarge = errors.New("surface exceeds pixel budget")

// Raster is a Surface backed by an in-memory NRGBA buffer.
type Raster struct {
	buf       *image.NRGBA
	resampler Resampler
	encoders  *encoder.Registry
	maxPixels int
}

// NewRaster returns an empty raster that scales with rs and exports
// through reg. Buffers larger than maxPixels are refused.
func NewRaster(rs Resampler, reg *encoder.Registry, maxPixels int) *Raster {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	// 4 bytes per pixel must fit in an int.
	maxPixels = min(maxPixels, math.MaxInt/4)
	return &Raster{
		buf:       image.NewNRGBA(image.Rectangle{}),
		resampler: rs,
		encoders:  reg,
		maxPixels: maxPixels,
	}
}

// SetSize reallocates the buffer only when the size changes.
func (s *Raster) SetSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	if w > s.maxPixels/h {
		return fmt.Errorf("%w: %dx%d over %d pixels", ErrTooLarge, w, h, s.maxPixels)
	}
	r := image.Rect(0, 0, w, h)
	if s.buf.Rect.Eq(r) {
		return nil
	}
	s.buf = image.NewNRGBA(r)
	return nil
}

func (s *Raster) Bounds() image.Rectangle { return s.buf.Rect }

func (s *Raster) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.buf, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Raster) ClearRect(r image.Rectangle) {
	draw.Draw(s.buf, r, image.Transparent, image.Point{}, draw.Src)
}

func (s *Raster) DrawScaled(src image.Image, r image.Rectangle) {
	s.resampler.Scale(s.buf, r, src)
}

func (s *Raster) Export(f imgfmt.Format, q encoder.Quality) ([]byte, error) {
	enc := s.encoders.Get(f)
	if enc == nil {
		return nil, fmt.Errorf("no encoder available for %s", f)
	}
	return enc.Encode(s.buf, q)
}

// Package surface provides the off-screen pixel buffer the converter draws
// into before encoding.
package surface

import (
	"image"
	"image/color"

	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// Surface is a 2D drawing target with format-specific export.
type Surface interface {
	// SetSize resizes the pixel buffer. Contents are undefined afterwards.
	// It fails when a buffer of that size cannot be allocated.
	SetSize(w, h int) error
	Bounds() image.Rectangle
	FillRect(r image.Rectangle, c color.Color)
	ClearRect(r image.Rectangle)
	// DrawScaled composites the whole of src over r, scaling it to fit r
	// exactly.
	DrawScaled(src image.Image, r image.Rectangle)
	Export(f imgfmt.Format, q encoder.Quality) ([]byte, error)
}

package encoder

import (
	"image"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format this encoder produces.
	Format() imgfmt.Format

	// Encode converts the image to bytes. Formats without a quality
	// setting ignore q.
	Encode(img image.Image, q Quality) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// Quality is an optional encoder quality in [0,1]. The zero value carries
// no quality.
type Quality struct {
	value float64
	set   bool
}

// NoQuality leaves the choice to the encoder.
var NoQuality = Quality{}

// QualityOf wraps q unchanged; values outside [0,1] are passed through.
func QualityOf(q float64) Quality { return Quality{value: q, set: true} }

// Value returns the quality and whether one was given.
func (q Quality) Value() (float64, bool) { return q.value, q.set }

// Or returns the quality, or def when none was given.
func (q Quality) Or(def float64) float64 {
	if !q.set {
		return def
	}
	return q.value
}

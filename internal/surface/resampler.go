package surface

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resampler scales src onto the rectangle r of dst, compositing with the
// Porter-Duff over operator.
type Resampler interface {
	Scale(dst draw.Image, r image.Rectangle, src image.Image)
}

// DefaultResampler is used when none is configured.
const DefaultResampler = "bilinear"

type interpolator struct {
	draw.Interpolator
}

func (i interpolator) Scale(dst draw.Image, r image.Rectangle, src image.Image) {
	i.Interpolator.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}

// filter resizes with an imaging kernel into a scratch buffer and then
// composites it.
type filter struct {
	imaging.ResampleFilter
}

func (f filter) Scale(dst draw.Image, r image.Rectangle, src image.Image) {
	scaled := imaging.Resize(src, r.Dx(), r.Dy(), f.ResampleFilter)
	draw.Draw(dst, r, scaled, image.Point{}, draw.Over)
}

var resamplers = map[string]Resampler{
	"bilinear":   interpolator{draw.BiLinear},
	"catmullrom": interpolator{draw.CatmullRom},
	"nearest":    interpolator{draw.NearestNeighbor},
	"linear":     filter{imaging.Linear},
	"lanczos":    filter{imaging.Lanczos},
}

// LookupResampler returns the named resampler.
func LookupResampler(name string) (Resampler, error) {
	if name == "" {
		name = DefaultResampler
	}
	rs, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampler %q (want one of %v)", name, ResamplerNames())
	}
	return rs, nil
}

// ResamplerNames lists the known resamplers, sorted.
func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for n := range resamplers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

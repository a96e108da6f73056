package preset

import (
	"sort"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// Preset bundles conversion defaults under a name.
type Preset struct {
	Name    string
	Format  imgfmt.Format
	Quality float64 // 0-1, ignored for PNG
	Width   int     // target width, 0 keeps the source width
}

// Built-in presets.
var presets = map[string]Preset{
	"web": {
		Name:    "web",
		Format:  imgfmt.WebP,
		Quality: 0.80,
	},
	"photo": {
		Name:    "photo",
		Format:  imgfmt.JPEG,
		Quality: 0.85,
	},
	"lossless": {
		Name:   "lossless",
		Format: imgfmt.PNG,
	},
	"thumbnail": {
		Name:    "thumbnail",
		Format:  imgfmt.WebP,
		Quality: 0.70,
		Width:   320,
	},
}

// Get returns a preset by name.
func Get(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TargetWidth returns the width to render at for a source of the given
// width. Presets never upscale.
func (p Preset) TargetWidth(originalWidth int) int {
	if p.Width <= 0 || p.Width > originalWidth {
		return originalWidth
	}
	return p.Width
}

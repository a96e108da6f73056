package encoder

import (
	"fmt"
	"image/png"
	"strings"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// WebP backends.
const (
	BackendNative = "native"
	BackendCWebP  = "cwebp"
)

// Options selects encoder backends.
type Options struct {
	WebPBackend    string // "native" (default) or "cwebp"
	PNGCompression png.CompressionLevel
}

// Registry holds the available encoder for each output format.
type Registry struct {
	encoders map[imgfmt.Format]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry(opts Options) (*Registry, error) {
	var webpEnc Encoder
	switch strings.ToLower(opts.WebPBackend) {
	case "", BackendNative:
		webpEnc = &WebPEncoder{}
	case BackendCWebP:
		webpEnc = &CWebPEncoder{}
	default:
		return nil, fmt.Errorf("unknown webp backend %q", opts.WebPBackend)
	}

	r := &Registry{
		encoders: make(map[imgfmt.Format]Encoder),
	}

	all := []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{Compression: opts.PNGCompression},
		webpEnc,
	}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r, nil
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(f imgfmt.Format) Encoder {
	return r.encoders[f]
}

// Available returns all available formats in display order.
func (r *Registry) Available() []imgfmt.Format {
	var result []imgfmt.Format
	for _, f := range imgfmt.Outputs {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = f.Name()
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}

// Package intake reads and decodes source images.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

var (
	// ErrUnsupportedType is returned for files outside the accepted types.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrDecodeFailure is returned when the bytes cannot be decoded into a
	// non-empty image.
	ErrDecodeFailure = errors.New("decode failure")
)

// Image is a decoded source image.
type Image struct {
	// Name is the original file name, without directories.
	Name string
	// MIME is the sniffed content type.
	MIME string
	// Size is the encoded size in bytes.
	Size int64
	// Source is the decoded raster.
	Source image.Image
	// Width and Height are the natural dimensions.
	Width  int
	Height int
	// HasAlpha is true when any pixel is not fully opaque.
	HasAlpha bool
}

// AspectRatio returns width / height.
func (img *Image) AspectRatio() float64 {
	return float64(img.Width) / float64(img.Height)
}

// Load reads and decodes the file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(filepath.Base(path), f)
}

// Decode reads an image named name from r.
func Decode(name string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	mime := DetectType(data)
	if !imgfmt.IsAcceptedInput(mime) {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, name, mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s has empty dimensions %dx%d",
			ErrDecodeFailure, name, bounds.Dx(), bounds.Dy())
	}

	return &Image{
		Name:     name,
		MIME:     mime,
		Size:     int64(len(data)),
		Source:   img,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		HasAlpha: HasAlpha(img),
	}, nil
}

// DetectType sniffs the content type from the leading bytes.
func DetectType(data []byte) string {
	return http.DetectContentType(data)
}

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

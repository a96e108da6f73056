package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/chai2010/webp"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// DefaultWebPQuality is used when no quality is given.
const DefaultWebPQuality = 0.80

// WebPEncoder encodes images to lossy WebP through libwebp bindings.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() imgfmt.Format { return imgfmt.WebP }
func (e *WebPEncoder) Extension() string     { return imgfmt.WebP.Extension() }
func (e *WebPEncoder) Available() bool       { return true }

func (e *WebPEncoder) Encode(img image.Image, q Quality) ([]byte, error) {
	var buf bytes.Buffer
	opts := &webp.Options{
		Quality: float32(q.Or(DefaultWebPQuality) * 100),
		Exact:   true, // keep RGB under fully transparent pixels
	}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// CWebPEncoder encodes images to WebP by shelling out to cwebp.
// Install: brew install webp / apt install webp
type CWebPEncoder struct {
	once      sync.Once
	available bool
	cwebpPath string
}

func (e *CWebPEncoder) Format() imgfmt.Format { return imgfmt.WebP }
func (e *CWebPEncoder) Extension() string     { return imgfmt.WebP.Extension() }

func (e *CWebPEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("cwebp")
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

func (e *CWebPEncoder) Encode(img image.Image, q Quality) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}
	quality := q.Or(DefaultWebPQuality) * 100

	// cwebp reads files, so the source goes through a temp PNG.
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("imgresize_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("imgresize_dst_%d_*.webp", id))
	if err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.cwebpPath,
		"-q", strconv.FormatFloat(quality, 'f', -1, 64),
		"-exact",
		"-quiet",
		srcPath,
		"-o", dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}

package intake

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 120, B: 200, A: a})
		}
	}
	return img
}

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(30, 20, 128)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "logo.png", img.Name)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, int64(buf.Len()), img.Size)
	assert.Equal(t, 30, img.Width)
	assert.Equal(t, 20, img.Height)
	assert.True(t, img.HasAlpha)
	assert.InDelta(t, 1.5, img.AspectRatio(), 1e-9)
}

func TestDecode_AcceptedTypes(t *testing.T) {
	src := solid(12, 9, 255)
	encoders := map[string]func(*bytes.Buffer) error{
		"image/jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"image/gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) },
		"image/bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}
	for mime, enc := range encoders {
		t.Run(mime, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, enc(&buf))

			img, err := Decode("in", &buf)
			require.NoError(t, err)
			assert.Equal(t, mime, img.MIME)
			assert.Equal(t, 12, img.Width)
			assert.Equal(t, 9, img.Height)
		})
	}
}

func TestDecode_OpaqueJPEGHasNoAlpha(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(8, 8, 255), nil))
	img, err := Decode("photo.jpg", &buf)
	require.NoError(t, err)
	assert.False(t, img.HasAlpha)
}

func TestDecode_UnsupportedType(t *testing.T) {
	_, err := Decode("notes.txt", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecode_Corrupt(t *testing.T) {
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x42}, 64)...)
	_, err := Decode("broken.png", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrDecodeFailure)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasAlpha(t *testing.T) {
	assert.False(t, HasAlpha(solid(4, 4, 255)))
	assert.True(t, HasAlpha(solid(4, 4, 254)))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	assert.False(t, HasAlpha(gray))
}

//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test, one per
// accepted input type.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(dir, 0o755)

	// Landscape photo (JPEG, 1600x900): aspect-lock scenarios.
	write(filepath.Join(dir, "photo.jpg"), func(w io.Writer) error {
		return jpeg.Encode(w, gradient(1600, 900), &jpeg.Options{Quality: 85})
	})

	// Transparent logo (PNG, 1000x800): jpeg output must flatten to white.
	write(filepath.Join(dir, "logo.png"), func(w io.Writer) error {
		return png.Encode(w, alphaGradient(1000, 800))
	})

	// Square icon (GIF, 100x100): upscale to 400x400.
	write(filepath.Join(dir, "icon.gif"), func(w io.Writer) error {
		return gif.Encode(w, solidWithBorder(100, 100, 60), nil)
	})

	// Bitmap (BMP, 320x240).
	write(filepath.Join(dir, "card.bmp"), func(w io.Writer) error {
		return bmp.Encode(w, solidWithBorder(320, 240, 120))
	})

	// Sticker (WebP, 256x256, with alpha).
	write(filepath.Join(dir, "sticker.webp"), func(w io.Writer) error {
		return webp.Encode(w, alphaGradient(256, 256), &webp.Options{Lossless: true})
	})

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func write(path string, encode func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		panic(err)
	}
}

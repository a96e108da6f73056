// Package engine renders a decoded image at the requested size and encodes
// it in the requested output format.
package engine

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/surface"
)

var (
	// ErrNonPositiveDimension is returned for a width or height <= 0.
	ErrNonPositiveDimension = errors.New("non-positive dimension")
	// ErrEncodingFailure is returned when the surface could not be sized or
	// produced no bytes.
	ErrEncodingFailure = errors.New("encoding failure")
	// ErrUnsupportedFormat is returned for formats other than JPEG, PNG and WebP.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Settings describes one conversion request.
type Settings struct {
	Format              imgfmt.Format
	Width               int
	Height              int
	Quality             float64 // 0-1, ignored for PNG
	MaintainAspectRatio bool
}

// Result is one encoded image.
type Result struct {
	Bytes  []byte
	Width  int
	Height int
	Format imgfmt.Format
	Size   int64
}

// DataURL returns the result as a base64 data URL for previews.
func (r *Result) DataURL() string {
	return "data:" + string(r.Format) + ";base64," + base64.StdEncoding.EncodeToString(r.Bytes)
}

// Converter draws into a single surface, so it runs one conversion at a
// time; concurrent callers queue.
type Converter struct {
	surface surface.Surface
	logger  *slog.Logger
	slot    chan struct{}
}

// New returns a converter that owns s.
func New(s surface.Surface, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		surface: s,
		logger:  logger,
		slot:    make(chan struct{}, 1),
	}
}

// Convert renders src at the settings' size and encodes it. It waits for
// any conversion already in flight; ctx only bounds that wait, an issued
// encode always runs to completion.
func (c *Converter) Convert(ctx context.Context, src image.Image, s Settings) (*Result, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonPositiveDimension, s.Width, s.Height)
	}
	if !s.Format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.Format)
	}

	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.slot }()

	start := time.Now()
	full := image.Rect(0, 0, s.Width, s.Height)

	if err := c.surface.SetSize(s.Width, s.Height); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncodingFailure, s.Format, err)
	}
	if s.Format == imgfmt.JPEG {
		// No alpha channel: transparent source pixels become white.
		c.surface.FillRect(full, color.White)
	} else {
		c.surface.ClearRect(full)
	}
	c.surface.DrawScaled(src, full)

	q := encoder.NoQuality
	if s.Format.UsesQuality() {
		q = encoder.QualityOf(s.Quality)
	}

	res := <-c.export(s.Format, q)
	if res.err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncodingFailure, s.Format, res.err)
	}
	if len(res.data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty output", ErrEncodingFailure, s.Format)
	}

	b := src.Bounds()
	c.logger.Debug("converted",
		"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"to", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"format", s.Format.Name(),
		"bytes", len(res.data),
		"elapsed", time.Since(start),
	)

	return &Result{
		Bytes:  res.data,
		Width:  s.Width,
		Height: s.Height,
		Format: s.Format,
		Size:   int64(len(res.data)),
	}, nil
}

type exportResult struct {
	data []byte
	err  error
}

// export runs the encode off the caller's goroutine. The returned channel
// receives exactly one value.
func (c *Converter) export(f imgfmt.Format, q encoder.Quality) <-chan exportResult {
	done := make(chan exportResult, 1)
	go func() {
		data, err := c.surface.Export(f, q)
		done <- exportResult{data: data, err: err}
	}()
	return done
}

// Package session holds the state of one interactive conversion: the
// loaded image, the dimension inputs, the chosen format and quality, and
// the latest result.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/AnyUserName/imgresize/internal/dimension"
	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/intake"
)

// ErrNoImage is returned by Convert before an image is loaded.
var ErrNoImage = errors.New("no image loaded")

// Defaults seeds a session and is restored by Reset.
type Defaults struct {
	Format              imgfmt.Format
	Quality             float64
	MaintainAspectRatio bool
}

// Session is not safe for concurrent use, except Busy which may be polled
// from another goroutine.
type Session struct {
	converter *engine.Converter
	resolver  *dimension.Resolver
	logger    *slog.Logger
	defaults  Defaults

	image   *intake.Image
	result  *engine.Result
	format  imgfmt.Format
	quality float64
	busy    atomic.Bool
}

// New returns an empty session converting through c.
func New(c *engine.Converter, d Defaults, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		converter: c,
		resolver:  dimension.New(),
		logger:    logger,
		defaults:  d,
	}
	s.Reset()
	return s
}

// Load makes img the current image and seeds the dimensions from it.
func (s *Session) Load(img *intake.Image) error {
	if err := s.resolver.SetOriginalDimensions(img.Width, img.Height); err != nil {
		return fmt.Errorf("load %s: %w", img.Name, err)
	}
	s.image = img
	s.result = nil
	s.logger.Debug("image loaded", "name", img.Name, "mime", img.MIME,
		"width", img.Width, "height", img.Height, "bytes", img.Size)
	return nil
}

// EditWidth applies a width edit as typed by the user.
func (s *Session) EditWidth(text string) {
	s.resolver.EditWidth(text)
	s.changed()
}

// EditHeight applies a height edit as typed by the user.
func (s *Session) EditHeight(text string) {
	s.resolver.EditHeight(text)
	s.changed()
}

// SetWidth and SetHeight are numeric shorthands for the edits.
func (s *Session) SetWidth(w int)  { s.EditWidth(strconv.Itoa(w)) }
func (s *Session) SetHeight(h int) { s.EditHeight(strconv.Itoa(h)) }

func (s *Session) SetAspectLock(on bool) {
	s.resolver.SetAspectLock(on)
	s.changed()
}

func (s *Session) SetFormat(f imgfmt.Format) {
	s.format = f
	s.changed()
}

// SetQuality sets the 0-1 quality used for JPEG and WebP.
func (s *Session) SetQuality(q float64) {
	s.quality = q
	s.changed()
}

// Settings builds the conversion settings from the current state.
func (s *Session) Settings() engine.Settings {
	w, h := s.resolver.Resolved()
	return engine.Settings{
		Format:              s.format,
		Width:               w,
		Height:              h,
		Quality:             s.quality,
		MaintainAspectRatio: s.resolver.Locked(),
	}
}

// Convert renders the current image with the current settings and keeps
// the result.
func (s *Session) Convert(ctx context.Context) (*engine.Result, error) {
	if s.image == nil {
		return nil, ErrNoImage
	}
	settings := s.Settings()
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", engine.ErrNonPositiveDimension, settings.Width, settings.Height)
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	res, err := s.converter.Convert(ctx, s.image.Source, settings)
	if err != nil {
		s.logger.Error("conversion failed", "name", s.image.Name, "error", err)
		return nil, fmt.Errorf("convert %s: %w", s.image.Name, err)
	}
	s.result = res
	return res, nil
}

// Image returns the loaded image, or nil.
func (s *Session) Image() *intake.Image { return s.image }

// Result returns the latest result, or nil when settings changed since.
func (s *Session) Result() *engine.Result { return s.result }

// Busy reports whether a conversion is in progress.
func (s *Session) Busy() bool { return s.busy.Load() }

// Resolver exposes the dimension inputs for display.
func (s *Session) Resolver() *dimension.Resolver { return s.resolver }

// Reset drops the image and result and restores the defaults.
func (s *Session) Reset() {
	s.image = nil
	s.result = nil
	s.busy.Store(false)
	s.format = s.defaults.Format
	s.quality = s.defaults.Quality
	s.resolver.Reset()
	s.resolver.SetAspectLock(s.defaults.MaintainAspectRatio)
}

// changed invalidates the result after any settings edit.
func (s *Session) changed() {
	s.result = nil
}

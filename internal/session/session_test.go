package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/imgresize/internal/dimension"
	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/intake"
	"github.com/AnyUserName/imgresize/internal/surface"
)

var defaults = Defaults{Format: imgfmt.JPEG, Quality: 0.8, MaintainAspectRatio: true}

func newRaster(t *testing.T) *surface.Raster {
	t.Helper()
	rs, err := surface.LookupResampler("bilinear")
	require.NoError(t, err)
	reg, err := encoder.NewRegistry(encoder.Options{})
	require.NoError(t, err)
	return surface.NewRaster(rs, reg, 0)
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(engine.New(newRaster(t), nil), defaults, nil)
}

func loadedImage(t *testing.T, w, h int) *intake.Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	img, err := intake.Decode("landscape.png", &buf)
	require.NoError(t, err)
	return img
}

// failingSurface draws like a raster but never encodes.
type failingSurface struct {
	*surface.Raster
	sawBusy func() bool
	busy    bool
}

func (f *failingSurface) Export(imgfmt.Format, encoder.Quality) ([]byte, error) {
	if f.sawBusy != nil {
		f.busy = f.sawBusy()
	}
	return nil, errors.New("encoder crashed")
}

func TestSession_LockedScenario(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Load(loadedImage(t, 160, 90)))

	s.SetWidth(80)
	assert.Equal(t, "45", s.Resolver().Height())

	s.SetHeight(30)
	assert.Equal(t, "53", s.Resolver().Width())

	settings := s.Settings()
	assert.Equal(t, 53, settings.Width)
	assert.Equal(t, 30, settings.Height)
	assert.Equal(t, imgfmt.JPEG, settings.Format)
	assert.Equal(t, 0.8, settings.Quality)
	assert.True(t, settings.MaintainAspectRatio)
}

func TestSession_Convert(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Load(loadedImage(t, 100, 50)))
	s.SetFormat(imgfmt.PNG)
	s.SetWidth(40)

	res, err := s.Convert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 20, res.Height)
	assert.Equal(t, imgfmt.PNG, res.Format)
	assert.Equal(t, int64(len(res.Bytes)), res.Size)
	assert.Same(t, res, s.Result())
	assert.False(t, s.Busy())

	decoded, err := png.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), decoded.Bounds())
}

func TestSession_SettingsChangeDropsResult(t *testing.T) {
	edits := map[string]func(s *Session){
		"width":   func(s *Session) { s.EditWidth("10") },
		"height":  func(s *Session) { s.EditHeight("10") },
		"lock":    func(s *Session) { s.SetAspectLock(false) },
		"format":  func(s *Session) { s.SetFormat(imgfmt.WebP) },
		"quality": func(s *Session) { s.SetQuality(0.5) },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			s := newSession(t)
			require.NoError(t, s.Load(loadedImage(t, 20, 20)))
			_, err := s.Convert(context.Background())
			require.NoError(t, err)
			require.NotNil(t, s.Result())

			edit(s)
			assert.Nil(t, s.Result())
		})
	}
}

func TestSession_ConvertWithoutImage(t *testing.T) {
	s := newSession(t)
	_, err := s.Convert(context.Background())
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestSession_NonPositiveDimension(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Load(loadedImage(t, 400, 1)))

	// 10 / 400 rounds to a zero height, which falls back to the original 1.
	s.SetWidth(10)
	assert.Equal(t, "0", s.Resolver().Height())
	settings := s.Settings()
	assert.Equal(t, 1, settings.Height)

	s.Reset()
	s.image = loadedImage(t, 4, 4) // bypass Load so the resolver stays empty
	_, err := s.Convert(context.Background())
	assert.ErrorIs(t, err, engine.ErrNonPositiveDimension)
}

func TestSession_LoadRejectsZeroHeight(t *testing.T) {
	s := newSession(t)
	err := s.Load(&intake.Image{Name: "flat.png", Width: 10, Height: 0})
	assert.ErrorIs(t, err, dimension.ErrInvalidAspectState)
	assert.Nil(t, s.Image())
}

func TestSession_EncodingFailureClearsBusy(t *testing.T) {
	fs := &failingSurface{Raster: newRaster(t)}
	s := New(engine.New(fs, nil), defaults, nil)
	fs.sawBusy = s.Busy
	require.NoError(t, s.Load(loadedImage(t, 8, 8)))

	res, err := s.Convert(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrEncodingFailure)
	assert.True(t, fs.busy, "busy during conversion")
	assert.False(t, s.Busy(), "busy cleared after failure")
	assert.Nil(t, s.Result())
}

func TestSession_OversizedTargetFailsCleanly(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Load(loadedImage(t, 4, 4)))
	s.SetAspectLock(false)
	s.SetWidth(3_000_000_000)
	s.SetHeight(3_000_000_000)

	res, err := s.Convert(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrEncodingFailure)
	assert.ErrorIs(t, err, surface.ErrTooLarge)
	assert.False(t, s.Busy())
	assert.Nil(t, s.Result())
}

func TestSession_Reset(t *testing.T) {
	s := New(engine.New(newRaster(t), nil), Defaults{Format: imgfmt.WebP, Quality: 0.5}, nil)
	assert.False(t, s.Resolver().Locked(), "defaults unlock")

	require.NoError(t, s.Load(loadedImage(t, 10, 10)))
	s.SetFormat(imgfmt.PNG)
	s.SetQuality(0.9)
	s.SetAspectLock(true)

	s.Reset()
	assert.Nil(t, s.Image())
	assert.Equal(t, imgfmt.WebP, s.Settings().Format)
	assert.Equal(t, 0.5, s.Settings().Quality)
	assert.False(t, s.Resolver().Locked())
	assert.Equal(t, "", s.Resolver().Width())
}

// Package dimension keeps the width/height inputs consistent with the
// aspect ratio of the loaded image.
package dimension

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAspectState is returned when the original dimensions cannot
// define a ratio.
var ErrInvalidAspectState = errors.New("invalid aspect state: original dimensions must be positive")

type field int

const (
	widthField field = iota
	heightField
)

// Resolver holds the two dimension inputs, the aspect lock and the ratio of
// the loaded image. It is not safe for concurrent use.
type Resolver struct {
	originalWidth  int
	originalHeight int
	ratio          float64

	width  string
	height string
	locked bool

	// updating is set while a linked field is written so the write does not
	// propagate back to the field being edited.
	updating bool
}

// New returns a resolver in the neutral state with the aspect lock on.
func New() *Resolver {
	r := &Resolver{}
	r.Reset()
	return r
}

// SetOriginalDimensions fixes the ratio for a newly loaded image and seeds
// both fields with its natural size.
func (r *Resolver) SetOriginalDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrInvalidAspectState
	}
	r.originalWidth = w
	r.originalHeight = h
	r.ratio = float64(w) / float64(h)

	r.updating = true
	r.width = strconv.Itoa(w)
	r.height = strconv.Itoa(h)
	r.updating = false
	return nil
}

// EditWidth records a user edit of the width field.
func (r *Resolver) EditWidth(text string) { r.set(widthField, text) }

// EditHeight records a user edit of the height field.
func (r *Resolver) EditHeight(text string) { r.set(heightField, text) }

// SetAspectLock toggles the lock. Turning it on re-derives the height from
// the current width.
func (r *Resolver) SetAspectLock(on bool) {
	was := r.locked
	r.locked = on
	if on && !was {
		r.propagate(widthField)
	}
}

// Resolved returns the dimensions to render at. Empty, non-numeric and
// non-positive fields fall back to the original dimension.
func (r *Resolver) Resolved() (w, h int) {
	w = parseDimension(r.width)
	if w <= 0 {
		w = r.originalWidth
	}
	h = parseDimension(r.height)
	if h <= 0 {
		h = r.originalHeight
	}
	return w, h
}

// Reset clears the aspect state and both fields.
func (r *Resolver) Reset() {
	r.originalWidth = 0
	r.originalHeight = 0
	r.ratio = 1
	r.width = ""
	r.height = ""
	r.locked = true
	r.updating = false
}

func (r *Resolver) Width() string  { return r.width }
func (r *Resolver) Height() string { return r.height }
func (r *Resolver) Locked() bool   { return r.locked }
func (r *Resolver) Ratio() float64 { return r.ratio }

// Original returns the natural size of the loaded image, or zeros.
func (r *Resolver) Original() (w, h int) { return r.originalWidth, r.originalHeight }

// set writes a field and runs the change handler for it, unless the write
// is itself the result of propagation.
func (r *Resolver) set(f field, text string) {
	if f == widthField {
		r.width = text
	} else {
		r.height = text
	}
	if r.updating {
		return
	}
	r.propagate(f)
}

// propagate recomputes the field opposite to src when locked. A linked
// value that would not fit in an int32 is not written.
func (r *Resolver) propagate(src field) {
	if !r.locked {
		return
	}
	var (
		dst field
		v   float64
	)
	switch src {
	case widthField:
		w := parseDimension(r.width)
		if w <= 0 {
			return
		}
		dst, v = heightField, math.Round(float64(w)/r.ratio)
	case heightField:
		h := parseDimension(r.height)
		if h <= 0 {
			return
		}
		dst, v = widthField, math.Round(float64(h)*r.ratio)
	}
	if v > math.MaxInt32 {
		return
	}
	r.updating = true
	r.set(dst, strconv.Itoa(int(v)))
	r.updating = false
}

// parseDimension reads the leading integer of s: "800px" is 800, "8.7" is 8
// and input without leading digits is 0.
func parseDimension(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow.
		return 0
	}
	return n
}

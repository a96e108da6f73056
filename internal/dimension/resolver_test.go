package dimension

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOriginalDimensions(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))

	assert.Equal(t, "1600", r.Width())
	assert.Equal(t, "900", r.Height())
	assert.InDelta(t, 16.0/9.0, r.Ratio(), 1e-12)

	w, h := r.Resolved()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 900, h)
}

func TestSetOriginalDimensions_ZeroHeight(t *testing.T) {
	r := New()
	err := r.SetOriginalDimensions(100, 0)
	assert.ErrorIs(t, err, ErrInvalidAspectState)
	assert.Equal(t, 1.0, r.Ratio(), "ratio must stay neutral")
}

func TestLockedEdits(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))

	r.EditWidth("800")
	assert.Equal(t, "450", r.Height())

	r.EditHeight("300")
	assert.Equal(t, "533", r.Width())
	assert.Equal(t, "300", r.Height(), "height edit must not be rewritten")

	w, h := r.Resolved()
	assert.Equal(t, 533, w)
	assert.Equal(t, 300, h)
}

func TestUnlockedEditsAreIndependent(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))
	r.SetAspectLock(false)

	r.EditWidth("100")
	assert.Equal(t, "900", r.Height())
	r.EditHeight("700")
	assert.Equal(t, "100", r.Width())
}

func TestRelockDerivesHeightFromWidth(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1000, 500))
	r.SetAspectLock(false)
	r.EditWidth("300")
	r.EditHeight("999")

	r.SetAspectLock(true)
	assert.Equal(t, "300", r.Width())
	assert.Equal(t, "150", r.Height())
}

func TestToggleLockWithoutEditsIsStable(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))
	r.EditHeight("301")
	w0, h0 := r.Width(), r.Height()

	r.SetAspectLock(false)
	r.SetAspectLock(true)

	assert.Equal(t, w0, r.Width())
	got, _ := strconv.Atoi(r.Height())
	want, _ := strconv.Atoi(h0)
	assert.LessOrEqual(t, abs(got-want), 1)
}

func TestLockOnTwiceDoesNotRederive(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))
	r.EditHeight("301")
	h := r.Height()

	r.SetAspectLock(true)
	assert.Equal(t, h, r.Height())
}

func TestInvalidInputFallsBackToOriginal(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(640, 480))

	for _, in := range []string{"", "abc", "0", "-20", "  "} {
		r.EditWidth(in)
		w, h := r.Resolved()
		assert.Equal(t, 640, w, "width %q", in)
		assert.Equal(t, "480", r.Height(), "height must not change for %q", in)
		assert.Equal(t, 480, h)
	}
}

func TestLockedEditOutOfRangeLeavesLinkedField(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(1600, 900))
	r.EditWidth("800")

	r.EditHeight("9223372036854775806")
	assert.Equal(t, "800", r.Width(), "linked width must not overflow")

	r.EditWidth("9000000000")
	assert.Equal(t, "9223372036854775806", r.Height())

	r.EditHeight("1207959552") // *16/9 is past MaxInt32
	assert.Equal(t, "9000000000", r.Width())

	r.EditHeight("900")
	assert.Equal(t, "1600", r.Width(), "propagation resumes for sane input")
}

func TestParseDimension(t *testing.T) {
	cases := map[string]int{
		"800":   800,
		" 42":   42,
		"800px": 800,
		"8.7":   8,
		"+12":   12,
		"-5":    -5,
		"abc":   0,
		"":      0,
		"-":     0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseDimension(in), in)
	}
	assert.Zero(t, parseDimension("999999999999999999999"), "overflow")
}

func TestReset(t *testing.T) {
	r := New()
	require.NoError(t, r.SetOriginalDimensions(300, 200))
	r.SetAspectLock(false)
	r.Reset()

	assert.Equal(t, "", r.Width())
	assert.Equal(t, "", r.Height())
	assert.Equal(t, 1.0, r.Ratio())
	assert.True(t, r.Locked())
	ow, oh := r.Original()
	assert.Zero(t, ow)
	assert.Zero(t, oh)

	w, h := r.Resolved()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestLockedEditSequenceKeepsRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		w0 := 100 + rng.Intn(3900)
		h0 := 100 + rng.Intn(3900)
		ratio := float64(w0) / float64(h0)

		r := New()
		require.NoError(t, r.SetOriginalDimensions(w0, h0))

		for j := 0; j < 10; j++ {
			v := strconv.Itoa(50 + rng.Intn(5000))
			if rng.Intn(2) == 0 {
				r.EditWidth(v)
			} else {
				r.EditHeight(v)
			}
			w, h := r.Resolved()
			derived := int(math.Round(float64(w) / ratio))
			back := int(math.Round(float64(h) * ratio))
			if derived != h && back != w {
				t.Fatalf("original %dx%d: pair %dx%d breaks ratio", w0, h0, w, h)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Package output names, hashes and writes conversion results.
package output

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
)

// DefaultSuffix is appended to the base name of converted files.
const DefaultSuffix = "-converted"

var extPattern = regexp.MustCompile(`\.[^/.]+$`)

// Filename derives the download name for original converted to f:
// "photo.png" becomes "photo-converted.jpg".
func Filename(original, suffix string, f imgfmt.Format) string {
	base := extPattern.ReplaceAllString(filepath.Base(original), "")
	return base + suffix + "." + f.Extension()
}

// Save writes res to dir/name, creating dir if needed, and returns the
// written path.
func Save(dir, name string, res *engine.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, res.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Digest returns the xxHash64 of data as 16 hex chars.
func Digest(data []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return hex.EncodeToString(b[:])
}

// FormatSize renders a byte count the way previews show it.
func FormatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	}
}

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/output"
)

// Validate checks the report's fields and the output file it references.
// baseDir is the directory the report lives in.
func (r *Report) Validate(baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		errs = append(errs, fmt.Sprintf("invalid id %q", r.ID))
	}

	if r.Source.Width <= 0 || r.Source.Height <= 0 {
		errs = append(errs, fmt.Sprintf("source: invalid dimensions %dx%d", r.Source.Width, r.Source.Height))
	}
	if r.Source.AspectRatio <= 0 {
		errs = append(errs, fmt.Sprintf("source: invalid aspect ratio %.4f", r.Source.AspectRatio))
	}

	out := r.Output
	f := imgfmt.Format(out.MIME)
	if !f.Valid() {
		errs = append(errs, fmt.Sprintf("output: unsupported format %q", out.MIME))
	}
	if f == imgfmt.PNG && r.Settings.Quality != nil {
		errs = append(errs, "settings: quality recorded for png output")
	}
	if out.Width <= 0 || out.Height <= 0 {
		errs = append(errs, fmt.Sprintf("output: invalid dimensions %dx%d", out.Width, out.Height))
	}
	if out.Hash == "" {
		errs = append(errs, "output: missing hash")
	}
	if out.Path == "" {
		errs = append(errs, "output: missing path")
		return errs
	}

	fullPath := filepath.Join(baseDir, filepath.FromSlash(out.Path))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		errs = append(errs, fmt.Sprintf("output: file not found: %s", out.Path))
		return errs
	}
	if int64(len(data)) != out.Size {
		errs = append(errs, fmt.Sprintf("output: size mismatch: report=%d, disk=%d", out.Size, len(data)))
	}
	if out.Hash != "" && output.Digest(data) != out.Hash {
		errs = append(errs, fmt.Sprintf("output: hash mismatch: report=%s, disk=%s", out.Hash, output.Digest(data)))
	}

	return errs
}

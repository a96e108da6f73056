package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/intake"
	"github.com/AnyUserName/imgresize/internal/output"
)

// New builds a report for res converted from src and saved at outPath.
// The output path is stored relative to the report's directory.
func New(src *intake.Image, s engine.Settings, res *engine.Result, outPath, resampler string) *Report {
	r := &Report{
		Version:     SupportedVersion,
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source: SourceInfo{
			Name:        src.Name,
			MIME:        src.MIME,
			Width:       src.Width,
			Height:      src.Height,
			Size:        src.Size,
			HasAlpha:    src.HasAlpha,
			AspectRatio: src.AspectRatio(),
		},
		Settings: SettingsInfo{
			MaintainAspectRatio: s.MaintainAspectRatio,
			Resampler:           resampler,
		},
		Output: OutputInfo{
			MIME:   string(res.Format),
			Width:  res.Width,
			Height: res.Height,
			Size:   res.Size,
			Hash:   output.Digest(res.Bytes),
			Path:   filepath.ToSlash(filepath.Base(outPath)),
		},
	}
	if res.Format.UsesQuality() {
		q := s.Quality
		r.Settings.Quality = &q
	}
	return r
}

// PathFor returns where the report for outPath is written.
func PathFor(outPath string) string {
	return outPath + FileSuffix
}

// WriteJSON serializes the report to an indented JSON file.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. Unknown fields are ignored.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

package report

// Report describes one conversion: the source it read and the file it wrote.
type Report struct {
	Version     int          `json:"version"`
	ID          string       `json:"id"`
	GeneratedAt string       `json:"generated_at"`
	Source      SourceInfo   `json:"source"`
	Settings    SettingsInfo `json:"settings"`
	Output      OutputInfo   `json:"output"`
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Name        string  `json:"name"`
	MIME        string  `json:"mime"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Size        int64   `json:"size"`
	HasAlpha    bool    `json:"has_alpha"`
	AspectRatio float64 `json:"aspect_ratio"` // width / height
}

// SettingsInfo records the settings the output was rendered with.
type SettingsInfo struct {
	Quality             *float64 `json:"quality,omitempty"` // absent for PNG
	MaintainAspectRatio bool     `json:"maintain_aspect_ratio"`
	Resampler           string   `json:"resampler,omitempty"`
}

// OutputInfo is the encoded result on disk.
type OutputInfo struct {
	MIME   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to the report
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileSuffix is appended to the output file name to name its report.
const FileSuffix = ".report.json"

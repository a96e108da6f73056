// Package imgfmt names the output encodings and the accepted input types.
package imgfmt

import (
	"fmt"
	"strings"
)

// Format is an output encoding identified by its MIME type.
type Format string

const (
	JPEG Format = "image/jpeg"
	PNG  Format = "image/png"
	WebP Format = "image/webp"
)

// Outputs lists every format the converter can produce, in display order.
var Outputs = []Format{JPEG, PNG, WebP}

// AcceptedInputs lists the MIME types accepted at intake.
var AcceptedInputs = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/bmp",
}

// Parse accepts a MIME type, a short name or an extension ("jpg", ".png").
func Parse(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "image/jpeg", "jpeg", "jpg":
		return JPEG, nil
	case "image/png", "png":
		return PNG, nil
	case "image/webp", "webp":
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// Valid reports whether f is one of the output formats.
func (f Format) Valid() bool {
	switch f {
	case JPEG, PNG, WebP:
		return true
	}
	return false
}

// Extension returns the file extension without dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return "jpg"
	case PNG:
		return "png"
	case WebP:
		return "webp"
	}
	return ""
}

// Name returns the short lowercase name ("jpeg", "png", "webp").
func (f Format) Name() string {
	return strings.TrimPrefix(string(f), "image/")
}

// SupportsAlpha reports whether the encoding keeps transparency.
func (f Format) SupportsAlpha() bool { return f == PNG || f == WebP }

// UsesQuality reports whether the encoder honours a quality setting.
func (f Format) UsesQuality() bool { return f == JPEG || f == WebP }

func (f Format) String() string { return string(f) }

// IsAcceptedInput reports whether mime may be loaded.
func IsAcceptedInput(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, m := range AcceptedInputs {
		if m == mime {
			return true
		}
	}
	return false
}

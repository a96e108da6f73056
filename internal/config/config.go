package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/preset"
	"github.com/AnyUserName/imgresize/internal/surface"
)

type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Render  RenderConfig  `mapstructure:"render"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ConvertConfig struct {
	Format              string  `mapstructure:"format"`
	Quality             float64 `mapstructure:"quality"`
	MaintainAspectRatio bool    `mapstructure:"maintain_aspect_ratio"`
	Preset              string  `mapstructure:"preset"`
}

type RenderConfig struct {
	Resampler      string `mapstructure:"resampler"`
	WebPBackend    string `mapstructure:"webp_backend"`
	PNGCompression string `mapstructure:"png_compression"`
	MaxPixels      int    `mapstructure:"max_pixels"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Suffix string `mapstructure:"suffix"`
	Report bool   `mapstructure:"report"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	JSONFormat bool   `mapstructure:"json_format"`
}

// Load reads configuration from defaults, an optional YAML file and
// IMGRESIZE_* environment variables. An empty path searches the default
// locations and tolerates a missing file.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("convert.format", string(imgfmt.JPEG))
	v.SetDefault("convert.quality", 0.8)
	v.SetDefault("convert.maintain_aspect_ratio", true)
	v.SetDefault("convert.preset", "")
	v.SetDefault("render.resampler", surface.DefaultResampler)
	v.SetDefault("render.webp_backend", encoder.BackendNative)
	v.SetDefault("render.png_compression", "default")
	v.SetDefault("render.max_pixels", surface.DefaultMaxPixels)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.suffix", "-converted")
	v.SetDefault("output.report", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json_format", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("imgresize")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/imgresize")
	}

	// Environment variables
	v.SetEnvPrefix("IMGRESIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks enumerated values. Quality is not range checked; it is
// handed to the encoder as given.
func (c *Config) Validate() error {
	if _, err := imgfmt.Parse(c.Convert.Format); err != nil {
		return fmt.Errorf("convert.format: %w", err)
	}
	if c.Convert.Preset != "" {
		if _, ok := preset.Get(c.Convert.Preset); !ok {
			return fmt.Errorf("convert.preset: unknown preset %q", c.Convert.Preset)
		}
	}
	if _, err := surface.LookupResampler(c.Render.Resampler); err != nil {
		return fmt.Errorf("render.resampler: %w", err)
	}
	switch c.Render.WebPBackend {
	case encoder.BackendNative, encoder.BackendCWebP:
	default:
		return fmt.Errorf("render.webp_backend must be %q or %q", encoder.BackendNative, encoder.BackendCWebP)
	}
	if _, err := encoder.ParseCompression(c.Render.PNGCompression); err != nil {
		return fmt.Errorf("render.png_compression: %w", err)
	}
	if c.Render.MaxPixels <= 0 {
		return fmt.Errorf("render.max_pixels must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// Format returns the parsed default output format.
func (c *Config) Format() imgfmt.Format {
	f, _ := imgfmt.Parse(c.Convert.Format)
	return f
}

// EncoderOptions builds encoder registry options from the render section.
func (c *Config) EncoderOptions() encoder.Options {
	lvl, _ := encoder.ParseCompression(c.Render.PNGCompression)
	return encoder.Options{
		WebPBackend:    c.Render.WebPBackend,
		PNGCompression: lvl,
	}
}

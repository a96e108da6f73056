package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/apperr"
	"github.com/AnyUserName/imgresize/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	cfg    *config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "imgresize",
	Short: "Resize images and re-encode them as JPEG, PNG or WebP",
	Long: `imgresize — loads a JPEG, PNG, WebP, GIF or BMP image, resizes it
(optionally keeping the aspect ratio) and writes it as JPEG, PNG or WebP.

JPEG output is flattened onto white; PNG and WebP keep transparency.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints the error, preferring the
// user-facing message when there is one.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var ue *apperr.UserError
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", ue.UserMsg)
		logger.Debug("error details", "error", ue.Err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./imgresize.yaml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgresize %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads configuration and installs the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c

	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.JSONFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

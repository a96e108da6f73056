package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/apperr"
	"github.com/AnyUserName/imgresize/internal/encoder"
	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/imgfmt"
	"github.com/AnyUserName/imgresize/internal/intake"
	"github.com/AnyUserName/imgresize/internal/output"
	"github.com/AnyUserName/imgresize/internal/preset"
	"github.com/AnyUserName/imgresize/internal/report"
	"github.com/AnyUserName/imgresize/internal/session"
	"github.com/AnyUserName/imgresize/internal/surface"
)

var (
	convertFormat    string
	convertWidth     string
	convertHeight    string
	convertQuality   float64
	convertNoAspect  bool
	convertPreset    string
	convertOutDir    string
	convertReport    bool
	convertResampler string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Resize an image and write it in the chosen format",
	Long: `Loads one image (jpeg, png, webp, gif, bmp), resizes it and encodes it
as JPEG, PNG or WebP.

With the aspect lock on (default) giving only --width or only --height
derives the other side from the source ratio. Giving both turns the lock
off. Output is written as <name>-converted.<ext>.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "output format: jpeg, png, webp (default from config)")
	convertCmd.Flags().StringVar(&convertWidth, "width", "", "target width in pixels")
	convertCmd.Flags().StringVar(&convertHeight, "height", "", "target height in pixels")
	convertCmd.Flags().Float64VarP(&convertQuality, "quality", "q", 0, "quality 0-100 for jpeg/webp (default from config)")
	convertCmd.Flags().BoolVar(&convertNoAspect, "no-aspect", false, "do not keep the source aspect ratio")
	convertCmd.Flags().StringVarP(&convertPreset, "preset", "p", "", "named preset (see 'imgresize presets')")
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "", "output directory (default from config)")
	convertCmd.Flags().BoolVar(&convertReport, "report", false, "write a JSON report next to the output")
	convertCmd.Flags().StringVar(&convertResampler, "resampler", "", "resampling kernel (default from config)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()
	flags := cmd.Flags()

	img, err := intake.Load(args[0])
	if err != nil {
		return apperr.Wrap(err)
	}

	// Resolve defaults: config, then preset, then flags.
	defaults := session.Defaults{
		Format:              cfg.Format(),
		Quality:             cfg.Convert.Quality,
		MaintainAspectRatio: cfg.Convert.MaintainAspectRatio,
	}
	presetName := cfg.Convert.Preset
	if convertPreset != "" {
		presetName = convertPreset
	}
	var p preset.Preset
	if presetName != "" {
		var ok bool
		if p, ok = preset.Get(presetName); !ok {
			return fmt.Errorf("unknown preset %q", presetName)
		}
		defaults.Format = p.Format
		defaults.Quality = p.Quality
	}
	if convertFormat != "" {
		f, err := imgfmt.Parse(convertFormat)
		if err != nil {
			return err
		}
		defaults.Format = f
	}
	if flags.Changed("quality") {
		defaults.Quality = convertQuality / 100
	}
	if defaults.Quality < 0 || defaults.Quality > 1 {
		logger.Warn("quality outside 0-100 is passed to the encoder unchanged", "quality", defaults.Quality*100)
	}
	if convertNoAspect {
		defaults.MaintainAspectRatio = false
	}

	resamplerName := cfg.Render.Resampler
	if convertResampler != "" {
		resamplerName = convertResampler
	}
	sess, err := newSession(resamplerName, defaults)
	if err != nil {
		return err
	}

	if err := sess.Load(img); err != nil {
		return apperr.Wrap(err)
	}
	if p.Width > 0 {
		sess.SetWidth(p.TargetWidth(img.Width))
	}
	if convertWidth != "" && convertHeight != "" {
		sess.SetAspectLock(false)
	}
	if convertWidth != "" {
		sess.EditWidth(convertWidth)
	}
	if convertHeight != "" {
		sess.EditHeight(convertHeight)
	}

	settings := sess.Settings()
	logger.Debug("settings",
		"format", settings.Format.Name(),
		"width", settings.Width,
		"height", settings.Height,
		"quality", settings.Quality,
		"aspect_lock", settings.MaintainAspectRatio,
	)

	res, err := sess.Convert(cmd.Context())
	if err != nil {
		return apperr.Wrap(err)
	}

	outDir := cfg.Output.Dir
	if convertOutDir != "" {
		outDir = convertOutDir
	}
	outPath, err := output.Save(outDir, output.Filename(img.Name, cfg.Output.Suffix, res.Format), res)
	if err != nil {
		return err
	}

	if convertReport || cfg.Output.Report {
		r := report.New(img, settings, res, outPath, resamplerName)
		if err := report.WriteJSON(r, report.PathFor(outPath)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Debug("report written", "path", report.PathFor(outPath))
	}

	printConvertReport(img, res, outPath, time.Since(start))
	return nil
}

// newSession wires the raster surface, encoders and converter.
func newSession(resamplerName string, d session.Defaults) (*session.Session, error) {
	rs, err := surface.LookupResampler(resamplerName)
	if err != nil {
		return nil, err
	}
	reg, err := encoder.NewRegistry(cfg.EncoderOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug(reg.String())

	conv := engine.New(surface.NewRaster(rs, reg, cfg.Render.MaxPixels), logger)
	return session.New(conv, d, logger), nil
}

func printConvertReport(img *intake.Image, res *engine.Result, path string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            imgresize convert complete            ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	ratio := float64(0)
	if img.Size > 0 {
		ratio = float64(res.Size) / float64(img.Size) * 100
	}

	fmt.Printf("  Source:      %s  %d × %d px  %s\n", img.MIME, img.Width, img.Height, output.FormatSize(img.Size))
	fmt.Printf("  Result:      %s  %d × %d px  %s\n", res.Format, res.Width, res.Height, output.FormatSize(res.Size))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	if img.HasAlpha && !res.Format.SupportsAlpha() {
		fmt.Printf("  Note:        transparency flattened onto white\n")
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Output:      %s\n", path)
	fmt.Println()
}

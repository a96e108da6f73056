package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/dimension"
)

var (
	dimsOriginal string
	dimsEdits    []string
	dimsUnlocked bool
)

var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Show how width/height edits resolve under the aspect lock",
	Long: `Replays a sequence of edits against an image size and prints the
resolved width and height after each one.

Edits are w=<n>, h=<n>, lock=on or lock=off, applied in order:

  imgresize dims --original 1600x900 --edit w=800 --edit h=300`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDims(os.Stdout)
	},
}

func init() {
	dimsCmd.Flags().StringVar(&dimsOriginal, "original", "", "original size as WxH")
	dimsCmd.Flags().StringArrayVarP(&dimsEdits, "edit", "e", nil, "edit step: w=N, h=N, lock=on|off")
	dimsCmd.Flags().BoolVar(&dimsUnlocked, "unlocked", false, "start with the aspect lock off")
	dimsCmd.MarkFlagRequired("original")
	rootCmd.AddCommand(dimsCmd)
}

func runDims(out io.Writer) error {
	w, h, err := parseSize(dimsOriginal)
	if err != nil {
		return err
	}
	r := dimension.New()
	if err := r.SetOriginalDimensions(w, h); err != nil {
		return err
	}
	r.SetAspectLock(!dimsUnlocked)

	fmt.Fprintf(out, "  %-12s %6s × %-6s  ratio %.4f  lock %t\n", "original", r.Width(), r.Height(), r.Ratio(), r.Locked())
	for _, e := range dimsEdits {
		if err := applyEdit(r, e); err != nil {
			return err
		}
		rw, rh := r.Resolved()
		fmt.Fprintf(out, "  %-12s %6d × %-6d  lock %t\n", e, rw, rh, r.Locked())
	}
	return nil
}

// parseSize reads "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	return w, h, nil
}

func applyEdit(r *dimension.Resolver, edit string) error {
	key, val, ok := strings.Cut(edit, "=")
	if !ok {
		return fmt.Errorf("edit %q: want key=value", edit)
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "w", "width":
		r.EditWidth(val)
	case "h", "height":
		r.EditHeight(val)
	case "lock":
		switch strings.ToLower(val) {
		case "on", "true", "1":
			r.SetAspectLock(true)
		case "off", "false", "0":
			r.SetAspectLock(false)
		default:
			return fmt.Errorf("edit %q: lock must be on or off", edit)
		}
	default:
		return fmt.Errorf("edit %q: unknown key %q", edit, key)
	}
	return nil
}

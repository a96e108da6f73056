package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/apperr"
	"github.com/AnyUserName/imgresize/internal/intake"
	"github.com/AnyUserName/imgresize/internal/output"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display the decoded dimensions and type of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	img, err := intake.Load(args[0])
	if err != nil {
		return apperr.Wrap(err)
	}

	fmt.Println()
	fmt.Printf("  File:         %s\n", img.Name)
	fmt.Printf("  Type:         %s\n", img.MIME)
	fmt.Printf("  Size:         %s\n", output.FormatSize(img.Size))
	fmt.Printf("  Dimensions:   %d × %d px\n", img.Width, img.Height)
	fmt.Printf("  Aspect ratio: %.4f\n", img.AspectRatio())
	fmt.Printf("  Alpha:        %t\n", img.HasAlpha)
	if img.HasAlpha {
		fmt.Println("  ⚠ jpeg output will flatten transparency onto white")
	}
	fmt.Println()
	return nil
}

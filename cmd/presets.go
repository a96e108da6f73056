package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in conversion presets",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println()
		for _, name := range preset.Names() {
			p, _ := preset.Get(name)
			quality := "-"
			if p.Format.UsesQuality() {
				quality = fmt.Sprintf("%.0f", p.Quality*100)
			}
			width := "source"
			if p.Width > 0 {
				width = fmt.Sprintf("%dpx", p.Width)
			}
			fmt.Printf("  %-10s  %-5s  quality %-3s  width %s\n", name, p.Format.Name(), quality, width)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

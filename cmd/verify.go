package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgresize/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report_path>",
	Short: "Validate a conversion report and check the output file matches it",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	r, err := report.ReadJSON(reportPath)
	if err != nil {
		return err
	}

	errs := r.Validate(filepath.Dir(reportPath))
	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %s %d × %d (%d bytes) matches disk\n",
			r.Output.Path, r.Output.Width, r.Output.Height, r.Output.Size)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

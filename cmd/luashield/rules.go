package luashield

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luashield/luashield/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the detection catalog",
		Run: func(_ *cobra.Command, _ []string) {
			report.PrintRules(os.Stdout)
		},
	}
	rootCmd.AddCommand(cmd)
}

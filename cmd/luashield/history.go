package luashield

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/luashield/luashield/internal/audit"
	"github.com/luashield/luashield/internal/cache"
)

var flagHistoryPath string

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scans for a directory",
		Long:  "Prints the audit log of past scans for the given directory, oldest first, followed by a summary of the most recent scan's findings.",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHistoryPath, "path", "p", ".", "scanned directory whose history to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	root, _ := filepath.Abs(flagHistoryPath)

	recs, err := audit.NewLog(root).History()
	if err != nil {
		return fmt.Errorf("history error: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No recorded scans.")
		return nil
	}

	tbl := tablewriter.NewTable(os.Stdout)
	tbl.Header("When", "Files", "Findings", "High", "Medium", "Low", "Duration")
	for _, rec := range recs {
		_ = tbl.Append(
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", rec.FilesScanned),
			fmt.Sprintf("%d", rec.TotalFindings),
			fmt.Sprintf("%d", rec.SeverityCounts["high"]),
			fmt.Sprintf("%d", rec.SeverityCounts["medium"]),
			fmt.Sprintf("%d", rec.SeverityCounts["low"]),
			rec.Duration,
		)
	}
	_ = tbl.Render()

	if last, err := cache.LoadResults(root); err == nil {
		fmt.Printf("Last scan of %s at %s: %d findings\n",
			last.Root, last.Timestamp.Format("2006-01-02 15:04:05"), last.Count)
	}
	return nil
}

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/luashield/luashield/internal/rules"
	"github.com/luashield/luashield/internal/types"
)

// PrintSummary writes a per-severity count table followed by scan stats.
func PrintSummary(w io.Writer, findings []types.Finding, opts PrintOptions) {
	counts := map[types.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}
	tbl := tablewriter.NewTable(w)
	tbl.Header("Severity", "Count")
	for _, sev := range []types.Severity{types.SevHigh, types.SevMed, types.SevLow} {
		_ = tbl.Append(string(sev), fmt.Sprintf("%d", counts[sev]))
	}
	_ = tbl.Render()
	fmt.Fprintf(w, "Findings: %d\n", len(findings))
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Round(10*time.Millisecond).Seconds())
	}
}

// PrintRules writes the rule catalog as a table, in execution order.
func PrintRules(w io.Writer) {
	tbl := tablewriter.NewTable(w)
	tbl.Header("ID", "Severity", "Detects")
	for _, r := range rules.All() {
		_ = tbl.Append(string(r.ID()), string(r.Severity()), r.Doc())
	}
	_ = tbl.Render()
}

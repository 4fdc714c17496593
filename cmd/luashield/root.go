package luashield

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagJSON    bool
	flagSARIF   bool
	flagNoColor bool
	flagFailOn  string
	flagReport  string
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the luashield CLI.
var rootCmd = &cobra.Command{
	Use:           "luashield",
	Short:         "Scan Lua contracts for security anti-patterns",
	Long:          "luashield statically scans Lua source for a fixed catalog of security anti-patterns and reports severity-graded findings with source lines.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the luashield CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit findings as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0 to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "", "exit nonzero when findings reach low|medium|high")
	rootCmd.PersistentFlags().StringVar(&flagReport, "report", "report.json", "path for the persisted JSON report")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental scan cache")
}

// colorDisabled folds the flag with a TTY check so piped output stays plain.
func colorDisabled() bool {
	return flagNoColor || !term.IsTerminal(int(os.Stdout.Fd()))
}

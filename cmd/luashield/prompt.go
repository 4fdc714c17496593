package luashield

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luashield/luashield/internal/engine"
	"github.com/luashield/luashield/internal/parser"
	"github.com/luashield/luashield/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Interactively scan Lua files one at a time",
		Long:  "Repeatedly prompts for a Lua file path, scans it, prints the findings, and saves the JSON report. Enter 'exit' to quit.",
		RunE:  runPrompt,
	}
	rootCmd.AddCommand(cmd)
}

func runPrompt(_ *cobra.Command, _ []string) error {
	in := bufio.NewScanner(os.Stdin)
	noColor := colorDisabled()
	for {
		fmt.Print("Enter the path to the Lua code file (or 'exit' to quit): ")
		if !in.Scan() {
			return in.Err()
		}
		path := strings.TrimSpace(in.Text())
		if strings.EqualFold(path, "exit") {
			return nil
		}
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			fmt.Println("File not found. Please enter a valid file path.")
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("File not found. Please enter a valid file path.")
			continue
		}

		fmt.Println("Analyzing the provided Lua code for vulnerabilities:")
		// Each file is its own session; findings never carry over.
		findings, err := engine.ScanSource(path, src)
		if err != nil {
			var pe *parser.ParseError
			if errors.As(err, &pe) {
				fmt.Printf("Could not parse %s: %s\n", path, pe.Msg)
			} else {
				fmt.Println("Scan failed:", err)
			}
			continue
		}
		report.Print(os.Stdout, findings, report.PrintOptions{NoColor: noColor, Source: src})

		if flagReport != "" {
			if err := report.SaveJSON(flagReport, findings); err != nil {
				fmt.Fprintln(os.Stderr, "report warning:", err)
			} else {
				fmt.Printf("\nVulnerability report saved to %s\n\n", flagReport)
			}
		}
	}
}

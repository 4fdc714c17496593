package luashield

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/luashield/luashield/internal/audit"
	"github.com/luashield/luashield/internal/cache"
	"github.com/luashield/luashield/internal/config"
	"github.com/luashield/luashield/internal/engine"
	"github.com/luashield/luashield/internal/report"
)

var (
	flagPath     string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagEnable   string
	flagDisable  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a Lua file or directory tree",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "file or directory to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (default **/*.lua)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated tags)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rules (comma-separated tags)")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := engine.Config{
		Root:         abs,
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:     pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		EnableRules:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableRules: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		NoCache:      pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "luashield",
			Output: os.Stderr,
			Level:  hclog.Warn,
		}),
	}

	if !flagJSON && !flagSARIF {
		fmt.Fprintf(os.Stderr, "Scanning %s with %d rules...\n", abs, len(engine.RuleIDs()))
	}

	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	findings := res.Findings()
	noColor := colorDisabled()

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, flagPath, findings); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, findings); err != nil {
			return err
		}
	default:
		for _, fr := range res.Files {
			if len(fr.Findings) == 0 {
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s\n", fr.Path)
			report.Print(os.Stdout, fr.Findings, report.PrintOptions{NoColor: noColor, Source: fr.Source})
		}
		report.PrintSummary(os.Stdout, findings, report.PrintOptions{
			NoColor:      noColor,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
		})
	}

	reportPath := pickString(flagReport, lcfg.Report, gcfg.Report)
	if reportPath != "" {
		if err := report.SaveJSON(reportPath, findings); err != nil {
			fmt.Fprintln(os.Stderr, "report warning:", err)
		} else if !flagJSON && !flagSARIF {
			fmt.Fprintf(os.Stderr, "Vulnerability report saved to %s\n", reportPath)
		}
	}

	root := abs
	if st, err := os.Stat(abs); err == nil && !st.IsDir() {
		root = filepath.Dir(abs)
	}
	_ = cache.SaveResults(root, findings)
	_ = audit.NewLog(root).Append(audit.NewRecord(root, findings, res.FilesScanned, res.Duration))

	if failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn); failOn != "" {
		if report.ShouldFail(findings, failOn) {
			os.Exit(1)
		}
	}
	return nil
}

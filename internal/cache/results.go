package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/luashield/luashield/internal/types"
)

// ScanResults summarizes the most recent scan of a root: the findings
// themselves plus per-severity tallies so callers can answer "how bad was
// it" without re-walking the list.
type ScanResults struct {
	Findings       []types.Finding `json:"findings"`
	SeverityCounts map[string]int  `json:"severity_counts"`
	Count          int             `json:"count"`
	Root           string          `json:"root"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewScanResults tallies findings into a results record for root.
func NewScanResults(root string, findings []types.Finding) ScanResults {
	counts := map[string]int{}
	for _, f := range findings {
		counts[string(f.Severity)]++
	}
	return ScanResults{
		Findings:       findings,
		SeverityCounts: counts,
		Count:          len(findings),
		Root:           root,
		Timestamp:      time.Now(),
	}
}

func resultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "luashield_last_scan.json")
	}
	return filepath.Join(root, ".luashield_last_scan.json")
}

// SaveResults persists the outcome of a scan as the root's last-scan record,
// replacing any previous one.
func SaveResults(root string, findings []types.Finding) error {
	b, err := json.MarshalIndent(NewScanResults(root, findings), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultsPath(root), b, 0644)
}

// LoadResults reads the root's last-scan record.
func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	b, err := os.ReadFile(resultsPath(root))
	if err != nil {
		return results, err
	}
	err = json.Unmarshal(b, &results)
	return results, err
}

// Package audit appends one JSONL record per scan so teams can track how a
// codebase's findings evolve over time.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/luashield/luashield/internal/types"
)

// ScanRecord summarizes one completed scan.
type ScanRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	Root           string         `json:"root"`
	TotalFindings  int            `json:"total_findings"`
	SeverityCounts map[string]int `json:"severity_counts"`
	FilesScanned   int            `json:"files_scanned"`
	Duration       string         `json:"duration"`
}

// NewRecord builds a record for the given scan outcome.
func NewRecord(root string, findings []types.Finding, filesScanned int, d time.Duration) ScanRecord {
	counts := map[string]int{}
	for _, f := range findings {
		counts[string(f.Severity)]++
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		TotalFindings:  len(findings),
		SeverityCounts: counts,
		FilesScanned:   filesScanned,
		Duration:       d.String(),
	}
}

// Log appends scan records to a JSONL file next to the scanned tree.
type Log struct {
	path string
}

// NewLog returns the audit log for root, preferring .git for storage.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".luashield_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "luashield_audit.jsonl")
	}
	return &Log{path: path}
}

// Append writes one record.
func (l *Log) Append(rec ScanRecord) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = f.Write(append(b, '\n'))
	return err
}

// History loads all recorded scans, oldest first. Corrupt lines are skipped.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var out []ScanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec ScanRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}

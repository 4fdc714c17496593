package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/luashield/luashield/internal/types"
)

// WriteJSON writes findings as the canonical report array: objects with the
// keys name, description, pattern, severity, line (null when unresolved).
// This shape is the persisted report format consumed by existing tooling;
// keep it bit-compatible.
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(findings)
}

// SaveJSON writes the canonical report to path.
func SaveJSON(path string, findings []types.Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, findings)
}

// ReadJSON decodes a canonical report, e.g. for ingestion tests.
func ReadJSON(r io.Reader) ([]types.Finding, error) {
	var fs []types.Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}

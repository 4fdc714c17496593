package core

import (
	"io"

	"github.com/luashield/luashield/internal/report"
)

// MarshalFindings writes findings in the canonical report shape for humans
// or pipelines.
func MarshalFindings(w io.Writer, findings []Finding) error {
	return report.WriteJSON(w, findings)
}

// UnmarshalFindings decodes findings JSON, useful for ingestion tests.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	return report.ReadJSON(r)
}

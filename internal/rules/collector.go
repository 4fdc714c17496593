package rules

import (
	"errors"

	"github.com/luashield/luashield/internal/types"
)

// Collector accumulates the findings of one scan session in detection order.
// It is append-only: findings are never mutated or removed, only drained in
// bulk when the session ends. A fresh or drained collector carries nothing
// over from a previous file.
type Collector struct {
	findings []types.Finding
}

// NewCollector returns an empty session.
func NewCollector() *Collector { return &Collector{} }

// Record validates f and appends it. Identical findings from overlapping
// rules are all kept; rules are not mutually exclusive.
func (c *Collector) Record(f types.Finding) error {
	if f.Name == "" {
		return errors.New("finding has no name")
	}
	if f.Pattern == "" {
		return errors.New("finding has no pattern tag")
	}
	if !f.Severity.Valid() {
		return errors.New("finding has unknown severity " + string(f.Severity))
	}
	c.findings = append(c.findings, f)
	return nil
}

// Len returns the number of findings recorded so far.
func (c *Collector) Len() int { return len(c.findings) }

// Drain returns the session's findings in detection order and resets the
// collector for the next file.
func (c *Collector) Drain() []types.Finding {
	out := c.findings
	c.findings = nil
	if out == nil {
		out = []types.Finding{}
	}
	return out
}

package core

import (
	"github.com/luashield/luashield/internal/engine"
	"github.com/luashield/luashield/internal/types"
)

// Re-export selected internal types as a stable public API surface. These
// are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result

// ScanSource scans one Lua source buffer and returns its findings in
// detection order. Each call is an isolated session.
func ScanSource(name string, src []byte) ([]Finding, error) {
	return engine.ScanSource(name, src)
}

// ScanFile scans one Lua file on disk.
func ScanFile(path string) ([]Finding, error) {
	return engine.ScanFile(path)
}

// Scan walks cfg.Root and scans every eligible Lua source.
func Scan(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// RuleIDs returns the configured rule tags in execution order. Exposed for
// convenience to avoid importing internals directly.
func RuleIDs() []string { return engine.RuleIDs() }

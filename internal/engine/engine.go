// Package engine orchestrates scans: it feeds Lua sources through the
// parser, applies the rule catalog, and aggregates per-file findings.
package engine

import (
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/luashield/luashield/internal/cache"
	"github.com/luashield/luashield/internal/ignore"
	"github.com/luashield/luashield/internal/parser"
	"github.com/luashield/luashield/internal/rules"
	"github.com/luashield/luashield/internal/types"
)

// Config controls scanning scope and filters.
type Config struct {
	Root         string
	IncludeGlobs string // comma-separated, default "**/*.lua"
	ExcludeGlobs string
	MaxBytes     int64
	EnableRules  string // only run these rule tags (comma-separated)
	DisableRules string
	NoCache      bool
	Logger       hclog.Logger
}

func (cfg Config) logger() hclog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return hclog.NewNullLogger()
}

// FileResult holds one file's findings along with its source, which the
// reporter uses for line excerpts.
type FileResult struct {
	Path     string
	Source   []byte
	Findings []types.Finding
}

// Result contains per-file findings and basic scan statistics.
type Result struct {
	Files        []FileResult
	FilesScanned int
	CacheHits    int
	ParseErrors  []error
	Duration     time.Duration
}

// Findings flattens the per-file findings in scan order.
func (r Result) Findings() []types.Finding {
	out := []types.Finding{}
	for _, f := range r.Files {
		out = append(out, f.Findings...)
	}
	return out
}

// RuleIDs returns the catalog's rule tags in execution order.
func RuleIDs() []string {
	var out []string
	for _, r := range rules.All() {
		out = append(out, string(r.ID()))
	}
	return out
}

// ScanSource parses src and runs the full catalog over it. Each call is one
// session: the findings of previous calls never leak into the result.
func ScanSource(name string, src []byte) ([]types.Finding, error) {
	return scanSource(name, src, "", "", hclog.NewNullLogger())
}

func scanSource(name string, src []byte, enable, disable string, log hclog.Logger) ([]types.Finding, error) {
	tree, err := parser.Parse(name, src)
	if err != nil {
		return nil, err
	}
	c := rules.NewCollector()
	rules.Run(tree, activeRules(enable, disable), c, log)
	return c.Drain(), nil
}

// ScanFile reads and scans one file.
func ScanFile(path string) ([]types.Finding, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ScanSource(path, src)
}

// ScanWithStats walks cfg.Root for Lua sources and scans each one. Files
// whose content hash matches the cache are reported from cached findings
// without re-parsing. A file that fails to parse is logged and skipped; it
// never aborts the rest of the walk.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result
	log := cfg.logger()
	started := time.Now()

	// Cached entries hold full-catalog findings; a filtered scan reports a
	// different set, so it neither reads nor writes the cache.
	useCache := !cfg.NoCache && cfg.EnableRules == "" && cfg.DisableRules == ""

	var db cache.DB
	if useCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	ign, _ := ignore.Load(ignoreFilePath(cfg.Root))

	err := walk(cfg, ign, func(rel string, data []byte) {
		h := cache.Hash(data)
		if useCache {
			if entry, ok := db.Entries[rel]; ok && entry.Hash == h {
				result.Files = append(result.Files, FileResult{Path: rel, Source: data, Findings: entry.Findings})
				result.FilesScanned++
				result.CacheHits++
				return
			}
		}
		findings, err := scanSource(rel, data, cfg.EnableRules, cfg.DisableRules, log)
		if err != nil {
			log.Warn("skipping unparseable file", "path", rel, "error", err)
			result.ParseErrors = append(result.ParseErrors, err)
			return
		}
		result.Files = append(result.Files, FileResult{Path: rel, Source: data, Findings: findings})
		result.FilesScanned++
		if useCache {
			updated[rel] = cache.Entry{Hash: h, Findings: findings}
		}
	})
	if err != nil {
		return result, err
	}

	result.Duration = time.Since(started)
	if useCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]cache.Entry{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

// activeRules applies the enable/disable tag filters to the catalog,
// preserving execution order.
func activeRules(enable, disable string) []rules.Rule {
	if enable == "" && disable == "" {
		return rules.All()
	}
	allowed := map[string]bool{}
	for _, id := range strings.Split(enable, ",") {
		if id = strings.TrimSpace(id); id != "" {
			allowed[id] = true
		}
	}
	blocked := map[string]bool{}
	for _, id := range strings.Split(disable, ",") {
		if id = strings.TrimSpace(id); id != "" {
			blocked[id] = true
		}
	}
	var out []rules.Rule
	for _, r := range rules.All() {
		id := string(r.ID())
		if enable != "" && !allowed[id] {
			continue
		}
		if blocked[id] {
			continue
		}
		out = append(out, r)
	}
	return out
}

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luashield/luashield/internal/types"
)

const vulnerable = `private_key = "0xdeadbeef"
function withdraw()
  external_call(target)
  balance = 0
end
`

func writeLua(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func patterns(fs []types.Finding) map[types.Pattern]int {
	out := map[types.Pattern]int{}
	for _, f := range fs {
		out[f.Pattern]++
	}
	return out
}

func TestScanSource(t *testing.T) {
	fs, err := ScanSource("test.lua", []byte(vulnerable))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := patterns(fs)
	if got[types.PatternPrivateKey] != 1 || got[types.PatternReentrancy] != 1 || got[types.PatternMissingReturn] != 1 {
		t.Fatalf("unexpected patterns: %v", got)
	}
}

func TestScanSourceSessionsAreIndependent(t *testing.T) {
	first, err := ScanSource("a.lua", []byte(vulnerable))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	second, err := ScanSource("a.lua", []byte(vulnerable))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated scans must match: %d vs %d", len(first), len(second))
	}
}

func TestScanSourceParseError(t *testing.T) {
	if _, err := ScanSource("bad.lua", []byte("function f(\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	p := writeLua(t, dir, "contract.lua", vulnerable)
	fs, err := ScanFile(p)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(fs) == 0 {
		t.Fatal("expected findings")
	}
	if _, err := ScanFile(filepath.Join(dir, "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScanWithStatsWalksTree(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)
	writeLua(t, dir, "sub/b.lua", "function ok()\n  return 1\nend\n")
	writeLua(t, dir, "notes.txt", vulnerable) // not matched by **/*.lua
	writeLua(t, dir, "broken.lua", "function f(\n")

	res, err := ScanWithStats(Config{Root: dir, NoCache: true})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("expected 2 scanned files, got %d", res.FilesScanned)
	}
	if len(res.ParseErrors) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(res.ParseErrors))
	}
	if len(res.Findings()) == 0 {
		t.Fatal("expected findings from a.lua")
	}
	if res.Duration <= 0 {
		t.Fatal("duration not recorded")
	}
}

func TestScanWithStatsCacheHits(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)

	cold, err := ScanWithStats(Config{Root: dir})
	if err != nil {
		t.Fatalf("cold scan: %v", err)
	}
	if cold.CacheHits != 0 {
		t.Fatalf("cold scan must not hit the cache, got %d", cold.CacheHits)
	}

	warm, err := ScanWithStats(Config{Root: dir})
	if err != nil {
		t.Fatalf("warm scan: %v", err)
	}
	if warm.CacheHits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", warm.CacheHits)
	}
	// Cached findings are replayed, not dropped.
	if len(warm.Findings()) != len(cold.Findings()) {
		t.Fatalf("cache hit lost findings: %d vs %d", len(warm.Findings()), len(cold.Findings()))
	}
}

func TestScanWithStatsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)
	writeLua(t, dir, "vendor/dep.lua", vulnerable)
	if err := os.WriteFile(filepath.Join(dir, ".luashieldignore"), []byte("# vendored code\nvendor/**\n"), 0o644); err != nil {
		t.Fatalf("write ignore: %v", err)
	}

	res, err := ScanWithStats(Config{Root: dir, NoCache: true})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 1 {
		t.Fatalf("expected vendor/ to be ignored, scanned %d", res.FilesScanned)
	}
}

func TestScanWithStatsInlineDirective(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", "-- luashield:ignore-file\n"+vulnerable)

	res, err := ScanWithStats(Config{Root: dir, NoCache: true})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 0 {
		t.Fatalf("expected directive to skip the file, scanned %d", res.FilesScanned)
	}
}

func TestScanWithStatsMaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)

	res, err := ScanWithStats(Config{Root: dir, NoCache: true, MaxBytes: 8})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 0 {
		t.Fatalf("expected oversized file to be skipped, scanned %d", res.FilesScanned)
	}
}

func TestScanWithStatsSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	p := writeLua(t, dir, "contract.lua", vulnerable)

	res, err := ScanWithStats(Config{Root: p, NoCache: true})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.FilesScanned != 1 || len(res.Findings()) == 0 {
		t.Fatalf("expected the file itself to be scanned, got %+v", res)
	}
}

func TestEnableDisableFilters(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)

	res, err := ScanWithStats(Config{Root: dir, NoCache: true, EnableRules: "private_key_exposure"})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, f := range res.Findings() {
		if f.Pattern != types.PatternPrivateKey {
			t.Fatalf("enable filter leaked %s", f.Pattern)
		}
	}

	res, err = ScanWithStats(Config{Root: dir, NoCache: true, DisableRules: "private_key_exposure"})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := patterns(res.Findings())
	if got[types.PatternPrivateKey] != 0 {
		t.Fatal("disable filter did not drop the rule")
	}
	if got[types.PatternReentrancy] != 1 {
		t.Fatal("disable filter dropped unrelated rules")
	}
}

// A warm cache holds full-catalog findings; filtered scans must not replay
// them.
func TestFilteredScanBypassesCache(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", vulnerable)

	if _, err := ScanWithStats(Config{Root: dir}); err != nil {
		t.Fatalf("warmup scan: %v", err)
	}

	res, err := ScanWithStats(Config{Root: dir, DisableRules: "private_key_exposure"})
	if err != nil {
		t.Fatalf("filtered scan: %v", err)
	}
	if res.CacheHits != 0 {
		t.Fatalf("filtered scan must not read the cache, got %d hits", res.CacheHits)
	}
	if patterns(res.Findings())[types.PatternPrivateKey] != 0 {
		t.Fatal("disabled rule reported from cache")
	}

	// The filtered run must not have poisoned the cache either.
	full, err := ScanWithStats(Config{Root: dir})
	if err != nil {
		t.Fatalf("full scan: %v", err)
	}
	if patterns(full.Findings())[types.PatternPrivateKey] != 1 {
		t.Fatal("full catalog scan lost findings after a filtered run")
	}
}

func TestRuleIDsOrder(t *testing.T) {
	ids := RuleIDs()
	if len(ids) != len(types.Patterns()) {
		t.Fatalf("expected %d rule tags, got %d", len(types.Patterns()), len(ids))
	}
	if ids[0] != string(types.PatternMissingReturn) {
		t.Fatalf("unexpected first rule %s", ids[0])
	}
}

package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/luashield/luashield/internal/ignore"
)

const defaultInclude = "**/*.lua"

// ignoreFilePath returns the location of the root's ignore file.
func ignoreFilePath(root string) string {
	return filepath.Join(root, ".luashieldignore")
}

// walk traverses the tree under cfg.Root and invokes handle for each
// eligible Lua source. If Root is a regular file it is handled directly,
// bypassing the glob filters.
func walk(cfg Config, ign ignore.Matcher, handle func(rel string, data []byte)) error {
	if st, err := os.Stat(cfg.Root); err == nil && !st.IsDir() {
		b, err := os.ReadFile(cfg.Root)
		if err != nil {
			return err
		}
		handle(cfg.Root, b)
		return nil
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, err := d.Info(); err == nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if strings.Contains(string(b), "luashield:ignore-file") {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

func isExcludedDir(name string) bool {
	switch name {
	case ".git", ".hg", ".svn", "node_modules":
		return true
	}
	return false
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs are comma-separated and
// act as a positive filter; exclude globs are subtracted last.
func allowedByGlobs(rel string, cfg Config) bool {
	rp := strings.ReplaceAll(rel, "\\", "/")
	include := cfg.IncludeGlobs
	if include == "" {
		include = defaultInclude
	}
	if !matchAnyGlob(rp, parseGlobsList(include)) {
		return false
	}
	if excludes := parseGlobsList(cfg.ExcludeGlobs); len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

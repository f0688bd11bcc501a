package workspace

import (
	"path"
	"path/filepath"
	"strings"
)

// MatchesAny reports whether the slash-separated relative path matches any
// of the glob patterns. A pattern without a slash also matches the base name,
// so "*.pyc" matches at any depth. A leading "**/" matches at any depth and a
// trailing "/**" matches everything below a directory.
func MatchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, rel) {
			return true
		}
		if !strings.Contains(pattern, "/") && matchPattern(pattern, path.Base(rel)) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, rel string) bool {
	if matched, err := path.Match(pattern, rel); err == nil && matched {
		return true
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		for s := rel; ; {
			if matchPattern(rest, s) {
				return true
			}
			i := strings.Index(s, "/")
			if i < 0 {
				break
			}
			s = s[i+1:]
		}
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		for i := 0; i <= len(rel); i++ {
			if i == len(rel) || rel[i] == '/' {
				if matchPattern(dir, rel[:i]) {
					return true
				}
			}
		}
	}
	return false
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// excluder holds exclude rules resolved against a root.
type excluder struct {
	paths    []string
	patterns []string
}

func newExcluder(root string, excludes []string) excluder {
	var ex excluder
	for _, e := range excludes {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if isGlob(e) {
			ex.patterns = append(ex.patterns, filepath.ToSlash(e))
			continue
		}
		ex.paths = append(ex.paths, resolve(root, e))
	}
	return ex
}

// excluded reports whether abs (with slash-relative form rel) is equal to or
// nested under an exclude path, or matches an exclude pattern.
func (ex excluder) excluded(abs, rel string) bool {
	for _, p := range ex.paths {
		if abs == p || strings.HasPrefix(abs, p+string(filepath.Separator)) {
			return true
		}
	}
	return len(ex.patterns) > 0 && MatchesAny(rel, ex.patterns)
}

func resolve(root, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

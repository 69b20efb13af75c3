package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileMatcher decides whether LoadBundle should descend into a
// directory or ingest a file, mirroring analyzer.MatcherFn's
// os.FileInfo predicate (analyzer/option.go's GolangFiles/JavaFiles).
type FileMatcher func(info os.FileInfo) bool

// ScriptFiles matches JavaScript/TypeScript sources and skips the
// usual vendored-dependency directories.
func ScriptFiles(info os.FileInfo) bool {
	if info.IsDir() {
		switch info.Name() {
		case "node_modules", "vendor", ".git":
			return false
		}
		return true
	}
	switch filepath.Ext(info.Name()) {
	case ".js", ".jsx", ".ts", ".tsx":
		return true
	default:
		return false
	}
}

// matchesGlobs reports whether rel (a slash-separated relative path)
// should be kept under include/exclude glob configuration: it must
// match at least one include pattern (or includes is empty, meaning
// "everything") and must match no exclude pattern.
func matchesGlobs(rel string, includes, excludes []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(includes) == 0 {
		return true
	}
	for _, pattern := range includes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// relPath computes path relative to root for glob matching, falling
// back to the unmodified path if it is not under root. Both root and
// path may carry a scheme prefix (e.g. "file://") since they come
// from afs URL joins rather than bare filesystem paths; the scheme is
// stripped before the comparison since filepath.Rel only understands
// plain paths.
func relPath(root, path string) string {
	root = stripScheme(root)
	bare := stripScheme(path)
	rel, err := filepath.Rel(root, bare)
	if err != nil || strings.HasPrefix(rel, "..") {
		return bare
	}
	return rel
}

func stripScheme(u string) string {
	if idx := strings.Index(u, "://"); idx >= 0 {
		return u[idx+len("://"):]
	}
	return u
}

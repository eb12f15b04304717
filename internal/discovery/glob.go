package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cyspec/pkg/logging"

	"github.com/bmatcuk/doublestar/v4"
)

// Options tunes filesystem traversal.
type Options struct {
	// FollowSymlinks makes `**` descend into symlinked directories.
	FollowSymlinks bool
}

// DefaultOptions follows symlinks, matching the follow-symbolic-links default.
func DefaultOptions() Options {
	return Options{FollowSymlinks: true}
}

// ErrInvalidPattern is returned when a glob pattern cannot be parsed.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// Glob returns the sorted, de-duplicated slash-separated paths of regular files
// under root that match at least one include pattern and no exclude pattern.
// Paths are relative to root. A root that does not exist yields no files.
func Glob(root string, include, exclude []string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("Glob", "Search root %s does not exist, nothing to match", root)
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to stat search root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search root %s is not a directory", root)
	}

	includes, err := normalizePatterns(root, include)
	if err != nil {
		return nil, err
	}
	excludes, err := normalizePatterns(root, exclude)
	if err != nil {
		return nil, err
	}

	globOpts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !opts.FollowSymlinks {
		globOpts = append(globOpts, doublestar.WithNoFollow())
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	files := []string{}
	var loops *loopDetector
	if opts.FollowSymlinks {
		loops = newLoopDetector(root)
	}

	for _, pattern := range includes {
		err := doublestar.GlobWalk(fsys, pattern, func(p string, _ fs.DirEntry) error {
			if _, ok := seen[p]; ok {
				return nil
			}
			if Excluded(p, excludes) {
				return nil
			}
			if loops != nil && loops.throughLoop(p) {
				logging.Debug("Glob", "Skipping %s, reached through a symbolic link loop", p)
				return nil
			}
			seen[p] = struct{}{}
			files = append(files, p)
			return nil
		}, globOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to glob %q under %s: %w", pattern, root, err)
		}
	}

	sort.Strings(files)
	logging.Debug("Glob", "Matched %d files under %s (include=%v exclude=%v)", len(files), root, includes, excludes)
	return files, nil
}

// loopDetector recognizes matches found by following a symlinked directory
// back into one of its own ancestors. Such paths repeat until the OS gives up
// resolving them, so they are never real specs.
type loopDetector struct {
	root     string
	resolved map[string]string
}

func newLoopDetector(root string) *loopDetector {
	return &loopDetector{root: root, resolved: make(map[string]string)}
}

// throughLoop reports whether two directories on the way from the root to the
// slash-separated relative path p resolve to the same real directory.
func (d *loopDetector) throughLoop(p string) bool {
	visited := map[string]struct{}{}
	dir := "."
	parent := path.Dir(p)
	segments := []string{}
	if parent != "." {
		segments = strings.Split(parent, "/")
	}
	for i := 0; ; i++ {
		if target := d.resolve(dir); target != "" {
			if _, ok := visited[target]; ok {
				return true
			}
			visited[target] = struct{}{}
		}
		if i == len(segments) {
			return false
		}
		dir = path.Join(dir, segments[i])
	}
}

// resolve returns the real path of a root-relative directory, or "" when it
// cannot be resolved.
func (d *loopDetector) resolve(dir string) string {
	if target, ok := d.resolved[dir]; ok {
		return target
	}
	target, err := filepath.EvalSymlinks(filepath.Join(d.root, filepath.FromSlash(dir)))
	if err != nil {
		target = ""
	}
	d.resolved[dir] = target
	return target
}

// Excluded reports whether the slash-separated relative path p matches any of
// the patterns. Patterns without a slash are also tried against the base name,
// so `*.hot-update.js` excludes matching files at any depth.
func Excluded(p string, patterns []string) bool {
	base := path.Base(p)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// normalizePatterns converts patterns to the slash-separated, root-relative
// form io/fs expects: a leading "./" is dropped and patterns that spell out
// the root itself are made relative to it.
func normalizePatterns(root string, patterns []string) ([]string, error) {
	rootSlash := filepath.ToSlash(filepath.Clean(root)) + "/"
	out := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		p := filepath.ToSlash(strings.TrimSpace(raw))
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(p, rootSlash)
		for strings.HasPrefix(p, "./") {
			p = strings.TrimPrefix(p, "./")
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
		}
		out = append(out, p)
	}
	return out, nil
}

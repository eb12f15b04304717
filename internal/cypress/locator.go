package cypress

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cyspec/pkg/logging"
)

// Locate returns the path of the single file directly inside dir whose name is
// one of candidates. It returns ErrNotFound when there is none and
// ErrAmbiguous when there are several.
func Locate(dir string, candidates []string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var found []string
	for _, entry := range entries {
		if !slices.Contains(candidates, entry.Name()) {
			continue
		}
		if !isFile(dir, entry) {
			continue
		}
		found = append(found, entry.Name())
	}

	logging.Debug("Locator", "Config candidates in %s matching %v: %v", dir, candidates, found)

	switch len(found) {
	case 0:
		return "", ErrNotFound
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		err := fmt.Errorf("%w in %s: %s", ErrAmbiguous, dir, strings.Join(found, ", "))
		logging.Error("Locator", err, "Refusing to pick one of several config files")
		return "", err
	}
}

// isFile accepts regular files and symlinks that resolve to one.
func isFile(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

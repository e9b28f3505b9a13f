// Package datafile locates GHCN-M input files on disk.
package datafile

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Locate finds the newest file with the given extension under dataDir,
// looking both at the directory itself and one level of ghcnm* release
// subdirectories (the layout NOAA archives unpack to). "Newest" means
// lexically greatest, which matches the date-stamped release names.
func Locate(dataDir, ext string) (string, error) {
	patterns := []string{
		filepath.Join(dataDir, "*"+ext),
		filepath.Join(dataDir, "ghcnm*", "*"+ext),
	}

	var matches []string
	for _, pattern := range patterns {
		found, err := filepath.Glob(pattern)
		if err != nil {
			return "", fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s files found under %s", ext, dataDir)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// Resolve returns path when given, otherwise falls back to discovery under
// dataDir.
func Resolve(path, dataDir, ext string) (string, error) {
	if path != "" {
		return path, nil
	}
	return Locate(dataDir, ext)
}

// Package media enumerates media files and derives subtitle output paths.
package media

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// HasExtension reports whether the path ends in one of the given extensions.
// Extensions are compared case-insensitively and are expected to carry their
// leading dot.
func HasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, candidate := range extensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}

// ReplaceExtension swaps the path's extension for newExt (with or without a
// leading dot).
func ReplaceExtension(path, newExt string) string {
	if !strings.HasPrefix(newExt, ".") {
		newExt = "." + newExt
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

// Scan returns the files under root whose extension matches, walking
// subdirectories only when recursive is set. Ordering follows the directory
// walk; no sorting is applied.
func Scan(root string, extensions []string, recursive bool) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if HasExtension(path, extensions) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

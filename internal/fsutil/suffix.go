// Package fsutil holds the file-system housekeeping around a render run:
// output name derivation and the retention sweep of old artefacts.
package fsutil

import (
	"path/filepath"
	"strings"
)

// AddSuffix inserts suffix between the base name and the extension of the
// final path element: AddSuffix("a.wav", "_x") is "a_x.wav". A path without
// an extension gets the suffix appended. Leading dots of a hidden file's
// name do not start an extension.
func AddSuffix(path, suffix string) string {
	ext := extension(path)
	return path[:len(path)-len(ext)] + suffix + ext
}

func extension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}

	base := filepath.Base(path)
	if strings.TrimLeft(base, ".") == strings.TrimLeft(ext, ".") {
		return ""
	}

	return ext
}

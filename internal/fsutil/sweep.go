package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// SweepResult counts what a sweep removed.
type SweepResult struct {
	Files    int
	Dirs     int
	Failures int
}

// Sweep removes expired content under dir using the current time.
// See SweepAt.
func Sweep(logger *slog.Logger, dir string, maxAgeDays int) (SweepResult, error) {
	return SweepAt(logger, dir, maxAgeDays, time.Now())
}

// SweepAt removes regular files under dir modified before
// now - maxAgeDays*24h, deepest paths first, then removes every
// subdirectory that is empty or itself modified before the cutoff together
// with its contents. dir itself is kept. Failures on individual entries are
// logged and counted; the sweep continues.
func SweepAt(logger *slog.Logger, dir string, maxAgeDays int, now time.Time) (SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var res SweepResult

	if _, err := os.Stat(dir); err != nil {
		logger.Error("retention sweep: directory unavailable", "dir", dir, "err", err)
		return res, fmt.Errorf("fsutil: sweep %s: %w", dir, err)
	}

	cutoff := now.Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	var files, dirs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Error("retention sweep: walk failed", "path", path, "err", err)
			res.Failures++

			if d != nil && d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return res, fmt.Errorf("fsutil: sweep %s: %w", dir, err)
	}

	// WalkDir visits parents before children; reversed order is bottom-up.
	slices.Reverse(files)
	slices.Reverse(dirs)

	logger.Info("retention sweep: checking files", "dir", dir, "cutoff", cutoff.Format(time.DateTime))

	for _, path := range files {
		info, err := os.Lstat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Error("retention sweep: stat file", "path", path, "err", err)
				res.Failures++
			}

			continue
		}

		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(path); err != nil {
			logger.Error("retention sweep: delete file", "path", path, "err", err)
			res.Failures++

			continue
		}

		res.Files++
	}

	if res.Files > 0 {
		logger.Info("retention sweep: deleted files", "count", res.Files)
	}

	for _, path := range dirs {
		expired, err := dirExpired(path, cutoff)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Error("retention sweep: inspect folder", "path", path, "err", err)
				res.Failures++
			}

			continue
		}

		if !expired {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			logger.Error("retention sweep: delete folder", "path", path, "err", err)
			res.Failures++

			continue
		}

		res.Dirs++
	}

	if res.Dirs > 0 {
		logger.Info("retention sweep: deleted folders", "count", res.Dirs)
	}

	return res, nil
}

func dirExpired(path string, cutoff time.Time) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}

	if !info.IsDir() {
		return false, nil
	}

	if info.ModTime().Before(cutoff) {
		return true, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}

	return len(entries) == 0, nil
}

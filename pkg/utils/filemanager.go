// =============================================================================
// Travel Voucher Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator,
// including:
//   - Per-run scratch directory management
//   - Safe filename derivation
//   - Scratch directory retention cleanup
//
// RUN DIRECTORY STRATEGY:
//   - Every generation run works inside its own UUID-named directory under
//     the configured work directory, so concurrent runs never collide
//   - Finished travel packs are copied out to the output directory
//   - Scratch directories are kept for debugging and removed by the
//     retention cleanup
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// RUN DIRECTORIES
// =============================================================================

// runDirPrefix marks scratch directories created by generation runs.
const runDirPrefix = "run_"

// NewRunDir creates a fresh scratch directory for one generation run under
// baseDir and returns its path.
func NewRunDir(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, runDirPrefix+uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// CleanOldRuns removes run scratch directories older than maxAge. Returns
// the number of directories removed.
func CleanOldRuns(workDir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read work directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), runDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(workDir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove old run directory: %w", err)
			}
			removed++
		}
	}

	return removed, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// SafeFilename derives a filesystem-safe fragment from free text, keeping
// letters, digits, spaces, hyphens and underscores, with spaces collapsed
// to underscores. The result is truncated to maxLen bytes.
func SafeFilename(name string, maxLen int) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c == ' ':
			b.WriteByte('_')
		case c == '-' || c == '_':
			b.WriteRune(c)
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			b.WriteRune(c)
		}
	}
	safe := strings.Trim(b.String(), "_")
	if maxLen > 0 && len(safe) > maxLen {
		safe = safe[:maxLen]
	}
	return safe
}

// =============================================================================
// FILE HELPERS
// =============================================================================

// CopyFile copies a file from src to dst, creating dst's directory when
// needed.
func CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

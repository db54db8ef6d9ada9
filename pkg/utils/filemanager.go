// =============================================================================
// Smart Bookshop POS - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the data directory:
//   - Directory management (created on first run)
//   - Atomic whole-file replacement
//   - Existence checks that tell "missing" apart from "unreadable"
//
// WRITE STRATEGY:
//   Every store rewrites its whole file on each mutation. WriteFileAtomic
//   writes the new contents to a temporary file in the same directory,
//   syncs it, and renames it over the target, so a crash mid-write leaves
//   the previous file in place instead of a truncated one.
//
// =============================================================================

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager owns the directories of a data directory.
type FileManager struct {
	// Dirs are the directories created by EnsureDirectories.
	Dirs []string
}

// NewFileManager creates a new FileManager for the given directories.
func NewFileManager(dirs ...string) *FileManager {
	return &FileManager{Dirs: dirs}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range fm.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic replaces path with data.
//
// PARAMETERS:
//   - path: The destination file. Its directory is created if needed.
//   - data: The complete new file contents.
//   - perm: The permission bits of the resulting file.
//
// RETURNS:
//   - An error if any step up to and including the rename fails. On error
//     the destination is untouched and the temporary file is removed. Once
//     the rename succeeds the call returns nil.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir flushes directory metadata so the rename itself is durable.
// It runs after the new file is already in place, so failures are ignored:
// the write has happened and callers must treat it as done.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists reports whether path exists.
// The error is non-nil only when existence cannot be determined.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

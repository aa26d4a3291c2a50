package fsstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	tempFilePrefix = ".notevault-tmp-"
	filePerm       = 0o644
	dirPerm        = 0o755
)

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename, so readers see either the old or the new content.
func writeFileAtomic(afs afero.Fs, filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := afs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(afs, dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer func() { _ = afs.Remove(tmpName) }()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := afs.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := afs.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

func writeJSON(afs afero.Fs, filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return writeFileAtomic(afs, filename, data)
}

// readFile returns nil data and no error when the file does not exist.
func readFile(afs afero.Fs, filename string) ([]byte, error) {
	data, err := afero.ReadFile(afs, filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// removeFile reports whether the file existed.
func removeFile(afs afero.Fs, filename string) (bool, error) {
	err := afs.Remove(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", filename, err)
	}
	return true, nil
}

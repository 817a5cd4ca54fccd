package pxscale

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to overwritten files. It carries no timestamp,
// so identical runs never accumulate backups.
const BackupSuffix = ".bak"

// WriteResult describes the outcome of WriteIfChanged.
type WriteResult struct {
	Wrote      bool
	BackupPath string
}

// WriteIfChanged writes content to path only when it differs from the
// current file. When backup is set and an existing file is overwritten, its
// previous content is copied to path+BackupSuffix first.
func WriteIfChanged(path, content string, backup bool) (WriteResult, error) {
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(old, []byte(content)) {
			return WriteResult{}, nil
		}
	case errors.Is(err, fs.ErrNotExist):
		old = nil
	default:
		return WriteResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	var result WriteResult
	if old != nil && backup {
		result.BackupPath = path + BackupSuffix
		if err := os.WriteFile(result.BackupPath, old, 0o644); err != nil {
			return WriteResult{}, fmt.Errorf("backup %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return result, fmt.Errorf("write %s: %w", path, err)
	}

	result.Wrote = true
	return result, nil
}

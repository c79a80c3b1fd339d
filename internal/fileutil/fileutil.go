// Package fileutil provides the small filesystem helpers shared by commands
// that write downloaded artifacts.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// WriteFileAtomic writes data to path via a temporary file and rename, so a
// crash mid-write never leaves a truncated artifact behind.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

const maxNameLength = 120

// SanitizeName turns an arbitrary recording title into a safe file name
// component: path separators and control characters become spaces, whitespace
// collapses, and the result is length capped. Empty input resolves to
// "untitled".
func SanitizeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return ' '
		case unicode.IsControl(r):
			return ' '
		default:
			return r
		}
	}, name)

	cleaned := strings.Join(strings.Fields(mapped), " ")
	if cleaned == "" {
		return "untitled"
	}
	if len(cleaned) > maxNameLength {
		cleaned = strings.TrimSpace(cleaned[:maxNameLength])
	}
	return cleaned
}

// Package store provides the file-system access layer shared by the hosts
// and nginx reconcilers. Both reconcilers depend on the FileStore interface
// rather than the os package directly, so they stay testable against
// temporary directories and portable across platforms.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore is the file-system capability consumed by the reconcilers.
// None of the operations retry internally; every failure is returned as-is
// for the caller to wrap with operation context.
type FileStore interface {
	// ReadText returns the full content of a file.
	ReadText(path string) (string, error)

	// ReadLines returns the content of a file split into lines, without
	// trailing newline characters.
	ReadLines(path string) ([]string, error)

	// WriteText overwrites a file with the given content, creating it if
	// needed.
	WriteText(path string, content string) error

	// WriteLines overwrites a file with the given lines joined by newlines.
	// A trailing newline is always written.
	WriteLines(path string, lines []string) error

	// Append appends content to a file, creating it if needed.
	Append(path string, content string) error

	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool

	// ListDir returns the names of regular files in dir, excluding any name
	// in the excluding set. Subdirectories are skipped.
	ListDir(dir string, excluding ...string) ([]string, error)

	// Delete removes a file.
	Delete(path string) error

	// EnsureDir creates a directory and any missing parents.
	EnsureDir(path string) error
}

// DiskStore implements FileStore against the real file system.
type DiskStore struct{}

// NewDiskStore creates a new DiskStore.
func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

// ReadText returns the full content of a file.
func (s *DiskStore) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLines returns the content of a file split into lines.
func (s *DiskStore) ReadLines(path string) ([]string, error) {
	content, err := s.ReadText(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(content), nil
}

// WriteText overwrites a file with the given content.
func (s *DiskStore) WriteText(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteLines overwrites a file with the given lines.
func (s *DiskStore) WriteLines(path string, lines []string) error {
	return s.WriteText(path, strings.Join(lines, "\n")+"\n")
}

// Append appends content to a file, creating it if needed.
func (s *DiskStore) Append(path string, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

// Exists reports whether a file or directory exists at path.
func (s *DiskStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListDir returns the names of regular files in dir, excluding given names.
func (s *DiskStore) ListDir(dir string, excluding ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excluding))
	for _, name := range excluding {
		excluded[name] = true
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || excluded[entry.Name()] {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Delete removes a file.
func (s *DiskStore) Delete(path string) error {
	return os.Remove(path)
}

// EnsureDir creates a directory and any missing parents.
func (s *DiskStore) EnsureDir(path string) error {
	return os.MkdirAll(filepath.Clean(path), 0755)
}

// SplitLines splits content into lines, accepting both \n and \r\n endings.
// A single trailing newline does not produce a trailing empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

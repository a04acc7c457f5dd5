package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// MaxDirectoryAttempts bounds how many random names CreateUniqueDirectory tries
const MaxDirectoryAttempts = 10

// File extensions left behind by an interrupted or in-progress fetch
var (
	SkippedExtensions = []string{".part", ".ytdl"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// CreateUniqueDirectory creates a new directory under parent named with
// nameLength random letters. An existing directory is never reused.
func CreateUniqueDirectory(parent string, nameLength int) (string, error) {
	return createUniqueDirectory(parent, func() string {
		return RandomString(nameLength)
	})
}

func createUniqueDirectory(parent string, nextName func() string) (string, error) {
	if err := CreateDirectoryIfNotExists(parent); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", parent, err)
	}

	for range MaxDirectoryAttempts {
		dir := filepath.Join(parent, nextName())
		err := os.Mkdir(dir, DefaultDirPermissions)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return "", fmt.Errorf("no free directory name in %s after %d attempts", parent, MaxDirectoryAttempts)
}

// ProjectRoot returns the parent of the working directory, which is where
// the media folder lives when the tool is launched from a source subdirectory.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Dir(wd), nil
}

// FindFirstFileWithExt returns the lexically first regular file in dir
// having extension ext. Partial download artifacts are ignored.
func FindFirstFileWithExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isPartialFile(entry.Name()) {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no %s file in %s", ext, dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// isPartialFile checks if a filename is a leftover of an unfinished fetch
func isPartialFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, skipped := range SkippedExtensions {
		if ext == skipped {
			return true
		}
	}
	return false
}

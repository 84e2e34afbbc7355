package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Home directory shorthand
const (
	HomeShorthand = "~"
)

// ErrNotDirectory is returned when the download path exists but is not a directory
var ErrNotDirectory = errors.New("not a valid directory")

// DirectoryError describes why a download directory cannot be used
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	if errors.Is(e.Err, ErrNotDirectory) {
		return fmt.Sprintf("%s is not a valid directory", e.Path)
	}
	return fmt.Sprintf("cannot use directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~user", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != HomeShorthand && !strings.HasPrefix(path, HomeShorthand+"/") &&
		!strings.HasPrefix(path, HomeShorthand+string(filepath.Separator)) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	if path == HomeShorthand {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[len(HomeShorthand)+1:]), nil
}

// CreateDirectoryIfNotExists creates the directory and its parents if needed.
// It reports whether a directory was created.
func CreateDirectoryIfNotExists(fsys afero.Fs, dirPath string) (bool, error) {
	if _, err := fsys.Stat(dirPath); os.IsNotExist(err) {
		if err := fsys.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
			return false, err
		}
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}

// ResolveDirectory expands, absolutizes and cleans path, creates it if it does
// not exist and checks that it is a directory. It returns the resolved path and
// whether the directory was created by this call.
func ResolveDirectory(fsys afero.Fs, path string) (string, bool, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", false, &DirectoryError{Path: path, Err: err}
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", false, &DirectoryError{Path: expanded, Err: fmt.Errorf("failed to get absolute path: %w", err)}
	}

	created, err := CreateDirectoryIfNotExists(fsys, absPath)
	if err != nil {
		return "", false, &DirectoryError{Path: absPath, Err: err}
	}

	info, err := fsys.Stat(absPath)
	if err != nil {
		return "", false, &DirectoryError{Path: absPath, Err: err}
	}
	if !info.IsDir() {
		return "", false, &DirectoryError{Path: absPath, Err: ErrNotDirectory}
	}

	return absPath, created, nil
}

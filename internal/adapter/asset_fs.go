// Package adapter contains filesystem and infrastructure adapters for the cluttercut CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// AssetFS abstracts the filesystem operations the domain layer relies on
// when scanning Unity projects. It hides direct `os` access so collector
// and scanner logic can be tested against plain temp directories.
type AssetFS interface {
	// Walk traverses the tree rooted at root, depth first.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check
	// existence, sizes, or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindAssetsRoot locates the Unity Assets directory by walking up the
	// directory tree from start.
	FindAssetsRoot(start m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalAssetFS is the os-backed implementation of AssetFS.
type LocalAssetFS struct{}

// NewLocalAssetFS constructs a LocalAssetFS ready to be wired into the workflow.
func NewLocalAssetFS() *LocalAssetFS {
	return &LocalAssetFS{}
}

// Walk iterates over all files under root, descending into subdirectories.
func (a *LocalAssetFS) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), filepath.WalkFunc(fn))
}

// ReadFile loads file contents from disk.
func (a *LocalAssetFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalAssetFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindAssetsRoot searches for a directory containing "Assets" walking up
// the directory tree from start, and returns that Assets directory.
func (a *LocalAssetFS) FindAssetsRoot(start m.Path) (m.Path, error) {
	dir, err := filepath.Abs(string(start))
	if err != nil {
		return "", err
	}

	for {
		assetsDir := filepath.Join(dir, "Assets")
		if info, err := os.Stat(assetsDir); err == nil && info.IsDir() {
			return m.Path(assetsDir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no Assets directory found in any parent directory of %s", start)
		}

		dir = parent
	}
}

package system

import (
	"io/fs"
	"os"
)

// hostFS is the FileSystem backed by package os.
type hostFS struct{}

func (hostFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (hostFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (hostFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (hostFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (hostFS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

func (h hostFS) Exists(path string) bool {
	_, err := h.Stat(path)
	return err == nil
}

func (h hostFS) IsDir(path string) bool {
	info, err := h.Stat(path)
	return err == nil && info.IsDir()
}

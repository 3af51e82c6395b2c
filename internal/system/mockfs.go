package system

import (
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFS is an in-memory FileSystem for tests. Paths are cleaned before
// use, so "/work/r1-temp/" and "/work/r1-temp" are the same directory.
// Adding a file or directory creates its parents.
type MockFS struct {
	mu      sync.RWMutex
	entries map[string]*memEntry
	errs    map[string]error
}

type memEntry struct {
	data []byte
	mode fs.FileMode
}

func (e *memEntry) isDir() bool { return e.mode.IsDir() }

// NewMockFS creates an empty MockFS.
func NewMockFS() *MockFS {
	return &MockFS{
		entries: make(map[string]*memEntry),
		errs:    make(map[string]error),
	}
}

// SetError makes every later call to op ("ReadFile", "WriteFile", "Stat",
// "MkdirAll" or "ReadDir") fail with err.
func (m *MockFS) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = err
}

// AddFile adds a file and its parent directories.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := filepath.Clean(path)
	m.mkdirParents(p)
	m.entries[p] = &memEntry{data: data, mode: mode.Perm()}
}

// AddDir adds a directory and its parents.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := filepath.Clean(path)
	m.mkdirParents(p)
	m.entries[p] = &memEntry{mode: fs.ModeDir | 0755}
}

// GetFile returns the contents of a file.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[filepath.Clean(path)]
	if !ok || e.isDir() {
		return nil, false
	}
	return e.data, true
}

// Files returns the paths of all files, sorted.
func (m *MockFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var files []string
	for p, e := range m.entries {
		if !e.isDir() {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}

// mkdirParents records every ancestor of p as a directory. The caller
// holds the lock.
func (m *MockFS) mkdirParents(p string) {
	for dir := filepath.Dir(p); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		if _, ok := m.entries[dir]; !ok {
			m.entries[dir] = &memEntry{mode: fs.ModeDir | 0755}
		}
	}
}

func pathErr(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errs["ReadFile"]; err != nil {
		return nil, err
	}
	e, ok := m.entries[filepath.Clean(path)]
	switch {
	case !ok:
		return nil, pathErr("open", path, fs.ErrNotExist)
	case e.isDir():
		return nil, pathErr("read", path, fs.ErrInvalid)
	}
	return slices.Clone(e.data), nil
}

// WriteFile fails when the parent directory does not exist, like the
// host filesystem.
func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["WriteFile"]; err != nil {
		return err
	}
	p := filepath.Clean(path)
	if dir := filepath.Dir(p); dir != "." && dir != "/" {
		if parent, ok := m.entries[dir]; !ok || !parent.isDir() {
			return pathErr("open", path, fs.ErrNotExist)
		}
	}
	if e, ok := m.entries[p]; ok && e.isDir() {
		return pathErr("open", path, fs.ErrInvalid)
	}
	m.entries[p] = &memEntry{data: slices.Clone(data), mode: perm.Perm()}
	return nil
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errs["Stat"]; err != nil {
		return nil, err
	}
	p := filepath.Clean(path)
	e, ok := m.entries[p]
	if !ok {
		return nil, pathErr("stat", path, fs.ErrNotExist)
	}
	return memInfo{name: filepath.Base(p), entry: e}, nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["MkdirAll"]; err != nil {
		return err
	}
	p := filepath.Clean(path)
	if e, ok := m.entries[p]; ok {
		if !e.isDir() {
			return pathErr("mkdir", path, fs.ErrExist)
		}
		return nil
	}
	m.mkdirParents(p)
	m.entries[p] = &memEntry{mode: fs.ModeDir | perm.Perm()}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[filepath.Clean(path)]
	return ok
}

func (m *MockFS) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[filepath.Clean(path)]
	return ok && e.isDir()
}

// ReadDir returns the direct children of path sorted by name.
func (m *MockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errs["ReadDir"]; err != nil {
		return nil, err
	}
	dir := filepath.Clean(path)
	if e, ok := m.entries[dir]; !ok || !e.isDir() {
		return nil, pathErr("open", path, fs.ErrNotExist)
	}

	var children []fs.DirEntry
	for p, e := range m.entries {
		if p != dir && filepath.Dir(p) == dir {
			children = append(children, fs.FileInfoToDirEntry(memInfo{name: filepath.Base(p), entry: e}))
		}
	}
	slices.SortFunc(children, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return children, nil
}

// memInfo is the fs.FileInfo of a MockFS entry.
type memInfo struct {
	name  string
	entry *memEntry
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return int64(len(i.entry.data)) }
func (i memInfo) Mode() fs.FileMode  { return i.entry.mode }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.entry.isDir() }
func (i memInfo) Sys() any           { return nil }

var _ FileSystem = (*MockFS)(nil)

// Package system wraps the host operations the builder performs: reading
// config documents and templates, creating build directories, and running
// docker, cp, qemu-img and gzip. Everything above this package takes the
// interfaces so tests and manual mode can substitute their own.
package system

import (
	"context"
	"io/fs"
)

// FileSystem is the subset of the host filesystem used to resolve configs,
// walk template trees and write build contexts.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(path string) ([]fs.DirEntry, error)

	// Exists reports whether path names a file or directory.
	Exists(path string) bool

	// IsDir reports whether path names a directory. Config file entries
	// that are directories are copied with cp -r.
	IsDir(path string) bool
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs a command to completion and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command attached to the terminal, for
	// steps whose progress the user should see (image builds).
	ExecuteInteractive(ctx context.Context, name string, args ...string) error
}

var (
	hostFileSystem FileSystem      = hostFS{}
	hostExecutor   CommandExecutor = hostExec{}
)

// DefaultFS returns the host filesystem.
func DefaultFS() FileSystem {
	return hostFileSystem
}

// DefaultExecutor returns the executor that runs commands on the host.
func DefaultExecutor() CommandExecutor {
	return hostExecutor
}

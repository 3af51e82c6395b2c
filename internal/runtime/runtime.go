// Package runtime defines the container runtime interface for openwrt-builder.
// The image builder only needs a handful of container operations, all of
// which are shelled out to docker or podman and run strictly one at a time.
package runtime

import (
	"context"
)

// ContainerStatus represents the state of a container
type ContainerStatus string

const (
	StatusRunning  ContainerStatus = "running"
	StatusStopped  ContainerStatus = "stopped"
	StatusNotFound ContainerStatus = "not-found"
	StatusUnknown  ContainerStatus = "unknown"
)

// ContainerInfo holds information about a container
type ContainerInfo struct {
	Name      string
	Status    ContainerStatus
	Image     string
	StartedAt string
	ExitCode  int
}

// BuildOptions holds options for building a container image
type BuildOptions struct {
	Tag        string // e.g. openwrt:router
	ContextDir string // build context directory
	Dockerfile string // optional, relative to ContextDir
	ExtraArgs  []string
}

// Mount is a writable bind mount from the host into the container. The
// builder writes images into bin and downloads into dl.
type Mount struct {
	Source string // absolute host path
	Target string // container path
}

// RunOptions holds options for running a container to completion
type RunOptions struct {
	Name      string   // container name without prefix
	Image     string   // image reference
	EnvFile   string   // passed as --env-file when set
	Mounts    []Mount  // bind mounts
	ExtraArgs []string // inserted before the image reference
	Args      []string // arguments after the image reference
}

// Runtime is the interface that container backends must implement.
// Every method blocks until the underlying command exits.
type Runtime interface {
	// Name returns the runtime identifier (e.g., "docker", "podman")
	Name() string

	// Build builds an image from a build context
	Build(ctx context.Context, opts BuildOptions) error

	// Run runs a container in the foreground until it exits.
	// The container is kept so artifacts can be copied out afterwards.
	Run(ctx context.Context, opts RunOptions) error

	// Copy copies a path out of a container onto the host
	Copy(ctx context.Context, name, remotePath, localPath string) error

	// Stop stops a container
	Stop(ctx context.Context, name string) error

	// Remove removes a stopped container
	Remove(ctx context.Context, name string) error

	// Status returns detailed status of a container
	Status(ctx context.Context, name string) (*ContainerInfo, error)
}

package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

// DockerRuntime implements the Runtime interface using Docker or Podman.
// Both share the same CLI surface for everything the builder does.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string

	// ContainerPrefix is prepended to image names to form container names
	ContainerPrefix string

	exec system.CommandExecutor
}

// NewDockerRuntime creates a runtime driving command through exec.
// A nil exec uses the system default executor.
func NewDockerRuntime(command, containerPrefix string, exec system.CommandExecutor) *DockerRuntime {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &DockerRuntime{
		Command:         command,
		ContainerPrefix: containerPrefix,
		exec:            exec,
	}
}

// ContainerName returns the full container name for an image name
func (r *DockerRuntime) ContainerName(name string) string {
	return r.ContainerPrefix + name
}

// Name returns the runtime identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

// runCmd executes a docker/podman command and captures its output
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	out, err := r.exec.Execute(ctx, r.Command, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// runStreaming executes a docker/podman command attached to the terminal
func (r *DockerRuntime) runStreaming(ctx context.Context, args ...string) error {
	if err := r.exec.ExecuteInteractive(ctx, r.Command, args...); err != nil {
		return fmt.Errorf("%s %s failed: %w", r.Command, args[0], err)
	}
	return nil
}

// Build builds an image from a build context
func (r *DockerRuntime) Build(ctx context.Context, opts BuildOptions) error {
	logging.Debug("building image", "tag", opts.Tag, "context", opts.ContextDir, "runtime", r.Command)

	args := []string{"build", "-t", opts.Tag}
	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.ContextDir)

	if err := r.runStreaming(ctx, args...); err != nil {
		return errors.ContainerFailed("build", err)
	}
	return nil
}

// runArgs assembles the argument list for Run
func (r *DockerRuntime) runArgs(opts RunOptions) []string {
	args := []string{"run", "--name", r.ContainerName(opts.Name)}

	if opts.EnvFile != "" {
		args = append(args, "--env-file", opts.EnvFile)
	}

	for _, m := range opts.Mounts {
		args = append(args, "--mount", fmt.Sprintf("type=bind,source=%s,target=%s", m.Source, m.Target))
	}

	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.Image)
	args = append(args, opts.Args...)
	return args
}

// Run runs a container in the foreground until it exits
func (r *DockerRuntime) Run(ctx context.Context, opts RunOptions) error {
	logging.Debug("running container", "container", r.ContainerName(opts.Name), "image", opts.Image)

	if err := r.runStreaming(ctx, r.runArgs(opts)...); err != nil {
		return errors.ContainerFailed("run", err)
	}
	return nil
}

// Copy copies a path out of a container onto the host
func (r *DockerRuntime) Copy(ctx context.Context, name, remotePath, localPath string) error {
	containerName := r.ContainerName(name)
	logging.Debug("copying from container", "container", containerName, "src", remotePath, "dst", localPath)

	if _, err := r.runCmd(ctx, "cp", containerName+":"+remotePath, localPath); err != nil {
		return errors.ContainerFailed("cp", err)
	}
	return nil
}

// Stop stops a container
func (r *DockerRuntime) Stop(ctx context.Context, name string) error {
	containerName := r.ContainerName(name)
	logging.Debug("stopping container", "container", containerName)

	if _, err := r.runCmd(ctx, "container", "stop", containerName); err != nil {
		return errors.ContainerFailed("stop", err)
	}
	return nil
}

// Remove removes a stopped container
func (r *DockerRuntime) Remove(ctx context.Context, name string) error {
	containerName := r.ContainerName(name)
	logging.Debug("removing container", "container", containerName)

	if _, err := r.runCmd(ctx, "container", "rm", containerName); err != nil {
		return errors.ContainerFailed("rm", err)
	}
	return nil
}

// dockerInspect holds the relevant fields from docker inspect
type dockerInspect struct {
	Config struct {
		Image string `json:"Image"`
	} `json:"Config"`
	State struct {
		Status    string `json:"Status"`
		Running   bool   `json:"Running"`
		StartedAt string `json:"StartedAt"`
		ExitCode  int    `json:"ExitCode"`
	} `json:"State"`
}

// Status returns detailed status of a container.
// A container that cannot be inspected is reported as StatusNotFound.
func (r *DockerRuntime) Status(ctx context.Context, name string) (*ContainerInfo, error) {
	containerName := r.ContainerName(name)

	info := &ContainerInfo{
		Name:   name,
		Status: StatusNotFound,
	}

	output, err := r.runCmd(ctx, "container", "inspect", containerName)
	if err != nil {
		return info, nil
	}

	var inspects []dockerInspect
	if err := json.Unmarshal([]byte(output), &inspects); err != nil {
		return info, nil
	}

	if len(inspects) == 0 {
		return info, nil
	}

	inspect := inspects[0]
	switch inspect.State.Status {
	case "running":
		info.Status = StatusRunning
	case "exited", "stopped", "created":
		info.Status = StatusStopped
	default:
		info.Status = StatusUnknown
	}

	info.Image = inspect.Config.Image
	info.StartedAt = inspect.State.StartedAt
	info.ExitCode = inspect.State.ExitCode

	return info, nil
}

var _ Runtime = (*DockerRuntime)(nil)

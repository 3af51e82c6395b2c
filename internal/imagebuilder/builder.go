package imagebuilder

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

// Builder runs the build steps for one resolved config.
type Builder struct {
	cfg      *config.Config
	settings *config.Settings
	rt       runtime.Runtime
	exec     system.CommandExecutor
	fs       system.FileSystem
	workDir  string
	manual   bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithExecutor sets the executor used for host commands (cp, qemu-img, gzip).
func WithExecutor(exec system.CommandExecutor) Option {
	return func(b *Builder) { b.exec = exec }
}

// WithFileSystem sets the filesystem used for local checks and writes.
func WithFileSystem(fs system.FileSystem) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithWorkDir sets the directory that build directories and artifacts are
// created in. It defaults to the current directory.
func WithWorkDir(dir string) Option {
	return func(b *Builder) { b.workDir = dir }
}

// WithManual marks the builder as running in manual mode: commands go to a
// printing executor and container state is not inspected.
func WithManual(manual bool) Option {
	return func(b *Builder) { b.manual = manual }
}

// New creates a Builder for cfg. A nil settings uses config.DefaultSettings.
func New(cfg *config.Config, settings *config.Settings, rt runtime.Runtime, opts ...Option) *Builder {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	b := &Builder{
		cfg:      cfg,
		settings: settings,
		rt:       rt,
		exec:     system.DefaultExecutor(),
		fs:       system.DefaultFS(),
		workDir:  ".",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the config being built.
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// requireName returns the image name or an ImageNameRequired error.
func (b *Builder) requireName() (string, error) {
	name := b.cfg.Name()
	if name == "" {
		return "", errors.ImageNameRequired()
	}
	return name, nil
}

// path resolves p against the work directory unless it is absolute.
// A trailing separator is kept, since docker cp treats it as "into".
func (b *Builder) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	joined := filepath.Join(b.workDir, p)
	if strings.HasSuffix(p, "/") {
		joined += "/"
	}
	return joined
}

// run executes a host command, wrapping failures as CommandFailed.
func (b *Builder) run(ctx context.Context, name string, args ...string) error {
	out, err := b.exec.Execute(ctx, name, args...)
	if err != nil {
		logging.Debug("command output", "cmd", system.CommandLine(name, args...), "output", string(out))
		return errors.CommandFailed(name, err)
	}
	return nil
}

// ImageTag returns the tag of the per-image builder container.
func (b *Builder) ImageTag() (string, error) {
	name, err := b.requireName()
	if err != nil {
		return "", err
	}
	return b.settings.ImageRepository + ":" + name, nil
}

// TempDir returns the build context directory, <name>-temp.
func (b *Builder) TempDir() (string, error) {
	name, err := b.requireName()
	if err != nil {
		return "", err
	}
	return b.path(name + "-temp"), nil
}

// BinDir returns the directory the image builder writes its output to.
func (b *Builder) BinDir() (string, error) {
	name, err := b.requireName()
	if err != nil {
		return "", err
	}
	return b.path(name + "-bin"), nil
}

package imagebuilder

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
)

// BuildContainerImage builds the per-image builder container from <name>-temp.
func (b *Builder) BuildContainerImage(ctx context.Context) error {
	tag, err := b.ImageTag()
	if err != nil {
		return err
	}
	tempDir, err := b.TempDir()
	if err != nil {
		return err
	}

	logging.Info("building container image", "tag", tag)
	return b.rt.Build(ctx, runtime.BuildOptions{
		Tag:        tag,
		ContextDir: tempDir,
	})
}

// MakeArgs returns the make variables passed to the image builder.
func (b *Builder) MakeArgs() []string {
	return []string{
		"PACKAGES=" + strings.Join(b.cfg.Packages(), " "),
		"FILES=files/",
		"DISABLED_SERVICES=" + strings.Join(b.cfg.DisabledServices(), " "),
	}
}

// BuildImage runs the image builder container. The output directory and the
// download cache are bind-mounted from the work directory.
func (b *Builder) BuildImage(ctx context.Context) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	envFile := b.cfg.EnvFile()
	if envFile == "" {
		return errors.Precondition("env file is required")
	}
	extraArgs, err := b.settings.RunArgs()
	if err != nil {
		return errors.SettingsError("invalid settings", err)
	}

	if !b.manual {
		info, err := b.rt.Status(ctx, name)
		if err != nil {
			return errors.ContainerFailed("inspect", err)
		}
		if info.Status != runtime.StatusNotFound {
			return errors.Precondition(fmt.Sprintf(
				"container for %s already exists (%s); run clean first", name, info.Status))
		}
	}

	binDir, err := b.absDir(name + "-bin")
	if err != nil {
		return err
	}
	cacheDir, err := b.absDir(b.settings.CacheDir)
	if err != nil {
		return err
	}

	tag, _ := b.ImageTag()
	logging.Info("building firmware", "name", name, "image", tag, "packages", len(b.cfg.Packages()))

	return b.rt.Run(ctx, runtime.RunOptions{
		Name:    name,
		Image:   tag,
		EnvFile: envFile,
		Mounts: []runtime.Mount{
			{Source: binDir, Target: path.Join(b.settings.BuilderHome, "bin")},
			{Source: cacheDir, Target: path.Join(b.settings.BuilderHome, "dl")},
		},
		ExtraArgs: extraArgs,
		Args:      b.MakeArgs(),
	})
}

// absDir creates dir under the work directory if needed and returns its
// absolute path, as bind mounts require one.
func (b *Builder) absDir(dir string) (string, error) {
	p := b.path(dir)
	if err := b.fs.MkdirAll(p, 0755); err != nil {
		return "", errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to create %s", dir), err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to resolve %s", dir), err)
	}
	return abs, nil
}

// Build runs Prepare, BuildContainerImage and BuildImage in order.
func (b *Builder) Build(ctx context.Context) error {
	if _, err := b.requireName(); err != nil {
		return err
	}
	if b.cfg.EnvFile() == "" {
		return errors.Precondition("env file is required")
	}

	if err := b.Prepare(ctx); err != nil {
		return err
	}
	if err := b.BuildContainerImage(ctx); err != nil {
		return err
	}
	return b.BuildImage(ctx)
}

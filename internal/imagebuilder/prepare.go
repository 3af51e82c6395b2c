package imagebuilder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

// DockerfileName is the name of the generated Dockerfile in <name>-temp.
const DockerfileName = "Dockerfile"

// CopyFiles copies every configured file entry into dst. Directories are
// copied recursively. All sources are checked before the first copy runs.
func (b *Builder) CopyFiles(ctx context.Context, dst string) error {
	if dst == "" {
		return errors.Precondition("destination path is required")
	}

	files := b.cfg.Files()
	for _, src := range files {
		if !b.fs.Exists(src) {
			return errors.Precondition(fmt.Sprintf("source path %s must exist", src))
		}
	}

	target := strings.TrimSuffix(dst, "/") + "/"
	for _, src := range files {
		logging.Debug("staging file", "src", src, "dst", target)
		var err error
		if b.fs.IsDir(src) {
			err = b.run(ctx, "cp", "-r", src, target)
		} else {
			err = b.run(ctx, "cp", src, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Prepare creates <name>-temp, stages the configured files into it, and
// writes a Dockerfile unless one is already there.
func (b *Builder) Prepare(ctx context.Context) error {
	tempDir, err := b.TempDir()
	if err != nil {
		return err
	}

	if err := b.fs.MkdirAll(tempDir, 0755); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to create build directory", err)
	}

	if err := b.CopyFiles(ctx, tempDir); err != nil {
		return err
	}

	dockerfile := filepath.Join(tempDir, DockerfileName)
	if b.fs.Exists(dockerfile) {
		logging.Debug("keeping existing Dockerfile", "path", dockerfile)
		return nil
	}

	data, err := RenderDockerfile(DockerfileData{
		BuilderImage: b.settings.BuilderImage,
		Version:      b.cfg.Version(),
		Arch:         b.cfg.Arch(),
		Board:        b.cfg.Board(),
		Home:         b.settings.BuilderHome,
	})
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to render Dockerfile", err)
	}
	if err := b.fs.WriteFile(dockerfile, data, 0644); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to write Dockerfile", err)
	}
	logging.Debug("wrote Dockerfile", "path", dockerfile)
	return nil
}

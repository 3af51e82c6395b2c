package imagebuilder

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

// Artifact names an output that can be copied out of a finished build.
type Artifact string

const (
	ArtifactRootfs        Artifact = "rootfs"
	ArtifactSquashfs      Artifact = "squashfs"
	ArtifactSquashfsQcow2 Artifact = "squashfs-qcow2"
	ArtifactExt4          Artifact = "ext4"
	ArtifactExt4Vmdk      Artifact = "ext4-vmdk"
	ArtifactAll           Artifact = "all"
)

// Artifacts lists every supported artifact in display order.
var Artifacts = []Artifact{
	ArtifactRootfs,
	ArtifactSquashfs,
	ArtifactSquashfsQcow2,
	ArtifactExt4,
	ArtifactExt4Vmdk,
	ArtifactAll,
}

// ParseArtifact converts a command-line value into an Artifact.
func ParseArtifact(s string) (Artifact, error) {
	for _, a := range Artifacts {
		if string(a) == s {
			return a, nil
		}
	}
	names := make([]string, len(Artifacts))
	for i, a := range Artifacts {
		names[i] = string(a)
	}
	return "", errors.ValidationError(fmt.Sprintf("unknown artifact %q (valid: %s)", s, strings.Join(names, ", ")))
}

// BaseDir is the container directory holding the build output.
func (b *Builder) BaseDir() string {
	return path.Join(b.settings.BuilderHome, "bin", "targets", b.cfg.Arch(), b.cfg.Board())
}

// FileName is the common prefix of every artifact file name.
func (b *Builder) FileName() string {
	return fmt.Sprintf("openwrt-%s-%s-%s", b.cfg.Version(), b.cfg.Arch(), b.cfg.Board())
}

func (b *Builder) RootfsName() string   { return b.FileName() + "-generic-rootfs.tar.gz" }
func (b *Builder) SquashfsName() string { return b.FileName() + "-combined-squashfs.img.gz" }
func (b *Builder) Ext4ImgName() string  { return b.FileName() + "-combined-ext4.img.gz" }
func (b *Builder) Ext4VmdkName() string { return b.FileName() + "-combined-ext4.vmdk" }

// CopyTarget copies remotePath out of the build container to localPath.
func (b *Builder) CopyTarget(ctx context.Context, remotePath, localPath string) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	if remotePath == "" {
		return errors.Precondition("remote path is required")
	}
	if localPath == "" {
		return errors.Precondition("file path is required")
	}

	logging.Debug("copying artifact", "name", name, "remote", remotePath, "local", localPath)
	return b.rt.Copy(ctx, name, remotePath, b.path(localPath))
}

// copyNamed copies fileName from BaseDir, defaulting the local name to
// <name><suffix> when localPath is empty.
func (b *Builder) copyNamed(ctx context.Context, fileName, suffix, localPath string) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	if localPath == "" {
		localPath = name + suffix
	}
	return b.CopyTarget(ctx, path.Join(b.BaseDir(), fileName), localPath)
}

// CopyRootfs copies the generic rootfs tarball, by default to <name>.tar.gz.
func (b *Builder) CopyRootfs(ctx context.Context, localPath string) error {
	return b.copyNamed(ctx, b.RootfsName(), ".tar.gz", localPath)
}

// CopySquashfsImg copies the combined squashfs image, by default to
// <name>-squashfs-combined.img.gz.
func (b *Builder) CopySquashfsImg(ctx context.Context, localPath string) error {
	return b.copyNamed(ctx, b.SquashfsName(), "-squashfs-combined.img.gz", localPath)
}

// CopyExt4Img copies the combined ext4 image, by default to <name>-ext4.img.gz.
func (b *Builder) CopyExt4Img(ctx context.Context, localPath string) error {
	return b.copyNamed(ctx, b.Ext4ImgName(), "-ext4.img.gz", localPath)
}

// CopyExt4Vmdk copies the ext4 VMDK disk, by default to <name>-ext4.vmdk.
func (b *Builder) CopyExt4Vmdk(ctx context.Context, localPath string) error {
	return b.copyNamed(ctx, b.Ext4VmdkName(), "-ext4.vmdk", localPath)
}

// CopyAll copies the whole target directory, by default to <name>-output/.
func (b *Builder) CopyAll(ctx context.Context, localPath string) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	if localPath == "" {
		localPath = name + "-output/"
	}
	return b.CopyTarget(ctx, b.BaseDir(), localPath)
}

// exitCoder is implemented by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// CopySquashfsQcow2 copies the squashfs image and converts it into
// <name>.qcow2, resized to the configured size. The raw image is kept
// gzipped as <name>.img.gz.
func (b *Builder) CopySquashfsQcow2(ctx context.Context) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	if err := b.CopySquashfsImg(ctx, ""); err != nil {
		return err
	}

	gz := b.path(name + "-squashfs-combined.img.gz")
	raw := strings.TrimSuffix(gz, ".gz")
	img := b.path(name + ".img")

	// OpenWrt images carry padding after the gzip stream, which gunzip
	// reports with exit status 2 after decompressing successfully.
	if _, err := b.exec.Execute(ctx, "gunzip", gz); err != nil {
		var ec exitCoder
		if !errors.As(err, &ec) || ec.ExitCode() != 2 {
			return errors.CommandFailed("gunzip", err)
		}
		logging.Warn("gunzip reported trailing data", "file", gz)
	}

	steps := [][]string{
		{"qemu-img", "resize", "-f", "raw", raw, b.settings.Qcow2Size},
		{"qemu-img", "convert", "-f", "raw", "-O", "qcow2", raw, b.path(name + ".qcow2")},
		{"mv", raw, img},
		{"rm", "-f", img + ".gz"},
		{"gzip", img},
	}
	for _, step := range steps {
		if err := b.run(ctx, step[0], step[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// Extract copies artifact out of the build container. localPath overrides
// the default destination; it is not accepted for squashfs-qcow2, whose
// file names are fixed.
func (b *Builder) Extract(ctx context.Context, artifact Artifact, localPath string) error {
	switch artifact {
	case ArtifactRootfs:
		return b.CopyRootfs(ctx, localPath)
	case ArtifactSquashfs:
		return b.CopySquashfsImg(ctx, localPath)
	case ArtifactSquashfsQcow2:
		if localPath != "" {
			return errors.ValidationError("--output is not supported for squashfs-qcow2")
		}
		return b.CopySquashfsQcow2(ctx)
	case ArtifactExt4:
		return b.CopyExt4Img(ctx, localPath)
	case ArtifactExt4Vmdk:
		return b.CopyExt4Vmdk(ctx, localPath)
	case ArtifactAll:
		return b.CopyAll(ctx, localPath)
	default:
		_, err := ParseArtifact(string(artifact))
		return err
	}
}

// RemoveInstance stops and removes the build container.
func (b *Builder) RemoveInstance(ctx context.Context) error {
	name, err := b.requireName()
	if err != nil {
		return err
	}
	if err := b.rt.Stop(ctx, name); err != nil {
		return err
	}
	return b.rt.Remove(ctx, name)
}

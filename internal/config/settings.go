package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

// Settings are host-level options read from settings.toml.
//
//	runtime          = "auto"               # auto, docker or podman
//	templates_dir    = "/srv/owrt/templates"
//	container_prefix = "openwrt-"
//	image_repository = "openwrt"
//	builder_image    = "openwrtorg/imagebuilder"
//	builder_home     = "/home/build/openwrt"
//	cache_dir        = "cache"
//	qcow2_size       = "300M"
//	extra_run_args   = "--cpus 4 --memory 4g"
//	allow_comments   = false                # accept JSONC config documents
type Settings struct {
	Runtime         string `toml:"runtime"`
	TemplatesDir    string `toml:"templates_dir"`
	ContainerPrefix string `toml:"container_prefix"`
	ImageRepository string `toml:"image_repository"`
	BuilderImage    string `toml:"builder_image"`
	BuilderHome     string `toml:"builder_home"`
	CacheDir        string `toml:"cache_dir"`
	Qcow2Size       string `toml:"qcow2_size"`
	ExtraRunArgs    string `toml:"extra_run_args"`
	AllowComments   bool   `toml:"allow_comments"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Runtime:         "auto",
		ContainerPrefix: "openwrt-",
		ImageRepository: "openwrt",
		BuilderImage:    "openwrtorg/imagebuilder",
		BuilderHome:     "/home/build/openwrt",
		CacheDir:        "cache",
		Qcow2Size:       "300M",
	}
}

var validRuntimes = map[string]bool{"auto": true, "docker": true, "podman": true}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if !validRuntimes[s.Runtime] {
		return fmt.Errorf("invalid runtime: %s (must be auto, docker, or podman)", s.Runtime)
	}
	if s.ContainerPrefix == "" {
		return fmt.Errorf("container_prefix cannot be empty")
	}
	if s.ImageRepository == "" {
		return fmt.Errorf("image_repository cannot be empty")
	}
	if strings.ContainsAny(s.ImageRepository, ": ") {
		return fmt.Errorf("image_repository must not contain a tag or spaces (got %q)", s.ImageRepository)
	}
	if s.BuilderHome == "" || !strings.HasPrefix(s.BuilderHome, "/") {
		return fmt.Errorf("builder_home must be an absolute container path (got %q)", s.BuilderHome)
	}
	if _, err := s.RunArgs(); err != nil {
		return err
	}
	return nil
}

// RunArgs splits extra_run_args into arguments using shell quoting rules.
func (s *Settings) RunArgs() ([]string, error) {
	if strings.TrimSpace(s.ExtraRunArgs) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(s.ExtraRunArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid extra_run_args: %w", err)
	}
	return args, nil
}

// LoadSettings reads the settings file at path on top of DefaultSettings.
// A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Debug("no settings file, using defaults", "path", path)
		return settings, nil
	}

	md, err := toml.DecodeFile(path, settings)
	if err != nil {
		return nil, errors.SettingsError(fmt.Sprintf("failed to parse settings %s", path), err)
	}
	for _, key := range md.Undecoded() {
		logging.Warn("unknown settings key", "path", path, "key", key.String())
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.SettingsError(fmt.Sprintf("invalid settings %s", path), err)
	}
	return settings, nil
}

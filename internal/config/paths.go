package config

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	DefaultConfigDir    = "/etc/openwrt-builder"
	DefaultTemplatesDir = "/usr/share/openwrt-builder/templates"
	SettingsFileName    = "settings.toml"

	// TemplateConfigName is the config document inside a template directory.
	TemplateConfigName = "config.json"
)

// Paths holds the configured paths
type Paths struct {
	ConfigDir    string
	SettingsFile string
	TemplatesDir string
	// WorkDir is where <name>-temp, <name>-bin and extracted artifacts live.
	WorkDir string
}

// DefaultPaths returns the default path configuration
func DefaultPaths() *Paths {
	return &Paths{
		ConfigDir:    DefaultConfigDir,
		SettingsFile: filepath.Join(DefaultConfigDir, SettingsFileName),
		TemplatesDir: DefaultTemplatesDir,
		WorkDir:      ".",
	}
}

// TemplateDir resolves the directory of the named template under root.
// The name may contain subdirectories but can never resolve outside root,
// even through symlinks.
func TemplateDir(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("template name cannot be empty")
	}
	dir, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return "", fmt.Errorf("invalid template name %q: %w", name, err)
	}
	return dir, nil
}

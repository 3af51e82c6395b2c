package config

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/firefly-engineering/openwrt-builder/internal/listmerge"
)

// Defaults applied before any config document is read.
const (
	DefaultVersion = "23.05.3"
	DefaultArch    = "x86"
	DefaultBoard   = "64"
)

// nameRegex matches names usable as a docker tag and container name suffix.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{0,127}$`)

// ValidateName checks that name can be used as an image name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("image name cannot be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid image name %q: must start with a letter or digit, contain only letters, digits, '.', '_' or '-', and be at most 128 characters", name)
	}
	return nil
}

// Config is a resolved image build configuration. The zero value is not
// useful; use Default or Load. A Config is not modified after it has been
// returned by Load, except through MergeInto on a value the caller owns.
type Config struct {
	name    string
	version string
	arch    string
	board   string
	envFile string

	packages         []string
	files            []string
	disabledServices []string
}

// Default returns a Config holding only the built-in defaults.
func Default() *Config {
	return &Config{
		version:          DefaultVersion,
		arch:             DefaultArch,
		board:            DefaultBoard,
		packages:         []string{},
		files:            []string{},
		disabledServices: []string{},
	}
}

// Name returns the image name, or "" when none was configured.
func (c *Config) Name() string { return c.name }

// Version returns the OpenWrt release.
func (c *Config) Version() string { return c.version }

// Arch returns the target architecture.
func (c *Config) Arch() string { return c.arch }

// Board returns the target board (subtarget).
func (c *Config) Board() string { return c.board }

// EnvFile returns the env file passed to the build container, or "".
func (c *Config) EnvFile() string { return c.envFile }

// Packages returns a copy of the resolved package list.
func (c *Config) Packages() []string { return slices.Clone(c.packages) }

// Files returns a copy of the files staged into the build.
func (c *Config) Files() []string { return slices.Clone(c.files) }

// DisabledServices returns a copy of the services disabled in the image.
func (c *Config) DisabledServices() []string { return slices.Clone(c.disabledServices) }

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	clone.packages = slices.Clone(c.packages)
	clone.files = slices.Clone(c.files)
	clone.disabledServices = slices.Clone(c.disabledServices)
	return &clone
}

// MergeInto merges the list channels of other into c. With reverse unset,
// c's lists are primary and other's secondary; with reverse set the roles
// swap. Packages go through negation; files and disabled services do not.
// Scalars are never touched, and other is never modified.
func (c *Config) MergeInto(other *Config, reverse bool) {
	prior, next := c, other
	if reverse {
		prior, next = other, c
	}

	packages := listmerge.MergeNegatable(prior.packages, next.packages)
	files := listmerge.Merge(prior.files, next.files)
	disabledServices := listmerge.Merge(prior.disabledServices, next.disabledServices)

	c.packages = packages
	c.files = files
	c.disabledServices = disabledServices
}

// Add returns a copy of a with b merged into it. Neither a nor b is modified.
func Add(a, b *Config) *Config {
	result := a.Clone()
	result.MergeInto(b, false)
	return result
}

// Overrides holds scalar values given on the command line.
// Empty fields leave the configured value in place.
type Overrides struct {
	Name    string
	Version string
	Arch    string
	Board   string
	EnvFile string
}

// WithOverrides returns a copy of c with the non-empty overrides applied.
func (c *Config) WithOverrides(o Overrides) *Config {
	result := c.Clone()
	if o.Name != "" {
		result.name = o.Name
	}
	if o.Version != "" {
		result.version = o.Version
	}
	if o.Arch != "" {
		result.arch = o.Arch
	}
	if o.Board != "" {
		result.board = o.Board
	}
	if o.EnvFile != "" {
		result.envFile = o.EnvFile
	}
	return result
}

// Resolved is the serializable view of a Config.
type Resolved struct {
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Version          string   `json:"version" yaml:"version"`
	Arch             string   `json:"arch" yaml:"arch"`
	Board            string   `json:"board" yaml:"board"`
	EnvFile          string   `json:"env-file,omitempty" yaml:"env-file,omitempty"`
	Packages         []string `json:"packages" yaml:"packages"`
	Files            []string `json:"files" yaml:"files"`
	DisabledServices []string `json:"disabled_services" yaml:"disabled_services"`
}

// Resolved returns a snapshot of c suitable for printing or encoding.
// The snapshot contains no includes, since those are consumed by Load.
func (c *Config) Resolved() Resolved {
	return Resolved{
		Name:             c.name,
		Version:          c.version,
		Arch:             c.arch,
		Board:            c.board,
		EnvFile:          c.envFile,
		Packages:         c.Packages(),
		Files:            c.Files(),
		DisabledServices: c.DisabledServices(),
	}
}

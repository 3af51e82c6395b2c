package cmd

import (
	"github.com/firefly-engineering/openwrt-builder/internal/app"
	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/imagebuilder"
)

// defaultConfigPath is read from the working directory. A missing file
// resolves to the built-in defaults.
const defaultConfigPath = "config.json"

// configFlags holds the config-related persistent flags.
type configFlags struct {
	path    string
	version string
	arch    string
	board   string
	envFile string
}

// overrides turns the flags into scalar overrides. name comes from the
// positional argument and replaces the document's name when set.
func (f configFlags) overrides(name string) config.Overrides {
	return config.Overrides{
		Name:    name,
		Version: f.version,
		Arch:    f.arch,
		Board:   f.board,
		EnvFile: f.envFile,
	}
}

// currentApp returns the application context.
// This is a helper to reduce repetition in commands.
func currentApp() *app.App {
	return app.Default
}

// nameArg returns the optional positional image name.
func nameArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// loadConfig resolves the --config document with flag overrides applied.
func loadConfig(args []string) (*config.Config, error) {
	return currentApp().LoadConfig(cfgFlags.path, cfgFlags.overrides(nameArg(args)))
}

// newBuilder resolves the config and wraps it in an image builder.
func newBuilder(args []string) (*imagebuilder.Builder, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}
	return currentApp().Builder(cfg)
}

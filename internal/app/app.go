// Package app provides the application context for openwrt-builder.
// It allows dependency injection for testing.
package app

import (
	"io"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/imagebuilder"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
	"github.com/firefly-engineering/openwrt-builder/internal/templates"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Settings are the host-level settings
	Settings *config.Settings

	// Runtime is the container runtime, nil when none could be detected
	Runtime runtime.Runtime

	// Executor runs host and runtime commands
	Executor system.CommandExecutor

	// FS is used for local file access
	FS system.FileSystem

	// Manual is set when commands are printed instead of run
	Manual bool
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets custom settings
func WithSettings(settings *config.Settings) Option {
	return func(a *App) {
		a.Settings = settings
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithFileSystem sets a custom filesystem
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithManual switches to manual mode: every command is written to out
// instead of being executed.
func WithManual(out io.Writer) Option {
	return func(a *App) {
		a.Manual = true
		a.Executor = system.NewDryRunExecutor(out)
	}
}

// New creates a new App with the given options.
// If runtime is not provided via WithRuntime, it is built from the settings.
func New(opts ...Option) *App {
	app := &App{
		Paths:    config.DefaultPaths(),
		Settings: config.DefaultSettings(),
		Executor: system.DefaultExecutor(),
		FS:       system.DefaultFS(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Runtime == nil {
		rt, err := newRuntime(app.Settings, app.Executor)
		switch {
		case err == nil:
			app.Runtime = rt
		case app.Manual:
			// Printed commands need a command name even without an installed runtime.
			app.Runtime = runtime.NewDockerRuntime(string(runtime.RuntimeDocker), app.Settings.ContainerPrefix, app.Executor)
		default:
			logging.Debug("failed to initialize runtime", "error", err)
		}
	}

	return app
}

func newRuntime(settings *config.Settings, exec system.CommandExecutor) (runtime.Runtime, error) {
	rtType, err := runtime.ParseType(settings.Runtime)
	if err != nil {
		return nil, err
	}
	return runtime.New(&runtime.Config{
		Type:            rtType,
		ContainerPrefix: settings.ContainerPrefix,
		Executor:        exec,
	})
}

// RequireRuntime returns the runtime or a Precondition error when none is
// available.
func (a *App) RequireRuntime() (runtime.Runtime, error) {
	if a.Runtime == nil {
		return nil, errors.Precondition("no container runtime available (install docker or podman, or set runtime in settings)")
	}
	return a.Runtime, nil
}

// Templates returns a store over the configured templates directory
func (a *App) Templates() *templates.Store {
	return templates.NewStore(a.Paths.TemplatesDir,
		templates.WithFileSystem(a.FS),
		templates.WithExecutor(a.Executor),
		templates.WithComments(a.Settings.AllowComments),
	)
}

// LoadConfig resolves the config document at path against the templates
// directory and applies the overrides.
func (a *App) LoadConfig(path string, overrides config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(path,
		config.WithTemplatesDir(a.Paths.TemplatesDir),
		config.WithFileSystem(a.FS),
		config.WithComments(a.Settings.AllowComments),
	)
	if err != nil {
		return nil, err
	}
	return cfg.WithOverrides(overrides), nil
}

// Builder returns an image builder for cfg wired to the app's dependencies
func (a *App) Builder(cfg *config.Config) (*imagebuilder.Builder, error) {
	rt, err := a.RequireRuntime()
	if err != nil {
		return nil, err
	}
	return imagebuilder.New(cfg, a.Settings, rt,
		imagebuilder.WithExecutor(a.Executor),
		imagebuilder.WithFileSystem(a.FS),
		imagebuilder.WithWorkDir(a.Paths.WorkDir),
		imagebuilder.WithManual(a.Manual),
	), nil
}

// Default is the application instance used by the commands. The root
// command sets it once flags and settings are known.
var Default *App

// SetDefault replaces the default application instance
func SetDefault(a *App) {
	Default = a
}

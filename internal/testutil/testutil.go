// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/openwrt-builder/internal/app"
	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	Settings *config.Settings
	Runtime  *runtime.MockRuntime
	Executor *system.MockExecutor
	App      *app.App
}

// NewTestEnv creates a test environment on disk with a templates root
// holding the base and wireless fixtures, a mock runtime and a mock executor.
// The environment's App becomes app.Default until the test ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		ConfigDir:    filepath.Join(tmpDir, "config"),
		SettingsFile: filepath.Join(tmpDir, "config", config.SettingsFileName),
		TemplatesDir: filepath.Join(tmpDir, "templates"),
		WorkDir:      filepath.Join(tmpDir, "work"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.TemplatesDir, paths.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	settings := config.DefaultSettings()
	mockRuntime := runtime.NewMockRuntime()
	mockExec := system.NewMockExecutor()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(settings),
		app.WithRuntime(mockRuntime),
		app.WithExecutor(mockExec),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)
	t.Cleanup(func() {
		app.SetDefault(originalDefault)
	})

	env := &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		Settings: settings,
		Runtime:  mockRuntime,
		Executor: mockExec,
		App:      testApp,
	}

	env.AddTemplate("base", MustLoadFixture(BaseTemplateFixture), map[string]string{
		"files/etc/banner":                         "OpenWrt lab\n",
		"files/etc/uci-defaults/99_custom-base.sh": "#!/bin/sh\nexit 0\n",
		"custom-base.sh":                           "#!/bin/sh\n",
	})
	env.AddTemplate("wireless", MustLoadFixture(WirelessTemplateFixture), nil)

	return env
}

// AddTemplate creates a template directory. A nil configJSON leaves the
// template without a config.json; files are written relative to the
// template directory.
func (e *TestEnv) AddTemplate(name string, configJSON []byte, files map[string]string) string {
	e.T.Helper()

	dir := filepath.Join(e.Paths.TemplatesDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.T.Fatalf("Failed to create template %s: %v", name, err)
	}
	if configJSON != nil {
		e.WriteFile(filepath.Join(dir, config.TemplateConfigName), string(configJSON))
	}
	for rel, content := range files {
		e.WriteFile(filepath.Join(dir, rel), content)
	}
	return dir
}

// WriteConfig writes a config document into the config directory and
// returns its path.
func (e *TestEnv) WriteConfig(name string, content []byte) string {
	e.T.Helper()

	path := filepath.Join(e.Paths.ConfigDir, name)
	e.WriteFile(path, string(content))
	return path
}

// WriteFile writes content to path, creating parent directories.
func (e *TestEnv) WriteFile(path, content string) {
	e.T.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WorkPath joins elem onto the work directory.
func (e *TestEnv) WorkPath(elem ...string) string {
	return filepath.Join(append([]string{e.Paths.WorkDir}, elem...)...)
}

// RouterConfig writes the router fixture, its env file and its files/ tree,
// changes into the work directory so the fixture's relative paths resolve,
// and returns the config path.
func (e *TestEnv) RouterConfig() string {
	e.T.Helper()

	// Equivalent of testing.T.Chdir (Go 1.24+) for older toolchains.
	prevDir, err := os.Getwd()
	if err != nil {
		e.T.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(e.Paths.WorkDir); err != nil {
		e.T.Fatalf("Failed to chdir to %s: %v", e.Paths.WorkDir, err)
	}
	e.T.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			e.T.Errorf("Failed to restore working directory %s: %v", prevDir, err)
		}
	})
	e.WriteFile(e.WorkPath("r1.env"), "ROOT_PASSWORD=secret\n")
	e.WriteFile(e.WorkPath("files", "etc", "motd"), "lab\n")
	return e.WriteConfig("r1.json", MustLoadFixture(RouterConfigFixture))
}

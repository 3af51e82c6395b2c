package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/openwrt-builder/internal/app"
	"github.com/firefly-engineering/openwrt-builder/internal/config"
)

func TestNewTestEnv(t *testing.T) {
	env := NewTestEnv(t)

	if app.Default != env.App {
		t.Error("NewTestEnv should install its App as app.Default")
	}

	tmpls, err := env.App.Templates().List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	names := make([]string, len(tmpls))
	for i, tmpl := range tmpls {
		names[i] = tmpl.Name
	}
	if diff := cmp.Diff([]string{"base", "wireless"}, names); diff != "" {
		t.Errorf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestRouterConfig(t *testing.T) {
	env := NewTestEnv(t)
	path := env.RouterConfig()

	cfg, err := env.App.LoadConfig(path, config.Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	wantPackages := []string{"luci", "curl", "hostapd", "-wpad-mini", "wpad-basic", "htop"}
	if diff := cmp.Diff(wantPackages, cfg.Packages()); diff != "" {
		t.Errorf("Packages() mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []string{filepath.Join(env.Paths.TemplatesDir, "base", "files") + "/", "files/"}
	if diff := cmp.Diff(wantFiles, cfg.Files()); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(cfg.EnvFile()); err != nil {
		t.Errorf("env file %q should resolve from the work directory: %v", cfg.EnvFile(), err)
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/firefly-engineering/openwrt-builder/internal/app"
	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
	"github.com/firefly-engineering/openwrt-builder/internal/testutil"
)

// resetFlags puts every flag back to its default so command runs don't
// leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, string, error) {
	resetFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

// useApp makes the commands run against a instead of building one from
// flags and settings.
func useApp(t *testing.T, a *app.App) {
	t.Helper()
	original := setupApp
	setupApp = func(*cobra.Command) error {
		app.SetDefault(a)
		return nil
	}
	t.Cleanup(func() { setupApp = original })
}

func setupEnv(t *testing.T) *testutil.TestEnv {
	t.Helper()
	env := testutil.NewTestEnv(t)
	useApp(t, env.App)
	return env
}

func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with exit code %d", code)
	}
	if got := errors.GetExitCode(err); got != code {
		t.Errorf("exit code = %d, want %d (err: %v)", got, code, err)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, want := range []string{"openwrt-builder", "--manual", "--config", "--templates-dir"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Help output should contain %q", want)
		}
	}
	for _, sub := range []string{"show", "validate", "prepare", "build", "extract", "clean", "templates", "init"} {
		if !strings.Contains(stdout, sub) {
			t.Errorf("Help output should list %q", sub)
		}
	}
}

func TestShowCommand_Text(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	stdout, _, err := executeCommand("show", "-C", path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	for _, want := range []string{
		"Name: r1",
		"Version: 23.05.3",
		"Target: x86/64",
		"Env file: r1.env",
		"Packages: luci curl hostapd -wpad-mini wpad-basic htop",
		"Disabled services: odhcpd firewall",
		"  files/",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
}

func TestShowCommand_JSONWithOverrides(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	stdout, _, err := executeCommand("show", "r2", "-C", path, "-o", "json", "--arch", "ramips", "--board", "mt7621", "-V", "22.03.5")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	var got config.Resolved
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, stdout)
	}

	want := config.Resolved{
		Name:             "r2",
		Version:          "22.03.5",
		Arch:             "ramips",
		Board:            "mt7621",
		EnvFile:          "r1.env",
		Packages:         []string{"luci", "curl", "hostapd", "-wpad-mini", "wpad-basic", "htop"},
		Files:            []string{filepath.Join(env.Paths.TemplatesDir, "base", "files") + "/", "files/"},
		DisabledServices: []string{"odhcpd", "firewall"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved config mismatch (-want +got):\n%s", diff)
	}
}

func TestShowCommand_YAML(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	stdout, _, err := executeCommand("show", "-C", path, "-o", "yaml")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	for _, want := range []string{"name: r1", "env-file: r1.env", "- luci", "disabled_services:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("yaml output missing %q:\n%s", want, stdout)
		}
	}
}

func TestShowCommand_Errors(t *testing.T) {
	env := setupEnv(t)
	invalid := env.WriteConfig("invalid.json", testutil.MustLoadFixture(testutil.InvalidConfigFixture))
	valid := env.RouterConfig()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown format", []string{"show", "-C", valid, "-o", "toml"}, errors.ExitGeneralError},
		{"invalid document", []string{"show", "-C", invalid}, errors.ExitConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(tt.args...)
			wantExitCode(t, err, tt.code)
		})
	}
}

func TestShowCommand_MissingConfigUsesDefaults(t *testing.T) {
	env := setupEnv(t)

	stdout, _, err := executeCommand("show", "-C", filepath.Join(env.TmpDir, "missing.json"))
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(stdout, "Name: (unset)") || !strings.Contains(stdout, "Version: "+config.DefaultVersion) {
		t.Errorf("expected default config, got:\n%s", stdout)
	}
}

func TestValidateCommand(t *testing.T) {
	env := setupEnv(t)
	valid := env.WriteConfig("r1.json", testutil.MustLoadFixture(testutil.RouterConfigFixture))
	invalid := env.WriteConfig("invalid.json", testutil.MustLoadFixture(testutil.InvalidConfigFixture))

	stdout, _, err := executeCommand("validate", valid)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(stdout, "✓ "+valid) {
		t.Errorf("validate output = %q", stdout)
	}

	_, stderr, err := executeCommand("validate", valid, invalid, filepath.Join(env.TmpDir, "missing.json"))
	wantExitCode(t, err, errors.ExitConfigParse)
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("error = %q, want a 2 of 3 summary", err)
	}
	if !strings.Contains(stderr, "✗ "+invalid) {
		t.Errorf("stderr should report %s:\n%s", invalid, stderr)
	}
}

func TestCommentedConfig(t *testing.T) {
	env := setupEnv(t)
	path := env.WriteConfig("r1.json", []byte("{\n  // lab router\n  \"name\": \"r1\",\n  \"packages\": [\"htop\",],\n}\n"))

	_, _, err := executeCommand("show", "-C", path)
	wantExitCode(t, err, errors.ExitConfigParse)
	_, _, err = executeCommand("validate", path)
	wantExitCode(t, err, errors.ExitConfigParse)

	env.Settings.AllowComments = true

	stdout, _, err := executeCommand("show", "-C", path)
	if err != nil {
		t.Fatalf("show with allow_comments failed: %v", err)
	}
	if !strings.Contains(stdout, "Name: r1") {
		t.Errorf("show output = %q", stdout)
	}
	if _, _, err := executeCommand("validate", path); err != nil {
		t.Errorf("validate with allow_comments failed: %v", err)
	}
}

func TestPrepareCommand(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	if _, _, err := executeCommand("prepare", "-C", path); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	tempDir := env.WorkPath("r1-temp")
	want := []system.MockCommand{
		{Name: "cp", Args: []string{"-r", filepath.Join(env.Paths.TemplatesDir, "base", "files") + "/", tempDir + "/"}},
		{Name: "cp", Args: []string{"-r", "files/", tempDir + "/"}},
	}
	if diff := cmp.Diff(want, env.Executor.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	dockerfile, err := os.ReadFile(filepath.Join(tempDir, "Dockerfile"))
	if err != nil {
		t.Fatalf("Dockerfile not written: %v", err)
	}
	if !strings.Contains(string(dockerfile), "FROM openwrtorg/imagebuilder:x86-64-23.05.3") {
		t.Errorf("Dockerfile = %q", dockerfile)
	}
}

func TestPrepareCommand_MissingSource(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()
	if err := os.RemoveAll(env.WorkPath("files")); err != nil {
		t.Fatal(err)
	}

	_, _, err := executeCommand("prepare", "-C", path)
	wantExitCode(t, err, errors.ExitPrecondition)
	if len(env.Executor.Commands) != 0 {
		t.Errorf("no copy should run when a source is missing, got %v", env.Executor.CommandLines())
	}
}

func TestBuildCommand(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	stdout, _, err := executeCommand("build", "-C", path)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(stdout, "✓ Built r1") {
		t.Errorf("build output = %q", stdout)
	}

	if diff := cmp.Diff([]string{"Build", "Status", "Run"}, env.Runtime.Methods()); diff != "" {
		t.Errorf("runtime calls mismatch (-want +got):\n%s", diff)
	}

	if _, ok := env.Runtime.Images["openwrt:r1"]; !ok {
		t.Errorf("image openwrt:r1 not built, images: %v", env.Runtime.Images)
	}

	runs := env.Runtime.GetCallsFor("Run")
	got := runs[0].Args[0].(runtime.RunOptions)
	want := runtime.RunOptions{
		Name:    "r1",
		Image:   "openwrt:r1",
		EnvFile: "r1.env",
		Mounts: []runtime.Mount{
			{Source: env.WorkPath("r1-bin"), Target: "/home/build/openwrt/bin"},
			{Source: env.WorkPath("cache"), Target: "/home/build/openwrt/dl"},
		},
		Args: []string{
			"PACKAGES=luci curl hostapd -wpad-mini wpad-basic htop",
			"FILES=files/",
			"DISABLED_SERVICES=odhcpd firewall",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("run options mismatch (-want +got):\n%s", diff)
	}

	// A second build finds the container from the first one.
	_, _, err = executeCommand("build", "-C", path)
	wantExitCode(t, err, errors.ExitPrecondition)
}

func TestBuildCommand_Preconditions(t *testing.T) {
	env := setupEnv(t)
	noName := env.WriteConfig("noname.json", []byte(`{"env-file": "r1.env"}`))
	noEnv := env.WriteConfig("noenv.json", []byte(`{"name": "r1"}`))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no name", []string{"build", "-C", noName}, errors.ExitImageNameRequired},
		{"no env file", []string{"build", "-C", noEnv}, errors.ExitPrecondition},
		{"env file from flag", []string{"build", "-C", noEnv, "--env-file", "r1.env"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(tt.args...)
			if tt.code == 0 {
				if err != nil {
					t.Fatalf("build failed: %v", err)
				}
				return
			}
			wantExitCode(t, err, tt.code)
		})
	}
}

func TestExtractCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantRemote string
		wantLocal  string
	}{
		{
			name:       "rootfs with name",
			args:       []string{"extract", "r1", "rootfs"},
			wantRemote: "/home/build/openwrt/bin/targets/x86/64/openwrt-23.05.3-x86-64-generic-rootfs.tar.gz",
			wantLocal:  "r1.tar.gz",
		},
		{
			name:       "ext4 from config name",
			args:       []string{"extract", "ext4"},
			wantRemote: "/home/build/openwrt/bin/targets/x86/64/openwrt-23.05.3-x86-64-combined-ext4.img.gz",
			wantLocal:  "r1-ext4.img.gz",
		},
		{
			name:       "vmdk with output",
			args:       []string{"extract", "r1", "ext4-vmdk", "-o", "disk.vmdk"},
			wantRemote: "/home/build/openwrt/bin/targets/x86/64/openwrt-23.05.3-x86-64-combined-ext4.vmdk",
			wantLocal:  "disk.vmdk",
		},
		{
			name:       "all",
			args:       []string{"extract", "all"},
			wantRemote: "/home/build/openwrt/bin/targets/x86/64",
			wantLocal:  "r1-output/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupEnv(t)
			path := env.RouterConfig()
			env.Runtime.AddContainer("r1", runtime.StatusStopped)

			if _, _, err := executeCommand(append(tt.args, "-C", path)...); err != nil {
				t.Fatalf("extract failed: %v", err)
			}

			copies := env.Runtime.GetCallsFor("Copy")
			if len(copies) != 1 {
				t.Fatalf("Copy calls = %d, want 1", len(copies))
			}
			want := []interface{}{"r1", tt.wantRemote, env.WorkPath(tt.wantLocal)}
			if tt.wantLocal == "r1-output/" {
				want[2] = env.WorkPath("r1-output") + "/"
			}
			if diff := cmp.Diff(want, copies[0].Args); diff != "" {
				t.Errorf("Copy args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractCommand_Errors(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()
	env.Runtime.AddContainer("r1", runtime.StatusStopped)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown artifact", []string{"extract", "r1", "iso"}, errors.ExitGeneralError},
		{"output with qcow2", []string{"extract", "r1", "squashfs-qcow2", "-o", "x.qcow2"}, errors.ExitGeneralError},
		{"no container", []string{"extract", "r2", "rootfs"}, errors.ExitContainerFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Runtime.Errors = map[string]error{}
			if tt.code == errors.ExitContainerFailed {
				env.Runtime.SetError("Copy", errors.ContainerFailed("cp", os.ErrNotExist))
			}
			_, _, err := executeCommand(append(tt.args, "-C", path)...)
			wantExitCode(t, err, tt.code)
		})
	}
}

func TestCleanCommand(t *testing.T) {
	env := setupEnv(t)
	path := env.RouterConfig()

	stdout, _, err := executeCommand("clean", "-C", path)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(stdout, "nothing to clean") {
		t.Errorf("clean output = %q", stdout)
	}
	if diff := cmp.Diff([]string{"Status"}, env.Runtime.Methods()); diff != "" {
		t.Errorf("runtime calls mismatch (-want +got):\n%s", diff)
	}

	env.Runtime.Reset()
	env.Runtime.AddContainer("r1", runtime.StatusRunning)

	if _, _, err := executeCommand("clean", "-C", path); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Status", "Stop", "Remove"}, env.Runtime.Methods()); diff != "" {
		t.Errorf("runtime calls mismatch (-want +got):\n%s", diff)
	}
	if _, ok := env.Runtime.Containers["r1"]; ok {
		t.Error("container r1 should be removed")
	}
}

func TestCleanCommand_NoName(t *testing.T) {
	env := setupEnv(t)

	_, _, err := executeCommand("clean", "-C", filepath.Join(env.TmpDir, "missing.json"))
	wantExitCode(t, err, errors.ExitImageNameRequired)
}

func TestTemplatesListCommand(t *testing.T) {
	env := setupEnv(t)
	env.AddTemplate("ss", nil, map[string]string{"files/etc/banner": "ss\n"})

	stdout, _, err := executeCommand("templates", "list")
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, separator and 3 rows, got:\n%s", stdout)
	}
	for i, want := range [][]string{
		{"base", "3", "1", "1"},
		{"ss", "-", "-", "-"},
		{"wireless", "3", "0", "0"},
	} {
		if diff := cmp.Diff(want, strings.Fields(lines[i+2])); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	stdout, _, err = executeCommand("templates", "list", "--match", "w*")
	if err != nil {
		t.Fatalf("templates list --match failed: %v", err)
	}
	if strings.Contains(stdout, "base") || !strings.Contains(stdout, "wireless") {
		t.Errorf("--match w* output:\n%s", stdout)
	}

	_, _, err = executeCommand("templates", "list", "--match", "[")
	wantExitCode(t, err, errors.ExitGeneralError)
}

func TestTemplatesShowCommand(t *testing.T) {
	env := setupEnv(t)

	stdout, _, err := executeCommand("templates", "show", "base", "-o", "json")
	if err != nil {
		t.Fatalf("templates show failed: %v", err)
	}

	var got config.Resolved
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if diff := cmp.Diff([]string{"luci", "ppp", "curl"}, got.Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{filepath.Join(env.Paths.TemplatesDir, "base", "files") + "/"}, got.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	stdout, _, err = executeCommand("templates", "show", "base")
	if err != nil {
		t.Fatalf("templates show failed: %v", err)
	}
	if !strings.Contains(stdout, "Template: base") || !strings.Contains(stdout, "Packages: luci ppp curl") {
		t.Errorf("text output:\n%s", stdout)
	}

	_, _, err = executeCommand("templates", "show", "missing")
	wantExitCode(t, err, errors.ExitTemplateNotFound)
}

func TestTemplatesStageCommand(t *testing.T) {
	env := setupEnv(t)
	dst := filepath.Join(env.TmpDir, "stage")
	if err := os.MkdirAll(dst, 0755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := executeCommand("templates", "stage", "base", dst); err != nil {
		t.Fatalf("templates stage failed: %v", err)
	}

	base := filepath.Join(env.Paths.TemplatesDir, "base")
	want := []string{
		system.CommandLine("cp", "-r", filepath.Join(base, "files"), dst+"/"),
		system.CommandLine("cp", filepath.Join(base, "custom-base.sh"), dst+"/"),
		system.CommandLine("chmod", "+x",
			filepath.Join(dst, "files", "etc", "uci-defaults", "99_custom-base.sh"),
			filepath.Join(dst, "custom-base.sh"),
		),
	}
	if diff := cmp.Diff(want, env.Executor.CommandLines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestInitCommand(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(env.TmpDir, "r2.json")

	stdout, _, err := executeCommand("init", path, "--include", "wireless", "-i", "base", "--name", "r2", "--arch", "ramips", "--env-file", "r2.env")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "✓ Wrote "+path) {
		t.Errorf("init output = %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := config.ValidateDocument(data, false); err != nil {
		t.Errorf("written config fails validation: %v", err)
	}

	var got starterDocument
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := starterDocument{
		Name:             "r2",
		Version:          config.DefaultVersion,
		Arch:             "ramips",
		Board:            config.DefaultBoard,
		EnvFile:          "r2.env",
		Includes:         []string{"wireless", "base"},
		Packages:         []string{},
		Files:            []string{},
		DisabledServices: []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("written config mismatch (-want +got):\n%s", diff)
	}

	// The written config resolves with the includes in order.
	cfg, err := env.App.LoadConfig(path, config.Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if diff := cmp.Diff([]string{"hostapd", "-wpad-mini", "wpad-basic", "luci", "ppp", "curl"}, cfg.Packages()); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestInitCommand_Errors(t *testing.T) {
	env := setupEnv(t)
	existing := env.WriteConfig("existing.json", []byte("{}\n"))

	original := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = original })

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"existing file", []string{"init", existing, "-i", "base"}, errors.ExitPrecondition},
		{"missing template", []string{"init", filepath.Join(env.TmpDir, "a.json"), "-i", "nope"}, errors.ExitTemplateNotFound},
		{"invalid name", []string{"init", filepath.Join(env.TmpDir, "b.json"), "-i", "base", "--name", "bad name"}, errors.ExitGeneralError},
		{"no terminal", []string{"init", filepath.Join(env.TmpDir, "c.json")}, errors.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(tt.args...)
			wantExitCode(t, err, tt.code)
			if tt.name == "no terminal" && !strings.Contains(stdout, "1. base") {
				t.Errorf("expected the template listing, got:\n%s", stdout)
			}
		})
	}

	if _, _, err := executeCommand("init", existing, "-i", "base", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestManualMode(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.RouterConfig()

	settings := config.DefaultSettings()
	settings.Runtime = "docker"
	settings.ExtraRunArgs = "--cpus 4"

	var out bytes.Buffer
	manualApp := app.New(
		app.WithPaths(env.Paths),
		app.WithSettings(settings),
		app.WithManual(&out),
	)
	useApp(t, manualApp)

	_, stderr, err := executeCommand("build", "-M", "-C", path)
	if err != nil {
		t.Fatalf("manual build failed: %v", err)
	}
	if !strings.Contains(stderr, `msg="building container image"`) || !strings.Contains(stderr, "manual=true") {
		t.Errorf("manual build logs should carry manual=true:\n%s", stderr)
	}
	if _, _, err := executeCommand("clean", "-C", path); err != nil {
		t.Fatalf("manual clean failed: %v", err)
	}

	tempDir := env.WorkPath("r1-temp")
	want := []string{
		system.CommandLine("cp", "-r", filepath.Join(env.Paths.TemplatesDir, "base", "files")+"/", tempDir+"/"),
		system.CommandLine("cp", "-r", "files/", tempDir+"/"),
		system.CommandLine("docker", "build", "-t", "openwrt:r1", tempDir),
		system.CommandLine("docker", "run", "--name", "openwrt-r1", "--env-file", "r1.env",
			"--mount", "type=bind,source="+env.WorkPath("r1-bin")+",target=/home/build/openwrt/bin",
			"--mount", "type=bind,source="+env.WorkPath("cache")+",target=/home/build/openwrt/dl",
			"--cpus", "4",
			"openwrt:r1",
			"PACKAGES=luci curl hostapd -wpad-mini wpad-basic htop",
			"FILES=files/",
			"DISABLED_SERVICES=odhcpd firewall",
		),
		system.CommandLine("docker", "container", "stop", "openwrt-r1"),
		system.CommandLine("docker", "container", "rm", "openwrt-r1"),
	}
	if diff := cmp.Diff(want, manualApp.Executor.(*system.DryRunExecutor).Lines); diff != "" {
		t.Errorf("printed commands mismatch (-want +got):\n%s", diff)
	}
	if len(env.Runtime.GetCalls()) != 0 {
		t.Error("manual mode should not touch the mock runtime")
	}
}

func TestConfigureApp(t *testing.T) {
	env := testutil.NewTestEnv(t)
	settingsFile := filepath.Join(env.Paths.ConfigDir, config.SettingsFileName)
	env.WriteFile(settingsFile, "runtime = \"podman\"\ntemplates_dir = \""+env.Paths.TemplatesDir+"\"\n")

	stdout, _, err := executeCommand("templates", "list", "--settings", settingsFile)
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}
	if !strings.Contains(stdout, "wireless") {
		t.Errorf("templates_dir from settings not used:\n%s", stdout)
	}
	if got := app.Default.Runtime.Name(); got != "podman" {
		t.Errorf("runtime = %q, want podman", got)
	}

	stdout, _, err = executeCommand("templates", "list", "--settings", settingsFile, "--templates-dir", filepath.Join(env.TmpDir, "none"))
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}
	if !strings.Contains(stdout, "No templates found") {
		t.Errorf("--templates-dir should win over settings:\n%s", stdout)
	}

	env.WriteFile(settingsFile, "runtime = \"lxc\"\n")
	_, _, err = executeCommand("templates", "list", "--settings", settingsFile)
	wantExitCode(t, err, errors.ExitConfigParse)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/app"
	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

var (
	verbose      bool
	jsonOutput   bool
	settingsPath string
	templatesDir string
	manual       bool
	cfgFlags     configFlags
)

var rootCmd = &cobra.Command{
	Use:   "openwrt-builder",
	Short: "Build OpenWrt firmware images from layered JSON configs",
	Long: `openwrt-builder resolves an image config and its template includes,
then drives the OpenWrt image builder inside a container.

A config names the image, the OpenWrt version, arch and board, and lists
packages, files and services to disable. Includes pull in templates whose
lists are merged ahead of the config's own; a package prefixed with "-"
removes that package from the result.

With --manual every docker, cp, qemu-img and gzip command is printed
instead of run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(cmd.ErrOrStderr(), logging.Options{Verbose: verbose, JSON: jsonOutput, Manual: manual})
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return setupApp(cmd)
	},
}

// setupApp installs app.Default for the command being run. Tests replace it
// to inject mocks.
var setupApp = configureApp

func configureApp(cmd *cobra.Command) error {
	paths := config.DefaultPaths()
	if settingsPath != "" {
		paths.SettingsFile = settingsPath
	}

	settings, err := config.LoadSettings(paths.SettingsFile)
	if err != nil {
		return err
	}

	if settings.TemplatesDir != "" {
		paths.TemplatesDir = settings.TemplatesDir
	}
	if templatesDir != "" {
		paths.TemplatesDir = templatesDir
	}

	opts := []app.Option{app.WithPaths(paths), app.WithSettings(settings)}
	if manual {
		opts = append(opts, app.WithManual(cmd.OutOrStdout()))
	}
	app.SetDefault(app.New(opts...))

	logging.Debug("app configured",
		"settings", paths.SettingsFile,
		"templates", paths.TemplatesDir,
		"manual", manual,
	)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	flags.StringVar(&settingsPath, "settings", "", "Settings file (default "+config.DefaultConfigDir+"/"+config.SettingsFileName+")")
	flags.StringVar(&templatesDir, "templates-dir", "", "Templates directory (overrides settings)")
	flags.BoolVarP(&manual, "manual", "M", false, "Print commands instead of running them")

	flags.StringVarP(&cfgFlags.path, "config", "C", defaultConfigPath, "Config file path")
	flags.StringVarP(&cfgFlags.version, "openwrt-version", "V", "", "OpenWrt version (overrides config)")
	flags.StringVar(&cfgFlags.arch, "arch", "", "Target arch (overrides config)")
	flags.StringVar(&cfgFlags.board, "board", "", "Target board (overrides config)")
	flags.StringVar(&cfgFlags.envFile, "env-file", "", "Env file passed to the build container (overrides config)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

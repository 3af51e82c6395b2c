package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/tui"
)

var (
	initIncludes []string
	initName     string
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config",
	Long: `Writes a starter config document (default: config.json).

Without --include, an interactive picker lists the templates: space
toggles a template, the selection order becomes the include order, and
enter asks for the image name. Version, arch, board and env file come
from the global flags when set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringSliceVarP(&initIncludes, "include", "i", nil, "Template to include (repeatable, skips the picker)")
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Image name")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

// starterDocument is the shape written by init. Lists are always present
// so the file is easy to extend by hand.
type starterDocument struct {
	Name             string   `json:"name,omitempty"`
	Version          string   `json:"version"`
	Arch             string   `json:"arch"`
	Board            string   `json:"board"`
	EnvFile          string   `json:"env-file,omitempty"`
	Includes         []string `json:"includes"`
	Packages         []string `json:"packages"`
	Files            []string `json:"files"`
	DisabledServices []string `json:"disabled_services"`
}

// isInteractive reports whether the picker can take over the terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}

	a := currentApp()
	if a.FS.Exists(path) && !initForce {
		return errors.Precondition(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	}

	includes, name := initIncludes, initName
	if len(includes) == 0 {
		var err error
		includes, name, err = pickTemplates(cmd)
		if err != nil {
			return err
		}
		if includes == nil && name == "" {
			logWarning("Cancelled, nothing written")
			return nil
		}
	} else {
		store := a.Templates()
		for _, inc := range includes {
			if _, err := store.Get(inc); err != nil {
				return err
			}
		}
	}

	if name != "" {
		if err := config.ValidateName(name); err != nil {
			return errors.ValidationError(err.Error())
		}
	}

	doc := starterDocument{
		Name:             name,
		Version:          valueOr(cfgFlags.version, config.DefaultVersion),
		Arch:             valueOr(cfgFlags.arch, config.DefaultArch),
		Board:            valueOr(cfgFlags.board, config.DefaultBoard),
		EnvFile:          cfgFlags.envFile,
		Includes:         includes,
		Packages:         []string{},
		Files:            []string{},
		DisabledServices: []string{},
	}
	if doc.Includes == nil {
		doc.Includes = []string{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := config.ValidateDocument(data, false); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "generated config is invalid", err)
	}
	if err := a.FS.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to write %s", path), err)
	}

	logSuccess("Wrote %s", path)
	if len(includes) > 0 {
		logInfo("Includes: %v", includes)
	}
	return nil
}

// pickTemplates runs the template picker. It returns nil includes and an
// empty name when the user quits. Without a terminal it prints the template
// list and fails, since --include is then required.
func pickTemplates(cmd *cobra.Command) ([]string, string, error) {
	templates, err := currentApp().Templates().List("")
	if err != nil {
		return nil, "", err
	}

	if !isInteractive() {
		fmt.Fprint(cmd.OutOrStdout(), tui.SimplePicker(templates))
		return nil, "", errors.ValidationError("not a terminal: pass templates with --include")
	}

	result, err := tui.RunPicker(templates)
	if err != nil {
		return nil, "", fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action, "templates", result.Templates)

	if result.Action != tui.ActionCreate {
		return nil, "", nil
	}
	includes := result.Templates
	if includes == nil {
		includes = []string{}
	}
	return includes, result.Name, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the resolved config",
	Long: `Resolves the config document, its includes and the command-line
overrides, and prints the result. The name argument replaces the
document's name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	return printResolved(cmd.OutOrStdout(), cfg.Resolved(), showOutput)
}

// printResolved writes r in the requested format.
func printResolved(w io.Writer, r config.Resolved, format string) error {
	switch format {
	case "text", "":
		return printResolvedText(w, r)
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.ValidationError(fmt.Sprintf("unknown output format %q (valid: text, json, yaml)", format))
	}
}

func printResolvedText(w io.Writer, r config.Resolved) error {
	name := r.Name
	if name == "" {
		name = "(unset)"
	}
	envFile := r.EnvFile
	if envFile == "" {
		envFile = "(unset)"
	}

	fmt.Fprintf(w, "Name: %s\n", name)
	fmt.Fprintf(w, "Version: %s\n", r.Version)
	fmt.Fprintf(w, "Target: %s/%s\n", r.Arch, r.Board)
	fmt.Fprintf(w, "Env file: %s\n", envFile)
	fmt.Fprintf(w, "Packages: %s\n", joinOrDash(r.Packages, " "))
	fmt.Fprintf(w, "Disabled services: %s\n", joinOrDash(r.DisabledServices, " "))

	if len(r.Files) == 0 {
		_, err := fmt.Fprintln(w, "Files: -")
		return err
	}
	fmt.Fprintln(w, "Files:")
	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

func joinOrDash(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}

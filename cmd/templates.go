package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
)

var (
	templatesMatch  string
	templatesOutput string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and stage templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the lists a template contributes",
	Long: `Shows the packages, files and disabled services a template adds when
it is included. File entries are shown rewritten relative to the template
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesShow,
}

var templatesStageCmd = &cobra.Command{
	Use:   "stage <name> <dst>",
	Short: "Copy a template's files and custom scripts into a directory",
	Long: `Copies the template's files/ tree and its custom-*.sh scripts into dst,
which must exist, and marks every shell script among them executable.`,
	Args: cobra.ExactArgs(2),
	RunE: runTemplatesStage,
}

func init() {
	templatesListCmd.Flags().StringVar(&templatesMatch, "match", "", "Only list templates whose name matches this glob")
	templatesShowCmd.Flags().StringVarP(&templatesOutput, "output", "o", "text", "Output format: text, json or yaml")

	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesStageCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	store := currentApp().Templates()

	templates, err := store.List(templatesMatch)
	if err != nil {
		return err
	}

	if len(templates) == 0 {
		logInfo("No templates found in %s", store.Root())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tPACKAGES\tFILES\tDISABLED")
	fmt.Fprintln(w, "--------\t--------\t-----\t--------")

	for _, t := range templates {
		if !t.HasConfig() {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", t.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", t.Name,
			len(t.Config.Packages()), len(t.Config.Files()), len(t.Config.DisabledServices()))
	}

	return w.Flush()
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	tmpl, err := currentApp().Templates().Get(args[0])
	if err != nil {
		return err
	}

	if !tmpl.HasConfig() {
		logInfo("Template %s has no %s; it contributes nothing when included", tmpl.Name, config.TemplateConfigName)
		return nil
	}

	r := tmpl.Config.Resolved()
	if templatesOutput == "text" || templatesOutput == "" {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Template: %s\n", tmpl.Name)
		fmt.Fprintf(w, "Directory: %s\n", tmpl.Dir)
		fmt.Fprintf(w, "Packages: %s\n", joinOrDash(r.Packages, " "))
		fmt.Fprintf(w, "Disabled services: %s\n", joinOrDash(r.DisabledServices, " "))
		fmt.Fprintln(w, "Files:")
		for _, f := range r.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
		return nil
	}
	return printResolved(cmd.OutOrStdout(), r, templatesOutput)
}

func runTemplatesStage(cmd *cobra.Command, args []string) error {
	name, dst := args[0], args[1]

	if err := currentApp().Templates().Stage(cmd.Context(), name, dst); err != nil {
		return err
	}

	logSuccess("Staged template %s into %s", name, dst)
	return nil
}

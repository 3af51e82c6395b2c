package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check config documents against the schema",
	Long: `Checks each document against the config schema. Documents must be plain
JSON unless allow_comments is set in settings.toml. Includes are not resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a := currentApp()

	failed := 0
	for _, path := range args {
		data, err := a.FS.ReadFile(path)
		if err == nil {
			err = config.ValidateDocument(data, a.Settings.AllowComments)
		}
		if err != nil {
			failed++
			logging.UserError("%s: %v", path, err)
			continue
		}
		logSuccess("%s", path)
	}

	if failed > 0 {
		return errors.New(errors.ExitConfigParse, fmt.Sprintf("%d of %d documents failed validation", failed, len(args)))
	}
	return nil
}

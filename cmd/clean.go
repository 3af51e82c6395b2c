package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/runtime"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [name]",
	Short: "Stop and remove the builder container",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(args)
	if err != nil {
		return err
	}

	name := b.Config().Name()
	if name == "" {
		return errors.ImageNameRequired()
	}

	a := currentApp()
	if !a.Manual {
		info, err := a.Runtime.Status(cmd.Context(), name)
		if err != nil {
			return errors.ContainerFailed("inspect", err)
		}
		if info.Status == runtime.StatusNotFound {
			logInfo("No container for %s, nothing to clean", name)
			return nil
		}
		logging.Debug("removing container", "name", name, "status", info.Status)
	}

	if err := b.RemoveInstance(cmd.Context()); err != nil {
		return err
	}

	logSuccess("Removed container for %s", name)
	return nil
}

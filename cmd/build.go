package cmd

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [name]",
	Short: "Build a firmware image",
	Long: `Prepares the build context, builds the per-image builder container
image and runs it. The firmware ends up in <name>-bin; use extract to copy
individual artifacts out of the container.

The config must set an env file, which is passed to the container.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(args)
	if err != nil {
		return err
	}

	if err := b.Build(cmd.Context()); err != nil {
		return err
	}

	name := b.Config().Name()
	logSuccess("Built %s", name)
	logInfo("Extract artifacts with: openwrt-builder extract %s <artifact>", name)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [name]",
	Short: "Stage the build context in <name>-temp",
	Long: `Creates <name>-temp in the working directory, copies every configured
file into it and writes a Dockerfile for the image builder unless one is
already there.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(args)
	if err != nil {
		return err
	}

	if err := b.Prepare(cmd.Context()); err != nil {
		return err
	}

	dir, _ := b.TempDir()
	logSuccess("Prepared build context %s", dir)
	return nil
}

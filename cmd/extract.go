package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/openwrt-builder/internal/imagebuilder"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract [name] <artifact>",
	Short: "Copy a build artifact out of the builder container",
	Long: fmt.Sprintf(`Copies an artifact from the builder container into the working
directory. Artifacts: %s.

squashfs-qcow2 copies the squashfs image, grows it and converts it to
qcow2 with qemu-img; its output names are fixed.`, artifactNames()),
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Destination path (default depends on the artifact)")
	rootCmd.AddCommand(extractCmd)
}

func artifactNames() string {
	names := make([]string, len(imagebuilder.Artifacts))
	for i, a := range imagebuilder.Artifacts {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func runExtract(cmd *cobra.Command, args []string) error {
	nameArgs, artifactArg := args[:len(args)-1], args[len(args)-1]

	artifact, err := imagebuilder.ParseArtifact(artifactArg)
	if err != nil {
		return err
	}

	b, err := newBuilder(nameArgs)
	if err != nil {
		return err
	}

	if err := b.Extract(cmd.Context(), artifact, extractOutput); err != nil {
		return err
	}

	logSuccess("Extracted %s for %s", artifact, b.Config().Name())
	return nil
}

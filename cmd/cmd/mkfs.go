package cmd

import (
	"fmt"

	"github.com/ostafen/mflaw/internal/volume"
	"github.com/spf13/cobra"
)

func DefineMkfsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mkfs <image>",
		Short:        "Write an MFLAW superblock to a partition",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMkfs,
	}

	cmd.Flags().IntP("partition", "p", volume.WholeDisk, "index of the partition to format, -1 for the whole disk")
	return cmd
}

func RunMkfs(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("partition")

	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	sb, err := v.Format(index)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sb)
	return nil
}

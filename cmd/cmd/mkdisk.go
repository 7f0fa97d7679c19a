package cmd

import (
	"fmt"
	"math"

	"github.com/ostafen/mflaw/internal/volume"
	"github.com/ostafen/mflaw/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineMkdiskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mkdisk <image>",
		Short:        "Create a zero-filled disk image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMkdisk,
	}

	cmd.Flags().StringP("size", "s", "1MB", "size of the image (e.g. 1440KB, 64MB)")
	return cmd
}

func RunMkdisk(cmd *cobra.Command, args []string) error {
	size, err := getSize(cmd, "size")
	if err != nil {
		return err
	}

	log := newLogger(cmd)
	if size > math.MaxUint32 {
		log.Warnf("devices address at most %s, the rest of the image will not be reachable",
			format.FormatBytes(math.MaxUint32))
	}

	if err := volume.Create(args[0], size); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", args[0], format.FormatBytes(size))
	return nil
}

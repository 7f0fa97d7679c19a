package cmd

import (
	"fmt"

	"github.com/ostafen/mflaw/internal/sgpt"
	"github.com/ostafen/mflaw/internal/volume"
	"github.com/spf13/cobra"
)

func DefineAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <image>",
		Short: "Add a partition to the partition table",
		Long: `The 'add' command stores a new partition record in the first free slot of the table.
Offsets are absolute byte addresses and accept size units (e.g. 64KB). When --start is
omitted the partition begins at the first aligned byte after the existing ones; when
--end is omitted it extends to the end of the disk.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunAdd,
	}

	cmd.Flags().String("start", "", "first byte of the partition")
	cmd.Flags().String("end", "", "byte following the last byte of the partition")
	cmd.Flags().StringP("name", "n", "", "partition name")
	cmd.Flags().Bool("boot", false, "mark the partition as bootable")
	return cmd
}

func RunAdd(cmd *cobra.Command, args []string) error {
	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	spec := volume.PartitionSpec{
		Type: sgpt.PartitionTypeUnknown,
		End:  v.Disk().Size(),
	}
	spec.Name, _ = cmd.Flags().GetString("name")

	if boot, _ := cmd.Flags().GetBool("boot"); boot {
		spec.Type = sgpt.PartitionTypeBoot
	}

	if cmd.Flags().Changed("start") {
		spec.Start, err = getBytes(cmd, "start")
	} else {
		spec.Start, err = v.NextFree()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("end") {
		if spec.End, err = getBytes(cmd, "end"); err != nil {
			return err
		}
	}

	idx, r, err := v.AddPartition(spec)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "partition %d: %s\n", idx, r)
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ostafen/mflaw/internal/device"
	"github.com/ostafen/mflaw/pkg/pbar"
	"github.com/spf13/cobra"
)

func DefineDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dump <image> <output>",
		Short:        "Copy the content of a partition to a file",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunDump,
	}

	cmd.Flags().IntP("partition", "p", 0, "index of the partition to dump, -1 for the whole disk")
	return cmd
}

func RunDump(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("partition")

	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	section, err := v.Section(index)
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	bar := pbar.New(os.Stderr, "Dump", section.Size())

	// one buffer per device transfer
	buf := make([]byte, device.HDDMaxTransferSize)

	var off int64
	for off < section.Size() {
		n, err := section.ReadAt(buf[:min(int64(len(buf)), section.Size()-off)], off)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			off += int64(n)
			bar.Add(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read failed at offset %d: %w", off, err)
		}
	}
	bar.Finish()

	return out.Sync()
}

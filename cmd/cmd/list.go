package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/ostafen/mflaw/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list <image>",
		Short:        "List the partitions of a disk image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunList,
	}
}

func RunList(cmd *cobra.Command, args []string) error {
	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	layout, err := v.Inspect()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s, %s\n", v.Name(), format.FormatBytes(int64(layout.Size)), layout.Content)
	if layout.Table == nil {
		return nil
	}
	fmt.Fprintf(out, "table %s, first usable byte %d\n\n", layout.Table.Header.UUID, layout.Table.FirstUsable())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tTYPE\tSTART\tEND\tSIZE\tCONTENT\tNAME")
	for _, p := range layout.Partitions {
		content := string(p.Content)
		if p.Err != nil {
			content = "error: " + p.Err.Error()
		}

		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			p.Index,
			p.Record.Type,
			p.Record.StartOffset,
			p.Record.EndOffset,
			format.FormatBytes(int64(p.Record.AsPartition().Len())),
			content,
			p.Record.NameString())
	}
	return w.Flush()
}

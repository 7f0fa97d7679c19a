package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func DefineInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "init <image>",
		Short:        "Write an empty partition table",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInit,
	}

	cmd.Flags().BoolP("force", "f", false, "overwrite an existing partition table or filesystem")
	return cmd
}

func RunInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	t, err := v.InitTable(force)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "table %s: %d slots, first usable byte %d\n",
		t.Header.UUID, t.Len(), t.FirstUsable())
	return nil
}

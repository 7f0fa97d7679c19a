package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "mflaw"

func Execute() error {
	rootCmd := NewRootCommand()
	return rootCmd.Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - disk image partitioning and formatting tool",
	}

	rootCmd.PersistentFlags().String("backend", "hdd", "emulated device the image is attached to (hdd or floppy)")
	rootCmd.PersistentFlags().Bool("mmap", false, "map the image in memory instead of using file I/O")
	rootCmd.PersistentFlags().Bool("legacy-stride", false, "read partition records using the legacy record stride; tables opened this way are read-only")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		DefineMkdiskCommand(),
		DefineInitCommand(),
		DefineAddCommand(),
		DefineListCommand(),
		DefineMkfsCommand(),
		DefineInspectCommand(),
		DefineDumpCommand(),
		DefineMountCommand(),
	)
	return rootCmd
}

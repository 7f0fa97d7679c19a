package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/ostafen/mflaw/internal/logger"
	"github.com/ostafen/mflaw/internal/volume"
	"github.com/ostafen/mflaw/pkg/util/format"
	"github.com/spf13/cobra"
)

func newLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(os.Stderr, logger.ParseLevel(level))
}

func parseVolumeOptions(cmd *cobra.Command) volume.Options {
	backend, _ := cmd.Flags().GetString("backend")
	mmap, _ := cmd.Flags().GetBool("mmap")
	legacy, _ := cmd.Flags().GetBool("legacy-stride")

	return volume.Options{
		Backend:      backend,
		Mmap:         mmap,
		LegacyStride: legacy,
		Logger:       newLogger(cmd),
	}
}

func openVolume(cmd *cobra.Command, path string) (*volume.Volume, error) {
	return volume.Open(path, parseVolumeOptions(cmd))
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value for --%s: %w", name, err)
	}
	return v, nil
}

func getSize(cmd *cobra.Command, name string) (int64, error) {
	v, err := getBytes(cmd, name)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("invalid value for --%s: too large", name)
	}
	return int64(v), nil
}

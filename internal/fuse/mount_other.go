//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/mflaw/internal/logger"
)

func Mount(mountpoint string, entries []Entry, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}

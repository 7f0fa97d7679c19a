package fuse

import (
	"fmt"

	osutils "github.com/ostafen/mflaw/pkg/util/os"
)

// PrepareMountpoint ensures the given path is an empty directory suitable
// for mounting, creating it if needed. It reports whether it was created.
func PrepareMountpoint(mountpoint string) (bool, error) {
	created, err := osutils.EnsureDir(mountpoint, true)
	if err != nil {
		return false, fmt.Errorf("invalid mountpoint: %w", err)
	}
	return created, nil
}

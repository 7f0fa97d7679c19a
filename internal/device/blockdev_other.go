//go:build !linux

package device

import "os"

func storageSize(_ *os.File, fi os.FileInfo) (int64, error) {
	return fi.Size(), nil
}

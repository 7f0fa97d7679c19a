//go:build !unix

package device

import (
	"fmt"
	"io"
)

type MmapStorage struct {
	io.ReaderAt
	io.WriterAt
}

func OpenMmap(path string) (*MmapStorage, error) {
	return nil, fmt.Errorf("memory mapped images are only supported on unix systems")
}

func (m *MmapStorage) Size() int64 { return 0 }

func (m *MmapStorage) Close() error { return nil }

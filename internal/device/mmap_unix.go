//go:build unix

package device

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// MmapStorage maps a whole image file into memory with a shared,
// read-write mapping, so writes are carried through to the file.
type MmapStorage struct {
	data []byte
	f    *os.File
}

func OpenMmap(path string) (*MmapStorage, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}

	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("file %q is empty, cannot mmap", path)
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, fmt.Errorf("file %q is too large to be mapped (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", path, size, err)
	}
	return &MmapStorage{data: data, f: f}, nil
}

func (m *MmapStorage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MmapStorage) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("mmap: write of %d bytes at offset %d out of range", len(p), off)
	}
	return copy(m.data[off:], p), nil
}

func (m *MmapStorage) Size() int64 { return int64(len(m.data)) }

// Close flushes and unmaps the region, then closes the underlying file.
func (m *MmapStorage) Close() error {
	var err error
	if m.data != nil {
		if err = unix.Msync(m.data, unix.MS_SYNC); err != nil {
			err = fmt.Errorf("failed to msync: %w", err)
		}
		if unmapErr := unix.Munmap(m.data); unmapErr != nil && err == nil {
			err = fmt.Errorf("failed to munmap: %w", unmapErr)
		}
		m.data = nil
	}

	if m.f != nil {
		closeErr := m.f.Close()
		m.f = nil
		if closeErr != nil {
			if err != nil {
				return fmt.Errorf("%w (and failed to close file: %v)", err, closeErr)
			}
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
	}
	return err
}

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package device

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Storage is the medium backing an ImageController.
type Storage interface {
	io.ReaderAt
	io.WriterAt
	Size() int64
	Close() error
}

// MemoryStorage keeps the whole medium in memory.
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage(size int) *MemoryStorage {
	return &MemoryStorage{data: make([]byte, size)}
}

func (m *MemoryStorage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("memory storage: negative offset")
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemoryStorage) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("memory storage: write of %d bytes at offset %d out of range", len(p), off)
	}
	return copy(m.data[off:], p), nil
}

func (m *MemoryStorage) Size() int64 { return int64(len(m.data)) }

func (m *MemoryStorage) Close() error { return nil }

// Bytes exposes the raw medium.
func (m *MemoryStorage) Bytes() []byte { return m.data }

// FileStorage is a disk image file accessed through positioned reads and writes.
type FileStorage struct {
	f    *os.File
	size int64
}

// OpenFile opens an existing image, or a block device on Linux, for reading
// and writing.
func OpenFile(path string) (*FileStorage, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}

	size, err := storageSize(f, fi)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get size of %q: %w", path, err)
	}

	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("image %q is empty", path)
	}
	return &FileStorage{f: f, size: size}, nil
}

// CreateImage creates a zero-filled image file of the given size.
// An existing file at path is truncated.
func CreateImage(path string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("image size must be greater than 0, got %d", size)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %q: %w", path, err)
	}

	if err := f.Truncate(size); err != nil {
		f.Close()
		return fmt.Errorf("failed to resize image %q to %d bytes: %w", path, size, err)
	}
	return f.Close()
}

func (s *FileStorage) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }

func (s *FileStorage) WriteAt(p []byte, off int64) (int, error) { return s.f.WriteAt(p, off) }

func (s *FileStorage) Size() int64 { return s.size }

func (s *FileStorage) Close() error {
	if err := s.f.Sync(); err != nil {
		s.f.Close()
		return fmt.Errorf("failed to sync image: %w", err)
	}
	return s.f.Close()
}

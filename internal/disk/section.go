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
package disk

import "io"

// Section gives partition relative, positioned access to a disk region.
// It implements io.ReaderAt and io.WriterAt.
type Section struct {
	d Disk
	p Partition
}

func NewSection(d Disk, p Partitionable) *Section {
	return &Section{d: d, p: p.AsPartition()}
}

func (s *Section) Size() int64 {
	return int64(s.p.Len())
}

// ReadAt reads from the section. A read crossing the end of the section
// returns the available prefix together with io.EOF.
func (s *Section) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidAddress
	}

	size := s.Size()
	if off >= size {
		return 0, io.EOF
	}

	want := b
	if int64(len(b)) > size-off {
		want = b[:size-off]
	}

	n, err := s.d.Read(s.p.Start()+uint64(off), want)
	if err != nil {
		return n, err
	}
	if len(want) < len(b) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes into the section. Writes are never truncated: a write
// crossing the end of the section fails without touching the disk.
func (s *Section) WriteAt(b []byte, off int64) (int, error) {
	size := s.Size()
	if off < 0 || off > size {
		return 0, ErrInvalidAddress
	}
	if int64(len(b)) > size-off {
		return 0, ErrInvalidSize
	}
	return s.d.Write(s.p.Start()+uint64(off), b)
}

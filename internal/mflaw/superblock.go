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
package mflaw

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ostafen/mflaw/internal/disk"
)

const (
	Magic     = 0xF1
	BlockSize = 1024

	// SuperblockSize is the encoded size of a Superblock: the magic byte,
	// 7 bytes of padding and nine 64 bit counters.
	SuperblockSize = 8 + 9*8

	// minDataBlocks is the smallest block count leaving room for one inode
	// bitmap block, one zone bitmap block and one data block.
	minDataBlocks = 3
)

var ErrPartitionTooSmall = errors.New("mflaw: partition too small for a filesystem")

// Superblock describes the capacity layout of a filesystem. It is stored at
// the first byte of the partition it describes.
type Superblock struct {
	Magic             uint8
	Inodes            uint64
	Zones             uint64
	InodeBitmapBlocks uint64
	ZoneBitmapBlocks  uint64
	DataBlocks        uint64
	InodesSize        uint64 // bytes of inode bitmap in use
	ZonesSize         uint64 // bytes of zone bitmap in use
	DataSize          uint64
	TotalSize         uint64
}

// NewSuperblock computes the layout of a filesystem spanning p.
func NewSuperblock(p disk.Partitionable) (Superblock, error) {
	if p.End() < p.Start() {
		return Superblock{}, ErrPartitionTooSmall
	}
	return Layout(p.End() - p.Start())
}

// Layout computes the filesystem layout for a partition of totalSize bytes.
// The result depends only on totalSize and BlockSize.
func Layout(totalSize uint64) (Superblock, error) {
	if totalSize < SuperblockSize {
		return Superblock{}, ErrPartitionTooSmall
	}

	dataSize := totalSize - SuperblockSize
	blocks := dataSize / BlockSize
	if blocks < minDataBlocks {
		return Superblock{}, ErrPartitionTooSmall
	}

	inodes := blocks - 1
	inodeBitmapBlocks := max(1, inodes/8/BlockSize)

	zones := blocks - inodeBitmapBlocks + 1
	zoneBitmapBlocks := max(1, zones/8/BlockSize)

	bitmapBlocks := inodeBitmapBlocks + zoneBitmapBlocks

	return Superblock{
		Magic:             Magic,
		Inodes:            inodes,
		Zones:             zones,
		InodeBitmapBlocks: inodeBitmapBlocks,
		ZoneBitmapBlocks:  zoneBitmapBlocks,
		DataBlocks:        blocks - bitmapBlocks,
		InodesSize:        inodes / 8,
		ZonesSize:         zones / 8,
		DataSize:          dataSize - bitmapBlocks*BlockSize,
		TotalSize:         totalSize,
	}, nil
}

// MarshalBinary encodes the superblock little-endian, reproducing the in
// memory layout of the structure on 64 bit hosts.
func (s *Superblock) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8, SuperblockSize)
	buf[0] = s.Magic

	for _, v := range s.counters() {
		buf = binary.LittleEndian.AppendUint64(buf, *v)
	}
	return buf, nil
}

func (s *Superblock) UnmarshalBinary(data []byte) error {
	if len(data) != SuperblockSize {
		return fmt.Errorf("input data slice size mismatch: expected %d bytes, got %d bytes", SuperblockSize, len(data))
	}

	s.Magic = data[0]
	for i, v := range s.counters() {
		off := 8 + i*8
		*v = binary.LittleEndian.Uint64(data[off : off+8])
	}
	return nil
}

// counters lists the 64 bit fields in on-disk order.
func (s *Superblock) counters() []*uint64 {
	return []*uint64{
		&s.Inodes,
		&s.Zones,
		&s.InodeBitmapBlocks,
		&s.ZoneBitmapBlocks,
		&s.DataBlocks,
		&s.InodesSize,
		&s.ZonesSize,
		&s.DataSize,
		&s.TotalSize,
	}
}

// Write stores the superblock at the first byte of p.
func (s *Superblock) Write(d disk.Disk, p disk.Partitionable) error {
	buf, _ := s.MarshalBinary()
	_, err := d.Write(p.Start(), buf)
	return err
}

// ParseSuperblock reads the superblock at the start of p.
//
// A non-nil error reports an I/O failure. Otherwise found tells whether a
// filesystem is present: a magic mismatch, or a partition too short to
// hold a superblock, is not an error.
func ParseSuperblock(d disk.Disk, p disk.Partitionable) (sb Superblock, found bool, err error) {
	if p.End() < p.Start() || p.End()-p.Start() < SuperblockSize {
		return Superblock{}, false, nil
	}

	var buf [SuperblockSize]byte
	if _, err := d.Read(p.Start(), buf[:]); err != nil {
		return Superblock{}, false, err
	}

	if buf[0] != Magic {
		return Superblock{}, false, nil
	}

	if err := sb.UnmarshalBinary(buf[:]); err != nil {
		return Superblock{}, false, err
	}
	return sb, true, nil
}

func (s Superblock) String() string {
	return fmt.Sprintf("inodes=%d zones=%d inode_bitmap_blocks=%d zone_bitmap_blocks=%d data_blocks=%d data_size=%d total_size=%d",
		s.Inodes, s.Zones, s.InodeBitmapBlocks, s.ZoneBitmapBlocks, s.DataBlocks, s.DataSize, s.TotalSize)
}

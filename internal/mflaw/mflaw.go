// Package mflaw implements MFLAW, a minimal filesystem whose on-disk state
// is limited to a superblock sizing the inode bitmap, the zone bitmap and
// the data area of a partition.
package mflaw

import (
	"errors"

	"github.com/ostafen/mflaw/internal/disk"
)

var ErrBlockOutOfRange = errors.New("mflaw: block index out of range")

// FS is a filesystem instance. Like the partition table, it keeps no
// reference to the disk it lives on.
type FS struct {
	superblock Superblock
}

// New lays out a fresh filesystem for p. Nothing is written until Write.
func New(p disk.Partitionable) (*FS, error) {
	sb, err := NewSuperblock(p)
	if err != nil {
		return nil, err
	}
	return &FS{superblock: sb}, nil
}

// Parse recognizes a filesystem at the start of p, with the same three
// outcomes as ParseSuperblock.
func Parse(d disk.Disk, p disk.Partitionable) (*FS, bool, error) {
	sb, found, err := ParseSuperblock(d, p)
	if err != nil || !found {
		return nil, found, err
	}
	return &FS{superblock: sb}, true, nil
}

func (fs *FS) Write(d disk.Disk, p disk.Partitionable) error {
	return fs.superblock.Write(d, p)
}

func (fs *FS) Superblock() Superblock {
	return fs.superblock
}

// Block identifies a block of the bitmap or data regions.
//
// TODO: derive inode and zone bitmap block addresses from the superblock
// once bitmap allocation is implemented.
type Block struct {
	index   uint64
	address uint64
}

func newBlock(index, address uint64) Block {
	return Block{index: index, address: address}
}

func (b Block) Index() uint64 { return b.index }

func (b Block) Address() uint64 { return b.address }

// DataBlock locates the i-th block of the data area. The address is relative
// to the start of the partition: data blocks follow the superblock and both
// bitmaps.
func (fs *FS) DataBlock(i uint64) (Block, error) {
	sb := fs.superblock
	if i >= sb.DataBlocks {
		return Block{}, ErrBlockOutOfRange
	}

	first := SuperblockSize + (sb.InodeBitmapBlocks+sb.ZoneBitmapBlocks)*BlockSize
	return newBlock(i, first+i*BlockSize), nil
}

package mflaw_test

import (
	"encoding/binary"
	"math/rand"
	"testing"
	"time"

	"github.com/ostafen/mflaw/internal/device"
	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/stretchr/testify/require"
)

func newDisk(size int) (disk.Disk, *device.MemoryStorage) {
	storage := device.NewMemoryStorage(size)
	ctrl := device.NewImageController(storage, device.HDDMaxTransferSize)
	return disk.NewHddDisk(device.NewHDD(ctrl)), storage
}

func TestLayoutOneMiB(t *testing.T) {
	sb, err := mflaw.NewSuperblock(disk.NewPartition(4096, 4096+1<<20))
	require.NoError(t, err)

	require.Equal(t, mflaw.Superblock{
		Magic:             mflaw.Magic,
		Inodes:            1022,
		Zones:             1023,
		InodeBitmapBlocks: 1,
		ZoneBitmapBlocks:  1,
		DataBlocks:        1021,
		InodesSize:        127,
		ZonesSize:         127,
		DataSize:          1_046_448,
		TotalSize:         1_048_576,
	}, sb)
}

func TestLayoutMultipleBitmapBlocks(t *testing.T) {
	sb, err := mflaw.Layout(64 << 20)
	require.NoError(t, err)

	require.Equal(t, uint64(65534), sb.Inodes)
	require.Equal(t, uint64(7), sb.InodeBitmapBlocks)
	require.Equal(t, uint64(65529), sb.Zones)
	require.Equal(t, uint64(7), sb.ZoneBitmapBlocks)
	require.Equal(t, uint64(65521), sb.DataBlocks)
	require.Equal(t, uint64(67_094_448), sb.DataSize)
}

func TestLayoutProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for range 1000 {
		total := uint64(mflaw.SuperblockSize+3*mflaw.BlockSize) + uint64(rng.Int63n(1<<34))

		sb, err := mflaw.Layout(total)
		require.NoError(t, err)

		again, err := mflaw.Layout(total)
		require.NoError(t, err)
		require.Equal(t, sb, again)

		blocks := (total - mflaw.SuperblockSize) / mflaw.BlockSize
		require.GreaterOrEqual(t, sb.InodeBitmapBlocks, uint64(1))
		require.GreaterOrEqual(t, sb.ZoneBitmapBlocks, uint64(1))
		require.LessOrEqual(t, sb.DataBlocks+sb.InodeBitmapBlocks+sb.ZoneBitmapBlocks, blocks)
		require.Equal(t, sb.TotalSize, total)
		require.LessOrEqual(t, sb.DataSize, total-mflaw.SuperblockSize)
	}
}

func TestLayoutTooSmall(t *testing.T) {
	for _, size := range []uint64{0, 1, mflaw.SuperblockSize - 1, mflaw.SuperblockSize, mflaw.SuperblockSize + 3*mflaw.BlockSize - 1} {
		_, err := mflaw.Layout(size)
		require.ErrorIs(t, err, mflaw.ErrPartitionTooSmall, "size %d", size)
	}

	sb, err := mflaw.Layout(mflaw.SuperblockSize + 3*mflaw.BlockSize)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sb.DataBlocks)

	_, err = mflaw.New(disk.NewPartition(10, 5))
	require.ErrorIs(t, err, mflaw.ErrPartitionTooSmall)
}

func TestSuperblockRoundTrip(t *testing.T) {
	d, storage := newDisk(2 << 20)
	p := disk.NewPartition(8192, 8192+1<<20)

	sb, err := mflaw.NewSuperblock(p)
	require.NoError(t, err)
	require.NoError(t, sb.Write(d, p))

	raw := storage.Bytes()[8192:]
	require.Equal(t, byte(mflaw.Magic), raw[0])
	require.Equal(t, make([]byte, 7), raw[1:8])
	require.Equal(t, sb.Inodes, binary.LittleEndian.Uint64(raw[8:16]))
	require.Equal(t, sb.TotalSize, binary.LittleEndian.Uint64(raw[72:80]))

	got, found, err := mflaw.ParseSuperblock(d, p)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, sb, got)
}

func TestParseAbsent(t *testing.T) {
	d, storage := newDisk(64 * 1024)
	p := disk.Whole(d)

	_, found, err := mflaw.ParseSuperblock(d, p)
	require.NoError(t, err)
	require.False(t, found)

	storage.Bytes()[0] = 0xF0
	_, found, err = mflaw.ParseSuperblock(d, p)
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = mflaw.ParseSuperblock(d, disk.NewPartition(0, mflaw.SuperblockSize-1))
	require.NoError(t, err)
	require.False(t, found)
}

func TestParseIOError(t *testing.T) {
	ctrl := device.NewImageController(device.NewMemoryStorage(64*1024), device.FloppyMaxTransferSize)
	d := disk.NewFloppyDisk(device.NewFloppy(ctrl))
	p := d.AsPartition()
	ctrl.Eject()

	_, found, err := mflaw.ParseSuperblock(d, p)
	require.Equal(t, disk.ErrDiskIsMissing, err)
	require.False(t, found)

	fs, found, err := mflaw.Parse(d, p)
	require.Equal(t, disk.ErrDiskIsMissing, err)
	require.False(t, found)
	require.Nil(t, fs)
}

func TestFS(t *testing.T) {
	d, _ := newDisk(1 << 20)
	whole := disk.Whole(d)

	fs, err := mflaw.New(whole)
	require.NoError(t, err)
	require.NoError(t, fs.Write(d, whole))

	parsed, found, err := mflaw.Parse(d, whole)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, fs.Superblock(), parsed.Superblock())
	require.Equal(t, uint64(1<<20), parsed.Superblock().TotalSize)
}

func TestUnmarshalSizeMismatch(t *testing.T) {
	var sb mflaw.Superblock
	require.Error(t, sb.UnmarshalBinary(make([]byte, mflaw.SuperblockSize-1)))
}

func TestDataBlock(t *testing.T) {
	fs, err := mflaw.New(disk.NewPartition(0, 1<<20))
	require.NoError(t, err)

	b, err := fs.DataBlock(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), b.Index())
	require.Equal(t, uint64(mflaw.SuperblockSize+2*mflaw.BlockSize), b.Address())

	last := fs.Superblock().DataBlocks - 1
	b, err = fs.DataBlock(last)
	require.NoError(t, err)
	require.Equal(t, last, b.Index())
	require.Equal(t, uint64(2128+1020*1024), b.Address())
	require.LessOrEqual(t, b.Address()+mflaw.BlockSize, uint64(1<<20))

	_, err = fs.DataBlock(last + 1)
	require.ErrorIs(t, err, mflaw.ErrBlockOutOfRange)
}

package volume

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ostafen/mflaw/internal/device"
	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/logger"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/ostafen/mflaw/internal/sgpt"
	"github.com/stretchr/testify/require"
)

const diskSize = 1 << 20

func newVolume(t *testing.T, backend string) *Volume {
	t.Helper()

	v, err := New("mem", device.NewMemoryStorage(diskSize), Options{Backend: backend})
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })
	return v
}

func TestUnknownBackend(t *testing.T) {
	_, err := New("mem", device.NewMemoryStorage(diskSize), Options{Backend: "tape"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestDefaultBackend(t *testing.T) {
	v := newVolume(t, "")
	require.Equal(t, BackendHDD, v.Backend())
	require.Equal(t, uint8(device.HDDDeviceID), v.DeviceID())
	require.Equal(t, uint64(diskSize), v.Disk().Size())
}

func TestFloppyDeviceID(t *testing.T) {
	v := newVolume(t, BackendFloppy)
	require.Equal(t, uint8(device.FloppyDeviceID), v.DeviceID())
}

func TestInitTable(t *testing.T) {
	v := newVolume(t, BackendFloppy)

	_, err := v.Table()
	require.ErrorIs(t, err, ErrNoTable)

	first, err := v.InitTable(false)
	require.NoError(t, err)

	_, err = v.InitTable(false)
	require.ErrorIs(t, err, ErrTableExists)

	second, err := v.InitTable(true)
	require.NoError(t, err)
	require.NotEqual(t, first.Header.UUID, second.Header.UUID)

	tbl, err := v.Table()
	require.NoError(t, err)
	require.Equal(t, second.Header, tbl.Header)

	for r, err := range tbl.Records(v.Disk()) {
		require.NoError(t, err)
		require.True(t, r.IsEmpty())
	}
}

func TestInitTableOverFilesystem(t *testing.T) {
	v := newVolume(t, BackendHDD)

	_, err := v.Format(WholeDisk)
	require.NoError(t, err)

	_, err = v.InitTable(false)
	require.ErrorIs(t, err, ErrFilesystemFound)

	_, err = v.InitTable(true)
	require.NoError(t, err)
}

func TestFormatWholeDiskWithTable(t *testing.T) {
	v := newVolume(t, BackendHDD)

	_, err := v.InitTable(false)
	require.NoError(t, err)

	_, err = v.Format(WholeDisk)
	require.ErrorIs(t, err, ErrTableExists)
}

func TestAddAndFormatPartition(t *testing.T) {
	var logs bytes.Buffer

	v, err := New("mem", device.NewMemoryStorage(diskSize), Options{Logger: logger.New(&logs, logger.DebugLevel)})
	require.NoError(t, err)
	defer v.Close()

	tbl, err := v.InitTable(false)
	require.NoError(t, err)

	start := tbl.FirstUsable()
	idx, rec, err := v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: start, End: diskSize, Name: "root"})
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, "root", rec.NameString())

	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: start, End: start + 4096})
	require.ErrorIs(t, err, sgpt.ErrOverlap)

	sb, err := v.Format(idx)
	require.NoError(t, err)

	want, err := mflaw.Layout(diskSize - start)
	require.NoError(t, err)
	require.Equal(t, want, sb)

	layout, err := v.Inspect()
	require.NoError(t, err)
	require.NotNil(t, layout.Table)
	require.Nil(t, layout.Filesystem)
	require.Len(t, layout.Partitions, 1)

	info := layout.Partitions[0]
	require.Equal(t, 0, info.Index)
	require.NoError(t, info.Err)
	require.NotNil(t, info.Filesystem)
	require.Equal(t, want, *info.Filesystem)

	require.Contains(t, logs.String(), "image=mem")
}

func TestPartitionLookup(t *testing.T) {
	v := newVolume(t, BackendHDD)

	_, err := v.Partition(0)
	require.ErrorIs(t, err, ErrNoTable)

	whole, err := v.Partition(WholeDisk)
	require.NoError(t, err)
	require.Equal(t, disk.NewPartition(0, diskSize), whole.AsPartition())

	_, err = v.InitTable(false)
	require.NoError(t, err)

	_, err = v.Partition(1)
	require.ErrorIs(t, err, ErrEmptyPartition)

	_, err = v.Partition(sgpt.MaxPartitions)
	require.ErrorIs(t, err, sgpt.ErrIndexOutOfRange)
}

func TestInspectUnreadablePartition(t *testing.T) {
	v := newVolume(t, BackendHDD)

	tbl, err := v.InitTable(false)
	require.NoError(t, err)

	// bypass AddPartition bounds checks to store a record past the end of the disk
	bad := sgpt.NewRecord(sgpt.PartitionTypeBoot, 2*diskSize, 2*diskSize+4096, "ghost")
	require.NoError(t, tbl.WriteRecord(v.Disk(), 5, bad))

	layout, err := v.Inspect()
	require.NoError(t, err)
	require.Len(t, layout.Partitions, 1)
	require.Equal(t, 5, layout.Partitions[0].Index)
	require.ErrorIs(t, layout.Partitions[0].Err, disk.ErrInvalidAddress)
	require.Nil(t, layout.Partitions[0].Filesystem)
}

func TestInspectWholeDisk(t *testing.T) {
	v := newVolume(t, BackendFloppy)

	layout, err := v.Inspect()
	require.NoError(t, err)
	require.Nil(t, layout.Table)
	require.Nil(t, layout.Filesystem)

	sb, err := v.Format(WholeDisk)
	require.NoError(t, err)

	layout, err = v.Inspect()
	require.NoError(t, err)
	require.NotNil(t, layout.Filesystem)
	require.Equal(t, sb, *layout.Filesystem)
	require.Equal(t, uint64(diskSize), layout.Filesystem.TotalSize)
}

func TestSection(t *testing.T) {
	v := newVolume(t, BackendHDD)

	tbl, err := v.InitTable(false)
	require.NoError(t, err)

	start := tbl.FirstUsable()
	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: start, End: start + 4096, Name: "data"})
	require.NoError(t, err)

	s, err := v.Section(0)
	require.NoError(t, err)
	require.Equal(t, int64(4096), s.Size())

	_, err = s.WriteAt([]byte("hello"), 10)
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = v.Disk().Read(start+10, buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	require.Error(t, Create(path, 0))
	require.NoError(t, Create(path, diskSize))

	v, err := Open(path, Options{Backend: BackendHDD})
	require.NoError(t, err)

	tbl, err := v.InitTable(false)
	require.NoError(t, err)
	require.NoError(t, v.Close())

	v, err = Open(path, Options{Backend: BackendFloppy})
	require.NoError(t, err)
	defer v.Close()

	got, err := v.Table()
	require.NoError(t, err)
	require.Equal(t, tbl.Header, got.Header)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.img"), Options{})
	require.Error(t, err)
}

func TestIdentify(t *testing.T) {
	v := newVolume(t, BackendHDD)
	d := v.Disk()

	c, err := Identify(d, disk.Whole(d))
	require.NoError(t, err)
	require.Equal(t, ContentUnknown, c)

	tbl, err := v.InitTable(false)
	require.NoError(t, err)

	c, err = Identify(d, disk.Whole(d))
	require.NoError(t, err)
	require.Equal(t, ContentTable, c)

	start := tbl.FirstUsable()
	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: start, End: start + 65536})
	require.NoError(t, err)
	_, err = v.Format(0)
	require.NoError(t, err)

	c, err = Identify(d, disk.NewPartition(start, start+65536))
	require.NoError(t, err)
	require.Equal(t, ContentMFLAW, c)

	// shorter than the superblock but starting with its magic
	c, err = Identify(d, disk.NewPartition(start, start+1))
	require.NoError(t, err)
	require.Equal(t, ContentMFLAW, c)

	c, err = Identify(d, disk.NewPartition(start, start))
	require.NoError(t, err)
	require.Equal(t, ContentUnknown, c)

	layout, err := v.Inspect()
	require.NoError(t, err)
	require.Equal(t, ContentTable, layout.Content)
	require.Equal(t, ContentMFLAW, layout.Partitions[0].Content)
}

func TestNextFree(t *testing.T) {
	v := newVolume(t, BackendHDD)

	_, err := v.NextFree()
	require.ErrorIs(t, err, ErrNoTable)

	tbl, err := v.InitTable(false)
	require.NoError(t, err)

	next, err := v.NextFree()
	require.NoError(t, err)
	require.Equal(t, tbl.FirstUsable(), next)

	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: next, End: next + 5000})
	require.NoError(t, err)

	next2, err := v.NextFree()
	require.NoError(t, err)
	require.Equal(t, next+2*sgpt.Alignment, next2)
}

func TestLegacyStrideVolumeIsReadOnly(t *testing.T) {
	storage := device.NewMemoryStorage(diskSize)

	v, err := New("mem", storage, Options{LegacyStride: true})
	require.NoError(t, err)
	defer v.Close()

	_, err = v.InitTable(false)
	require.ErrorIs(t, err, sgpt.ErrLegacyReadOnly)
	require.Equal(t, make([]byte, diskSize), storage.Bytes())

	// a header written by an older tool is still readable
	hdr := sgpt.NewHeader()
	require.NoError(t, hdr.Write(v.Disk()))

	_, err = v.Table()
	require.NoError(t, err)

	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: 8192, End: 65536, Name: "alpha"})
	require.ErrorIs(t, err, sgpt.ErrLegacyReadOnly)
	_, _, err = v.AddPartition(PartitionSpec{Type: sgpt.PartitionTypeBoot, Start: 65536, End: 131072, Name: "beta"})
	require.ErrorIs(t, err, sgpt.ErrLegacyReadOnly)
}

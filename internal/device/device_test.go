package device_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/ostafen/mflaw/internal/device"
	"github.com/stretchr/testify/require"
)

func TestParseFloppyError(t *testing.T) {
	require.Equal(t, device.FloppyInvalidAddress, device.ParseFloppyError(-1))
	require.Equal(t, device.FloppyInvalidSize, device.ParseFloppyError(-2))
	require.Equal(t, device.FloppyEmpty, device.ParseFloppyError(-3))

	for _, code := range []int64{-4, -100, 0, 1, 0xFFFFFF, math.MinInt64, math.MaxInt64} {
		require.Equal(t, device.FloppyUnknown, device.ParseFloppyError(code), "code %d", code)
	}
}

func TestParseHDDError(t *testing.T) {
	require.Equal(t, device.HDDInvalidAddress, device.ParseHDDError(-1))
	require.Equal(t, device.HDDInvalidSize, device.ParseHDDError(-2))

	for _, code := range []int64{-3, -4, 0, 42, math.MinInt64} {
		require.Equal(t, device.HDDUnknown, device.ParseHDDError(code), "code %d", code)
	}
}

func TestImageControllerStatus(t *testing.T) {
	const size = 1024

	ctrl := device.NewImageController(device.NewMemoryStorage(size), 256)
	require.Equal(t, uint32(size), ctrl.Size())

	buf := make([]byte, 128)
	require.Equal(t, int64(128), ctrl.Call(device.OpBulkWrite, 0, buf))
	require.Equal(t, int64(128), ctrl.Call(device.OpBulkRead, size-128, buf))
	require.Equal(t, int64(0), ctrl.Call(device.OpBulkRead, size, nil))

	require.Equal(t, int64(-1), ctrl.Call(device.OpBulkRead, size+1, buf))
	require.Equal(t, int64(-2), ctrl.Call(device.OpBulkRead, size-64, buf))
	require.Equal(t, int64(-2), ctrl.Call(device.OpBulkWrite, 0, make([]byte, 257)))
	require.Less(t, ctrl.Call(device.Op(7), 0, buf), int64(0))

	ctrl.Eject()
	require.Equal(t, uint32(0), ctrl.Size())
	require.Equal(t, int64(-3), ctrl.Call(device.OpBulkRead, 0, buf))
}

func TestFloppyDriveErrors(t *testing.T) {
	ctrl := device.NewImageController(device.NewMemoryStorage(4096), device.FloppyMaxTransferSize)
	floppy := device.NewFloppy(ctrl)

	src := []byte("hello floppy")
	n, err := floppy.BulkWrite(100, src)
	require.NoError(t, err)
	require.Equal(t, len(src), n)

	dst := make([]byte, len(src))
	_, err = floppy.BulkRead(100, dst)
	require.NoError(t, err)
	require.Equal(t, src, dst)

	_, err = floppy.BulkRead(5000, dst)
	require.ErrorIs(t, err, device.FloppyInvalidAddress)

	floppy.Eject()
	_, err = floppy.BulkRead(0, dst)
	require.ErrorIs(t, err, device.FloppyEmpty)
}

func TestHDDWithoutMedium(t *testing.T) {
	ctrl := device.NewImageController(nil, device.HDDMaxTransferSize)
	hdd := device.NewHDD(ctrl)

	_, err := hdd.BulkRead(0, make([]byte, 8))
	require.ErrorIs(t, err, device.HDDUnknown)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, device.CreateImage(path, 8192))
	require.Error(t, device.CreateImage(filepath.Join(t.TempDir(), "bad.img"), 0))

	s, err := device.OpenFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(8192), s.Size())

	_, err = s.WriteAt([]byte{1, 2, 3}, 4096)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = device.OpenFile(path)
	require.NoError(t, err)
	defer s.Close()

	buf := make([]byte, 3)
	_, err = s.ReadAt(buf, 4096)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, buf)
}

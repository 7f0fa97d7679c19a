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

// Package volume ties a disk image to the layout stored on it. A Volume owns
// the whole stack from the backing storage to the disk adapter and is the
// single object commands pass around.
package volume

import (
	"errors"
	"fmt"

	"github.com/ostafen/mflaw/internal/device"
	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/logger"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/ostafen/mflaw/internal/sgpt"
)

const (
	BackendHDD    = "hdd"
	BackendFloppy = "floppy"
)

// WholeDisk selects the entire disk instead of a partition slot.
const WholeDisk = -1

var (
	ErrUnknownBackend  = errors.New("volume: unknown backend")
	ErrNoTable         = errors.New("volume: no partition table found")
	ErrTableExists     = errors.New("volume: disk already contains a partition table")
	ErrFilesystemFound = errors.New("volume: disk already contains a filesystem")
	ErrEmptyPartition  = errors.New("volume: partition slot is empty")
)

type Options struct {
	Backend      string // BackendHDD or BackendFloppy; empty means BackendHDD
	Mmap         bool   // map the image in memory instead of using file I/O
	LegacyStride bool   // read tables using the legacy record stride
	Logger       *logger.Logger
}

type Volume struct {
	name    string
	backend string
	id      uint8
	ctrl    *device.ImageController
	disk    disk.Disk
	tblOpts []sgpt.Option
	log     *logger.Logger
}

// Create creates a zero-filled image of the given size at path.
func Create(path string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("invalid image size: %d", size)
	}
	return device.CreateImage(path, size)
}

// Open opens the image at path and attaches it to the emulated device
// selected by opts.Backend.
func Open(path string, opts Options) (*Volume, error) {
	var (
		s   device.Storage
		err error
	)
	if opts.Mmap {
		s, err = device.OpenMmap(path)
	} else {
		s, err = device.OpenFile(path)
	}
	if err != nil {
		return nil, err
	}

	v, err := New(path, s, opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	return v, nil
}

// New builds a Volume on top of an already opened storage.
func New(name string, s device.Storage, opts Options) (*Volume, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	backend := opts.Backend
	if backend == "" {
		backend = BackendHDD
	}

	v := &Volume{
		name:    name,
		backend: backend,
		log:     log.With("image", name),
	}

	switch backend {
	case BackendHDD:
		v.id = device.HDDDeviceID
		v.ctrl = device.NewImageController(s, device.HDDMaxTransferSize)
		v.disk = disk.NewHddDisk(device.NewHDD(v.ctrl))
	case BackendFloppy:
		v.id = device.FloppyDeviceID
		v.ctrl = device.NewImageController(s, device.FloppyMaxTransferSize)
		v.disk = disk.NewFloppyDisk(device.NewFloppy(v.ctrl))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	if opts.LegacyStride {
		v.tblOpts = append(v.tblOpts, sgpt.WithLegacyStride())
	}

	v.log.Debugf("attached %s backend, size=%d", backend, v.disk.Size())
	return v, nil
}

func (v *Volume) Name() string { return v.name }

func (v *Volume) Backend() string { return v.backend }

// DeviceID returns the identifier of the emulated device the image is
// attached to.
func (v *Volume) DeviceID() uint8 { return v.id }

func (v *Volume) Disk() disk.Disk { return v.disk }

// Close detaches the medium and releases the underlying storage.
func (v *Volume) Close() error {
	return v.ctrl.Close()
}

// Table parses the partition table, returning ErrNoTable if there is none.
func (v *Volume) Table() (*sgpt.Table, error) {
	t, found, err := sgpt.Parse(v.disk, v.tblOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to read partition table: %w", err)
	}
	if !found {
		return nil, ErrNoTable
	}
	return t, nil
}

// InitTable writes a fresh partition table with all slots empty. It refuses
// to overwrite an existing table or a whole disk filesystem unless force is set.
func (v *Volume) InitTable(force bool) (*sgpt.Table, error) {
	if !force {
		_, found, err := sgpt.Parse(v.disk, v.tblOpts...)
		if err != nil {
			return nil, err
		}
		if found {
			return nil, ErrTableExists
		}

		_, found, err = mflaw.ParseSuperblock(v.disk, disk.Whole(v.disk))
		if err != nil {
			return nil, err
		}
		if found {
			return nil, ErrFilesystemFound
		}
	}

	t := sgpt.New(v.tblOpts...)
	if t.FirstUsable() > v.disk.Size() {
		return nil, fmt.Errorf("disk too small for a partition table: %d bytes", v.disk.Size())
	}

	if err := t.Write(v.disk); err != nil {
		return nil, err
	}
	if err := t.Clear(v.disk); err != nil {
		return nil, err
	}

	v.log.Infof("created partition table %s", t.Header.UUID)
	return t, nil
}

// PartitionSpec describes a partition to add to the table.
type PartitionSpec struct {
	Type  sgpt.PartitionType
	Start uint64
	End   uint64
	Name  string
}

// AddPartition records a new partition in the first free slot.
func (v *Volume) AddPartition(spec PartitionSpec) (int, sgpt.Record, error) {
	t, err := v.Table()
	if err != nil {
		return -1, sgpt.Record{}, err
	}

	r := sgpt.NewRecord(spec.Type, spec.Start, spec.End, spec.Name)

	idx, err := t.AddPartition(v.disk, r)
	if err != nil {
		return -1, sgpt.Record{}, err
	}

	v.log.Infof("added partition %d: %s", idx, r)
	return idx, r, nil
}

// Partition returns the byte range of the partition stored in slot index,
// or the whole disk for WholeDisk.
func (v *Volume) Partition(index int) (disk.Partitionable, error) {
	if index == WholeDisk {
		return disk.Whole(v.disk), nil
	}

	t, err := v.Table()
	if err != nil {
		return nil, err
	}

	r, err := t.ReadRecord(v.disk, index)
	if err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return nil, fmt.Errorf("%w: %d", ErrEmptyPartition, index)
	}
	return r, nil
}

// Section returns a partition relative view of the partition in slot index.
func (v *Volume) Section(index int) (*disk.Section, error) {
	p, err := v.Partition(index)
	if err != nil {
		return nil, err
	}
	return disk.NewSection(v.disk, p), nil
}

// Format writes an MFLAW superblock at the start of the partition in slot
// index. Formatting the whole disk is refused when it holds a partition
// table.
func (v *Volume) Format(index int) (mflaw.Superblock, error) {
	if index == WholeDisk {
		_, found, err := sgpt.Parse(v.disk, v.tblOpts...)
		if err != nil {
			return mflaw.Superblock{}, err
		}
		if found {
			return mflaw.Superblock{}, ErrTableExists
		}
	}

	p, err := v.Partition(index)
	if err != nil {
		return mflaw.Superblock{}, err
	}

	fs, err := mflaw.New(p)
	if err != nil {
		return mflaw.Superblock{}, err
	}
	if err := fs.Write(v.disk, p); err != nil {
		return mflaw.Superblock{}, err
	}

	v.log.Infof("formatted partition %d [%d, %d)", index, p.Start(), p.End())
	return fs.Superblock(), nil
}

// NextFree returns the first aligned address following the table and every
// existing partition.
func (v *Volume) NextFree() (uint64, error) {
	t, err := v.Table()
	if err != nil {
		return 0, err
	}

	next := t.FirstUsable()
	for r, err := range t.Records(v.disk) {
		if err != nil {
			return 0, err
		}
		if !r.IsEmpty() {
			next = max(next, r.EndOffset)
		}
	}
	return (next + sgpt.Alignment - 1) / sgpt.Alignment * sgpt.Alignment, nil
}

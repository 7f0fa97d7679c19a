package disk

import (
	"errors"

	"github.com/ostafen/mflaw/internal/device"
)

// FloppyDisk adapts a removable-media backend to the Disk interface.
type FloppyDisk struct {
	backend Backend
}

func NewFloppyDisk(b Backend) *FloppyDisk {
	return &FloppyDisk{backend: b}
}

func (d *FloppyDisk) Write(address uint64, src []byte) (int, error) {
	return transfer(address, src, device.FloppyMaxTransferSize, func(addr uint64, chunk []byte) (int, error) {
		n, err := d.backend.BulkWrite(addr, chunk)
		return n, floppyError(err)
	})
}

func (d *FloppyDisk) Read(address uint64, dst []byte) (int, error) {
	return transfer(address, dst, device.FloppyMaxTransferSize, func(addr uint64, chunk []byte) (int, error) {
		n, err := d.backend.BulkRead(addr, chunk)
		return n, floppyError(err)
	})
}

// Size is read from the backend on every call, as the medium can change.
func (d *FloppyDisk) Size() uint64 {
	return uint64(d.backend.Size())
}

func (d *FloppyDisk) Start() uint64 { return 0 }

func (d *FloppyDisk) End() uint64 { return d.Size() }

func (d *FloppyDisk) AsPartition() Partition { return NewPartition(d.Start(), d.End()) }

func floppyError(err error) error {
	if err == nil {
		return nil
	}

	var ferr device.FloppyError
	if !errors.As(err, &ferr) {
		return ErrUnknown
	}

	switch ferr {
	case device.FloppyInvalidAddress:
		return ErrInvalidAddress
	case device.FloppyInvalidSize:
		return ErrInvalidSize
	case device.FloppyEmpty:
		return ErrDiskIsMissing
	default:
		return ErrUnknown
	}
}

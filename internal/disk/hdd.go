package disk

import (
	"errors"

	"github.com/ostafen/mflaw/internal/device"
)

// HddDisk adapts a fixed-media backend to the Disk interface.
type HddDisk struct {
	backend Backend
}

func NewHddDisk(b Backend) *HddDisk {
	return &HddDisk{backend: b}
}

func (d *HddDisk) Write(address uint64, src []byte) (int, error) {
	return transfer(address, src, device.HDDMaxTransferSize, func(addr uint64, chunk []byte) (int, error) {
		n, err := d.backend.BulkWrite(addr, chunk)
		return n, hddError(err)
	})
}

func (d *HddDisk) Read(address uint64, dst []byte) (int, error) {
	return transfer(address, dst, device.HDDMaxTransferSize, func(addr uint64, chunk []byte) (int, error) {
		n, err := d.backend.BulkRead(addr, chunk)
		return n, hddError(err)
	})
}

func (d *HddDisk) Size() uint64 {
	return uint64(d.backend.Size())
}

func (d *HddDisk) Start() uint64 { return 0 }

func (d *HddDisk) End() uint64 { return d.Size() }

func (d *HddDisk) AsPartition() Partition { return NewPartition(d.Start(), d.End()) }

func hddError(err error) error {
	if err == nil {
		return nil
	}

	var herr device.HDDError
	if !errors.As(err, &herr) {
		return ErrUnknown
	}

	switch herr {
	case device.HDDInvalidAddress:
		return ErrInvalidAddress
	case device.HDDInvalidSize:
		return ErrInvalidSize
	default:
		return ErrUnknown
	}
}

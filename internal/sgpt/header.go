package sgpt

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/ostafen/mflaw/internal/disk"
)

const (
	// Signature is "EFI PART" read as a little-endian 64 bit integer.
	Signature uint64 = 0x5452415020494645

	// HeaderSize is the size of the header region: 36 bytes of fields
	// padded to an 8 byte boundary.
	HeaderSize = 40

	MaxPartitions       = 32
	PartitionRecordSize = 128
)

// Header is stored at byte 0 of the disk.
//
//	0x00 signature             8 bytes
//	0x08 header size           4 bytes
//	0x0C uuid                 16 bytes
//	0x1C partition count       4 bytes
//	0x20 partition record size 4 bytes
//
// All integers are little-endian.
type Header struct {
	Signature           uint64
	HeaderSize          uint32
	UUID                uuid.UUID
	PartitionCount      uint32
	PartitionRecordSize uint32
}

// NewHeader returns a header with a fresh random identifier and the
// maximum number of partition slots.
func NewHeader() Header {
	return Header{
		Signature:           Signature,
		HeaderSize:          HeaderSize,
		UUID:                uuid.New(),
		PartitionCount:      MaxPartitions,
		PartitionRecordSize: PartitionRecordSize,
	}
}

// Valid reports whether the header carries the expected signature and size.
func (h *Header) Valid() bool {
	return h.Signature == Signature && h.HeaderSize == HeaderSize
}

// Write stores the header fields one after the other, starting at offset 0.
func (h *Header) Write(d disk.Disk) error {
	w := fieldWriter{d: d}
	w.uint64(h.Signature)
	w.uint32(h.HeaderSize)
	w.bytes(h.UUID[:])
	w.uint32(h.PartitionCount)
	w.uint32(h.PartitionRecordSize)
	return w.err
}

// ReadHeader reads back the header fields. No validation is performed.
func ReadHeader(d disk.Disk) (Header, error) {
	var h Header

	r := fieldReader{d: d}
	h.Signature = r.uint64()
	h.HeaderSize = r.uint32()
	r.bytes(h.UUID[:])
	h.PartitionCount = r.uint32()
	h.PartitionRecordSize = r.uint32()

	if r.err != nil {
		return Header{}, r.err
	}
	return h, nil
}

// fieldWriter issues one disk write per field at increasing offsets.
// After the first failure, subsequent writes are skipped.
type fieldWriter struct {
	d   disk.Disk
	off uint64
	err error
}

func (w *fieldWriter) bytes(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.d.Write(w.off, b)
	w.off += uint64(n)
	w.err = err
}

func (w *fieldWriter) uint32(v uint32) {
	w.bytes(binary.LittleEndian.AppendUint32(nil, v))
}

func (w *fieldWriter) uint64(v uint64) {
	w.bytes(binary.LittleEndian.AppendUint64(nil, v))
}

type fieldReader struct {
	d   disk.Disk
	off uint64
	err error
}

func (r *fieldReader) bytes(b []byte) {
	if r.err != nil {
		return
	}
	n, err := r.d.Read(r.off, b)
	r.off += uint64(n)
	r.err = err
}

func (r *fieldReader) uint32() uint32 {
	var b [4]byte
	r.bytes(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (r *fieldReader) uint64() uint64 {
	var b [8]byte
	r.bytes(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

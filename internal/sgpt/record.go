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
package sgpt

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/ostafen/mflaw/internal/disk"
)

const (
	NameSize = 128

	// RecordSize is the encoded size of a Record.
	RecordSize = 4 + 16 + 8 + 8 + NameSize
)

// PartitionType is the type code of a partition record.
type PartitionType uint32

const (
	PartitionTypeBoot    PartitionType = 1
	PartitionTypeUnknown PartitionType = 0xFFFFFFFF
)

// ParsePartitionType decodes a stored type code. Every code other than a
// known one decodes to PartitionTypeUnknown.
func ParsePartitionType(code uint32) PartitionType {
	switch PartitionType(code) {
	case PartitionTypeBoot:
		return PartitionTypeBoot
	default:
		return PartitionTypeUnknown
	}
}

func (t PartitionType) String() string {
	switch t {
	case PartitionTypeBoot:
		return "Boot"
	default:
		return "Unknown"
	}
}

// Record describes a single partition. A record whose EndOffset is zero
// marks an unused slot.
//
//	0x00 type    4 bytes
//	0x04 uuid   16 bytes
//	0x14 start   8 bytes
//	0x1C end     8 bytes
//	0x24 name  128 bytes
type Record struct {
	Type        PartitionType
	UUID        uuid.UUID
	StartOffset uint64
	EndOffset   uint64
	Name        [NameSize]byte
}

// NewRecord returns a record with a fresh identifier. Names longer than
// NameSize bytes are truncated.
func NewRecord(typ PartitionType, start, end uint64, name string) Record {
	r := Record{
		Type:        typ,
		UUID:        uuid.New(),
		StartOffset: start,
		EndOffset:   end,
	}
	r.SetName(name)
	return r
}

func (r Record) IsEmpty() bool {
	return r.EndOffset == 0
}

func (r *Record) SetName(name string) {
	r.Name = [NameSize]byte{}
	copy(r.Name[:], name)
}

// NameString returns the name up to the first NUL byte.
func (r Record) NameString() string {
	name := r.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

func (r Record) Start() uint64 { return r.StartOffset }

func (r Record) End() uint64 { return r.EndOffset }

func (r Record) AsPartition() disk.Partition {
	return disk.NewPartition(r.StartOffset, r.EndOffset)
}

func (r Record) String() string {
	return fmt.Sprintf("%s [%d, %d) %s %q", r.Type, r.StartOffset, r.EndOffset, r.UUID, r.NameString())
}

// MarshalBinary encodes the record in its on-disk form.
func (r *Record) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, RecordSize)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(r.Type))
	buf = append(buf, r.UUID[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, r.StartOffset)
	buf = binary.LittleEndian.AppendUint64(buf, r.EndOffset)
	buf = append(buf, r.Name[:]...)
	return buf, nil
}

func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("input data slice size mismatch: expected %d bytes, got %d bytes", RecordSize, len(data))
	}

	r.Type = ParsePartitionType(binary.LittleEndian.Uint32(data[0x00:0x04]))
	copy(r.UUID[:], data[0x04:0x14])
	r.StartOffset = binary.LittleEndian.Uint64(data[0x14:0x1C])
	r.EndOffset = binary.LittleEndian.Uint64(data[0x1C:0x24])
	copy(r.Name[:], data[0x24:])
	return nil
}

func readRecord(d disk.Disk, off uint64) (Record, error) {
	var buf [RecordSize]byte
	if _, err := d.Read(off, buf[:]); err != nil {
		return Record{}, err
	}

	var r Record
	err := r.UnmarshalBinary(buf[:])
	return r, err
}

func writeRecord(d disk.Disk, off uint64, r *Record) error {
	buf, _ := r.MarshalBinary()
	_, err := d.Write(off, buf)
	return err
}

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

// Package sgpt implements sGPT, a simplified GUID partition table: a fixed
// size header at the start of the disk followed by a fixed number of
// partition record slots.
package sgpt

import (
	"errors"
	"iter"

	"github.com/ostafen/mflaw/internal/disk"
)

// Alignment of the first byte available to partitions.
const Alignment = 4096

var (
	ErrIndexOutOfRange = errors.New("sgpt: partition index out of range")
	ErrOutOfBounds     = errors.New("sgpt: partition outside of the usable disk area")
	ErrOverlap         = errors.New("sgpt: partition overlaps an existing partition")
	ErrTableFull       = errors.New("sgpt: no free partition slot")
	ErrLegacyReadOnly  = errors.New("sgpt: tables with the legacy stride are read-only")
)

// Option configures how a Table locates its records.
type Option func(*Table)

// WithLegacyStride places consecutive records HeaderSize bytes apart, the
// layout produced by the first sGPT writers. Records written with this
// stride overlap each other, so every write to such a table fails with
// ErrLegacyReadOnly.
func WithLegacyStride() Option {
	return func(t *Table) {
		t.legacyStride = true
	}
}

// Table is an sGPT partition table. It does not retain the disk: every
// operation takes the disk it acts on.
type Table struct {
	Header Header

	legacyStride bool
}

// New returns a table with a freshly generated header.
func New(opts ...Option) *Table {
	t := &Table{Header: NewHeader()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Parse looks for a table at the start of d.
//
// A non-nil error reports an I/O failure while reading the candidate header.
// Otherwise found tells whether a valid table is present: a wrong signature
// or header size is not an error.
func Parse(d disk.Disk, opts ...Option) (t *Table, found bool, err error) {
	h, err := ReadHeader(d)
	if err != nil {
		return nil, false, err
	}

	if !h.Valid() {
		return nil, false, nil
	}

	t = &Table{Header: h}
	for _, opt := range opts {
		opt(t)
	}
	return t, true, nil
}

// Write stores the table header. Records are written individually.
func (t *Table) Write(d disk.Disk) error {
	if t.legacyStride {
		return ErrLegacyReadOnly
	}
	return t.Header.Write(d)
}

// Len returns the number of record slots.
func (t *Table) Len() int {
	return int(t.Header.PartitionCount)
}

func (t *Table) stride() uint64 {
	if t.legacyStride {
		return uint64(t.Header.HeaderSize)
	}
	return RecordSize
}

// RecordOffset returns the disk address of the record slot at index i.
func (t *Table) RecordOffset(i int) uint64 {
	return uint64(t.Header.HeaderSize) + uint64(i)*t.stride()
}

// End returns the address following the last record slot.
func (t *Table) End() uint64 {
	if t.Len() == 0 {
		return uint64(t.Header.HeaderSize)
	}
	return t.RecordOffset(t.Len()-1) + RecordSize
}

// FirstUsable returns the first Alignment aligned address after the table.
func (t *Table) FirstUsable() uint64 {
	return (t.End() + Alignment - 1) / Alignment * Alignment
}

func (t *Table) ReadRecord(d disk.Disk, i int) (Record, error) {
	if i < 0 || i >= t.Len() {
		return Record{}, ErrIndexOutOfRange
	}
	return readRecord(d, t.RecordOffset(i))
}

func (t *Table) WriteRecord(d disk.Disk, i int, r Record) error {
	if t.legacyStride {
		return ErrLegacyReadOnly
	}
	if i < 0 || i >= t.Len() {
		return ErrIndexOutOfRange
	}
	return writeRecord(d, t.RecordOffset(i), &r)
}

// Records lazily reads every slot in index order, issuing one disk read per
// step. Empty slots are yielded too, and a failed read does not stop the
// sequence.
func (t *Table) Records(d disk.Disk) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for i := range t.Len() {
			if !yield(readRecord(d, t.RecordOffset(i))) {
				return
			}
		}
	}
}

// Clear overwrites every record slot with an empty record.
func (t *Table) Clear(d disk.Disk) error {
	var empty Record
	for i := range t.Len() {
		if err := t.WriteRecord(d, i, empty); err != nil {
			return err
		}
	}
	return nil
}

// FreeSlot returns the index of the first empty slot.
func (t *Table) FreeSlot(d disk.Disk) (int, bool, error) {
	i := 0
	for r, err := range t.Records(d) {
		if err != nil {
			return -1, false, err
		}
		if r.IsEmpty() {
			return i, true, nil
		}
		i++
	}
	return -1, false, nil
}

// AddPartition stores r in the first free slot after checking that it lies
// between FirstUsable and the end of the disk and does not overlap any
// existing partition. It returns the slot index.
func (t *Table) AddPartition(d disk.Disk, r Record) (int, error) {
	if t.legacyStride {
		return -1, ErrLegacyReadOnly
	}
	if r.StartOffset >= r.EndOffset || r.StartOffset < t.FirstUsable() || r.EndOffset > d.Size() {
		return -1, ErrOutOfBounds
	}

	free := -1
	i := 0
	for other, err := range t.Records(d) {
		if err != nil {
			return -1, err
		}

		switch {
		case other.IsEmpty():
			if free < 0 {
				free = i
			}
		case r.StartOffset < other.EndOffset && other.StartOffset < r.EndOffset:
			return -1, ErrOverlap
		}
		i++
	}

	if free < 0 {
		return -1, ErrTableFull
	}
	return free, t.WriteRecord(d, free, r)
}

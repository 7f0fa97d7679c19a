package disk

// Partitionable is anything usable as the byte bounds of an I/O region:
// a whole disk, a Partition or a partition table entry.
type Partitionable interface {
	Start() uint64
	End() uint64
	AsPartition() Partition
}

// Partition is a half-open byte range [start, end) of a disk.
// Callers guarantee start <= end; it is not re-checked on access.
type Partition struct {
	start uint64
	end   uint64
}

func NewPartition(start, end uint64) Partition {
	return Partition{start: start, end: end}
}

func (p Partition) Start() uint64 { return p.start }

func (p Partition) End() uint64 { return p.end }

func (p Partition) AsPartition() Partition { return p }

// Len returns the size of the partition in bytes.
func (p Partition) Len() uint64 { return p.end - p.start }

// Whole treats an unpartitioned disk as a single partition spanning the whole device.
func Whole(d Disk) Partitionable {
	return wholeDisk{d}
}

type wholeDisk struct {
	d Disk
}

func (w wholeDisk) Start() uint64 { return 0 }

// End queries the disk size on every call.
func (w wholeDisk) End() uint64 { return w.d.Size() }

func (w wholeDisk) AsPartition() Partition { return NewPartition(w.Start(), w.End()) }

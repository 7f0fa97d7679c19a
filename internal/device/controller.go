package device

// Op identifies a bulk operation understood by a block controller.
type Op uint32

const (
	OpBulkRead  Op = 0x0
	OpBulkWrite Op = 0x1
)

func (op Op) String() string {
	switch op {
	case OpBulkRead:
		return "BulkRead"
	case OpBulkWrite:
		return "BulkWrite"
	default:
		return "Unknown"
	}
}

// Controller is the register-level contract of a bulk-transfer block device.
//
// Call issues a single operation and returns the raw status register:
// a non-negative value is the number of bytes transferred, a negative
// value is a backend specific error code. Size returns the capacity in bytes
// of the currently attached medium.
type Controller interface {
	Call(op Op, address uint64, buf []byte) int64
	Size() uint32
}

// Ejector is implemented by controllers with removable media.
type Ejector interface {
	Eject()
}

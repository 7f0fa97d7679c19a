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
package disk

// Error is the backend independent error vocabulary of a Disk.
// Values are ordered, so they can be compared and sorted.
type Error uint8

const (
	// ErrInvalidAddress reports an offset outside the device bounds.
	ErrInvalidAddress Error = iota
	// ErrInvalidSize reports a transfer larger than the device allows.
	ErrInvalidSize
	// ErrDiskIsMissing reports that removable media is absent.
	ErrDiskIsMissing
	// ErrUnknown is returned for any unrecognized backend status.
	ErrUnknown
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidAddress:
		return "disk: invalid address"
	case ErrInvalidSize:
		return "disk: invalid size"
	case ErrDiskIsMissing:
		return "disk: disk is missing"
	default:
		return "disk: unknown error"
	}
}

// Disk is a byte addressable block device.
//
// Addresses are absolute offsets from the start of the device, never
// partition relative. Write and Read either transfer the whole buffer or
// fail. A failed transfer may leave a prefix of the target region written.
type Disk interface {
	Write(address uint64, src []byte) (int, error)
	Read(address uint64, dst []byte) (int, error)
	Size() uint64
}

// Backend is a bulk-transfer driver moving at most one chunk per call.
type Backend interface {
	BulkRead(address uint64, dst []byte) (int, error)
	BulkWrite(address uint64, src []byte) (int, error)
	Size() uint32
}

// transfer splits buf into chunks of at most maxChunk bytes and issues one
// call per chunk, at increasing addresses. It stops at the first failure and
// returns the bytes moved up to it. A call reporting fewer bytes than its
// chunk without an error fails with ErrUnknown.
func transfer(address uint64, buf []byte, maxChunk int, call func(uint64, []byte) (int, error)) (int, error) {
	done := 0
	for done < len(buf) {
		end := min(done+maxChunk, len(buf))

		n, err := call(address+uint64(done), buf[done:end])
		if err != nil {
			return done, err
		}
		if n != end-done {
			return done + max(0, min(n, end-done)), ErrUnknown
		}
		done = end
	}
	return done, nil
}

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
package device

import (
	"io"
	"math"
)

// Raw status codes returned by ImageController. They mirror the codes of the
// real controllers; statusIOError and statusBadOp are not part of any
// driver's error set and decode as unknown.
const (
	statusInvalidAddress int64 = -1
	statusInvalidSize    int64 = -2
	statusNoMedium       int64 = -3
	statusIOError        int64 = -4
	statusBadOp          int64 = -5
)

// ImageController emulates a bulk-transfer controller on top of a Storage.
// It is not safe for concurrent use.
type ImageController struct {
	storage     Storage
	maxTransfer int
}

func NewImageController(s Storage, maxTransfer int) *ImageController {
	return &ImageController{
		storage:     s,
		maxTransfer: maxTransfer,
	}
}

func (c *ImageController) Call(op Op, address uint64, buf []byte) int64 {
	if c.storage == nil {
		return statusNoMedium
	}

	size := uint64(c.storage.Size())
	if address > size {
		return statusInvalidAddress
	}
	if len(buf) > c.maxTransfer || uint64(len(buf)) > size-address {
		return statusInvalidSize
	}

	var (
		n   int
		err error
	)
	switch op {
	case OpBulkRead:
		n, err = c.storage.ReadAt(buf, int64(address))
		if err == io.EOF && n == len(buf) {
			err = nil
		}
	case OpBulkWrite:
		n, err = c.storage.WriteAt(buf, int64(address))
	default:
		return statusBadOp
	}

	if err != nil {
		return statusIOError
	}
	return int64(n)
}

// Size returns the medium capacity, clamped to the 32-bit size register.
func (c *ImageController) Size() uint32 {
	if c.storage == nil {
		return 0
	}
	return uint32(min(c.storage.Size(), math.MaxUint32))
}

// Insert attaches a medium, replacing (and closing) the current one.
func (c *ImageController) Insert(s Storage) error {
	err := c.Close()
	c.storage = s
	return err
}

// Eject detaches and closes the current medium.
func (c *ImageController) Eject() {
	_ = c.Close()
}

func (c *ImageController) Close() error {
	if c.storage == nil {
		return nil
	}
	err := c.storage.Close()
	c.storage = nil
	return err
}

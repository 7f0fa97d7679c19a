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

import "fmt"

const (
	HDDDeviceID        = 0x6C
	HDDMaxTransferSize = 65536
)

// HDDError is a status code reported by a hard disk controller.
type HDDError int64

const (
	HDDInvalidAddress HDDError = -1
	HDDInvalidSize    HDDError = -2
	HDDUnknown        HDDError = 0xFFFFFF
)

// ParseHDDError decodes a raw status code, mapping unknown codes to HDDUnknown.
func ParseHDDError(code int64) HDDError {
	switch HDDError(code) {
	case HDDInvalidAddress, HDDInvalidSize:
		return HDDError(code)
	default:
		return HDDUnknown
	}
}

func (e HDDError) Error() string {
	switch e {
	case HDDInvalidAddress:
		return "hdd: invalid address"
	case HDDInvalidSize:
		return "hdd: invalid size"
	default:
		return fmt.Sprintf("hdd: unknown error (%#x)", int64(e))
	}
}

// HDD drives a fixed-media controller.
type HDD struct {
	ctrl Controller
}

func NewHDD(ctrl Controller) *HDD {
	return &HDD{ctrl: ctrl}
}

func (h *HDD) BulkRead(address uint64, dst []byte) (int, error) {
	return h.call(OpBulkRead, address, dst)
}

func (h *HDD) BulkWrite(address uint64, src []byte) (int, error) {
	return h.call(OpBulkWrite, address, src)
}

func (h *HDD) call(op Op, address uint64, buf []byte) (int, error) {
	ret := h.ctrl.Call(op, address, buf)
	if ret < 0 {
		return 0, ParseHDDError(ret)
	}
	return int(ret), nil
}

func (h *HDD) Size() uint32 {
	return h.ctrl.Size()
}

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
	FloppyDeviceID        = 0x6D
	FloppyMaxTransferSize = 65536
)

// FloppyError is a status code reported by a floppy drive controller.
type FloppyError int64

const (
	FloppyInvalidAddress FloppyError = -1
	FloppyInvalidSize    FloppyError = -2
	FloppyEmpty          FloppyError = -3
	FloppyUnknown        FloppyError = 0xFFFFFF
)

// ParseFloppyError decodes a raw status code. Codes outside the known set
// decode to FloppyUnknown.
func ParseFloppyError(code int64) FloppyError {
	switch FloppyError(code) {
	case FloppyInvalidAddress, FloppyInvalidSize, FloppyEmpty:
		return FloppyError(code)
	default:
		return FloppyUnknown
	}
}

func (e FloppyError) Error() string {
	switch e {
	case FloppyInvalidAddress:
		return "floppy: invalid address"
	case FloppyInvalidSize:
		return "floppy: invalid size"
	case FloppyEmpty:
		return "floppy: drive is empty"
	default:
		return fmt.Sprintf("floppy: unknown error (%#x)", int64(e))
	}
}

// Floppy drives a removable-media controller.
type Floppy struct {
	ctrl Controller
}

func NewFloppy(ctrl Controller) *Floppy {
	return &Floppy{ctrl: ctrl}
}

// BulkRead reads len(dst) bytes starting at address in a single controller call.
// len(dst) must not exceed FloppyMaxTransferSize.
func (f *Floppy) BulkRead(address uint64, dst []byte) (int, error) {
	return f.call(OpBulkRead, address, dst)
}

// BulkWrite writes src starting at address in a single controller call.
func (f *Floppy) BulkWrite(address uint64, src []byte) (int, error) {
	return f.call(OpBulkWrite, address, src)
}

func (f *Floppy) call(op Op, address uint64, buf []byte) (int, error) {
	ret := f.ctrl.Call(op, address, buf)
	if ret < 0 {
		return 0, ParseFloppyError(ret)
	}
	return int(ret), nil
}

func (f *Floppy) Size() uint32 {
	return f.ctrl.Size()
}

// Eject removes the medium, if the controller supports it.
func (f *Floppy) Eject() {
	if e, ok := f.ctrl.(Ejector); ok {
		e.Eject()
	}
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/types"
)

// Frame is one element of the buffer pool: a PageSize-byte buffer plus the
// book-keeping the pool needs to decide what it holds and whether it can be
// evicted. Only the buffer pool mutates pin count and dirty flag; the record
// layer only ever flips dirty indirectly, by unpinning with isDirty=true.
type Frame struct {
	id       types.PageID
	pinCount int32
	dirty    bool
	data     [common.PageSize]byte
}

// NewFrame returns a frame with no identity, ready to sit in the pool's
// free list.
func NewFrame() *Frame {
	return &Frame{id: types.InvalidPageID}
}

func (f *Frame) PageID() types.PageID {
	return f.id
}

func (f *Frame) SetPageID(id types.PageID) {
	f.id = id
}

func (f *Frame) Data() []byte {
	return f.data[:]
}

func (f *Frame) PinCount() int32 {
	return f.pinCount
}

func (f *Frame) IncPinCount() {
	f.pinCount++
}

func (f *Frame) DecPinCount() {
	common.SH_Assert(f.pinCount > 0, "DecPinCount: pin count already zero")
	f.pinCount--
}

func (f *Frame) IsDirty() bool {
	return f.dirty
}

// SetDirty is sticky when set: once true, it stays true until ClearDirty is
// called by a flush. Passing false never clears an already-dirty frame.
func (f *Frame) SetDirty(dirty bool) {
	if dirty {
		f.dirty = true
	}
}

func (f *Frame) ClearDirty() {
	f.dirty = false
}

// ResetMemory zeroes the buffer. Used when a frame is handed a brand new
// page or returned to the free list.
func (f *Frame) ResetMemory() {
	for i := range f.data {
		f.data[i] = 0
	}
}

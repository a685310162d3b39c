/*
 * Pocket2e - Bus target variants.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package bus

// Capability is a bitset a Target advertises so the page table can reject
// inconsistent mappings at wire-up time (e.g. mapping a read-only ROM
// slice into a page entry that claims write permission).
type Capability uint8

const (
	CapReadable   Capability = 1 << 0
	CapWritable   Capability = 1 << 1
	CapSideEffect Capability = 1 << 2 // has observable side effects on access
)

// Target is a bus-target variant: RamSlice, RomSlice, or CompositeHandler.
// try_read/try_write in spec.md's notation are TryRead/TryWrite here.
type Target interface {
	// Capabilities reports what this target supports.
	Capabilities() Capability
	// TryRead attempts a read at the given page-relative offset. The bool
	// result is always true for RAM/ROM (reads never fail at the target
	// level) and reports handled-or-not for CompositeHandler.
	TryRead(offset uint8, access Access) (value uint8, ok bool)
	// TryWrite attempts a write at the given page-relative offset,
	// reporting whether the write was honoured.
	TryWrite(offset uint8, access Access, value uint8) (ok bool)
}

// RamSlice routes reads and writes to a borrowed RAM Slice. Writes succeed
// unless the caller revokes write permission at the page-table level; at
// the target level a RamSlice always accepts writes — permission is a
// page-entry property, not a target property, so the page table is the
// one consulted for normal-write suppression (see pagetable.go).
type RamSlice struct {
	Slice Slice
}

func (RamSlice) Capabilities() Capability {
	return CapReadable | CapWritable
}

func (r RamSlice) TryRead(offset uint8, _ Access) (uint8, bool) {
	return r.Slice.At(int(offset)), true
}

func (r RamSlice) TryWrite(offset uint8, _ Access, value uint8) bool {
	r.Slice.SetAt(int(offset), value)
	return true
}

// RomSlice routes reads to a borrowed ROM Slice. Writes succeed only when
// the access carries DebugWrite intent (enabling test-ROM patching);
// ordinary writes are silently dropped.
type RomSlice struct {
	Slice Slice
}

func (RomSlice) Capabilities() Capability {
	return CapReadable
}

func (r RomSlice) TryRead(offset uint8, _ Access) (uint8, bool) {
	return r.Slice.At(int(offset)), true
}

func (r RomSlice) TryWrite(offset uint8, access Access, value uint8) bool {
	if access.Intent != DebugWrite {
		return false
	}
	r.Slice.SetAt(int(offset), value)
	return true
}

// ReadFunc and WriteFunc are the callback signatures registered with a
// CompositeHandler for a given page-relative offset.
type ReadFunc func(offset uint8, access Access) uint8
type WriteFunc func(offset uint8, access Access, value uint8)

// CompositeHandler delegates reads/writes to registered per-offset
// callbacks — the shape used by the I/O page, where each of the 256
// offsets may be a distinct soft switch or slot register.
type CompositeHandler struct {
	reads  [256]ReadFunc
	writes [256]WriteFunc
}

// NewCompositeHandler returns an empty composite handler; offsets with no
// registered callback report not-handled on read (PageTable.Read turns
// that into the floating-bus value) and discard writes.
func NewCompositeHandler() *CompositeHandler {
	return &CompositeHandler{}
}

// Register installs read/write callbacks for a page-relative offset. A nil
// function leaves that direction unhandled.
func (h *CompositeHandler) Register(offset uint8, read ReadFunc, write WriteFunc) {
	h.reads[offset] = read
	h.writes[offset] = write
}

func (*CompositeHandler) Capabilities() Capability {
	return CapReadable | CapWritable | CapSideEffect
}

func (h *CompositeHandler) TryRead(offset uint8, access Access) (uint8, bool) {
	fn := h.reads[offset]
	if fn == nil {
		return 0, false
	}
	return fn(offset, access), true
}

func (h *CompositeHandler) TryWrite(offset uint8, access Access, value uint8) bool {
	fn := h.writes[offset]
	if fn == nil {
		return false
	}
	fn(offset, access, value)
	return true
}

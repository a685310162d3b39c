/*
 * Pocket2e - Physical memory and borrowed slices.
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

// Package bus implements the paged 16-bit address space: physical memory
// blocks, the bus-access record that flows through every memory operation,
// the bus-target variants (RAM/ROM/composite), and the layered page table
// that routes addresses to targets.
package bus

import "fmt"

// PhysicalMemory owns a contiguous byte array exclusively. It never hands
// out ownership, only bounded, non-owning Slices.
type PhysicalMemory struct {
	name  string
	bytes []byte
}

// NewPhysicalMemory allocates size bytes of backing storage tagged with name.
func NewPhysicalMemory(name string, size int) *PhysicalMemory {
	if size <= 0 {
		panic(fmt.Sprintf("bus: physical memory %q must have positive size", name))
	}
	return &PhysicalMemory{name: name, bytes: make([]byte, size)}
}

// Name returns the tag the physical memory was created with.
func (m *PhysicalMemory) Name() string {
	return m.name
}

// Size returns the number of bytes backing this physical memory.
func (m *PhysicalMemory) Size() int {
	return len(m.bytes)
}

// Load copies data into the physical memory starting at offset. Used at
// machine-build time to install ROM images; panics on out-of-range offset
// since this is a configuration-time operation, never a runtime bus access.
func (m *PhysicalMemory) Load(offset int, data []byte) {
	if offset < 0 || offset+len(data) > len(m.bytes) {
		panic(fmt.Sprintf("bus: load into %q out of range: offset=%d len=%d size=%d",
			m.name, offset, len(data), len(m.bytes)))
	}
	copy(m.bytes[offset:], data)
}

// Slice is a non-owning, bounded view into a PhysicalMemory. Multiple
// slices may alias the same physical memory (e.g. the per-page slices
// MapRange creates over one block, or the fresh slices a controller
// creates over the same pages each time it republishes its layer).
type Slice struct {
	mem    *PhysicalMemory
	base   int
	length int
}

// NewSlice constructs a bounded view of mem starting at base, length bytes
// long. Panics if the requested range does not fit inside mem — this is a
// wiring-time invariant, not a runtime bus-access failure.
func NewSlice(mem *PhysicalMemory, base, length int) Slice {
	if base < 0 || length < 0 || base+length > mem.Size() {
		panic(fmt.Sprintf("bus: slice of %q out of range: base=%d length=%d size=%d",
			mem.Name(), base, length, mem.Size()))
	}
	return Slice{mem: mem, base: base, length: length}
}

// Len returns the number of bytes the slice spans.
func (s Slice) Len() int {
	return s.length
}

// At returns the byte at offset within the slice. It checks neither
// permissions (bus targets are responsible for those) nor the slice's own
// length; only an offset past the end of the backing memory panics.
func (s Slice) At(offset int) byte {
	return s.mem.bytes[s.base+offset]
}

// SetAt stores a byte at offset within the slice.
func (s Slice) SetAt(offset int, value byte) {
	s.mem.bytes[s.base+offset] = value
}

// Raw exposes the underlying bytes covered by the slice, for bulk
// initialization (e.g. loading a ROM image) and for side-effect-free bulk
// peeks by external devices (e.g. the video renderer reading display RAM).
func (s Slice) Raw() []byte {
	return s.mem.bytes[s.base : s.base+s.length]
}

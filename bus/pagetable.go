/*
 * Pocket2e - Layered page table / main bus.
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

import "fmt"

// Permission is a small bitset of what a page entry allows.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermExecute
)

// Region tags what kind of memory a page entry represents, for debugger
// and trap-context-resolver consumption.
type Region uint8

const (
	RegionUnmapped Region = iota
	RegionRAM
	RegionROM
	RegionIO
)

// FloatingBus is the value returned by reads of unmapped addresses.
const FloatingBus uint8 = 0xFF

// PageEntry describes how one 256-byte page routes to a target.
type PageEntry struct {
	Target   Target
	Perm     Permission
	Region   Region
	DeviceID string
}

func (e PageEntry) isUnmapped() bool {
	return e.Region == RegionUnmapped || e.Target == nil
}

// verify checks the entry's declared permissions are consistent with what
// its target actually supports. Called whenever an entry enters the base
// map or a layer, so a dangling or inconsistent mapping is caught at
// wire-up time rather than at first access.
func (e PageEntry) verify() {
	if e.isUnmapped() {
		return
	}
	caps := e.Target.Capabilities()
	if e.Perm&PermRead != 0 && caps&CapReadable == 0 {
		panic(fmt.Sprintf("bus: page entry for device %q claims read but target is not readable", e.DeviceID))
	}
	if e.Perm&PermWrite != 0 && caps&CapWritable == 0 {
		panic(fmt.Sprintf("bus: page entry for device %q claims write but target is not writable", e.DeviceID))
	}
}

// Layer is a sparse, named override on top of the base page map. Owning
// controllers (Language Card, Aux Memory) keep their own layer ID and
// never touch another controller's layer.
type Layer struct {
	ID      string
	entries map[uint8]PageEntry
}

// NewLayer creates an empty layer with the given owner ID.
func NewLayer(id string) *Layer {
	return &Layer{ID: id, entries: make(map[uint8]PageEntry)}
}

// Map installs an override for the given page within this layer.
func (l *Layer) Map(page uint8, entry PageEntry) {
	entry.verify()
	l.entries[page] = entry
}

// MapRange installs the same permission/region/device over a contiguous
// run of pages, each page backed by its own Slice of mem starting at
// physBase and advancing 256 bytes per page — the common case for both
// base-map wiring and bank-switch layers.
func (l *Layer) MapRange(startPage uint8, count int, deviceID string, region Region,
	perm Permission, mem *PhysicalMemory, physBase int, rom bool,
) {
	for i := 0; i < count; i++ {
		page := startPage + uint8(i)
		slice := NewSlice(mem, physBase+i*256, 256)
		var target Target
		if rom {
			target = RomSlice{Slice: slice}
		} else {
			target = RamSlice{Slice: slice}
		}
		l.Map(page, PageEntry{Target: target, Perm: perm, Region: region, DeviceID: deviceID})
	}
}

func (l *Layer) lookup(page uint8) (PageEntry, bool) {
	e, ok := l.entries[page]
	return e, ok
}

// PageTable is the 256-entry base map plus an ordered stack of layers.
// Lookup scans the topmost layer first, falling through layer-by-layer and
// finally to the base map.
type PageTable struct {
	base   [256]PageEntry
	layers []*Layer // ordered bottom-to-top; last element is topmost
}

// NewPageTable returns a page table with every page unmapped.
func NewPageTable() *PageTable {
	return &PageTable{}
}

// MapPage installs a single base-map entry.
func (t *PageTable) MapPage(page uint8, entry PageEntry) {
	entry.verify()
	t.base[page] = entry
}

// MapRange installs the same permission/region/device over a contiguous
// run of base-map pages, analogous to Layer.MapRange.
func (t *PageTable) MapRange(startPage uint8, count int, deviceID string, region Region,
	perm Permission, mem *PhysicalMemory, physBase int, rom bool,
) {
	for i := 0; i < count; i++ {
		page := startPage + uint8(i)
		slice := NewSlice(mem, physBase+i*256, 256)
		var target Target
		if rom {
			target = RomSlice{Slice: slice}
		} else {
			target = RamSlice{Slice: slice}
		}
		t.MapPage(page, PageEntry{Target: target, Perm: perm, Region: region, DeviceID: deviceID})
	}
}

// PushLayer installs layer on top of the stack. If a layer with the same
// ID is already present it is replaced in place (so a controller
// republishing its own layer never grows the stack unbounded).
func (t *PageTable) PushLayer(layer *Layer) {
	for _, e := range layer.entries {
		e.verify()
	}
	for i, l := range t.layers {
		if l.ID == layer.ID {
			t.layers[i] = layer
			return
		}
	}
	t.layers = append(t.layers, layer)
}

// PopLayer removes the layer with the given ID, if present.
func (t *PageTable) PopLayer(id string) {
	for i, l := range t.layers {
		if l.ID == id {
			t.layers = append(t.layers[:i], t.layers[i+1:]...)
			return
		}
	}
}

// Lookup resolves the page entry in effect for page, scanning layers
// top-down before falling through to the base map.
func (t *PageTable) Lookup(page uint8) PageEntry {
	for i := len(t.layers) - 1; i >= 0; i-- {
		if e, ok := t.layers[i].lookup(page); ok {
			return e
		}
	}
	return t.base[page]
}

// Read performs a single byte read through the page table, honouring the
// floating-bus contract for unmapped pages and targets that decline the
// access.
func (t *PageTable) Read(access Access) uint8 {
	entry := t.Lookup(access.Page())
	if entry.isUnmapped() {
		return FloatingBus
	}
	if entry.Perm&PermRead == 0 && !access.Intent.IsDebug() {
		return FloatingBus
	}
	value, ok := entry.Target.TryRead(access.Offset(), access)
	if !ok {
		return FloatingBus
	}
	return value
}

// Write performs a single byte write through the page table. Writes with
// no W permission are silently dropped unless the access carries debug
// intent.
func (t *PageTable) Write(access Access, value uint8) {
	entry := t.Lookup(access.Page())
	if entry.isUnmapped() {
		return
	}
	if entry.Perm&PermWrite == 0 && access.Intent != DebugWrite {
		return
	}
	entry.Target.TryWrite(access.Offset(), access, value)
}

// ReadWord reads a little-endian 16-bit value as two successive byte
// accesses (the 65C02 never performs a truly atomic 16-bit bus cycle; this
// is a convenience for vector/operand fetches).
func (t *PageTable) ReadWord(addr uint16, intent Intent, cycle uint64, source string) uint16 {
	lo := t.Read(Access{Address: addr, Width: 8, Mode: Decomposed, Intent: intent, Cycle: cycle, SourceID: source})
	hi := t.Read(Access{Address: addr + 1, Width: 8, Mode: Decomposed, Intent: intent, Cycle: cycle, SourceID: source})
	return uint16(lo) | uint16(hi)<<8
}

/*
 * Pocket2e - Language Card controller.
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

// Package langcard implements the Language Card soft-switch controller:
// $C080-$C08F decoding, the two-read write-unlock protocol, and the
// page-table layer republishing that performs the actual bank switch.
package langcard

import "github.com/rcornwell/pocket2e/bus"

const (
	layerID = "langcard"

	// Bank1 and Bank2 identify the two 4K banks mapped at $D000-$DFFF.
	Bank1 = 1
	Bank2 = 2
)

// bankTarget is a per-page bus.Target that reads from either ROM or the
// selected Language Card RAM bank depending on the controller's current
// read-enable latch, and always writes to RAM (real hardware has no way
// to write ROM; the write-enable latch only gates whether the write is
// honoured at all, via the page entry's permission bits).
type bankTarget struct {
	rom         bus.Slice
	ram         bus.Slice
	readFromRAM bool
}

func (bankTarget) Capabilities() bus.Capability {
	return bus.CapReadable | bus.CapWritable
}

func (t bankTarget) TryRead(offset uint8, _ bus.Access) (uint8, bool) {
	if t.readFromRAM {
		return t.ram.At(int(offset)), true
	}
	return t.rom.At(int(offset)), true
}

func (t bankTarget) TryWrite(offset uint8, _ bus.Access, value uint8) bool {
	t.ram.SetAt(int(offset), value)
	return true
}

// Controller holds the Language Card's latched state and the RAM it
// switches in and out of the $D000-$FFFF window.
type Controller struct {
	table *bus.PageTable
	rom   *bus.PhysicalMemory // system ROM, $D000-$FFFF, 12K
	bank1 *bus.PhysicalMemory // 4K, $D000-$DFFF only
	bank2 *bus.PhysicalMemory // 4K, $D000-$DFFF only
	upper *bus.PhysicalMemory // 8K, $E000-$FFFF, shared by both banks

	ramReadEnabled  bool
	ramWriteEnabled bool
	selectedBank    int
	writeArmCount   int
}

// NewController wires a Language Card controller to table, backed by the
// given ROM and RAM images. rom must cover $D000-$FFFF (12K); bank1 and
// bank2 each cover the 4K $D000-$DFFF window; upper covers the 8K
// $E000-$FFFF window shared between banks.
//
// Default state, per hardware reset: ROM visible, writes disabled, bank 2
// selected.
func NewController(table *bus.PageTable, rom, bank1, bank2, upper *bus.PhysicalMemory) *Controller {
	c := &Controller{
		table:        table,
		rom:          rom,
		bank1:        bank1,
		bank2:        bank2,
		upper:        upper,
		selectedBank: Bank2,
	}
	c.publish()
	return c
}

// ResetDefaults restores the power-on state (ROM visible, writes
// disabled, bank 2 selected) and republishes the layer. Per spec.md §3,
// a warm reset must NOT call this — only an explicit cold-boot request.
func (c *Controller) ResetDefaults() {
	c.ramReadEnabled = false
	c.ramWriteEnabled = false
	c.selectedBank = Bank2
	c.writeArmCount = 0
	c.publish()
}

// RamReadEnabled reports whether $D000-$FFFF currently reads from Language
// Card RAM rather than system ROM.
func (c *Controller) RamReadEnabled() bool { return c.ramReadEnabled }

// SelectedBank reports which 4K bank is currently mapped at $D000-$DFFF.
func (c *Controller) SelectedBank() int { return c.selectedBank }

// Handle decodes a read or write of the $C080+n soft switch. n is the
// offset within the 16-entry Language Card switch block (0..15).
//
// Two consecutive reads of odd-numbered offsets enable write; a read of an
// even offset, or any write to the block, disarms the write-enable counter.
// A DebugRead must not perturb this state.
func (c *Controller) Handle(n uint8, access bus.Access) uint8 {
	if !access.Intent.IsDebug() {
		c.decode(n, access.Intent.IsWrite())
	}
	return bus.FloatingBus
}

// Read is the bus.ReadFunc adapter for offset n, suitable for
// io.Dispatcher.Register.
func (c *Controller) Read(n uint8) func(offset uint8, access bus.Access) uint8 {
	return func(_ uint8, access bus.Access) uint8 {
		return c.Handle(n, access)
	}
}

// Write is the bus.WriteFunc adapter for offset n.
func (c *Controller) Write(n uint8) func(offset uint8, access bus.Access, value uint8) {
	return func(_ uint8, access bus.Access, _ uint8) {
		c.Handle(n, access)
	}
}

// decode applies the $C080+n switch semantics. isWrite marks that the
// access was itself a write to the switch: it still sets the read-enable
// and bank latches, but it resets the write-arm counter and so disables
// RAM writes; only reads of odd offsets arm the write-enable.
func (c *Controller) decode(n uint8, isWrite bool) {
	// RAM-read-enabled iff bits 0 and 1 of n are equal.
	bit0 := n & 0x1
	bit1 := (n >> 1) & 0x1
	ramRead := bit0 == bit1

	// Bit 3 selects bank: 0 -> bank 2, 1 -> bank 1.
	bank := Bank2
	if n&0x8 != 0 {
		bank = Bank1
	}

	oddOffset := n&0x1 == 1
	if oddOffset && !isWrite {
		c.writeArmCount++
		if c.writeArmCount > 2 {
			c.writeArmCount = 2
		}
	} else {
		c.writeArmCount = 0
	}
	ramWrite := c.writeArmCount >= 2

	changed := ramRead != c.ramReadEnabled || ramWrite != c.ramWriteEnabled || bank != c.selectedBank
	c.ramReadEnabled = ramRead
	c.ramWriteEnabled = ramWrite
	c.selectedBank = bank

	if changed {
		c.publish()
	}
}

// publish republishes the single Language Card layer covering $D000-$FFFF
// to reflect the current read-enable, write-enable, and bank-select state.
func (c *Controller) publish() {
	c.table.PopLayer(layerID)

	perm := bus.PermRead
	if c.ramWriteEnabled {
		perm |= bus.PermWrite
	}

	bank := c.bank1
	if c.selectedBank == Bank2 {
		bank = c.bank2
	}

	layer := bus.NewLayer(layerID)
	for i := 0; i < 16; i++ {
		page := uint8(0xD0 + i)
		target := bankTarget{
			rom:         bus.NewSlice(c.rom, i*256, 256),
			ram:         bus.NewSlice(bank, i*256, 256),
			readFromRAM: c.ramReadEnabled,
		}
		layer.Map(page, bus.PageEntry{Target: target, Perm: perm, Region: bus.RegionRAM, DeviceID: "langcard"})
	}
	for i := 0; i < 32; i++ {
		page := uint8(0xE0 + i)
		target := bankTarget{
			rom:         bus.NewSlice(c.rom, (16+i)*256, 256),
			ram:         bus.NewSlice(c.upper, i*256, 256),
			readFromRAM: c.ramReadEnabled,
		}
		layer.Map(page, bus.PageEntry{Target: target, Perm: perm, Region: bus.RegionRAM, DeviceID: "langcard"})
	}
	c.table.PushLayer(layer)
}

/*
 * Pocket2e - I/O page dispatcher.
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

// Package io implements the sub-dispatcher for the 256 bytes of the I/O
// page ($C000-$C0FF): soft-switch space at offsets $00-$7F and slot space
// at $80-$FF.
package io

import "github.com/rcornwell/pocket2e/bus"

// SlotBase is the first offset of slot space within the I/O page.
const SlotBase uint8 = 0x80

// SlotOffset computes the global I/O-page offset for a register at
// local offset within a slot's 16-byte window: 0x80 | (slot<<4) | local.
//
// Historical note, preserved deliberately: handlers registered through
// this dispatcher receive this global offset (e.g. 0xB5 for slot 5's
// register 5), not the slot-relative local offset (0x05). One source
// test documents this as correct hardware-accurate behaviour, and it is
// preserved exactly here rather than "fixed".
func SlotOffset(slot uint8, local uint8) uint8 {
	return SlotBase | (slot << 4) | (local & 0xF)
}

// Dispatcher routes accesses to page $C0 to handlers registered at 8-bit
// offsets. It wraps a bus.CompositeHandler and records which offsets have
// been claimed; reads of unclaimed offsets report not-handled, which
// PageTable.Read turns into the floating-bus value.
type Dispatcher struct {
	handler *bus.CompositeHandler
	claimed [256]bool
}

// NewDispatcher returns an I/O-page dispatcher with every offset
// unclaimed: reads return the floating bus, writes are discarded.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handler: bus.NewCompositeHandler()}
	return d
}

// Handler returns the bus.Target backing this dispatcher, for installing
// into the page table at page $C0.
func (d *Dispatcher) Handler() bus.Target {
	return d.handler
}

// Register installs read/write callbacks at a specific I/O-page offset.
// Handlers MUST be idempotent under debug intent: a DebugRead must not
// mutate controller state, even where the equivalent DataRead would
// (e.g. the Language Card's write-unlock counter).
func (d *Dispatcher) Register(offset uint8, read bus.ReadFunc, write bus.WriteFunc) {
	d.claimed[offset] = true
	d.handler.Register(offset, read, write)
}

// Claimed reports whether an offset has a registered handler.
func (d *Dispatcher) Claimed(offset uint8) bool {
	return d.claimed[offset]
}

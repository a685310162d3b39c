/*
 * Pocket2e - Auxiliary Memory controller.
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

// Package auxmem implements the Auxiliary Memory soft-switch controller:
// the six latches at $C000-$C00F and the page-table layers they swap
// between main and auxiliary RAM.
package auxmem

import "github.com/rcornwell/pocket2e/bus"

const (
	zeroPageLayerID = "auxmem-zp"
	generalLayerID  = "auxmem-general"
)

// Controller holds the six Aux Memory latches and swaps page-table layers
// between main and auxiliary RAM as they change.
type Controller struct {
	table   *bus.PageTable
	mainMem *bus.PhysicalMemory // 64K main RAM
	auxMem  *bus.PhysicalMemory // 64K auxiliary RAM

	store80 bool
	altzp   bool
	ramrd   bool
	ramwrt  bool
	page2   bool
	hires   bool
}

// NewController wires an Aux Memory controller to table. mainMem and
// auxMem must each be at least 64KiB. All latches default false.
func NewController(table *bus.PageTable, mainMem, auxMem *bus.PhysicalMemory) *Controller {
	c := &Controller{table: table, mainMem: mainMem, auxMem: auxMem}
	c.publishZeroPage()
	c.publishGeneral()
	return c
}

// swapTarget is a bus.Target that reads and writes either the main or the
// auxiliary RAM slice for the same page, chosen independently for reads
// and writes (RAMRD and RAMWRT latch independently on real hardware).
type swapTarget struct {
	mainSlice bus.Slice
	auxSlice  bus.Slice
	readAux   bool
	writeAux  bool
}

func (swapTarget) Capabilities() bus.Capability {
	return bus.CapReadable | bus.CapWritable
}

func (t swapTarget) TryRead(offset uint8, _ bus.Access) (uint8, bool) {
	if t.readAux {
		return t.auxSlice.At(int(offset)), true
	}
	return t.mainSlice.At(int(offset)), true
}

func (t swapTarget) TryWrite(offset uint8, _ bus.Access, value uint8) bool {
	if t.writeAux {
		t.auxSlice.SetAt(int(offset), value)
	} else {
		t.mainSlice.SetAt(int(offset), value)
	}
	return true
}

// textPage1Aux reports whether 80STORE and PAGE2 currently steer text
// page 1 ($0400-$07FF) to auxiliary RAM regardless of RAMRD/RAMWRT.
func (c *Controller) textPage1Aux() bool {
	return c.store80 && c.page2
}

// hiresAux reports whether 80STORE, PAGE2, and HIRES currently steer the
// hi-res page ($2000-$3FFF) to auxiliary RAM regardless of RAMRD/RAMWRT.
func (c *Controller) hiresAux() bool {
	return c.store80 && c.page2 && c.hires
}

// publishZeroPage republishes the layer covering $0000-$01FF (zero page
// and stack), gated solely by ALTZP.
func (c *Controller) publishZeroPage() {
	c.table.PopLayer(zeroPageLayerID)
	layer := bus.NewLayer(zeroPageLayerID)
	for page := uint8(0x00); page <= 0x01; page++ {
		c.mapSwapPage(layer, page, c.altzp, c.altzp)
	}
	c.table.PushLayer(layer)
}

// publishGeneral republishes the layer covering $0200-$BFFF, honouring
// RAMRD/RAMWRT per page with the 80STORE/PAGE2/HIRES overrides for the
// text-page-1 and hi-res-page-1 windows.
func (c *Controller) publishGeneral() {
	c.table.PopLayer(generalLayerID)
	layer := bus.NewLayer(generalLayerID)
	for page := 0x02; page <= 0xBF; page++ {
		p := uint8(page)
		readAux := c.ramrd
		writeAux := c.ramwrt
		switch {
		case p >= 0x04 && p <= 0x07 && c.textPage1Aux():
			readAux, writeAux = true, true
		case p >= 0x20 && p <= 0x3F && c.hiresAux():
			readAux, writeAux = true, true
		}
		c.mapSwapPage(layer, p, readAux, writeAux)
	}
	c.table.PushLayer(layer)
}

func (c *Controller) mapSwapPage(layer *bus.Layer, page uint8, readAux, writeAux bool) {
	base := int(page) * 256
	target := swapTarget{
		mainSlice: bus.NewSlice(c.mainMem, base, 256),
		auxSlice:  bus.NewSlice(c.auxMem, base, 256),
		readAux:   readAux,
		writeAux:  writeAux,
	}
	layer.Map(page, bus.PageEntry{
		Target: target, Perm: bus.PermRead | bus.PermWrite, Region: bus.RegionRAM, DeviceID: "auxmem",
	})
}

// switchID enumerates the six soft switches at $C000-$C00F. Only the even
// offsets are the canonical "-off" writes and odd the "-on" writes per
// $C000-$C009; reads at any offset in the block return latch status in
// bit 7 (not modelled further here — callers needing $C01x status reads
// should consult the relevant latch accessor directly).
type switchID int

const (
	switch80Store switchID = iota
	switchRamRD
	switchRamWR
	switchAltZP
	switchPage2
	switchHires
)

// set turns one of the six latches on or off and republishes the layers
// it affects. The write handlers installed by Register call it with
// on=false for the even ("-off") offset of each pair and on=true for the
// odd ("-on") one.
func (c *Controller) set(sw switchID, on bool) {
	switch sw {
	case switch80Store:
		c.store80 = on
	case switchRamRD:
		c.ramrd = on
	case switchRamWR:
		c.ramwrt = on
	case switchAltZP:
		c.altzp = on
	case switchPage2:
		c.page2 = on
	case switchHires:
		c.hires = on
	}
	if sw == switchAltZP {
		c.publishZeroPage()
	}
	// 80STORE/RAMRD/RAMWRT/PAGE2/HIRES all affect the general-RAM layer.
	c.publishGeneral()
}

// statusBit returns bit 7 set/clear per the current latch value, the
// read-back convention for the $C01x status block.
func (c *Controller) statusBit(sw switchID) uint8 {
	var on bool
	switch sw {
	case switch80Store:
		on = c.store80
	case switchRamRD:
		on = c.ramrd
	case switchRamWR:
		on = c.ramwrt
	case switchAltZP:
		on = c.altzp
	case switchPage2:
		on = c.page2
	case switchHires:
		on = c.hires
	}
	if on {
		return 0x80
	}
	return 0x00
}

// Register installs the twelve soft-switch write handlers through reg, at
// I/O-page offsets: the 80STORE, RAMRD, RAMWRT and ALTZP off/on pairs at
// $C000-$C005 and $C008-$C009, and PAGE1/PAGE2 and LoRes/HiRes at
// $C054-$C057. Every handler is write-only (nil read function); no $C01x
// status-read handlers are installed.
func (c *Controller) Register(reg func(offset uint8, read bus.ReadFunc, write bus.WriteFunc)) {
	pairs := []struct {
		offOffset, onOffset uint8
		sw                  switchID
	}{
		{0x00, 0x01, switch80Store},
		{0x02, 0x03, switchRamRD},
		{0x04, 0x05, switchRamWR},
		{0x08, 0x09, switchAltZP},
	}
	for _, p := range pairs {
		sw := p.sw
		reg(p.offOffset, nil, func(offset uint8, access bus.Access, _ uint8) {
			if !access.Intent.IsDebug() {
				c.set(sw, false)
			}
		})
		reg(p.onOffset, nil, func(offset uint8, access bus.Access, _ uint8) {
			if !access.Intent.IsDebug() {
				c.set(sw, true)
			}
		})
	}
	// $C054/$C055 PAGE1/PAGE2, $C056/$C057 LoRes/HiRes.
	reg(0x54, nil, func(_ uint8, access bus.Access, _ uint8) {
		if !access.Intent.IsDebug() {
			c.set(switchPage2, false)
		}
	})
	reg(0x55, nil, func(_ uint8, access bus.Access, _ uint8) {
		if !access.Intent.IsDebug() {
			c.set(switchPage2, true)
		}
	})
	reg(0x56, nil, func(_ uint8, access bus.Access, _ uint8) {
		if !access.Intent.IsDebug() {
			c.set(switchHires, false)
		}
	})
	reg(0x57, nil, func(_ uint8, access bus.Access, _ uint8) {
		if !access.Intent.IsDebug() {
			c.set(switchHires, true)
		}
	})
}

// ResetDefaults clears all six latches and republishes both layers. Per
// spec.md §3, a warm reset must NOT call this — only an explicit
// cold-boot request.
func (c *Controller) ResetDefaults() {
	c.store80 = false
	c.altzp = false
	c.ramrd = false
	c.ramwrt = false
	c.page2 = false
	c.hires = false
	c.publishZeroPage()
	c.publishGeneral()
}

// Store80 reports the 80STORE latch.
func (c *Controller) Store80() bool { return c.store80 }

// AltZP reports the ALTZP latch.
func (c *Controller) AltZP() bool { return c.altzp }

// RamRD reports the RAMRD latch.
func (c *Controller) RamRD() bool { return c.ramrd }

// RamWR reports the RAMWRT latch.
func (c *Controller) RamWR() bool { return c.ramwrt }

// Page2 reports the PAGE2 latch.
func (c *Controller) Page2() bool { return c.page2 }

// Hires reports the HIRES latch.
func (c *Controller) Hires() bool { return c.hires }

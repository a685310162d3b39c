/*
 * Pocket2e - Slot manager.
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

// Package slotmgr implements the 8-slot expansion bus: slot ROM and the
// shared expansion-ROM selection protocol at $C800-$CFFF. Slot I/O
// registers in $C080-$C0FF are not handled here; io.SlotOffset computes
// their I/O-page offsets.
package slotmgr

import (
	"fmt"

	"github.com/rcornwell/pocket2e/bus"
)

// NumSlots is the number of expansion slots on the backplane.
const NumSlots = 8

// Card is a slot peripheral. Reset is called by the machine's reset
// sequence on every installed card. OnExpansionROMSelected/Deselected
// are invoked by the Manager when this card's slot gains or loses
// ownership of the shared $C800-$CFFF window.
type Card interface {
	Name() string
	Reset()
	OnExpansionROMSelected()
	OnExpansionROMDeselected()
}

// BaseCard is an embeddable no-op implementation of the hook methods, for
// cards that don't care about expansion-ROM ownership or reset.
type BaseCard struct{}

func (BaseCard) Reset()                    {}
func (BaseCard) OnExpansionROMSelected()    {}
func (BaseCard) OnExpansionROMDeselected() {}

type slot struct {
	card      Card
	romTarget bus.Target // optional, slot ROM $Cn00-$CnFF
	expansion bus.Target // optional, shares $C800-$CFFF with other slots
}

// Manager owns the 8 expansion slots and arbitrates the shared
// expansion-ROM window.
type Manager struct {
	table       *bus.PageTable
	slots       [NumSlots]slot
	selectedROM int // -1 when no slot owns $C800-$CFFF
}

const expansionLayerID = "slot-expansion-rom"

// NewManager returns a slot manager with no cards installed, wired to
// table for publishing slot-ROM and expansion-ROM page mappings.
func NewManager(table *bus.PageTable) *Manager {
	return &Manager{table: table, selectedROM: -1}
}

// Install places card in the given slot (0-7), optionally wiring a
// slot-ROM target (mapped at $Cn00-$CnFF) and an expansion-ROM target
// (made available at $C800-$CFFF only while this slot is selected).
func (m *Manager) Install(slotNum int, card Card, romTarget, expansionTarget bus.Target) {
	if slotNum < 0 || slotNum >= NumSlots {
		panic(fmt.Sprintf("slotmgr: slot %d out of range", slotNum))
	}
	m.slots[slotNum] = slot{card: card, romTarget: romTarget, expansion: expansionTarget}
	if romTarget != nil {
		page := uint8(0xC0 + slotNum)
		m.table.MapPage(page, bus.PageEntry{
			Target: romTarget, Perm: bus.PermRead, Region: bus.RegionROM,
			DeviceID: fmt.Sprintf("slot%d-rom", slotNum),
		})
	}
}

// Reset calls Reset on every installed card.
func (m *Manager) Reset() {
	for i := range m.slots {
		if m.slots[i].card != nil {
			m.slots[i].card.Reset()
		}
	}
}

// Card returns the card installed in slotNum, or nil.
func (m *Manager) Card(slotNum int) Card {
	if slotNum < 0 || slotNum >= NumSlots {
		return nil
	}
	return m.slots[slotNum].card
}

// SelectedSlot returns the slot currently owning $C800-$CFFF, or -1.
func (m *Manager) SelectedSlot() int {
	return m.selectedROM
}

// NoteAccess implements the expansion-ROM selection protocol: any access
// to $CnXX, for an installed slot n, except a write to $Cn00-$CnFF (slot
// ROM space, not the select trigger), marks slot n as the expansion-ROM
// owner. Any access to $CFFF deselects. Call this for every bus access
// in the $C100-$CFFF range, regardless of whether it was otherwise
// handled.
func (m *Manager) NoteAccess(addr uint16, isWrite bool) {
	if addr == 0xCFFF {
		m.deselect()
		return
	}
	if addr < 0xC100 || addr > 0xC7FF {
		return
	}
	slotNum := int((addr>>8)&0xF)
	if slotNum < 0 || slotNum >= NumSlots || m.slots[slotNum].card == nil {
		return
	}
	// A write into the slot's own $Cn00-$CnFF ROM window never triggers
	// selection; only reads do.
	if isWrite {
		return
	}
	m.selectSlot(slotNum)
}

func (m *Manager) selectSlot(slotNum int) {
	if m.selectedROM == slotNum {
		return
	}
	if m.selectedROM >= 0 {
		if prev := m.slots[m.selectedROM].card; prev != nil {
			prev.OnExpansionROMDeselected()
		}
	}
	m.selectedROM = slotNum
	m.table.PopLayer(expansionLayerID)
	if target := m.slots[slotNum].expansion; target != nil {
		layer := bus.NewLayer(expansionLayerID)
		for page := uint8(0xC8); page <= 0xCF; page++ {
			layer.Map(page, bus.PageEntry{
				Target: target, Perm: bus.PermRead, Region: bus.RegionROM,
				DeviceID: fmt.Sprintf("slot%d-expansion", slotNum),
			})
		}
		m.table.PushLayer(layer)
	}
	if card := m.slots[slotNum].card; card != nil {
		card.OnExpansionROMSelected()
	}
}

func (m *Manager) deselect() {
	if m.selectedROM < 0 {
		return
	}
	if card := m.slots[m.selectedROM].card; card != nil {
		card.OnExpansionROMDeselected()
	}
	m.selectedROM = -1
	m.table.PopLayer(expansionLayerID)
}

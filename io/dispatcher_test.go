package io

import (
	"testing"

	"github.com/rcornwell/pocket2e/bus"
)

func TestUnclaimedOffsetFloats(t *testing.T) {
	d := NewDispatcher()
	v, ok := d.Handler().TryRead(0x10, bus.Access{Address: 0xC010, Intent: bus.DataRead})
	if ok {
		t.Fatalf("unclaimed offset reported ok=true, value %#02x", v)
	}
}

func TestRegisteredOffsetRoutes(t *testing.T) {
	d := NewDispatcher()
	var gotWrite uint8
	d.Register(0x30,
		func(offset uint8, access bus.Access) uint8 { return 0x99 },
		func(offset uint8, access bus.Access, value uint8) { gotWrite = value },
	)

	v, ok := d.Handler().TryRead(0x30, bus.Access{Address: 0xC030, Intent: bus.DataRead})
	if !ok || v != 0x99 {
		t.Fatalf("registered read = %#02x, ok=%v, want 0x99, true", v, ok)
	}
	d.Handler().TryWrite(0x30, bus.Access{Address: 0xC030, Intent: bus.DataWrite}, 0x77)
	if gotWrite != 0x77 {
		t.Fatalf("registered write got %#02x, want 0x77", gotWrite)
	}
	if !d.Claimed(0x30) {
		t.Fatalf("offset 0x30 should be claimed")
	}
	if d.Claimed(0x31) {
		t.Fatalf("offset 0x31 should not be claimed")
	}
}

func TestSlotOffsetGlobalNotRelative(t *testing.T) {
	// Slot 5, local register 5 -> global offset 0xB5, per the documented
	// quirk: handlers see the global offset, not the local one.
	got := SlotOffset(5, 5)
	if got != 0xB5 {
		t.Fatalf("SlotOffset(5,5) = %#02x, want 0xB5", got)
	}
}

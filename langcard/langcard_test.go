package langcard

import (
	"testing"

	"github.com/rcornwell/pocket2e/bus"
)

func newFixture() (*bus.PageTable, *Controller, *bus.PhysicalMemory, *bus.PhysicalMemory, *bus.PhysicalMemory) {
	table := bus.NewPageTable()
	rom := bus.NewPhysicalMemory("rom-d0-ff", 0x3000)
	for i := range rom.Size() {
		rom.Load(i, []byte{0xEA})
	}
	bank1 := bus.NewPhysicalMemory("lc-bank1", 0x1000)
	bank2 := bus.NewPhysicalMemory("lc-bank2", 0x1000)
	upper := bus.NewPhysicalMemory("lc-upper", 0x2000)
	c := NewController(table, rom, bank1, bank2, upper)
	return table, c, bank1, bank2, upper
}

func TestDefaultStateIsROMVisibleBank2(t *testing.T) {
	table, c, _, _, _ := newFixture()
	if c.RamReadEnabled() {
		t.Fatalf("expected RAM read disabled by default")
	}
	if c.SelectedBank() != Bank2 {
		t.Fatalf("expected bank 2 selected by default, got %d", c.SelectedBank())
	}
	got := table.Read(bus.Access{Address: 0xD000, Intent: bus.DataRead})
	if got != 0xEA {
		t.Fatalf("default read should come from ROM, got %#02x", got)
	}
}

func TestTwoOddReadsEnableWrite(t *testing.T) {
	_, c, _, _, _ := newFixture()
	// n=0x01: odd offset, selects RAM-read disabled (bits 0,1 = 1,0 -> unequal -> ROM read),
	// bank 2 (bit3=0). Two consecutive reads arm write.
	c.Handle(0x01, bus.Access{Intent: bus.DataRead})
	if c.ramWriteEnabled {
		t.Fatalf("single read should only half-arm write-enable")
	}
	c.Handle(0x01, bus.Access{Intent: bus.DataRead})
	if !c.ramWriteEnabled {
		t.Fatalf("two consecutive odd reads should enable write")
	}
}

func TestNonArmingReadDisarms(t *testing.T) {
	_, c, _, _, _ := newFixture()
	c.Handle(0x01, bus.Access{Intent: bus.DataRead})
	c.Handle(0x00, bus.Access{Intent: bus.DataRead}) // even offset, disarms
	c.Handle(0x01, bus.Access{Intent: bus.DataRead})
	if c.ramWriteEnabled {
		t.Fatalf("intervening non-arming read should have disarmed the counter")
	}
}

func TestDebugReadDoesNotArmOrMutate(t *testing.T) {
	_, c, _, _, _ := newFixture()
	before := c.writeArmCount
	c.Handle(0x01, bus.Access{Intent: bus.DebugRead})
	if c.writeArmCount != before {
		t.Fatalf("DebugRead must not mutate write-arm counter")
	}
}

func TestRAMReadEnableRoutesToSelectedBank(t *testing.T) {
	table, c, bank1, bank2, _ := newFixture()
	bank1.Load(0, []byte{0x11})
	bank2.Load(0, []byte{0x22})

	// n=0x03: bits0,1 = 1,1 equal -> RAM read enabled; bit3=0 -> bank2.
	c.Handle(0x03, bus.Access{Intent: bus.DataRead})
	if !c.RamReadEnabled() {
		t.Fatalf("expected RAM read enabled for n=0x03")
	}
	if got := table.Read(bus.Access{Address: 0xD000, Intent: bus.DataRead}); got != 0x22 {
		t.Fatalf("expected bank2 byte 0x22, got %#02x", got)
	}

	// n=0x0B: bits0,1 = 1,1 equal -> RAM read enabled; bit3=1 -> bank1.
	c.Handle(0x0B, bus.Access{Intent: bus.DataRead})
	if got := table.Read(bus.Access{Address: 0xD000, Intent: bus.DataRead}); got != 0x11 {
		t.Fatalf("expected bank1 byte 0x11 after bank switch, got %#02x", got)
	}
}

func TestWriteDroppedUntilArmed(t *testing.T) {
	table, c, _, bank2, _ := newFixture()

	// n=0x03 enables RAM read (bank2 selected by default) but a single
	// read only half-arms the write-enable latch.
	c.Handle(0x03, bus.Access{Intent: bus.DataRead})
	table.Write(bus.Access{Address: 0xD000, Intent: bus.DataWrite}, 0x99)
	readBack := table.Read(bus.Access{Address: 0xD000, Intent: bus.DataRead})
	if readBack == 0x99 {
		t.Fatalf("write should have been dropped before write-enable was armed")
	}

	// Second consecutive read of an odd switch arms write.
	c.Handle(0x03, bus.Access{Intent: bus.DataRead})
	table.Write(bus.Access{Address: 0xD000, Intent: bus.DataWrite}, 0x99)
	if got := bus.NewSlice(bank2, 0, bank2.Size()).Raw()[0]; got != 0x99 {
		t.Fatalf("armed write should reach bank2, got %#02x", got)
	}
}

func TestDebugWriteAlwaysReachesRAM(t *testing.T) {
	table, _, _, bank2, _ := newFixture()
	table.Write(bus.Access{Address: 0xD000, Intent: bus.DebugWrite}, 0x7E)
	if got := bus.NewSlice(bank2, 0, bank2.Size()).Raw()[0]; got != 0x7E {
		t.Fatalf("debug write should reach RAM regardless of write-enable, got %#02x", got)
	}
}

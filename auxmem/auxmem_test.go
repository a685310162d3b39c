package auxmem

import (
	"testing"

	"github.com/rcornwell/pocket2e/bus"
)

func newFixture() (*bus.PageTable, *Controller, *bus.PhysicalMemory, *bus.PhysicalMemory) {
	table := bus.NewPageTable()
	main := bus.NewPhysicalMemory("main", 0x10000)
	aux := bus.NewPhysicalMemory("aux", 0x10000)
	c := NewController(table, main, aux)
	return table, c, main, aux
}

func TestDefaultRoutesToMain(t *testing.T) {
	table, _, main, _ := newFixture()
	main.Load(0x0200, []byte{0x42})
	got := table.Read(bus.Access{Address: 0x0200, Intent: bus.DataRead})
	if got != 0x42 {
		t.Fatalf("default general RAM read = %#02x, want 0x42", got)
	}
}

func TestRamRDSwitchesReadToAux(t *testing.T) {
	table, c, main, aux := newFixture()
	main.Load(0x0300, []byte{0x11})
	aux.Load(0x0300, []byte{0x22})

	c.set(switchRamRD, true)
	got := table.Read(bus.Access{Address: 0x0300, Intent: bus.DataRead})
	if got != 0x22 {
		t.Fatalf("RAMRD-on read = %#02x, want 0x22 (aux)", got)
	}
}

func TestRamWRIndependentOfRamRD(t *testing.T) {
	table, c, main, aux := newFixture()
	c.set(switchRamWR, true)
	table.Write(bus.Access{Address: 0x0400 + 0x100, Intent: bus.DataWrite}, 0x55)
	if bus.NewSlice(aux, 0, aux.Size()).Raw()[0x500] != 0x55 {
		t.Fatalf("RAMWRT-on write should land in aux RAM")
	}
	if bus.NewSlice(main, 0, main.Size()).Raw()[0x500] != 0x00 {
		t.Fatalf("RAMWRT-on write should not touch main RAM")
	}
}

func TestAltZPSwitchesZeroPageAndStack(t *testing.T) {
	table, c, main, aux := newFixture()
	main.Load(0x0000, []byte{0x01})
	aux.Load(0x0000, []byte{0x02})

	if got := table.Read(bus.Access{Address: 0x0000, Intent: bus.DataRead}); got != 0x01 {
		t.Fatalf("default zero page read = %#02x, want main 0x01", got)
	}
	c.set(switchAltZP, true)
	if got := table.Read(bus.Access{Address: 0x0000, Intent: bus.DataRead}); got != 0x02 {
		t.Fatalf("ALTZP-on zero page read = %#02x, want aux 0x02", got)
	}
}

func Test80StorePage2RoutesTextPage1(t *testing.T) {
	table, c, main, aux := newFixture()
	main.Load(0x0400, []byte{0x01})
	aux.Load(0x0400, []byte{0x02})

	c.set(switch80Store, true)
	c.set(switchPage2, true)
	got := table.Read(bus.Access{Address: 0x0400, Intent: bus.DataRead})
	if got != 0x02 {
		t.Fatalf("80STORE+PAGE2 should route text page 1 to aux, got %#02x", got)
	}
}

func Test80StorePage2HiresRoutesHiresPage1(t *testing.T) {
	table, c, main, aux := newFixture()
	main.Load(0x2000, []byte{0x01})
	aux.Load(0x2000, []byte{0x02})

	c.set(switch80Store, true)
	c.set(switchPage2, true)
	c.set(switchHires, true)
	got := table.Read(bus.Access{Address: 0x2000, Intent: bus.DataRead})
	if got != 0x02 {
		t.Fatalf("80STORE+PAGE2+HIRES should route hires page 1 to aux, got %#02x", got)
	}
}

func TestRegisterWiresAllTwelveOffsets(t *testing.T) {
	_, c, _, _ := newFixture()
	var registered []uint8
	c.Register(func(offset uint8, read bus.ReadFunc, write bus.WriteFunc) {
		registered = append(registered, offset)
	})
	want := []uint8{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x08, 0x09, 0x54, 0x55, 0x56, 0x57}
	if len(registered) != len(want) {
		t.Fatalf("registered %d offsets, want %d", len(registered), len(want))
	}
}

func TestDebugWriteDoesNotMutateLatch(t *testing.T) {
	table, c, _, _ := newFixture()
	var writeFn bus.WriteFunc
	c.Register(func(offset uint8, read bus.ReadFunc, write bus.WriteFunc) {
		if offset == 0x01 {
			writeFn = write
		}
	})
	writeFn(0x01, bus.Access{Intent: bus.DebugWrite}, 0)
	if c.Store80() {
		t.Fatalf("debug-intent write must not mutate the 80STORE latch")
	}
	_ = table
}

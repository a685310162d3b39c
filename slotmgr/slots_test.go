package slotmgr

import (
	"testing"

	"github.com/rcornwell/pocket2e/bus"
)

type fakeCard struct {
	BaseCard
	name       string
	selected   int
	deselected int
}

func (f *fakeCard) Name() string { return f.name }
func (f *fakeCard) OnExpansionROMSelected() {
	f.selected++
}
func (f *fakeCard) OnExpansionROMDeselected() {
	f.deselected++
}

func TestNoSlotSelectedByDefault(t *testing.T) {
	m := NewManager(bus.NewPageTable())
	if m.SelectedSlot() != -1 {
		t.Fatalf("expected no slot selected by default, got %d", m.SelectedSlot())
	}
}

func TestReadAccessSelectsSlot(t *testing.T) {
	table := bus.NewPageTable()
	m := NewManager(table)
	card := &fakeCard{name: "card5"}
	mem := bus.NewPhysicalMemory("exp5", 0x800)
	expansion := bus.RomSlice{Slice: bus.NewSlice(mem, 0, 0x800)}
	m.Install(5, card, nil, expansion)

	m.NoteAccess(0xC500, false)
	if m.SelectedSlot() != 5 {
		t.Fatalf("expected slot 5 selected, got %d", m.SelectedSlot())
	}
	if card.selected != 1 {
		t.Fatalf("expected OnExpansionROMSelected called once, got %d", card.selected)
	}
}

func TestWriteToSlotROMDoesNotSelect(t *testing.T) {
	m := NewManager(bus.NewPageTable())
	card := &fakeCard{name: "card3"}
	m.Install(3, card, nil, nil)

	m.NoteAccess(0xC300, true)
	if m.SelectedSlot() != -1 {
		t.Fatalf("write to slot ROM window should not select, got slot %d", m.SelectedSlot())
	}
}

func TestCFFFDeselects(t *testing.T) {
	m := NewManager(bus.NewPageTable())
	card := &fakeCard{name: "card2"}
	m.Install(2, card, nil, nil)
	m.NoteAccess(0xC200, false)
	if m.SelectedSlot() != 2 {
		t.Fatalf("setup: expected slot 2 selected")
	}
	m.NoteAccess(0xCFFF, false)
	if m.SelectedSlot() != -1 {
		t.Fatalf("access to $CFFF should deselect, got slot %d", m.SelectedSlot())
	}
	if card.deselected != 1 {
		t.Fatalf("expected OnExpansionROMDeselected called once, got %d", card.deselected)
	}
}

func TestExpansionROMPublishedWhileSelected(t *testing.T) {
	table := bus.NewPageTable()
	m := NewManager(table)
	mem := bus.NewPhysicalMemory("exp4", 0x800)
	mem.Load(0, []byte{0xBE})
	expansion := bus.RomSlice{Slice: bus.NewSlice(mem, 0, 0x800)}
	m.Install(4, &fakeCard{name: "card4"}, nil, expansion)

	m.NoteAccess(0xC400, false)
	got := table.Read(bus.Access{Address: 0xC800, Intent: bus.DataRead})
	if got != 0xBE {
		t.Fatalf("expected expansion ROM byte 0xBE at $C800, got %#02x", got)
	}

	m.NoteAccess(0xCFFF, false)
	got = table.Read(bus.Access{Address: 0xC800, Intent: bus.DataRead})
	if got != bus.FloatingBus {
		t.Fatalf("after deselect, $C800 should float, got %#02x", got)
	}
}

func TestSlotROMMappedAtInstall(t *testing.T) {
	table := bus.NewPageTable()
	m := NewManager(table)
	mem := bus.NewPhysicalMemory("rom6", 0x100)
	mem.Load(0, []byte{0xCD})
	rom := bus.RomSlice{Slice: bus.NewSlice(mem, 0, 0x100)}
	m.Install(6, &fakeCard{name: "card6"}, rom, nil)

	got := table.Read(bus.Access{Address: 0xC600, Intent: bus.DataRead})
	if got != 0xCD {
		t.Fatalf("slot 6 ROM read = %#02x, want 0xCD", got)
	}
}

/*
 * Pocket2e - Machine: wires bus, controllers, CPU, and traps together.
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

// Package machine wires the paged bus, the Language Card and Auxiliary
// Memory controllers, the slot manager, the I/O dispatcher, the CPU, the
// trap registry, and the scheduler into one runnable Pocket2e core,
// following the memory map in spec.md §6.2. Machine is the synchronous
// entry point the rest of the emulator (video, audio, slot cards, the
// monitor UI) drives; none of those collaborators run on their own
// goroutine here — the core is single-threaded and cooperative.
package machine

import (
	"log/slog"

	"github.com/rcornwell/pocket2e/auxmem"
	"github.com/rcornwell/pocket2e/bus"
	"github.com/rcornwell/pocket2e/cpu"
	"github.com/rcornwell/pocket2e/debugger"
	"github.com/rcornwell/pocket2e/io"
	"github.com/rcornwell/pocket2e/langcard"
	"github.com/rcornwell/pocket2e/scheduler"
	"github.com/rcornwell/pocket2e/slotmgr"
	"github.com/rcornwell/pocket2e/trap"
)

// Sizes of the physical memory blocks a stock Pocket2e wires up, per
// spec.md §6.2 and §4.4.
const (
	mainRAMSize  = 64 * 1024
	auxRAMSize   = 64 * 1024
	systemROMSize = 0xFFFF - 0xD000 + 1 // 12K, $D000-$FFFF
	lcBankSize   = 4 * 1024             // $D000-$DFFF, one per bank
	lcUpperSize  = 8 * 1024             // $E000-$FFFF, shared by both banks
)

// Machine owns every physical memory block, the page table, the
// controllers that layer over it, the CPU, and the trap registry. It is
// the machine-builder's (out-of-scope) eventual target, but is itself
// part of the core: Reset/Step/Run are the contract the monitor UI and
// tests drive.
type Machine struct {
	Bus     *bus.PageTable
	Clock   *scheduler.Clock
	Signals *scheduler.SignalBus
	CPU     *cpu.CpuState
	Traps   *trap.Registry
	IO      *io.Dispatcher
	LangCard *langcard.Controller
	AuxMem   *auxmem.Controller
	Slots    *slotmgr.Manager

	mainRAM   *bus.PhysicalMemory
	auxRAM    *bus.PhysicalMemory
	systemROM *bus.PhysicalMemory
	lcBank1   *bus.PhysicalMemory
	lcBank2   *bus.PhysicalMemory
	lcUpper   *bus.PhysicalMemory

	log *slog.Logger
}

// New allocates every physical memory block, installs the Language Card
// and Aux Memory layers, the slot manager, and the I/O page dispatcher,
// loads systemROM into the $D000-$FFFF ROM image, and wires the CPU and
// trap registry on top. systemROM must be exactly 12288 bytes (the
// $D000-$FFFF window); log may be nil, in which case slog.Default() is
// used.
func New(systemROM []byte, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	if len(systemROM) != systemROMSize {
		panic("machine: system ROM image must be exactly 12288 bytes ($D000-$FFFF)")
	}

	m := &Machine{
		Bus:       bus.NewPageTable(),
		Clock:     &scheduler.Clock{},
		Signals:   scheduler.NewSignalBus(),
		mainRAM:   bus.NewPhysicalMemory("main-ram", mainRAMSize),
		auxRAM:    bus.NewPhysicalMemory("aux-ram", auxRAMSize),
		systemROM: bus.NewPhysicalMemory("system-rom", systemROMSize),
		lcBank1:   bus.NewPhysicalMemory("lc-bank1", lcBankSize),
		lcBank2:   bus.NewPhysicalMemory("lc-bank2", lcBankSize),
		lcUpper:   bus.NewPhysicalMemory("lc-upper", lcUpperSize),
		log:       log,
	}
	m.systemROM.Load(0, systemROM)

	m.AuxMem = auxmem.NewController(m.Bus, m.mainRAM, m.auxRAM)
	m.LangCard = langcard.NewController(m.Bus, m.systemROM, m.lcBank1, m.lcBank2, m.lcUpper)
	m.Slots = slotmgr.NewManager(m.Bus)

	m.IO = io.NewDispatcher()
	m.Bus.MapPage(0xC0, bus.PageEntry{
		Target: m.IO.Handler(), Perm: bus.PermRead | bus.PermWrite, Region: bus.RegionIO, DeviceID: "io-page",
	})
	m.installSoftSwitches()

	m.Traps = trap.NewRegistry(m.resolveContext)
	m.CPU = cpu.New(m.Bus, m.Signals, m.Clock)
	m.CPU.Traps = m.Traps
	m.CPU.Logger = log

	m.log.Info("machine initialized", "rom-bytes", len(systemROM))
	return m
}

// installSoftSwitches registers the Aux Memory and Language Card
// handlers into the I/O page dispatcher at their documented offsets
// (spec.md §6.4).
func (m *Machine) installSoftSwitches() {
	m.AuxMem.Register(m.IO.Register)
	for n := uint8(0); n < 16; n++ {
		m.IO.Register(0x80+n, m.LangCard.Read(n), m.LangCard.Write(n))
	}
}

// resolveContext is the trap registry's default MemoryContext resolver:
// the Language Card's RAM-read state disambiguates $D000-$FFFF, and
// RAMRD disambiguates the aux-memory range; everything else resolves to
// Rom, matching spec.md §4.9's default resolver description.
func (m *Machine) resolveContext(addr uint16) trap.MemoryContext {
	if addr >= 0xD000 && m.LangCard.RamReadEnabled() {
		return trap.ContextLanguageCardRam
	}
	if addr <= 0xBFFF && m.AuxMem.RamRD() {
		return trap.ContextAuxiliaryRam
	}
	return trap.ContextRom
}

// SetDebugger attaches a before/after-step listener to the CPU.
func (m *Machine) SetDebugger(l debugger.Listener) {
	m.CPU.Debugger = l
}

// Reset performs a warm reset: CPU registers/halt state only, per
// spec.md §3. Language Card and Aux Memory latches are left untouched.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Slots.Reset()
}

// ColdReset performs Reset plus restoring Language Card and Aux Memory
// to their power-on defaults — the "explicit cold reset request" spec.md
// §3 carves out as the only time those controllers' state is cleared.
func (m *Machine) ColdReset() {
	m.LangCard.ResetDefaults()
	m.AuxMem.ResetDefaults()
	m.Reset()
}

// Step advances the CPU by exactly one instruction, interrupt sequence,
// or trap dispatch, returning the cycles consumed.
func (m *Machine) Step() uint16 {
	return m.CPU.Step()
}

// Run steps the machine until the CPU halts or a debugger listener
// requests a stop, starting execution at entryPoint.
func (m *Machine) Run(entryPoint uint16) {
	debugger.Execute(m.CPU, entryPoint)
}

// Peek performs a side-effect-free read, for external devices (video
// renderer, debugger) that must not trigger soft switches.
func (m *Machine) Peek(addr uint16) uint8 {
	return m.CPU.Peek(addr)
}

// Poke performs a side-effect-free write, e.g. test-ROM patching or
// loading a program image directly into RAM before a Run.
func (m *Machine) Poke(addr uint16, value uint8) {
	m.CPU.Poke(addr, value)
}

// LoadRAM copies data directly into main RAM starting at addr, bypassing
// the bus entirely — used at machine-build time to install a boot
// program or test fixture before any soft switches have been touched.
func (m *Machine) LoadRAM(addr uint16, data []byte) {
	m.mainRAM.Load(int(addr), data)
}

/*
 * Pocket2e - CPU interpreter tests.
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

package cpu

import (
	"testing"

	"github.com/rcornwell/pocket2e/bus"
	"github.com/rcornwell/pocket2e/scheduler"
	"github.com/rcornwell/pocket2e/trap"
)

// newFixture builds a CpuState over a flat 64KiB RAM bus, with the reset
// vector pointed at $0200 so tests can load a program there and Reset
// into it.
func newFixture(t *testing.T) (*CpuState, *bus.PhysicalMemory) {
	t.Helper()
	mem := bus.NewPhysicalMemory("ram", 65536)
	table := bus.NewPageTable()
	table.MapRange(0, 256, "ram", bus.RegionRAM, bus.PermRead|bus.PermWrite, mem, 0, false)
	mem.Load(0xFFFC, []byte{0x00, 0x02})

	clock := &scheduler.Clock{}
	signals := scheduler.NewSignalBus()
	c := New(table, signals, clock)
	c.Reset()
	return c, mem
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, mem := newFixture(t)
	mem.Load(0x0200, []byte{0xA9, 0x00}) // LDA #$00
	c.Step()
	if !c.Regs.getFlag(FlagZ) {
		t.Fatal("expected Z set after loading 0")
	}
	if c.Regs.getFlag(FlagN) {
		t.Fatal("expected N clear after loading 0")
	}

	c.Reset()
	mem.Load(0x0200, []byte{0xA9, 0x80}) // LDA #$80
	c.Step()
	if !c.Regs.getFlag(FlagN) {
		t.Fatal("expected N set after loading 0x80")
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.X = 1
	mem.Load(0x0200, []byte{0xBD, 0xFF, 0x12}) // LDA $12FF,X -> $1300
	consumed := c.Step()
	if consumed != 5 {
		t.Fatalf("expected 5 cycles (4 base + 1 page-cross), got %d", consumed)
	}
}

func TestAbsoluteXStoreNeverPaysPageCrossExtra(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.X = 1
	c.Regs.A = 0x42
	mem.Load(0x0200, []byte{0x9D, 0xFF, 0x12}) // STA $12FF,X -> $1300, crosses
	consumed := c.Step()
	if consumed != 5 {
		t.Fatalf("STA $nnnn,X always costs 5 regardless of page cross, got %d", consumed)
	}
	if got := c.Peek(0x1300); got != 0x42 {
		t.Fatalf("expected store to land at $1300, byte=%#02x", got)
	}
}

func TestZeroPageXWrapsWithinPageZero(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.X = 2
	mem.Load(0x0001, []byte{0x99}) // value at wrapped address $01
	mem.Load(0x0200, []byte{0xB5, 0xFF}) // LDA $FF,X -> wraps to $01
	c.Step()
	if c.Regs.A != 0x99 {
		t.Fatalf("expected wrapped zero-page read of 0x99, got %#02x", c.Regs.A)
	}
}

func TestIndirectYPointerWrapsWithinPageZero(t *testing.T) {
	c, mem := newFixture(t)
	mem.Load(0x00FF, []byte{0x00}) // pointer low byte at $FF
	mem.Load(0x0000, []byte{0x30}) // pointer high byte wraps to $00
	mem.Load(0x3001, []byte{0x55}) // base $3000 + Y(1)
	c.Regs.Y = 1
	mem.Load(0x0200, []byte{0xB1, 0xFF}) // LDA ($FF),Y
	c.Step()
	if c.Regs.A != 0x55 {
		t.Fatalf("expected 0x55 via wrapped zero-page pointer, got %#02x", c.Regs.A)
	}
}

func TestIRQMaskedByInterruptDisableFlag(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.setFlag(FlagI, true)
	c.Signals.AssertIRQ("test")
	mem.Load(0x0200, []byte{0xEA}) // NOP
	consumed := c.Step()
	if consumed != 2 {
		t.Fatalf("IRQ masked by I should execute NOP normally, got %d cycles", consumed)
	}
	if c.Regs.PC != 0x0201 {
		t.Fatalf("expected PC to have advanced past NOP, got %#04x", c.Regs.PC)
	}
}

func TestIRQServicedWhenUnmasked(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.setFlag(FlagI, false)
	mem.Load(0xFFFE, []byte{0x00, 0x30}) // IRQ/BRK vector -> $3000
	c.Signals.AssertIRQ("test")
	mem.Load(0x0200, []byte{0xEA})
	consumed := c.Step()
	if consumed != 7 {
		t.Fatalf("expected 7-cycle interrupt sequence, got %d", consumed)
	}
	if c.Regs.PC != 0x3000 {
		t.Fatalf("expected PC at IRQ vector $3000, got %#04x", c.Regs.PC)
	}
	if !c.Regs.getFlag(FlagI) {
		t.Fatal("expected I set after servicing IRQ")
	}
}

func TestNMITakesPriorityOverIRQ(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.setFlag(FlagI, false)
	mem.Load(0xFFFA, []byte{0x00, 0x40}) // NMI vector -> $4000
	mem.Load(0xFFFE, []byte{0x00, 0x30}) // IRQ vector -> $3000
	c.Signals.AssertIRQ("test")
	c.Signals.AssertNMI()
	mem.Load(0x0200, []byte{0xEA})
	c.Step()
	if c.Regs.PC != 0x4000 {
		t.Fatalf("expected NMI to win and vector to $4000, got %#04x", c.Regs.PC)
	}
	if c.Signals.NMIPending() {
		t.Fatal("expected NMI to be acknowledged")
	}
}

func TestJSRPushesReturnAddressMinusOneAndRTSRestores(t *testing.T) {
	c, mem := newFixture(t)
	mem.Load(0x0200, []byte{0x20, 0x00, 0x03}) // JSR $0300
	mem.Load(0x0300, []byte{0x60})             // RTS
	c.Step()                                    // JSR
	if c.Regs.PC != 0x0300 {
		t.Fatalf("expected PC at subroutine, got %#04x", c.Regs.PC)
	}
	c.Step() // RTS
	if c.Regs.PC != 0x0203 {
		t.Fatalf("expected return to instruction after JSR, got %#04x", c.Regs.PC)
	}
}

func TestBRKAndRTIRoundTrip(t *testing.T) {
	c, mem := newFixture(t)
	mem.Load(0xFFFE, []byte{0x00, 0x40}) // BRK vector -> $4000
	mem.Load(0x0200, []byte{0x00, 0x00}) // BRK, signature byte
	mem.Load(0x4000, []byte{0x40})       // RTI
	c.Step()                             // BRK
	if c.Regs.PC != 0x4000 {
		t.Fatalf("expected BRK to vector to $4000, got %#04x", c.Regs.PC)
	}
	if !c.Regs.getFlag(FlagI) {
		t.Fatal("expected I set after BRK")
	}
	c.Step() // RTI
	if c.Regs.PC != 0x0202 {
		t.Fatalf("expected RTI to restore PC past BRK+signature, got %#04x", c.Regs.PC)
	}
}

func TestDecimalAdcProducesBCDResult(t *testing.T) {
	c, mem := newFixture(t)
	c.Regs.setFlag(FlagD, true)
	c.Regs.A = 0x58 // BCD 58
	mem.Load(0x0200, []byte{0x69, 0x46}) // ADC #$46 (BCD 46) -> BCD 04 with carry
	consumed := c.Step()
	if c.Regs.A != 0x04 {
		t.Fatalf("expected BCD 04, got %#02x", c.Regs.A)
	}
	if !c.Regs.getFlag(FlagC) {
		t.Fatal("expected carry out of decimal add")
	}
	if consumed != 3 {
		t.Fatalf("expected immediate ADC base 2 + 1 decimal-mode cycle, got %d", consumed)
	}
}

func TestTrapFiresBeforeOpcodeFetchAndAutoReturns(t *testing.T) {
	c, mem := newFixture(t)
	resolver := func(addr uint16) trap.MemoryContext { return trap.ContextRom }
	registry := trap.NewRegistry(resolver)
	fired := false
	registry.Register(0x0300, trap.ContextRom, "stub", trap.MonitorRom,
		func(cpuIface any, b trap.Bus) trap.Result {
			fired = true
			cpu := cpuIface.(*CpuState)
			cpu.Regs.A = 0x7E
			return trap.Result{Handled: true, CyclesConsumed: 4, ReturnMethod: trap.ReturnRts}
		}, "test stub")
	c.Traps = registry

	mem.Load(0x0200, []byte{0x20, 0x00, 0x03}) // JSR $0300
	mem.Load(0x0300, []byte{0xEA})             // never executed; trap intercepts
	c.Step()                                   // JSR lands PC at $0300
	c.Step()                                   // trap should fire instead of the NOP

	if !fired {
		t.Fatal("expected trap handler to fire")
	}
	if c.Regs.A != 0x7E {
		t.Fatalf("expected trap handler's register write to stick, got %#02x", c.Regs.A)
	}
	if c.Regs.PC != 0x0203 {
		t.Fatalf("expected auto-RTS to resume after the JSR, got %#04x", c.Regs.PC)
	}
}

func TestLoopSumsOneToFiveAndHalts(t *testing.T) {
	c, mem := newFixture(t)
	// LDX #5; LDA #0; loop: STX $00; CLC; ADC $00; DEX; BNE loop; STP
	// Each pass adds the current value of X (stashed through zero page,
	// since ADC cannot take a register operand directly) into A, summing
	// 5+4+3+2+1 = 15 before falling through to STP.
	program := []byte{
		0xA2, 0x05, // LDX #5
		0xA9, 0x00, // LDA #0
		// loop:
		0x86, 0x00, // STX $00
		0x18,       // CLC
		0x65, 0x00, // ADC $00
		0xCA,       // DEX
		0xD0, 0xF8, // BNE loop
		0xDB, // STP
	}
	mem.Load(0x0200, program)

	for steps := 0; steps < 100 && !c.IsHalted(); steps++ {
		c.Step()
	}
	if !c.IsHalted() || c.HaltReason != HaltStp {
		t.Fatalf("expected loop to halt via STP, halted=%v reason=%v", c.IsHalted(), c.HaltReason)
	}
	if c.Regs.A != 15 {
		t.Fatalf("expected sum 1..5 = 15, got %d", c.Regs.A)
	}
}

func TestIllegalOpcodeHalts(t *testing.T) {
	// The 65C02 datasheet fills every one of the 256 opcode slots (a real
	// instruction, or a reserved-opcode NOP — see registerReservedNOPs), so
	// there is no opcode byte that is naturally illegal on real hardware.
	// The illegal-opcode halt path still exists as a safety net for a
	// corrupted opcode table entry; exercise it directly.
	saved := opcodeTable[0x02]
	opcodeTable[0x02] = OpEntry{Mnemonic: "???"}
	defer func() { opcodeTable[0x02] = saved }()

	c, mem := newFixture(t)
	mem.Load(0x0200, []byte{0x02})
	consumed := c.Step()
	if consumed != 1 {
		t.Fatalf("expected illegal opcode to consume 1 cycle, got %d", consumed)
	}
	if !c.Halted || c.HaltReason != HaltIllegalOpcode {
		t.Fatalf("expected illegal-opcode halt, halted=%v reason=%v", c.Halted, c.HaltReason)
	}
}

func TestReservedOpcodesActAsNOPs(t *testing.T) {
	cases := []struct {
		name    string
		program []byte
		cycles  uint16
	}{
		{"one-byte", []byte{0x03}, 1},
		{"immediate", []byte{0x02, 0xAA}, 2},
		{"zeropage", []byte{0x44, 0x10}, 3},
		{"zeropage-x", []byte{0x54, 0x10}, 4},
		{"absolute", []byte{0x5C, 0x00, 0x30}, 8},
		{"absolute-x", []byte{0xDC, 0x00, 0x30}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, mem := newFixture(t)
			mem.Load(0x0200, tc.program)
			pcBefore := c.Regs.PC
			consumed := c.Step()
			if c.Halted {
				t.Fatalf("reserved opcode %#02x halted unexpectedly", tc.program[0])
			}
			if consumed != tc.cycles {
				t.Fatalf("opcode %#02x: expected %d cycles, got %d", tc.program[0], tc.cycles, consumed)
			}
			if c.Regs.PC != pcBefore+uint16(len(tc.program)) {
				t.Fatalf("opcode %#02x: expected PC to advance past %d operand bytes, got PC=%#04x", tc.program[0], len(tc.program)-1, c.Regs.PC)
			}
		})
	}
}

func TestWaiHaltsUntilSignalThenResumes(t *testing.T) {
	c, mem := newFixture(t)
	mem.Load(0x0200, []byte{0xCB}) // WAI
	c.Step()
	if !c.Halted || c.HaltReason != HaltWai {
		t.Fatalf("expected WAI halt, halted=%v reason=%v", c.Halted, c.HaltReason)
	}
	// No pending signal: stays halted.
	consumed := c.Step()
	if consumed != 0 || !c.Halted {
		t.Fatal("expected WAI to remain halted with no pending signal")
	}
	c.Signals.AssertNMI()
	mem.Load(0xFFFA, []byte{0x00, 0x50})
	c.Step()
	if c.Halted {
		t.Fatal("expected WAI to wake on pending NMI")
	}
	if c.Regs.PC != 0x5000 {
		t.Fatalf("expected NMI service to vector after waking, got %#04x", c.Regs.PC)
	}
}

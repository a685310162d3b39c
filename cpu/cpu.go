/*
 * Pocket2e - CPU register file and step loop.
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

// Package cpu implements the 65C02 register file, instruction decode and
// dispatch, addressing modes, interrupt sequencing, and the before/after
// step hooks that drive the debugger.
package cpu

import (
	"log/slog"

	"github.com/rcornwell/pocket2e/bus"
	"github.com/rcornwell/pocket2e/debugger"
	"github.com/rcornwell/pocket2e/scheduler"
	"github.com/rcornwell/pocket2e/trap"
)

// HaltReason records why the CPU stopped executing instructions.
type HaltReason int

const (
	HaltNone HaltReason = iota
	HaltStp
	HaltWai
	HaltIllegalOpcode
)

func (h HaltReason) String() string {
	switch h {
	case HaltNone:
		return "None"
	case HaltStp:
		return "Stp"
	case HaltWai:
		return "Wai"
	case HaltIllegalOpcode:
		return "IllegalOpcode"
	default:
		return "Unknown"
	}
}

// Registers is the 65C02 register file.
type Registers struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
}

// CpuState is the full interpreter state: registers, cycle count, halt
// tracking, and the optional collaborators (debugger listener, trap
// registry, signal bus) consulted on every step.
type CpuState struct {
	Regs Registers

	Cycles      uint64
	Halted      bool
	HaltReason  HaltReason
	PendingStop bool

	Bus      *bus.PageTable
	Signals  *scheduler.SignalBus
	Clock    *scheduler.Clock
	Debugger debugger.Listener
	Traps    *trap.Registry
	Logger   *slog.Logger

	sourceID string
}

// New returns a CpuState wired to the given bus and signal bus. Debugger
// and Traps are optional and may be left nil/zero-valued.
func New(memBus *bus.PageTable, signals *scheduler.SignalBus, clock *scheduler.Clock) *CpuState {
	return &CpuState{Bus: memBus, Signals: signals, Clock: clock, sourceID: "cpu"}
}

// IsHalted reports whether the CPU has halted (STP, WAI pending an
// unmasked wake condition, or an illegal opcode).
func (c *CpuState) IsHalted() bool {
	return c.Halted
}

// IsStopRequested reports whether a debugger listener has called
// RequestStop and it has not yet been serviced.
func (c *CpuState) IsStopRequested() bool {
	return c.PendingStop
}

// SetPC overrides the program counter, used by debugger.Execute to start
// at a given entry point.
func (c *CpuState) SetPC(addr uint16) {
	c.Regs.PC = addr
}

// RequestStop asks the run loop to stop before the next step executes.
// Per spec the next step observes this, returns 0 cycles, and leaves
// state untouched — it is not a hard abort of the current step.
func (c *CpuState) RequestStop() {
	c.PendingStop = true
}

// readByte performs a single-byte bus read. isFetch selects
// InstructionFetch intent (opcode and operand bytes); otherwise DataRead.
func (c *CpuState) readByte(addr uint16, isFetch bool) uint8 {
	intent := bus.DataRead
	if isFetch {
		intent = bus.InstructionFetch
	}
	v := c.Bus.Read(bus.Access{Address: addr, Width: 8, Intent: intent, Cycle: c.Cycles, SourceID: c.sourceID})
	return v
}

func (c *CpuState) writeByte(addr uint16, value uint8) {
	c.Bus.Write(bus.Access{Address: addr, Width: 8, Intent: bus.DataWrite, Cycle: c.Cycles, SourceID: c.sourceID}, value)
}

// Peek performs a side-effect-free read, satisfying trap.Bus and serving
// external debug consumers.
func (c *CpuState) Peek(addr uint16) uint8 {
	return c.Bus.Read(bus.Access{Address: addr, Width: 8, Intent: bus.DebugRead, Cycle: c.Cycles, SourceID: c.sourceID})
}

// Poke performs a side-effect-free write (e.g. test-ROM patching),
// satisfying trap.Bus.
func (c *CpuState) Poke(addr uint16, value uint8) {
	c.Bus.Write(bus.Access{Address: addr, Width: 8, Intent: bus.DebugWrite, Cycle: c.Cycles, SourceID: c.sourceID}, value)
}

// pushByte pushes v onto the emulated stack at $0100|SP, decrementing SP.
func (c *CpuState) pushByte(v uint8) {
	c.writeByte(0x0100|uint16(c.Regs.SP), v)
	c.Regs.SP--
}

// PullByte pulls a byte from the emulated stack, incrementing SP first.
// Exported to satisfy trap.Bus (trap handlers synthesizing RTS/RTI pop
// the return address/flags themselves).
func (c *CpuState) PullByte() uint8 {
	c.Regs.SP++
	return c.readByte(0x0100|uint16(c.Regs.SP), false)
}

// PullFlags pulls P from the stack without forcing the B/1 bits, mirroring
// PLP/RTI semantics. Exported to satisfy trap.Bus.
func (c *CpuState) PullFlags() uint8 {
	return c.PullByte()
}

func (c *CpuState) pushWord(v uint16) {
	c.pushByte(uint8(v >> 8))
	c.pushByte(uint8(v))
}

func (c *CpuState) pullWord() uint16 {
	lo := c.PullByte()
	hi := c.PullByte()
	return uint16(lo) | uint16(hi)<<8
}

// Reset performs the cold-reset sequence: clears halt state, sets SP to
// 0xFF, loads PC from the reset vector, clears pending stop. Bank-switch
// controllers (Language Card, Aux Memory) are NOT reset here — callers
// wanting a true cold boot reset those controllers explicitly.
func (c *CpuState) Reset() {
	c.Halted = false
	c.HaltReason = HaltNone
	c.PendingStop = false
	c.Regs.SP = 0xFF
	c.Regs.P = uint8(Flag1 | FlagI)
	c.Regs.PC = c.Bus.ReadWord(0xFFFC, bus.DataRead, c.Cycles, c.sourceID)
}

// Step advances the CPU by exactly one instruction (or interrupt
// sequence, or trap), following the ten-step contract: halt/stop checks,
// interrupt servicing, debugger before-hook, trap dispatch, fetch/decode/
// execute, cycle accounting, illegal-opcode handling, debugger after-hook.
func (c *CpuState) Step() uint16 {
	if c.Halted {
		if c.HaltReason == HaltStp {
			return 0
		}
		if c.HaltReason == HaltWai {
			if c.Signals != nil && (c.Signals.NMIPending() || (c.Signals.IRQAsserted() && !c.Regs.getFlag(FlagI))) {
				c.Halted = false
				c.HaltReason = HaltNone
			} else {
				return 0
			}
		}
	}

	if c.PendingStop {
		return 0
	}

	if consumed, handled := c.serviceInterrupts(); handled {
		return consumed
	}

	pcBefore := c.Regs.PC
	var beforeEvent debugger.StepEvent
	if c.Debugger != nil {
		beforeEvent = c.snapshotEvent(pcBefore, 0, 0)
		c.Debugger.OnBeforeStep(beforeEvent)
	}

	if c.Traps != nil {
		result := c.Traps.TryExecute(c.Regs.PC, c, c)
		if result.Handled {
			c.applyTrapResult(result)
			c.Cycles += uint64(result.CyclesConsumed)
			if c.Clock != nil {
				c.Clock.Advance(uint64(result.CyclesConsumed))
			}
			if c.Debugger != nil {
				c.Debugger.OnAfterStep(c.snapshotEvent(pcBefore, 0, result.CyclesConsumed))
			}
			return result.CyclesConsumed
		}
	}

	opcode := c.readByte(c.Regs.PC, true)
	c.Regs.PC++

	entry := opcodeTable[opcode]
	var consumed uint16
	if entry.Exec == nil {
		c.Halted = true
		c.HaltReason = HaltIllegalOpcode
		consumed = 1
		if c.Logger != nil {
			c.Logger.Warn("illegal opcode", "pc", pcBefore, "opcode", opcode)
		}
	} else {
		addr, crossed := c.resolve(entry.Mode)
		cycles := uint16(entry.Base)
		if entry.PageCrossExtra && crossed {
			cycles++
		}
		extra := entry.Exec(c, addr)
		cycles += extra
		consumed = cycles
	}

	c.Cycles += uint64(consumed)
	if c.Clock != nil {
		c.Clock.Advance(uint64(consumed))
	}

	if c.Debugger != nil {
		c.Debugger.OnAfterStep(c.snapshotEvent(pcBefore, opcode, consumed))
	}
	return consumed
}

func (c *CpuState) snapshotEvent(pc uint16, opcode uint8, cycles uint16) debugger.StepEvent {
	entry := opcodeTable[opcode]
	return debugger.StepEvent{
		PC:             pc,
		Opcode:         opcode,
		Mnemonic:       entry.Mnemonic,
		A:              c.Regs.A,
		X:              c.Regs.X,
		Y:              c.Regs.Y,
		SP:             c.Regs.SP,
		P:              c.Regs.P,
		Halted:         c.Halted,
		HaltReason:     int(c.HaltReason),
		CyclesConsumed: cycles,
		RequestStop:    c.RequestStop,
	}
}


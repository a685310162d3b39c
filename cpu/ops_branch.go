/*
 * Pocket2e - Branch, jump, and subroutine/interrupt-return instructions.
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

import "github.com/rcornwell/pocket2e/bus"

func registerBranch() {
	def(0x90, "BCC", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return !c.Regs.getFlag(FlagC) }))
	def(0xB0, "BCS", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return c.Regs.getFlag(FlagC) }))
	def(0xF0, "BEQ", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return c.Regs.getFlag(FlagZ) }))
	def(0xD0, "BNE", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return !c.Regs.getFlag(FlagZ) }))
	def(0x30, "BMI", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return c.Regs.getFlag(FlagN) }))
	def(0x10, "BPL", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return !c.Regs.getFlag(FlagN) }))
	def(0x50, "BVC", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return !c.Regs.getFlag(FlagV) }))
	def(0x70, "BVS", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return c.Regs.getFlag(FlagV) }))
	def(0x80, "BRA", ModeRelative, 2, false, makeBranch(func(c *CpuState) bool { return true }))

	def(0x4C, "JMP", ModeAbsolute, 3, false, opJMP)
	def(0x6C, "JMP", ModeIndirect, 6, false, opJMP)
	def(0x7C, "JMP", ModeAbsoluteIndirectX, 6, false, opJMP)

	def(0x20, "JSR", ModeAbsolute, 6, false, opJSR)
	def(0x60, "RTS", ModeImplied, 6, false, opRTS)

	def(0x00, "BRK", ModeImplied, 7, false, opBRK)
	def(0x40, "RTI", ModeImplied, 6, false, opRTI)
}

// makeBranch returns an Exec that takes the relative branch resolved by
// ModeRelative when cond holds. resolve already leaves PC at the fall-
// through address and addr at the computed target; taking the branch
// costs one extra cycle, two if it crosses a page boundary.
func makeBranch(cond func(c *CpuState) bool) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, addr uint16) uint16 {
		if !cond(c) {
			return 0
		}
		crossed := pageCrossed(c.Regs.PC, addr)
		c.Regs.PC = addr
		if crossed {
			return 2
		}
		return 1
	}
}

func opJMP(c *CpuState, addr uint16) uint16 {
	c.Regs.PC = addr
	return 0
}

// opJSR pushes the address of the last byte of the JSR instruction (one
// less than the next instruction's address, which resolve has already
// left PC pointing at) and jumps to addr.
func opJSR(c *CpuState, addr uint16) uint16 {
	c.pushWord(c.Regs.PC - 1)
	c.Regs.PC = addr
	return 0
}

func opRTS(c *CpuState, _ uint16) uint16 {
	c.Regs.PC = c.pullWord() + 1
	return 0
}

// opBRK consumes the signature byte following the opcode (the classic
// 6502 BRK pads its return address by one), pushes PC, P with B set, sets
// I, clears D (CMOS behavior), and vectors through $FFFE/$FFFF.
func opBRK(c *CpuState, _ uint16) uint16 {
	c.fetchOperandByte()
	c.pushWord(c.Regs.PC)
	c.pushByte(c.Regs.P | uint8(FlagB) | uint8(Flag1))
	c.Regs.setFlag(FlagI, true)
	c.Regs.setFlag(FlagD, false)
	c.Regs.PC = c.Bus.ReadWord(0xFFFE, bus.DataRead, c.Cycles, c.sourceID)
	return 0
}

func opRTI(c *CpuState, _ uint16) uint16 {
	c.Regs.P = c.PullFlags() | uint8(Flag1)
	c.Regs.PC = c.pullWord()
	return 0
}

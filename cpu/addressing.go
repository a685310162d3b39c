/*
 * Pocket2e - Addressing mode evaluators.
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

// Mode identifies an addressing mode. The X and Y variants of ZeroPage and
// Absolute indexing each get their own evaluator; the read and write forms
// of AbsoluteX/Y and IndirectY share one, since their cycle cost differs by
// opcode (OpEntry.Base and PageCrossExtra), not by mode alone. Accumulator, the 65C02
// zero-page-indirect mode, and Relative (branches) are added to cover the
// complete instruction set.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeZeroPageIndirect
	ModeRelative
	// ModeZeroPageRelative is BBR/BBS's operand shape: a zero-page address
	// followed by a relative displacement. resolve returns the zero-page
	// address; the displacement is fetched separately by the BBR/BBS
	// handler once it knows whether the branch is taken.
	ModeZeroPageRelative
	// ModeAbsoluteIndirectX is JMP (addr,X) — 65C02-only: a 16-bit base is
	// indexed by X before the pointer dereference, unlike plain Indirect.
	ModeAbsoluteIndirectX
)

// fetchOperandByte reads the byte at PC with instruction-fetch intent
// (operand bytes are fetched as part of the instruction stream, same as
// the opcode byte) and advances PC.
func (c *CpuState) fetchOperandByte() uint8 {
	v := c.readByte(c.Regs.PC, true)
	c.Regs.PC++
	return v
}

func (c *CpuState) fetchOperandWord() uint16 {
	lo := c.fetchOperandByte()
	hi := c.fetchOperandByte()
	return uint16(lo) | uint16(hi)<<8
}

// resolve computes the effective address for mode, consuming operand
// bytes from PC as needed, and reports whether an indexed access crossed
// a page boundary (relevant only to Absolute X/Y and IndirectY).
func (c *CpuState) resolve(mode Mode) (addr uint16, crossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false
	case ModeImmediate:
		addr = c.Regs.PC
		c.Regs.PC++
		return addr, false
	case ModeZeroPage:
		return uint16(c.fetchOperandByte()), false
	case ModeZeroPageX:
		return uint16(c.fetchOperandByte() + c.Regs.X), false
	case ModeZeroPageY:
		return uint16(c.fetchOperandByte() + c.Regs.Y), false
	case ModeAbsolute:
		return c.fetchOperandWord(), false
	case ModeAbsoluteX:
		base := c.fetchOperandWord()
		addr = base + uint16(c.Regs.X)
		return addr, pageCrossed(base, addr)
	case ModeAbsoluteY:
		base := c.fetchOperandWord()
		addr = base + uint16(c.Regs.Y)
		return addr, pageCrossed(base, addr)
	case ModeIndirect:
		ptr := c.fetchOperandWord()
		lo := c.readByte(ptr, false)
		hi := c.readByte(ptr+1, false)
		return uint16(lo) | uint16(hi)<<8, false
	case ModeIndirectX:
		zp := c.fetchOperandByte() + c.Regs.X
		lo := c.readByte(uint16(zp), false)
		hi := c.readByte(uint16(zp+1), false)
		return uint16(lo) | uint16(hi)<<8, false
	case ModeIndirectY:
		zp := c.fetchOperandByte()
		lo := c.readByte(uint16(zp), false)
		hi := c.readByte(uint16(zp+1), false)
		base := uint16(lo) | uint16(hi)<<8
		addr = base + uint16(c.Regs.Y)
		return addr, pageCrossed(base, addr)
	case ModeZeroPageIndirect:
		zp := c.fetchOperandByte()
		lo := c.readByte(uint16(zp), false)
		hi := c.readByte(uint16(zp+1), false)
		return uint16(lo) | uint16(hi)<<8, false
	case ModeRelative:
		disp := int8(c.fetchOperandByte())
		addr = uint16(int32(c.Regs.PC) + int32(disp))
		return addr, pageCrossed(c.Regs.PC, addr)
	case ModeZeroPageRelative:
		return uint16(c.fetchOperandByte()), false
	case ModeAbsoluteIndirectX:
		ptr := c.fetchOperandWord() + uint16(c.Regs.X)
		lo := c.readByte(ptr, false)
		hi := c.readByte(ptr+1, false)
		return uint16(lo) | uint16(hi)<<8, false
	}
	return 0, false
}

// pageCrossed reports whether base and addr lie on different 256-byte
// pages.
func pageCrossed(base, addr uint16) bool {
	return base&0xFF00 != addr&0xFF00
}

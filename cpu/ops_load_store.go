/*
 * Pocket2e - Load, store, and transfer instructions.
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

func registerLoadStore() {
	// LDA
	def(0xA9, "LDA", ModeImmediate, 2, false, opLDA)
	def(0xA5, "LDA", ModeZeroPage, 3, false, opLDA)
	def(0xB5, "LDA", ModeZeroPageX, 4, false, opLDA)
	def(0xAD, "LDA", ModeAbsolute, 4, false, opLDA)
	def(0xBD, "LDA", ModeAbsoluteX, 4, true, opLDA)
	def(0xB9, "LDA", ModeAbsoluteY, 4, true, opLDA)
	def(0xA1, "LDA", ModeIndirectX, 6, false, opLDA)
	def(0xB1, "LDA", ModeIndirectY, 5, true, opLDA)
	def(0xB2, "LDA", ModeZeroPageIndirect, 5, false, opLDA)

	// LDX
	def(0xA2, "LDX", ModeImmediate, 2, false, opLDX)
	def(0xA6, "LDX", ModeZeroPage, 3, false, opLDX)
	def(0xB6, "LDX", ModeZeroPageY, 4, false, opLDX)
	def(0xAE, "LDX", ModeAbsolute, 4, false, opLDX)
	def(0xBE, "LDX", ModeAbsoluteY, 4, true, opLDX)

	// LDY
	def(0xA0, "LDY", ModeImmediate, 2, false, opLDY)
	def(0xA4, "LDY", ModeZeroPage, 3, false, opLDY)
	def(0xB4, "LDY", ModeZeroPageX, 4, false, opLDY)
	def(0xAC, "LDY", ModeAbsolute, 4, false, opLDY)
	def(0xBC, "LDY", ModeAbsoluteX, 4, true, opLDY)

	// STA
	def(0x85, "STA", ModeZeroPage, 3, false, opSTA)
	def(0x95, "STA", ModeZeroPageX, 4, false, opSTA)
	def(0x8D, "STA", ModeAbsolute, 4, false, opSTA)
	def(0x9D, "STA", ModeAbsoluteX, 5, false, opSTA)
	def(0x99, "STA", ModeAbsoluteY, 5, false, opSTA)
	def(0x81, "STA", ModeIndirectX, 6, false, opSTA)
	def(0x91, "STA", ModeIndirectY, 6, false, opSTA)
	def(0x92, "STA", ModeZeroPageIndirect, 5, false, opSTA)

	// STX / STY
	def(0x86, "STX", ModeZeroPage, 3, false, opSTX)
	def(0x96, "STX", ModeZeroPageY, 4, false, opSTX)
	def(0x8E, "STX", ModeAbsolute, 4, false, opSTX)
	def(0x84, "STY", ModeZeroPage, 3, false, opSTY)
	def(0x94, "STY", ModeZeroPageX, 4, false, opSTY)
	def(0x8C, "STY", ModeAbsolute, 4, false, opSTY)

	// STZ (65C02)
	def(0x64, "STZ", ModeZeroPage, 3, false, opSTZ)
	def(0x74, "STZ", ModeZeroPageX, 4, false, opSTZ)
	def(0x9C, "STZ", ModeAbsolute, 4, false, opSTZ)
	def(0x9E, "STZ", ModeAbsoluteX, 5, false, opSTZ)

	// Transfers
	def(0xAA, "TAX", ModeImplied, 2, false, opTAX)
	def(0xA8, "TAY", ModeImplied, 2, false, opTAY)
	def(0x8A, "TXA", ModeImplied, 2, false, opTXA)
	def(0x98, "TYA", ModeImplied, 2, false, opTYA)
	def(0xBA, "TSX", ModeImplied, 2, false, opTSX)
	def(0x9A, "TXS", ModeImplied, 2, false, opTXS)
}

func opLDA(c *CpuState, addr uint16) uint16 {
	c.Regs.A = c.readByte(addr, false)
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opLDX(c *CpuState, addr uint16) uint16 {
	c.Regs.X = c.readByte(addr, false)
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opLDY(c *CpuState, addr uint16) uint16 {
	c.Regs.Y = c.readByte(addr, false)
	c.Regs.setZN(c.Regs.Y)
	return 0
}

func opSTA(c *CpuState, addr uint16) uint16 {
	c.writeByte(addr, c.Regs.A)
	return 0
}

func opSTX(c *CpuState, addr uint16) uint16 {
	c.writeByte(addr, c.Regs.X)
	return 0
}

func opSTY(c *CpuState, addr uint16) uint16 {
	c.writeByte(addr, c.Regs.Y)
	return 0
}

func opSTZ(c *CpuState, addr uint16) uint16 {
	c.writeByte(addr, 0)
	return 0
}

func opTAX(c *CpuState, _ uint16) uint16 {
	c.Regs.X = c.Regs.A
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opTAY(c *CpuState, _ uint16) uint16 {
	c.Regs.Y = c.Regs.A
	c.Regs.setZN(c.Regs.Y)
	return 0
}

func opTXA(c *CpuState, _ uint16) uint16 {
	c.Regs.A = c.Regs.X
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opTYA(c *CpuState, _ uint16) uint16 {
	c.Regs.A = c.Regs.Y
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opTSX(c *CpuState, _ uint16) uint16 {
	c.Regs.X = c.Regs.SP
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opTXS(c *CpuState, _ uint16) uint16 {
	c.Regs.SP = c.Regs.X
	return 0
}

/*
 * Pocket2e - Shift and rotate instructions.
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

func registerShift() {
	def(0x0A, "ASL", ModeAccumulator, 2, false, opASLAcc)
	def(0x06, "ASL", ModeZeroPage, 5, false, opASLMem)
	def(0x16, "ASL", ModeZeroPageX, 6, false, opASLMem)
	def(0x0E, "ASL", ModeAbsolute, 6, false, opASLMem)
	def(0x1E, "ASL", ModeAbsoluteX, 7, false, opASLMem)

	def(0x4A, "LSR", ModeAccumulator, 2, false, opLSRAcc)
	def(0x46, "LSR", ModeZeroPage, 5, false, opLSRMem)
	def(0x56, "LSR", ModeZeroPageX, 6, false, opLSRMem)
	def(0x4E, "LSR", ModeAbsolute, 6, false, opLSRMem)
	def(0x5E, "LSR", ModeAbsoluteX, 7, false, opLSRMem)

	def(0x2A, "ROL", ModeAccumulator, 2, false, opROLAcc)
	def(0x26, "ROL", ModeZeroPage, 5, false, opROLMem)
	def(0x36, "ROL", ModeZeroPageX, 6, false, opROLMem)
	def(0x2E, "ROL", ModeAbsolute, 6, false, opROLMem)
	def(0x3E, "ROL", ModeAbsoluteX, 7, false, opROLMem)

	def(0x6A, "ROR", ModeAccumulator, 2, false, opRORAcc)
	def(0x66, "ROR", ModeZeroPage, 5, false, opRORMem)
	def(0x76, "ROR", ModeZeroPageX, 6, false, opRORMem)
	def(0x6E, "ROR", ModeAbsolute, 6, false, opRORMem)
	def(0x7E, "ROR", ModeAbsoluteX, 7, false, opRORMem)
}

func opASLAcc(c *CpuState, _ uint16) uint16 {
	c.Regs.setFlag(FlagC, c.Regs.A&0x80 != 0)
	c.Regs.A <<= 1
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opASLMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

func opLSRAcc(c *CpuState, _ uint16) uint16 {
	c.Regs.setFlag(FlagC, c.Regs.A&0x01 != 0)
	c.Regs.A >>= 1
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opLSRMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

func opROLAcc(c *CpuState, _ uint16) uint16 {
	oldC := uint8(0)
	if c.Regs.getFlag(FlagC) {
		oldC = 1
	}
	c.Regs.setFlag(FlagC, c.Regs.A&0x80 != 0)
	c.Regs.A = (c.Regs.A << 1) | oldC
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opROLMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	oldC := uint8(0)
	if c.Regs.getFlag(FlagC) {
		oldC = 1
	}
	c.Regs.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | oldC
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

func opRORAcc(c *CpuState, _ uint16) uint16 {
	oldC := uint8(0)
	if c.Regs.getFlag(FlagC) {
		oldC = 0x80
	}
	c.Regs.setFlag(FlagC, c.Regs.A&0x01 != 0)
	c.Regs.A = (c.Regs.A >> 1) | oldC
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opRORMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	oldC := uint8(0)
	if c.Regs.getFlag(FlagC) {
		oldC = 0x80
	}
	c.Regs.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | oldC
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

/*
 * Pocket2e - Flag, increment/decrement, NOP, and CPU-control instructions.
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

func registerMisc() {
	def(0x18, "CLC", ModeImplied, 2, false, makeFlagOp(FlagC, false))
	def(0x38, "SEC", ModeImplied, 2, false, makeFlagOp(FlagC, true))
	def(0x58, "CLI", ModeImplied, 2, false, makeFlagOp(FlagI, false))
	def(0x78, "SEI", ModeImplied, 2, false, makeFlagOp(FlagI, true))
	def(0xD8, "CLD", ModeImplied, 2, false, makeFlagOp(FlagD, false))
	def(0xF8, "SED", ModeImplied, 2, false, makeFlagOp(FlagD, true))
	def(0xB8, "CLV", ModeImplied, 2, false, makeFlagOp(FlagV, false))

	def(0xE6, "INC", ModeZeroPage, 5, false, opINCMem)
	def(0xF6, "INC", ModeZeroPageX, 6, false, opINCMem)
	def(0xEE, "INC", ModeAbsolute, 6, false, opINCMem)
	def(0xFE, "INC", ModeAbsoluteX, 7, false, opINCMem)
	def(0x1A, "INC", ModeAccumulator, 2, false, opINA)

	def(0xC6, "DEC", ModeZeroPage, 5, false, opDECMem)
	def(0xD6, "DEC", ModeZeroPageX, 6, false, opDECMem)
	def(0xCE, "DEC", ModeAbsolute, 6, false, opDECMem)
	def(0xDE, "DEC", ModeAbsoluteX, 7, false, opDECMem)
	def(0x3A, "DEC", ModeAccumulator, 2, false, opDEA)

	def(0xE8, "INX", ModeImplied, 2, false, opINX)
	def(0xC8, "INY", ModeImplied, 2, false, opINY)
	def(0xCA, "DEX", ModeImplied, 2, false, opDEX)
	def(0x88, "DEY", ModeImplied, 2, false, opDEY)

	def(0xEA, "NOP", ModeImplied, 2, false, opNOP)

	def(0xDB, "STP", ModeImplied, 3, false, opSTP)
	def(0xCB, "WAI", ModeImplied, 3, false, opWAI)

	registerReservedNOPs()
}

// registerReservedNOPs fills the 44 opcode slots the 65C02 datasheet marks
// reserved rather than illegal: on the WDC part they behave as NOPs of
// varying operand length and cycle count instead of halting the CPU. Without
// these, loading code that happens to carry one (common in self-modifying
// or padding bytes) would incorrectly halt with HaltIllegalOpcode.
func registerReservedNOPs() {
	oneByteNOPs := []uint8{
		0x03, 0x13, 0x23, 0x33, 0x43, 0x53, 0x63, 0x73, 0x83, 0x93, 0xA3, 0xB3, 0xC3, 0xD3, 0xE3, 0xF3,
		0x0B, 0x1B, 0x2B, 0x3B, 0x4B, 0x5B, 0x6B, 0x7B, 0x8B, 0x9B, 0xAB, 0xBB, 0xEB, 0xFB,
	}
	for _, op := range oneByteNOPs {
		def(op, "NOP", ModeImplied, 1, false, opNOP)
	}

	immediateNOPs := []uint8{0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2}
	for _, op := range immediateNOPs {
		def(op, "NOP", ModeImmediate, 2, false, opNOP)
	}

	def(0x44, "NOP", ModeZeroPage, 3, false, opNOP)

	zeroPageXNOPs := []uint8{0x54, 0xD4, 0xF4}
	for _, op := range zeroPageXNOPs {
		def(op, "NOP", ModeZeroPageX, 4, false, opNOP)
	}

	def(0x5C, "NOP", ModeAbsolute, 8, false, opNOP)

	absoluteXNOPs := []uint8{0xDC, 0xFC}
	for _, op := range absoluteXNOPs {
		def(op, "NOP", ModeAbsoluteX, 4, false, opNOP)
	}
}

func makeFlagOp(f Flag, v bool) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, _ uint16) uint16 {
		c.Regs.setFlag(f, v)
		return 0
	}
}

func opINCMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false) + 1
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

func opDECMem(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false) - 1
	c.writeByte(addr, v)
	c.Regs.setZN(v)
	return 0
}

func opINA(c *CpuState, _ uint16) uint16 {
	c.Regs.A++
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opDEA(c *CpuState, _ uint16) uint16 {
	c.Regs.A--
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opINX(c *CpuState, _ uint16) uint16 {
	c.Regs.X++
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opINY(c *CpuState, _ uint16) uint16 {
	c.Regs.Y++
	c.Regs.setZN(c.Regs.Y)
	return 0
}

func opDEX(c *CpuState, _ uint16) uint16 {
	c.Regs.X--
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opDEY(c *CpuState, _ uint16) uint16 {
	c.Regs.Y--
	c.Regs.setZN(c.Regs.Y)
	return 0
}

func opNOP(c *CpuState, _ uint16) uint16 {
	return 0
}

func opSTP(c *CpuState, _ uint16) uint16 {
	c.Halted = true
	c.HaltReason = HaltStp
	return 0
}

func opWAI(c *CpuState, _ uint16) uint16 {
	c.Halted = true
	c.HaltReason = HaltWai
	return 0
}

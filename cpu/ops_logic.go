/*
 * Pocket2e - Logical and bit-test instructions.
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

func registerLogic() {
	def(0x29, "AND", ModeImmediate, 2, false, opAND)
	def(0x25, "AND", ModeZeroPage, 3, false, opAND)
	def(0x35, "AND", ModeZeroPageX, 4, false, opAND)
	def(0x2D, "AND", ModeAbsolute, 4, false, opAND)
	def(0x3D, "AND", ModeAbsoluteX, 4, true, opAND)
	def(0x39, "AND", ModeAbsoluteY, 4, true, opAND)
	def(0x21, "AND", ModeIndirectX, 6, false, opAND)
	def(0x31, "AND", ModeIndirectY, 5, true, opAND)
	def(0x32, "AND", ModeZeroPageIndirect, 5, false, opAND)

	def(0x09, "ORA", ModeImmediate, 2, false, opORA)
	def(0x05, "ORA", ModeZeroPage, 3, false, opORA)
	def(0x15, "ORA", ModeZeroPageX, 4, false, opORA)
	def(0x0D, "ORA", ModeAbsolute, 4, false, opORA)
	def(0x1D, "ORA", ModeAbsoluteX, 4, true, opORA)
	def(0x19, "ORA", ModeAbsoluteY, 4, true, opORA)
	def(0x01, "ORA", ModeIndirectX, 6, false, opORA)
	def(0x11, "ORA", ModeIndirectY, 5, true, opORA)
	def(0x12, "ORA", ModeZeroPageIndirect, 5, false, opORA)

	def(0x49, "EOR", ModeImmediate, 2, false, opEOR)
	def(0x45, "EOR", ModeZeroPage, 3, false, opEOR)
	def(0x55, "EOR", ModeZeroPageX, 4, false, opEOR)
	def(0x4D, "EOR", ModeAbsolute, 4, false, opEOR)
	def(0x5D, "EOR", ModeAbsoluteX, 4, true, opEOR)
	def(0x59, "EOR", ModeAbsoluteY, 4, true, opEOR)
	def(0x41, "EOR", ModeIndirectX, 6, false, opEOR)
	def(0x51, "EOR", ModeIndirectY, 5, true, opEOR)
	def(0x52, "EOR", ModeZeroPageIndirect, 5, false, opEOR)

	def(0x89, "BIT", ModeImmediate, 2, false, opBITImmediate)
	def(0x24, "BIT", ModeZeroPage, 3, false, opBIT)
	def(0x34, "BIT", ModeZeroPageX, 4, false, opBIT)
	def(0x2C, "BIT", ModeAbsolute, 4, false, opBIT)
	def(0x3C, "BIT", ModeAbsoluteX, 4, true, opBIT)

	def(0x14, "TRB", ModeZeroPage, 5, false, opTRB)
	def(0x1C, "TRB", ModeAbsolute, 6, false, opTRB)
	def(0x04, "TSB", ModeZeroPage, 5, false, opTSB)
	def(0x0C, "TSB", ModeAbsolute, 6, false, opTSB)

	bbrOpcodes := [8]uint8{0x0F, 0x1F, 0x2F, 0x3F, 0x4F, 0x5F, 0x6F, 0x7F}
	bbsOpcodes := [8]uint8{0x8F, 0x9F, 0xAF, 0xBF, 0xCF, 0xDF, 0xEF, 0xFF}
	smbOpcodes := [8]uint8{0x87, 0x97, 0xA7, 0xB7, 0xC7, 0xD7, 0xE7, 0xF7}
	rmbOpcodes := [8]uint8{0x07, 0x17, 0x27, 0x37, 0x47, 0x57, 0x67, 0x77}
	for bit := uint(0); bit < 8; bit++ {
		b := bit
		def(bbrOpcodes[b], "BBR", ModeZeroPageRelative, 5, false, makeBBR(b))
		def(bbsOpcodes[b], "BBS", ModeZeroPageRelative, 5, false, makeBBS(b))
		def(smbOpcodes[b], "SMB", ModeZeroPage, 5, false, makeSMB(b))
		def(rmbOpcodes[b], "RMB", ModeZeroPage, 5, false, makeRMB(b))
	}
}

func opAND(c *CpuState, addr uint16) uint16 {
	c.Regs.A &= c.readByte(addr, false)
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opORA(c *CpuState, addr uint16) uint16 {
	c.Regs.A |= c.readByte(addr, false)
	c.Regs.setZN(c.Regs.A)
	return 0
}

func opEOR(c *CpuState, addr uint16) uint16 {
	c.Regs.A ^= c.readByte(addr, false)
	c.Regs.setZN(c.Regs.A)
	return 0
}

// opBIT sets Z from A&M, and N/V from bits 7/6 of the operand itself.
func opBIT(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagZ, c.Regs.A&v == 0)
	c.Regs.setFlag(FlagN, v&0x80 != 0)
	c.Regs.setFlag(FlagV, v&0x40 != 0)
	return 0
}

// opBITImmediate is the 65C02 BIT #imm form, which only affects Z (there
// are no N/V bits to read from an immediate operand's "memory").
func opBITImmediate(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagZ, c.Regs.A&v == 0)
	return 0
}

// opTRB clears bits in memory that are set in A, and sets Z from A&M
// (tested before the clear).
func opTRB(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagZ, c.Regs.A&v == 0)
	c.writeByte(addr, v&^c.Regs.A)
	return 0
}

// opTSB sets bits in memory that are set in A, and sets Z from A&M
// (tested before the set).
func opTSB(c *CpuState, addr uint16) uint16 {
	v := c.readByte(addr, false)
	c.Regs.setFlag(FlagZ, c.Regs.A&v == 0)
	c.writeByte(addr, v|c.Regs.A)
	return 0
}

func makeBBR(bit uint) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, addr uint16) uint16 {
		v := c.readByte(addr, false)
		disp := int8(c.fetchOperandByte())
		if v&(1<<bit) == 0 {
			target := uint16(int32(c.Regs.PC) + int32(disp))
			crossed := pageCrossed(c.Regs.PC, target)
			c.Regs.PC = target
			if crossed {
				return 2
			}
			return 1
		}
		return 0
	}
}

func makeBBS(bit uint) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, addr uint16) uint16 {
		v := c.readByte(addr, false)
		disp := int8(c.fetchOperandByte())
		if v&(1<<bit) != 0 {
			target := uint16(int32(c.Regs.PC) + int32(disp))
			crossed := pageCrossed(c.Regs.PC, target)
			c.Regs.PC = target
			if crossed {
				return 2
			}
			return 1
		}
		return 0
	}
}

func makeSMB(bit uint) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, addr uint16) uint16 {
		v := c.readByte(addr, false)
		c.writeByte(addr, v|(1<<bit))
		return 0
	}
}

func makeRMB(bit uint) func(c *CpuState, addr uint16) uint16 {
	return func(c *CpuState, addr uint16) uint16 {
		v := c.readByte(addr, false)
		c.writeByte(addr, v&^(1<<bit))
		return 0
	}
}

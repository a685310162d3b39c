/*
 * Pocket2e - Arithmetic and compare instructions.
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

func registerArithmetic() {
	def(0x69, "ADC", ModeImmediate, 2, false, opADC)
	def(0x65, "ADC", ModeZeroPage, 3, false, opADC)
	def(0x75, "ADC", ModeZeroPageX, 4, false, opADC)
	def(0x6D, "ADC", ModeAbsolute, 4, false, opADC)
	def(0x7D, "ADC", ModeAbsoluteX, 4, true, opADC)
	def(0x79, "ADC", ModeAbsoluteY, 4, true, opADC)
	def(0x61, "ADC", ModeIndirectX, 6, false, opADC)
	def(0x71, "ADC", ModeIndirectY, 5, true, opADC)
	def(0x72, "ADC", ModeZeroPageIndirect, 5, false, opADC)

	def(0xE9, "SBC", ModeImmediate, 2, false, opSBC)
	def(0xE5, "SBC", ModeZeroPage, 3, false, opSBC)
	def(0xF5, "SBC", ModeZeroPageX, 4, false, opSBC)
	def(0xED, "SBC", ModeAbsolute, 4, false, opSBC)
	def(0xFD, "SBC", ModeAbsoluteX, 4, true, opSBC)
	def(0xF9, "SBC", ModeAbsoluteY, 4, true, opSBC)
	def(0xE1, "SBC", ModeIndirectX, 6, false, opSBC)
	def(0xF1, "SBC", ModeIndirectY, 5, true, opSBC)
	def(0xF2, "SBC", ModeZeroPageIndirect, 5, false, opSBC)

	def(0xC9, "CMP", ModeImmediate, 2, false, opCMP)
	def(0xC5, "CMP", ModeZeroPage, 3, false, opCMP)
	def(0xD5, "CMP", ModeZeroPageX, 4, false, opCMP)
	def(0xCD, "CMP", ModeAbsolute, 4, false, opCMP)
	def(0xDD, "CMP", ModeAbsoluteX, 4, true, opCMP)
	def(0xD9, "CMP", ModeAbsoluteY, 4, true, opCMP)
	def(0xC1, "CMP", ModeIndirectX, 6, false, opCMP)
	def(0xD1, "CMP", ModeIndirectY, 5, true, opCMP)
	def(0xD2, "CMP", ModeZeroPageIndirect, 5, false, opCMP)

	def(0xE0, "CPX", ModeImmediate, 2, false, opCPX)
	def(0xE4, "CPX", ModeZeroPage, 3, false, opCPX)
	def(0xEC, "CPX", ModeAbsolute, 4, false, opCPX)

	def(0xC0, "CPY", ModeImmediate, 2, false, opCPY)
	def(0xC4, "CPY", ModeZeroPage, 3, false, opCPY)
	def(0xCC, "CPY", ModeAbsolute, 4, false, opCPY)
}

// adc implements ADC per CMOS 65C02 rules: binary mode is a standard
// 8-bit add with carry; decimal mode performs a digit-by-digit BCD
// adjustment with N/Z valid on the decimal result (the NMOS quirk where
// N/Z reflect the pre-adjustment binary sum does not apply here).
func (c *CpuState) adc(value uint8) {
	a := c.Regs.A
	carry := uint16(0)
	if c.Regs.getFlag(FlagC) {
		carry = 1
	}

	binSum := uint16(a) + uint16(value) + carry
	v := (uint16(a)^binSum)&(uint16(value)^binSum)&0x80 != 0

	if c.Regs.getFlag(FlagD) {
		lo := int(a&0xF) + int(value&0xF) + int(carry)
		carry1 := 0
		if lo > 9 {
			lo -= 10
			carry1 = 1
		}
		hi := int(a>>4) + int(value>>4) + carry1
		carryOut := false
		if hi > 9 {
			hi -= 10
			carryOut = true
		}
		result := uint8((hi << 4) | (lo & 0xF))
		c.Regs.A = result
		c.Regs.setFlag(FlagC, carryOut)
		c.Regs.setFlag(FlagV, v)
		c.Regs.setZN(result)
	} else {
		c.Regs.A = uint8(binSum)
		c.Regs.setFlag(FlagC, binSum > 0xFF)
		c.Regs.setFlag(FlagV, v)
		c.Regs.setZN(c.Regs.A)
	}
}

// sbc implements SBC per CMOS 65C02 rules, symmetric to adc.
func (c *CpuState) sbc(value uint8) {
	a := c.Regs.A
	carry := uint16(0)
	if c.Regs.getFlag(FlagC) {
		carry = 1
	}
	inv := ^value
	binSum := uint16(a) + uint16(inv) + carry
	binC := binSum > 0xFF
	v := (uint16(a)^binSum)&(uint16(inv)^binSum)&0x80 != 0

	if c.Regs.getFlag(FlagD) {
		borrow := 0
		if carry == 0 {
			borrow = 1
		}
		lo := int(a&0xF) - int(value&0xF) - borrow
		borrow1 := 0
		if lo < 0 {
			lo += 10
			borrow1 = 1
		}
		hi := int(a>>4) - int(value>>4) - borrow1
		borrowOut := 0
		if hi < 0 {
			hi += 10
			borrowOut = 1
		}
		result := uint8((hi << 4) | (lo & 0xF))
		c.Regs.A = result
		c.Regs.setFlag(FlagC, borrowOut == 0)
		c.Regs.setFlag(FlagV, v)
		c.Regs.setZN(result)
	} else {
		c.Regs.A = uint8(binSum)
		c.Regs.setFlag(FlagC, binC)
		c.Regs.setFlag(FlagV, v)
		c.Regs.setZN(c.Regs.A)
	}
}

func opADC(c *CpuState, addr uint16) uint16 {
	c.adc(c.readByte(addr, false))
	if c.Regs.getFlag(FlagD) {
		return 1
	}
	return 0
}

func opSBC(c *CpuState, addr uint16) uint16 {
	c.sbc(c.readByte(addr, false))
	if c.Regs.getFlag(FlagD) {
		return 1
	}
	return 0
}

func compare(c *CpuState, reg, operand uint8) {
	result := reg - operand
	c.Regs.setFlag(FlagC, reg >= operand)
	c.Regs.setFlag(FlagZ, reg == operand)
	c.Regs.setFlag(FlagN, result&0x80 != 0)
}

func opCMP(c *CpuState, addr uint16) uint16 {
	compare(c, c.Regs.A, c.readByte(addr, false))
	return 0
}

func opCPX(c *CpuState, addr uint16) uint16 {
	compare(c, c.Regs.X, c.readByte(addr, false))
	return 0
}

func opCPY(c *CpuState, addr uint16) uint16 {
	compare(c, c.Regs.Y, c.readByte(addr, false))
	return 0
}

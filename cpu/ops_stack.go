/*
 * Pocket2e - Stack push/pull instructions.
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

func registerStack() {
	def(0x48, "PHA", ModeImplied, 3, false, opPHA)
	def(0x68, "PLA", ModeImplied, 4, false, opPLA)
	def(0x08, "PHP", ModeImplied, 3, false, opPHP)
	def(0x28, "PLP", ModeImplied, 4, false, opPLP)
	def(0xDA, "PHX", ModeImplied, 3, false, opPHX)
	def(0xFA, "PLX", ModeImplied, 4, false, opPLX)
	def(0x5A, "PHY", ModeImplied, 3, false, opPHY)
	def(0x7A, "PLY", ModeImplied, 4, false, opPLY)
}

func opPHA(c *CpuState, _ uint16) uint16 {
	c.pushByte(c.Regs.A)
	return 0
}

func opPLA(c *CpuState, _ uint16) uint16 {
	c.Regs.A = c.PullByte()
	c.Regs.setZN(c.Regs.A)
	return 0
}

// opPHP pushes P with the B and unused bits forced set, matching the
// flags image BRK would push.
func opPHP(c *CpuState, _ uint16) uint16 {
	c.pushByte(c.Regs.P | uint8(FlagB) | uint8(Flag1))
	return 0
}

func opPLP(c *CpuState, _ uint16) uint16 {
	c.Regs.P = c.PullByte() | uint8(Flag1)
	return 0
}

func opPHX(c *CpuState, _ uint16) uint16 {
	c.pushByte(c.Regs.X)
	return 0
}

func opPLX(c *CpuState, _ uint16) uint16 {
	c.Regs.X = c.PullByte()
	c.Regs.setZN(c.Regs.X)
	return 0
}

func opPHY(c *CpuState, _ uint16) uint16 {
	c.pushByte(c.Regs.Y)
	return 0
}

func opPLY(c *CpuState, _ uint16) uint16 {
	c.Regs.Y = c.PullByte()
	c.Regs.setZN(c.Regs.Y)
	return 0
}

/*
 * Pocket2e - Interrupt sequencing and trap-result application.
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
	"github.com/rcornwell/pocket2e/bus"
	"github.com/rcornwell/pocket2e/trap"
)

// serviceInterrupts implements step 3: NMI takes priority over IRQ. Both
// push PCH, PCL, P (with B=0), set I, and vector through $FFFA/B or
// $FFFE/F, consuming 7 cycles.
func (c *CpuState) serviceInterrupts() (uint16, bool) {
	if c.Signals == nil {
		return 0, false
	}
	if c.Signals.NMIPending() {
		c.Signals.AcknowledgeNMI()
		c.serviceInterrupt(0xFFFA)
		return 7, true
	}
	if c.Signals.IRQAsserted() && !c.Regs.getFlag(FlagI) {
		c.serviceInterrupt(0xFFFE)
		return 7, true
	}
	return 0, false
}

func (c *CpuState) serviceInterrupt(vector uint16) {
	c.pushWord(c.Regs.PC)
	c.pushByte(c.Regs.P &^ uint8(FlagB))
	c.Regs.setFlag(FlagI, true)
	c.Regs.PC = c.Bus.ReadWord(vector, bus.DataRead, c.Cycles, c.sourceID)
	c.Cycles += 7
	if c.Clock != nil {
		c.Clock.Advance(7)
	}
	if c.Debugger != nil {
		c.Debugger.OnAfterStep(c.snapshotEvent(c.Regs.PC, 0, 7))
	}
}

// applyTrapResult resumes emulated execution after a trap handler runs,
// per the handler's requested return method.
func (c *CpuState) applyTrapResult(result trap.Result) {
	switch result.ReturnMethod {
	case trap.ReturnRts:
		addr := c.pullWord()
		c.Regs.PC = addr + 1
	case trap.ReturnRti:
		c.Regs.P = c.PullFlags() | uint8(Flag1)
		c.Regs.PC = c.pullWord()
	case trap.ReturnNone:
		if result.HasReturnAddr {
			c.Regs.PC = result.ReturnAddress
		}
		// else: handler already set PC directly.
	}
}

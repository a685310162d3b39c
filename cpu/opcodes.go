/*
 * Pocket2e - Opcode dispatch table.
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

// OpEntry describes one of the 256 opcode slots: its mnemonic (for
// debugger display), addressing mode, base cycle count (the datasheet
// count assuming no page cross), whether an indexed read pays a +1 page-
// cross penalty, and the function implementing its semantics. Exec
// returns any cycles beyond Base (branch-taken, decimal-mode ADC/SBC
// extra cycle, etc.) — most instructions return 0.
type OpEntry struct {
	Mnemonic       string
	Mode           Mode
	Base           uint8
	PageCrossExtra bool
	Exec           func(c *CpuState, addr uint16) uint16
}

// opcodeTable is the 256-entry dispatch table, built once at package
// init. A zero-value entry (Exec == nil) is an unimplemented opcode: the
// CPU halts with HaltIllegalOpcode.
var opcodeTable [256]OpEntry

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = OpEntry{Mnemonic: "???"}
	}
	registerLoadStore()
	registerArithmetic()
	registerLogic()
	registerShift()
	registerBranch()
	registerStack()
	registerMisc()
}

func def(opcode uint8, mnemonic string, mode Mode, base uint8, pageCrossExtra bool, exec func(c *CpuState, addr uint16) uint16) {
	opcodeTable[opcode] = OpEntry{Mnemonic: mnemonic, Mode: mode, Base: base, PageCrossExtra: pageCrossExtra, Exec: exec}
}

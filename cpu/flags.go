/*
 * Pocket2e - CPU status flags.
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

// Flag is one bit of the P register.
type Flag uint8

const (
	FlagC Flag = 1 << 0 // carry
	FlagZ Flag = 1 << 1 // zero
	FlagI Flag = 1 << 2 // IRQ disable
	FlagD Flag = 1 << 3 // decimal mode
	FlagB Flag = 1 << 4 // break, meaningful only in pushed copies
	Flag1 Flag = 1 << 5 // unused, always reads 1
	FlagV Flag = 1 << 6 // overflow
	FlagN Flag = 1 << 7 // negative
)

func (r *Registers) getFlag(f Flag) bool {
	return r.P&uint8(f) != 0
}

func (r *Registers) setFlag(f Flag, v bool) {
	if v {
		r.P |= uint8(f)
	} else {
		r.P &^= uint8(f)
	}
}

// setZN sets Z and N from an 8-bit result, the common tail of loads,
// transfers, logicals, shifts, and increments/decrements.
func (r *Registers) setZN(v uint8) {
	r.setFlag(FlagZ, v == 0)
	r.setFlag(FlagN, v&0x80 != 0)
}

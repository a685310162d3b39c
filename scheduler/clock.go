/*
 * Pocket2e - Cycle clock.
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

// Package scheduler provides the monotonic cycle clock and the signal bus
// (IRQ/NMI/RESET lines) that external devices use to pace themselves
// against the CPU and to request interrupts.
package scheduler

// Clock holds the sole time quantum: a monotonically increasing cycle
// count. Only the CPU advances it; everyone else only reads it.
type Clock struct {
	now uint64
}

// Now returns the current cycle count.
func (c *Clock) Now() uint64 {
	return c.now
}

// Advance adds n cycles to the clock. Called by the CPU after every step.
func (c *Clock) Advance(n uint64) {
	c.now += n
}

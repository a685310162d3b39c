/*
 * Pocket2e - Debug step hooks and run loop.
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

// Package debugger defines the before/after-step listener contract the
// CPU drives on every instruction, and the run-until-halt loop built on
// top of it.
package debugger

// StepEvent carries a snapshot of CPU state around one step. RequestStop,
// when called from within a listener callback, asks the next step to
// return immediately without executing anything.
type StepEvent struct {
	PC             uint16
	Opcode         uint8
	Mnemonic       string
	A, X, Y, SP    uint8
	P              uint8
	Halted         bool
	HaltReason     int
	CyclesConsumed uint16
	RequestStop    func()
}

// Listener is notified before and after every CPU step.
type Listener interface {
	OnBeforeStep(event StepEvent)
	OnAfterStep(event StepEvent)
}

// Stepper is the minimal contract Execute needs from a CPU: step once,
// report halt state, and accept a PC override to start execution at an
// entry point.
type Stepper interface {
	Step() uint16
	IsHalted() bool
	IsStopRequested() bool
	SetPC(addr uint16)
}

// Execute sets PC to entryPoint and steps cpu until it halts or a
// listener requests a stop.
func Execute(cpu Stepper, entryPoint uint16) {
	cpu.SetPC(entryPoint)
	for !cpu.IsHalted() && !cpu.IsStopRequested() {
		cpu.Step()
	}
}

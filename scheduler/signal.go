/*
 * Pocket2e - Signal bus.
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

package scheduler

import "sync"

// SignalBus tracks the IRQ, NMI, and RESET lines. IRQ is level-triggered
// with per-source asserter tracking; NMI is edge-triggered, latched until
// the CPU acknowledges it; RESET is a held/released flag reported by
// ResetHeld. The CPU does not read the RESET line: asserting or releasing
// it does not by itself reset the CPU, which is reset by calling Reset on
// the CPU or the machine.
//
// Every method, assertion and query alike, runs under the same short
// critical section.
type SignalBus struct {
	mu sync.Mutex

	irqSources map[string]bool
	nmiLatched bool
	nmiPrev    bool // previous asserted-state, to detect the rising edge
	resetHeld  bool
}

// NewSignalBus returns a signal bus with all lines clear.
func NewSignalBus() *SignalBus {
	return &SignalBus{irqSources: make(map[string]bool)}
}

// AssertIRQ marks sourceID as holding the IRQ line. Idempotent: asserting
// an already-asserted source by the same ID has no additional effect.
func (s *SignalBus) AssertIRQ(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.irqSources[sourceID] = true
}

// DeassertIRQ removes sourceID from the set of asserters. IRQ remains
// asserted while any other source remains.
func (s *SignalBus) DeassertIRQ(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.irqSources, sourceID)
}

// IRQAsserted reports whether any source currently holds IRQ.
func (s *SignalBus) IRQAsserted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.irqSources) > 0
}

// IRQHolders returns the set of source IDs currently asserting IRQ, for
// diagnostic reporting.
func (s *SignalBus) IRQHolders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	holders := make([]string, 0, len(s.irqSources))
	for id := range s.irqSources {
		holders = append(holders, id)
	}
	return holders
}

// AssertNMI raises the NMI line. Multiple rising edges before the CPU
// acknowledges collapse to a single pending latch.
func (s *SignalBus) AssertNMI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nmiPrev {
		s.nmiLatched = true
	}
	s.nmiPrev = true
}

// DeassertNMI lowers the NMI line, re-arming edge detection for the next
// rising edge. It does not itself clear a latched-but-unacknowledged NMI.
func (s *SignalBus) DeassertNMI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nmiPrev = false
}

// NMIPending reports whether an NMI edge is latched and not yet
// acknowledged.
func (s *SignalBus) NMIPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nmiLatched
}

// AcknowledgeNMI clears the latched NMI. Called by the CPU once it has
// begun servicing the interrupt.
func (s *SignalBus) AcknowledgeNMI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nmiLatched = false
}

// AssertReset holds the RESET line.
func (s *SignalBus) AssertReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetHeld = true
}

// DeassertReset releases RESET. It only changes what ResetHeld reports;
// no reset sequence is started.
func (s *SignalBus) DeassertReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetHeld = false
}

// ResetHeld reports whether RESET is currently asserted.
func (s *SignalBus) ResetHeld() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetHeld
}

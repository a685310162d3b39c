/*
 * Pocket2e - Bus access record.
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

package bus

// Mode distinguishes a record describing a sequence of 8-bit accesses from
// one describing a single atomic wider access.
type Mode uint8

const (
	Decomposed Mode = iota
	Atomic
)

// Intent records why an access is happening. DebugRead/DebugWrite are the
// contract for side-effect-free access: targets and soft-switch handlers
// MUST NOT mutate state in response to them.
type Intent uint8

const (
	InstructionFetch Intent = iota
	DataRead
	DataWrite
	DebugRead
	DebugWrite
)

// IsDebug reports whether this intent must not trigger side effects.
func (i Intent) IsDebug() bool {
	return i == DebugRead || i == DebugWrite
}

// IsWrite reports whether this intent is a write access.
func (i Intent) IsWrite() bool {
	return i == DataWrite || i == DebugWrite
}

func (i Intent) String() string {
	switch i {
	case InstructionFetch:
		return "InstructionFetch"
	case DataRead:
		return "DataRead"
	case DataWrite:
		return "DataWrite"
	case DebugRead:
		return "DebugRead"
	case DebugWrite:
		return "DebugWrite"
	default:
		return "Unknown"
	}
}

// Flags is a small bitset carried alongside an access for target-specific
// signalling (e.g. a slot card distinguishing an expansion-ROM-selecting
// access from an ordinary one).
type Flags uint8

const (
	FlagNone           Flags = 0
	FlagExpansionProbe Flags = 1 << 0
)

// Access is the structured record passed through every memory operation —
// CPU fetches, device reads, and debug peeks all flow through the same
// Access type, so the page table and bus targets need only one contract.
type Access struct {
	Address uint16
	Value   uint16 // for writes; for 16-bit reads, populated by the target
	Width   uint8  // 8 or 16
	Mode    Mode
	Intent  Intent
	SourceID string
	Cycle   uint64
	Flags   Flags
}

// Page returns the 8-bit page index of the access's address.
func (a Access) Page() uint8 {
	return uint8(a.Address >> 8)
}

// Offset returns the 8-bit offset within the page of the access's address.
func (a Access) Offset() uint8 {
	return uint8(a.Address & 0xFF)
}

/*
 * Pocket2e - Trap registry.
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

// Package trap implements the address- and memory-context-keyed hook
// table the CPU consults before every instruction dispatch, letting a
// host substitute native code for emulated routines (ROM entry points,
// firmware calls) and optionally synthesize a return.
package trap

import "fmt"

// MemoryContext tags which bank is visible at an address, so the same
// address can carry distinct handlers depending on what's banked in.
type MemoryContext string

const (
	ContextRom             MemoryContext = "Rom"
	ContextLanguageCardRam MemoryContext = "LanguageCardRam"
	ContextAuxiliaryRam    MemoryContext = "AuxiliaryRam"
)

// Category is a bitfield so callers can enable/disable whole classes of
// traps at once (e.g. turning off all monitor-ROM shortcuts while
// debugging firmware).
type Category uint32

const (
	MonitorRom Category = 1 << iota
	OperatingSystem
	SlotFirmware
	UserDefined
)

// ReturnMethod tells the CPU how to resume emulated execution after a
// handler runs; TryExecute only passes the handler's Result back.
type ReturnMethod int

const (
	ReturnNone ReturnMethod = iota
	ReturnRts
	ReturnRti
)

// Result is what a trap handler reports back.
type Result struct {
	CyclesConsumed uint16
	ReturnMethod   ReturnMethod
	ReturnAddress  uint16
	HasReturnAddr  bool
	Handled        bool
}

// Bus is the minimal memory contract a handler needs to pop return
// addresses/flags off the emulated stack and perform debug pokes. The cpu
// package's CpuState satisfies this.
type Bus interface {
	Poke(addr uint16, value uint8)
	Peek(addr uint16) uint8
	PullByte() uint8
	PullFlags() uint8
}

// Handler is invoked in place of the emulated code at a trapped address.
// It receives the CPU reference (so it may mutate registers, e.g. set
// PC/A directly) and the bus for stack/memory operations.
type Handler func(cpu any, bus Bus) Result

// Entry is one registered trap.
type Entry struct {
	Address     uint16
	Context     MemoryContext
	Name        string
	Category    Category
	Handler     Handler
	Enabled     bool
	Description string
}

type key struct {
	addr uint16
	ctx  MemoryContext
}

// Resolver maps the current PC to the MemoryContext in effect there.
type Resolver func(addr uint16) MemoryContext

// Registry is the address+context-keyed hook table.
type Registry struct {
	entries        map[key]*Entry
	categoryEnable map[Category]bool
	resolver       Resolver
}

// NewRegistry returns an empty registry using resolver to determine the
// memory context for a given PC at try_execute time.
func NewRegistry(resolver Resolver) *Registry {
	return &Registry{
		entries:        make(map[key]*Entry),
		categoryEnable: make(map[Category]bool),
		resolver:       resolver,
	}
}

func (r *Registry) categoryEnabled(c Category) bool {
	if v, ok := r.categoryEnable[c]; ok {
		return v
	}
	return true // categories default enabled
}

// Register installs a trap. Panics if (address, context) is already
// occupied.
func (r *Registry) Register(address uint16, context MemoryContext, name string,
	category Category, handler Handler, description string,
) {
	k := key{address, context}
	if _, exists := r.entries[k]; exists {
		panic(fmt.Sprintf("trap: duplicate trap at address %#04x context %s", address, context))
	}
	r.entries[k] = &Entry{
		Address: address, Context: context, Name: name, Category: category,
		Handler: handler, Enabled: true, Description: description,
	}
}

// RegisterLanguageCardRam is shorthand for Register with
// context=LanguageCardRam.
func (r *Registry) RegisterLanguageCardRam(address uint16, name string, category Category,
	handler Handler, description string,
) {
	r.Register(address, ContextLanguageCardRam, name, category, handler, description)
}

// Unregister removes the trap at (address, context), if present.
func (r *Registry) Unregister(address uint16, context MemoryContext) {
	delete(r.entries, key{address, context})
}

// UnregisterContext removes every trap registered under context.
func (r *Registry) UnregisterContext(context MemoryContext) {
	for k := range r.entries {
		if k.ctx == context {
			delete(r.entries, k)
		}
	}
}

// SetEnabled toggles a specific (address, context) trap.
func (r *Registry) SetEnabled(address uint16, context MemoryContext, enabled bool) {
	if e, ok := r.entries[key{address, context}]; ok {
		e.Enabled = enabled
	}
}

// SetCategoryEnabled toggles every trap whose category bit is set,
// globally, independent of each entry's own Enabled flag.
func (r *Registry) SetCategoryEnabled(category Category, enabled bool) {
	r.categoryEnable[category] = enabled
}

// HasTrap reports whether a trap is registered at (address, context),
// regardless of enabled state.
func (r *Registry) HasTrap(address uint16, context MemoryContext) bool {
	_, ok := r.entries[key{address, context}]
	return ok
}

// GetTrapsAt returns every entry registered at address across all
// contexts, for debug-UI consumption.
func (r *Registry) GetTrapsAt(address uint16) []*Entry {
	var out []*Entry
	for k, e := range r.entries {
		if k.addr == address {
			out = append(out, e)
		}
	}
	return out
}

// TryExecute resolves the memory context for pc, looks up a matching
// trap, and — if enabled and its category is enabled — invokes its
// handler. Returns handled=false if no trap fired.
func (r *Registry) TryExecute(pc uint16, cpu any, bus Bus) Result {
	context := r.resolver(pc)
	e, ok := r.entries[key{pc, context}]
	if !ok || !e.Enabled || !r.categoryEnabled(e.Category) {
		return Result{}
	}
	return e.Handler(cpu, bus)
}

/*
 * Pocket2e - Machine profile schema
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

// Package profile describes a machine in data rather than code: the
// declarative JSON document a machine builder (out of this core's scope)
// would read to decide what CPU, memory layout, controllers, slot cards,
// and devices to wire up, plus the ROM image verification policy applied
// while loading it. Nothing here builds a machine.Machine; it only
// (de)serializes the description of one.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// VerificationPolicy controls how a ROM image hash mismatch is handled
// while loading a profile.
type VerificationPolicy string

const (
	// PolicyStrict fails the build on any hash mismatch.
	PolicyStrict VerificationPolicy = "strict"
	// PolicyWarn logs the mismatch and proceeds with the image as loaded.
	PolicyWarn VerificationPolicy = "warn"
	// PolicyFallback substitutes a built-in or previously known-good
	// image when the hash doesn't match.
	PolicyFallback VerificationPolicy = "fallback"
)

// CPU describes the processor to instantiate and its nominal clock.
type CPU struct {
	Type       string  `json:"type"`
	ClockSpeed float64 `json:"clockSpeed"` // Hz
}

// PhysicalMemory describes one block of backing storage a machine builder
// allocates before wiring any region or controller to it.
type PhysicalMemory struct {
	ID        string `json:"id"`
	SizeBytes int    `json:"sizeBytes"`
	Kind      string `json:"kind"` // "ram" or "rom"
}

// MemoryRegion maps an address range onto a physical memory (or a named
// swap group, for bank-switched ranges).
type MemoryRegion struct {
	Name       string `json:"name"`
	Start      uint16 `json:"start"`
	End        uint16 `json:"end"`
	Physical   string `json:"physical,omitempty"`
	SwapGroup  string `json:"swapGroup,omitempty"`
	Writable   bool   `json:"writable"`
}

// SwapGroup names the set of physical memories a controller switches
// between for a shared region (e.g. the Language Card's ROM/RAM banks).
type SwapGroup struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Default string   `json:"default"`
}

// Controller describes a soft-switch controller and which swap groups it
// drives. Params carries controller-specific settings (e.g. a default
// bank) as opaque key/value pairs.
type Controller struct {
	Name       string            `json:"name"`
	SwapGroups []string          `json:"swapGroups,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

// ROMImage names a file to load into a physical memory, plus the optional
// integrity check spec.md §6.6 describes.
//
// Path may be library://, app://, embedded://Assembly/Resource, an
// absolute path, or a path relative to the profile file itself; resolving
// it is a machine-builder concern, out of this core's scope.
type ROMImage struct {
	Physical string             `json:"physical"`
	Path     string             `json:"path"`
	SHA256   string             `json:"sha256,omitempty"`
	Policy   VerificationPolicy `json:"policy,omitempty"`
}

// Verify computes the SHA-256 of data and checks it against i.SHA256
// under i.Policy. An empty SHA256 always passes (no hash was pinned).
// PolicyFallback returns ok=false on mismatch without an error, leaving
// the substitution decision to the caller; PolicyStrict returns an error;
// PolicyWarn returns ok=false and a nil error. An empty/unset Policy
// behaves like PolicyStrict.
func (i ROMImage) Verify(data []byte) (ok bool, err error) {
	if i.SHA256 == "" {
		return true, nil
	}
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if got == i.SHA256 {
		return true, nil
	}
	switch i.Policy {
	case PolicyWarn, PolicyFallback:
		return false, nil
	default:
		return false, fmt.Errorf("profile: ROM image %s: hash mismatch: want %s, got %s", i.Path, i.SHA256, got)
	}
}

// SlotCard describes a card to install in one of the eight peripheral
// slots.
type SlotCard struct {
	Slot int    `json:"slot"`
	Type string `json:"type"`
	ROM  string `json:"rom,omitempty"`
}

// Slots groups the card assignments.
type Slots struct {
	Cards []SlotCard `json:"cards,omitempty"`
}

// Devices names the built-in peripherals a machine builder wires up
// alongside the slot cards. Each field is an opaque type tag; building
// the actual device is out of this core's scope.
type Devices struct {
	Keyboard string `json:"keyboard,omitempty"`
	Speaker  string `json:"speaker,omitempty"`
	Video    string `json:"video,omitempty"`
	GameIO   string `json:"gameIO,omitempty"`
}

// Boot describes what happens immediately after the machine is built.
type Boot struct {
	AutoStart   bool `json:"autoStart"`
	StartupSlot int  `json:"startupSlot,omitempty"`
}

// Memory groups every memory-related section of a profile.
type Memory struct {
	Physical    []PhysicalMemory `json:"physical,omitempty"`
	Regions     []MemoryRegion   `json:"regions,omitempty"`
	SwapGroups  []SwapGroup      `json:"swapGroups,omitempty"`
	Controllers []Controller     `json:"controllers,omitempty"`
	ROMImages   []ROMImage       `json:"romImages,omitempty"`
}

// Profile is the full declarative description of a machine, per spec.md
// §6.5. It carries no behaviour of its own beyond (de)serialization and
// ROM verification; a machine builder reads one of these and produces a
// machine.Machine, but that builder is explicitly out of scope here.
type Profile struct {
	CPU          CPU    `json:"cpu"`
	AddressSpace int    `json:"addressSpace"`
	Memory       Memory `json:"memory"`
	Slots        Slots  `json:"slots,omitempty"`
	Devices      Devices `json:"devices,omitempty"`
	Boot         Boot    `json:"boot"`
}

// Serialize renders p as indented JSON.
func (p Profile) Serialize() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Deserialize parses data into a Profile.
func Deserialize(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: decode: %w", err)
	}
	return p, nil
}

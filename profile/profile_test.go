/*
 * Pocket2e - Machine profile schema tests.
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

package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"testing"
)

func fullProfile() Profile {
	return Profile{
		CPU:          CPU{Type: "65C02", ClockSpeed: 1020484},
		AddressSpace: 65536,
		Memory: Memory{
			Physical: []PhysicalMemory{
				{ID: "main-ram", SizeBytes: 65536, Kind: "ram"},
				{ID: "system-rom", SizeBytes: 12288, Kind: "rom"},
				{ID: "lc-bank1", SizeBytes: 4096, Kind: "ram"},
				{ID: "lc-bank2", SizeBytes: 4096, Kind: "ram"},
			},
			Regions: []MemoryRegion{
				{Name: "zero-page", Start: 0x0000, End: 0x01FF, Physical: "main-ram", Writable: true},
				{Name: "language-card", Start: 0xD000, End: 0xDFFF, SwapGroup: "lc-bank", Writable: true},
			},
			SwapGroups: []SwapGroup{
				{Name: "lc-bank", Members: []string{"system-rom", "lc-bank1", "lc-bank2"}, Default: "system-rom"},
			},
			Controllers: []Controller{
				{Name: "langcard", SwapGroups: []string{"lc-bank"}, Params: map[string]string{"defaultBank": "2"}},
			},
			ROMImages: []ROMImage{
				{Physical: "system-rom", Path: "app://roms/apple2e.rom", SHA256: "", Policy: PolicyStrict},
			},
		},
		Slots: Slots{
			Cards: []SlotCard{{Slot: 6, Type: "disk2", ROM: "library://cards/disk2.rom"}},
		},
		Devices: Devices{Keyboard: "standard", Speaker: "standard", Video: "ntsc", GameIO: "none"},
		Boot:    Boot{AutoStart: true, StartupSlot: 6},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	want := fullProfile()
	data, err := want.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestDeserializeInvalidJSON(t *testing.T) {
	if _, err := Deserialize([]byte("{not json")); err == nil {
		t.Fatal("expected an error decoding malformed JSON")
	}
}

func TestROMImageVerify(t *testing.T) {
	data := []byte("pretend rom contents")
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	tests := []struct {
		name    string
		image   ROMImage
		wantOK  bool
		wantErr bool
	}{
		{"no hash pinned", ROMImage{SHA256: ""}, true, false},
		{"matching hash", ROMImage{SHA256: hash, Policy: PolicyStrict}, true, false},
		{"mismatch strict", ROMImage{SHA256: "deadbeef", Policy: PolicyStrict}, false, true},
		{"mismatch default policy behaves like strict", ROMImage{SHA256: "deadbeef"}, false, true},
		{"mismatch warn", ROMImage{SHA256: "deadbeef", Policy: PolicyWarn}, false, false},
		{"mismatch fallback", ROMImage{SHA256: "deadbeef", Policy: PolicyFallback}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.image.Verify(data)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

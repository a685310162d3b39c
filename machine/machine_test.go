/*
 * Pocket2e - Machine wiring and integration tests.
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

package machine

import (
	"testing"

	"github.com/rcornwell/pocket2e/trap"
)

func blankROM() []byte {
	return make([]byte, systemROMSize)
}

func newFixture(t *testing.T, resetVector uint16) *Machine {
	t.Helper()
	rom := blankROM()
	rom[0x2FFC] = byte(resetVector)
	rom[0x2FFD] = byte(resetVector >> 8)
	m := New(rom, nil)
	m.Reset()
	return m
}

func TestMachineResetLoadsVectorAndRunsLDA(t *testing.T) {
	m := newFixture(t, 0x1000)
	m.LoadRAM(0x1000, []byte{0xA9, 0x2A}) // LDA #$2A
	m.Step()
	if m.CPU.Regs.A != 0x2A {
		t.Fatalf("expected A=0x2A, got %#02x", m.CPU.Regs.A)
	}
}

// factorial5 computes 5! via repeated-addition multiplication and stores
// the result at zero-page $10. Each program line's comment gives its
// address and the hand-assembled source it encodes.
//
//	$00 n (counts down 5->1)      $01 running result      $02 temp (copy of result)
//	$03 inner-loop counter (n-1 additions per outer pass)
func factorial5() []byte {
	return []byte{
		0xA9, 0x01, // 1000 LDA #$01
		0x85, 0x01, // 1002 STA $01        ; result = 1
		0xA9, 0x05, // 1004 LDA #$05
		0x85, 0x00, // 1006 STA $00        ; n = 5
		0xA5, 0x00, // 1008 OUTER: LDA $00
		0xC9, 0x01, // 100A CMP #$01
		0xF0, 0x20, // 100C BEQ DONE       ; n == 1 -> done
		0xA5, 0x01, // 100E LDA $01
		0x85, 0x02, // 1010 STA $02        ; temp = result
		0xA5, 0x00, // 1012 LDA $00
		0x38,       // 1014 SEC
		0xE9, 0x01, // 1015 SBC #$01
		0x85, 0x03, // 1017 STA $03        ; counter = n-1
		0xA5, 0x03, // 1019 INNER: LDA $03
		0xF0, 0x0C, // 101B BEQ INNERDONE
		0xC6, 0x03, // 101D DEC $03
		0xA5, 0x01, // 101F LDA $01
		0x18,       // 1021 CLC
		0x65, 0x02, // 1022 ADC $02
		0x85, 0x01, // 1024 STA $01        ; result += temp
		0x4C, 0x19, 0x10, // 1026 JMP INNER
		0xC6, 0x00, // 1029 INNERDONE: DEC $00
		0x4C, 0x08, 0x10, // 102B JMP OUTER
		0xA5, 0x01, // 102E DONE: LDA $01
		0x85, 0x10, // 1030 STA $10
		0xDB, // 1032 STP
	}
}

func TestFactorialProgramHaltsWithExpectedResult(t *testing.T) {
	m := newFixture(t, 0x1000)
	m.LoadRAM(0x1000, factorial5())
	m.Run(0x1000)
	if !m.CPU.IsHalted() {
		t.Fatal("expected program to halt via STP")
	}
	if got := m.Peek(0x0010); got != 120 {
		t.Fatalf("expected 5! = 120 at $0010, got %d", got)
	}
}

func TestLanguageCardBankSwitchSelectsLCRamTrapContext(t *testing.T) {
	m := newFixture(t, 0x0300)

	var order []string
	m.Traps.Register(0xFDED, trap.ContextRom, "ROM", trap.MonitorRom,
		func(cpuIface any, b trap.Bus) trap.Result {
			order = append(order, "ROM")
			return trap.Result{Handled: true, ReturnMethod: trap.ReturnRts}
		}, "monitor ROM stub")
	m.Traps.RegisterLanguageCardRam(0xFDED, "LC_RAM", trap.MonitorRom,
		func(cpuIface any, b trap.Bus) trap.Result {
			order = append(order, "LC_RAM")
			return trap.Result{Handled: true, ReturnMethod: trap.ReturnRts}
		}, "LC RAM stub")

	// $0300: JSR $FDED; $0303: LDA $C083 (enable LC RAM read, two reads arm write);
	// $0306: JSR $FDED; $0309: STP
	m.LoadRAM(0x0300, []byte{
		0x20, 0xED, 0xFD, // JSR $FDED
		0xAD, 0x83, 0xC0, // LDA $C083
		0x20, 0xED, 0xFD, // JSR $FDED
		0xDB, // STP
	})

	for steps := 0; steps < 20 && !m.CPU.IsHalted(); steps++ {
		m.Step()
	}

	if len(order) != 2 || order[0] != "ROM" || order[1] != "LC_RAM" {
		t.Fatalf("expected invocation order [ROM LC_RAM], got %v", order)
	}
	if !m.LangCard.RamReadEnabled() {
		t.Fatal("expected LC RAM read to be enabled after $C083 access")
	}
	if !m.CPU.IsHalted() {
		t.Fatal("expected final STP to halt the CPU")
	}
}

func TestColdResetClearsLanguageCardButWarmResetDoesNot(t *testing.T) {
	m := newFixture(t, 0x0300)
	m.Peek(0xC083) // side-effect-free: must NOT arm the LC switch
	m.LoadRAM(0x0300, []byte{0xAD, 0x83, 0xC0}) // LDA $C083 (DataRead, arms/enables)
	m.Step()
	if !m.LangCard.RamReadEnabled() {
		t.Fatal("expected $C083 data read to enable LC RAM read")
	}

	m.Reset() // warm reset
	if !m.LangCard.RamReadEnabled() {
		t.Fatal("warm reset must not touch Language Card latches")
	}

	m.ColdReset()
	if m.LangCard.RamReadEnabled() {
		t.Fatal("cold reset must restore Language Card to ROM-visible default")
	}
}

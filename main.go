/*
 * Pocket2e - Main process.
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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/rcornwell/pocket2e/debugger"
	"github.com/rcornwell/pocket2e/machine"
	"github.com/rcornwell/pocket2e/util/logger"
)

var commandNames = []string{"step", "go", "reset", "coldreset", "trace", "quit", "help"}

// traceListener prints a line per step when enabled; it is the monitor's
// only consumer of the debugger.Listener contract, exactly the boundary
// spec.md §1 draws between the core and the UI around it.
type traceListener struct{ enabled bool }

func (t *traceListener) OnBeforeStep(debugger.StepEvent) {}

func (t *traceListener) OnAfterStep(e debugger.StepEvent) {
	if !t.enabled {
		return
	}
	fmt.Printf("%04X  %-4s  A=%02X X=%02X Y=%02X SP=%02X P=%02X  cycles=%d\n",
		e.PC, e.Mnemonic, e.A, e.X, e.Y, e.SP, e.P, e.CyclesConsumed)
}

func main() {
	optROM := getopt.StringLong("rom", 'r', "", "System ROM image ($D000-$FFFF, 12288 bytes)")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optConfig := getopt.StringLong("config", 'c', "", "Machine profile (unused by the core; reserved for a machine builder)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	log, file, err := logger.NewFileLogger(*optLogFile, slog.LevelDebug, *optLogFile == "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "pocket2e: opening log file:", err)
		os.Exit(1)
	}
	if file != nil {
		defer file.Close()
	}
	slog.SetDefault(log)

	if *optConfig != "" {
		log.Info("machine profile given but profile-driven builds are out of scope for this core", "path", *optConfig)
	}

	if *optROM == "" {
		log.Error("pocket2e: --rom is required")
		os.Exit(1)
	}
	rom, err := os.ReadFile(*optROM)
	if err != nil {
		log.Error("reading ROM image", "error", err)
		os.Exit(1)
	}

	m := machine.New(rom, log)
	m.ColdReset()

	trace := &traceListener{}
	m.SetDebugger(trace)

	runConsole(m, trace, log)
}

func runConsole(m *machine.Machine, trace *traceListener, log *slog.Logger) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, name := range commandNames {
			if strings.HasPrefix(name, partial) {
				out = append(out, name)
			}
		}
		return out
	})

	for {
		input, err := line.Prompt("pocket2e> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			log.Error("reading console input", "error", err)
			return
		}
		line.AppendHistory(input)

		if quit := dispatchCommand(m, trace, input); quit {
			return
		}
	}
}

func dispatchCommand(m *machine.Machine, trace *traceListener, input string) (quit bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "step":
		n := 1
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				n = v
			}
		}
		for i := 0; i < n && !m.CPU.IsHalted(); i++ {
			m.Step()
		}
		printRegs(m)
	case "go":
		for !m.CPU.IsHalted() && !m.CPU.IsStopRequested() {
			m.Step()
		}
		printRegs(m)
	case "reset":
		m.Reset()
		printRegs(m)
	case "coldreset":
		m.ColdReset()
		printRegs(m)
	case "trace":
		if len(fields) > 1 && fields[1] == "off" {
			trace.enabled = false
		} else {
			trace.enabled = true
		}
	case "quit":
		return true
	case "help":
		fmt.Println("commands: step [n], go, reset, coldreset, trace [on|off], quit")
	default:
		fmt.Println("unknown command:", fields[0])
	}
	return false
}

func printRegs(m *machine.Machine) {
	r := m.CPU.Regs
	fmt.Printf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X halted=%v\n",
		r.PC, r.A, r.X, r.Y, r.SP, r.P, m.CPU.IsHalted())
}

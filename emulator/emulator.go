// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"maps"

	"github.com/ezrec/regmach/internal"
	"github.com/ezrec/regmach/machine"
)

// Emulator state. Machine + program + run settings.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	Debug            bool             // If set, traces every step.
	*machine.Machine                  // Reference to the machine.
	Program          *machine.Program // Reference to the currently running program.

	Budget        *uint32          // Step budget, nil for none.
	InitialMemory map[uint32]int32 // Memory contents at reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.NewMachine(),
		Program: &machine.Program{},
	}

	return
}

// Seed adds cells to the reset memory. Later seeds overwrite earlier ones.
func (emu *Emulator) Seed(cells ...map[uint32]int32) {
	var seqs []iter.Seq2[uint32, int32]
	if emu.InitialMemory != nil {
		seqs = append(seqs, maps.All(emu.InitialMemory))
	}
	for _, seed := range cells {
		seqs = append(seqs, maps.All(seed))
	}
	emu.InitialMemory = maps.Collect(internal.IterSeq2Concat(seqs...))
}

// Reset the machine, load the program and the initial memory.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Reset()

	err = emu.Machine.Load(emu.Program)
	if err != nil {
		return
	}

	emu.Machine.SetMemory(emu.InitialMemory)
	if emu.Budget != nil {
		emu.Machine.SetStepBudget(*emu.Budget)
	}
	emu.Machine.SetDebug(emu.Debug)

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions, %d cells", emu.Program.Len(), len(emu.InitialMemory))
	}

	return
}

// Index returns the 1-based number of the next instruction.
func (emu *Emulator) Index() int {
	return int(emu.Machine.Pc()) + 1
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.Line(emu.Machine.Pc())
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine debugging
	emu.Machine.SetDebug(emu.Debug)

	lineno := emu.LineNo()
	index := emu.Index()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Index: index, Err: err}
		}
	}()

	running, err := emu.Machine.Step()
	done = !running

	if done && err == nil && emu.Verbose {
		log.Printf("emulator: halted (%v) after %d steps", emu.Machine.Halt(), emu.Machine.Steps())
	}

	return
}

// Run ticks until the machine halts.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}
	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/regmach/internal"
)

// HaltReason tells why a machine stopped.
type HaltReason int

//go:generate go tool stringer -linecomment -type=HaltReason
const (
	HALT_NONE   = HaltReason(0) // none
	HALT_END    = HaltReason(1) // end
	HALT_BUDGET = HaltReason(2) // budget
	HALT_FAULT  = HaltReason(3) // fault
)

// State is the lifecycle state of a machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_IDLE    = State(0) // idle
	STATE_READY   = State(1) // ready
	STATE_RUNNING = State(2) // running
	STATE_HALTED  = State(3) // halted
)

// TraceFunc observes the machine before an instruction executes.
// pc is the 0-based program counter, mem a copy of memory.
type TraceFunc func(pc uint32, ins Instruction, mem map[uint32]int32)

// Machine is the execution context of a single program.
// It is not safe for concurrent use.
type Machine struct {
	Trace TraceFunc // Debug observer. If nil, debug output is logged.

	program *Program
	memory  Memory
	pc      uint32
	steps   int

	budget   uint32
	budgeted bool
	debug    bool

	state State
	halt  HaltReason
	fault error
}

// NewMachine creates an idle machine with empty memory.
func NewMachine() *Machine {
	return &Machine{}
}

// Reset returns the machine to idle, dropping program, memory and budget.
func (mach *Machine) Reset() {
	mach.program = nil
	mach.memory.Reset()
	mach.pc = 0
	mach.steps = 0
	mach.budget = 0
	mach.budgeted = false
	mach.state = STATE_IDLE
	mach.halt = HALT_NONE
	mach.fault = nil
}

// Load installs the program. A machine runs a single program.
func (mach *Machine) Load(prog *Program) (err error) {
	if prog == nil {
		err = ErrProgramMissing
		return
	}
	if mach.program != nil {
		err = ErrProgramLoaded
		return
	}

	mach.program = prog
	mach.pc = 0
	mach.state = STATE_READY
	return
}

// Program returns the loaded program, or nil.
func (mach *Machine) Program() *Program {
	return mach.program
}

// SetMemory replaces memory with a copy of cells.
func (mach *Machine) SetMemory(cells map[uint32]int32) {
	mach.memory.Reset()
	for address, value := range cells {
		mach.memory.Set(address, value)
	}
}

// Memory returns a copy of memory.
func (mach *Machine) Memory() map[uint32]int32 {
	return mach.memory.Snapshot()
}

// Cell reads a single memory cell.
func (mach *Machine) Cell(address uint32) (int32, error) {
	return mach.memory.Get(address)
}

// SetCell writes a single memory cell.
func (mach *Machine) SetCell(address uint32, value int32) {
	mach.memory.Set(address, value)
}

// SetStepBudget limits the number of further steps. A machine halted by
// an exhausted budget resumes with a non-zero budget.
func (mach *Machine) SetStepBudget(steps uint32) {
	mach.budget = steps
	mach.budgeted = true
	if steps > 0 {
		mach.resume()
	}
}

// ClearStepBudget removes the step limit.
func (mach *Machine) ClearStepBudget() {
	mach.budget = 0
	mach.budgeted = false
	mach.resume()
}

// StepBudget returns the remaining steps, if limited.
func (mach *Machine) StepBudget() (steps uint32, ok bool) {
	return mach.budget, mach.budgeted
}

func (mach *Machine) resume() {
	if mach.state == STATE_HALTED && mach.halt == HALT_BUDGET {
		mach.state = STATE_RUNNING
		mach.halt = HALT_NONE
	}
}

// SetDebug enables the trace hook.
func (mach *Machine) SetDebug(debug bool) {
	mach.debug = debug
}

// Debug reports if tracing is enabled.
func (mach *Machine) Debug() bool {
	return mach.debug
}

// Pc returns the 0-based program counter.
func (mach *Machine) Pc() uint32 {
	return mach.pc
}

// Steps returns the number of executed instructions.
func (mach *Machine) Steps() int {
	return mach.steps
}

// State returns the lifecycle state.
func (mach *Machine) State() State {
	return mach.state
}

// Halt returns why the machine halted, or HALT_NONE.
func (mach *Machine) Halt() HaltReason {
	return mach.halt
}

// Fault returns the error that halted the machine, if any.
func (mach *Machine) Fault() error {
	return mach.fault
}

// Running reports if a further step would execute an instruction.
func (mach *Machine) Running() bool {
	if mach.state != STATE_READY && mach.state != STATE_RUNNING {
		return false
	}
	if mach.budgeted && mach.budget == 0 {
		return false
	}
	_, ok := mach.program.At(mach.pc)
	return ok
}

func (mach *Machine) stop(halt HaltReason) {
	mach.state = STATE_HALTED
	mach.halt = halt
}

// Step executes one instruction and reports if the machine is still running.
// A fault halts the machine and is returned.
//
// A step that leaves the program while using the last of the budget halts
// with HALT_END, not HALT_BUDGET.
func (mach *Machine) Step() (running bool, err error) {
	switch mach.state {
	case STATE_IDLE:
		err = ErrProgramMissing
		return
	case STATE_HALTED:
		err = mach.fault
		return
	}

	if mach.budgeted && mach.budget == 0 {
		mach.stop(HALT_BUDGET)
		return
	}

	ins, ok := mach.program.At(mach.pc)
	if !ok {
		mach.stop(HALT_END)
		return
	}

	mach.state = STATE_RUNNING

	if mach.debug {
		mach.trace(ins)
	}

	target, jump, err := ins.Execute(&mach.memory)
	if err != nil {
		mach.fault = err
		mach.stop(HALT_FAULT)
		return
	}

	if jump {
		// Targets are 1-based. Target 0 wraps and runs off the end.
		mach.pc = target - 1
	} else {
		mach.pc++
	}

	mach.steps++
	if mach.budgeted {
		mach.budget--
	}

	if _, ok = mach.program.At(mach.pc); !ok {
		mach.stop(HALT_END)
		return
	}

	if mach.budgeted && mach.budget == 0 {
		mach.stop(HALT_BUDGET)
		return
	}

	running = true
	return
}

// Run steps until the machine halts.
func (mach *Machine) Run() (err error) {
	for {
		var running bool
		running, err = mach.Step()
		if err != nil || !running {
			return
		}
	}
}

func (mach *Machine) trace(ins Instruction) {
	mem := mach.memory.Snapshot()
	if mach.Trace != nil {
		mach.Trace(mach.pc, ins, mem)
		return
	}

	var cells []string
	for address, value := range internal.SortedSeq2(mem) {
		cells = append(cells, fmt.Sprintf("%d:%d", address, value))
	}
	log.Printf("machine: %3d: %-24v [%v]", mach.pc+1, ins, strings.Join(cells, " "))
}

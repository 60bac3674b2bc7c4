package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/machine"
)

func newDebugger(t *testing.T, text string, cells map[uint32]int32) (dbg *debugger, out *bytes.Buffer) {
	prog, err := (&machine.Parser{}).ParseString(text)
	if err != nil {
		t.Fatal(err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Seed(cells)
	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	out = &bytes.Buffer{}
	dbg = &debugger{emu: emu, out: out}
	return
}

func TestDebuggerStep(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger(t, "R[1] := 1 + 0;\nR[2] := 2 + 0;\nR[3] := 3 + 0;", nil)

	quit, err := dbg.command("step")
	assert.NoError(err)
	assert.False(quit)
	assert.Equal("next 2: R[2] := 2 + 0;\n", out.String())

	out.Reset()
	_, err = dbg.command("step 5")
	assert.NoError(err)
	assert.Equal("halted (end) after 3 steps\n", out.String())
	assert.Equal(map[uint32]int32{1: 1, 2: 2, 3: 3}, dbg.emu.Machine.Memory())
}

func TestDebuggerBudget(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger(t, "R[0] := R[0] + 1; if R[0] < 5 goto 1;", map[uint32]int32{0: 0})

	_, err := dbg.command("budget 2")
	assert.NoError(err)
	_, err = dbg.command("run")
	assert.NoError(err)
	assert.Equal("halted (budget) after 2 steps\n", out.String())

	out.Reset()
	_, err = dbg.command("budget 100")
	assert.NoError(err)
	_, err = dbg.command("run")
	assert.NoError(err)
	assert.Equal("halted (end) after 10 steps\n", out.String())
	assert.Equal(map[uint32]int32{0: 5}, dbg.emu.Machine.Memory())
}

func TestDebuggerSetMem(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger(t, "R[2] := R[1] * 2;", nil)

	_, err := dbg.command("set 1 21")
	assert.NoError(err)
	_, err = dbg.command("run")
	assert.NoError(err)

	out.Reset()
	_, err = dbg.command("mem")
	assert.NoError(err)
	assert.Equal("  1: 21\n  2: 42\n", out.String())

	out.Reset()
	_, err = dbg.command("list")
	assert.NoError(err)
	assert.Equal("  1: R[2] := R[1] * 2;\n", out.String())
}

func TestDebuggerFault(t *testing.T) {
	assert := assert.New(t)

	dbg, _ := newDebugger(t, "R[2] := R[1] * 2;", nil)

	_, err := dbg.command("step")
	assert.ErrorIs(err, machine.ErrUninitializedRead)
	assert.Equal(machine.HALT_FAULT, dbg.emu.Halt())
}

func TestDebuggerCommands(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger(t, "R[1] := 1 + 0;", nil)

	table := [...]struct {
		line string
		quit bool
		err  error
	}{
		{"", false, nil},
		{"   ", false, nil},
		{"pc", false, nil},
		{"help", false, nil},
		{"frobnicate", false, ErrCommandUnknown},
		{"step x", false, ErrCommandArgument},
		{"set 1", false, ErrCommandArgument},
		{"set 1 99999999999", false, ErrCommandArgument},
		{"set -1 2", false, ErrCommandArgument},
		{"budget", false, ErrCommandArgument},
		{"quit", true, nil},
		{"q", true, nil},
	}

	for _, entry := range table {
		quit, err := dbg.command(entry.line)
		assert.Equal(entry.quit, quit, entry.line)
		if entry.err == nil {
			assert.NoError(err, entry.line)
		} else {
			assert.ErrorIs(err, entry.err, entry.line)
		}
	}

	assert.True(strings.Contains(out.String(), "next 1: R[1] := 1 + 0;\n"))
	assert.True(strings.Contains(out.String(), "budget N"))
}

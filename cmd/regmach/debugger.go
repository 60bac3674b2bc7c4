package main

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/listing"
	"github.com/ezrec/regmach/translate"
)

// debugger steps an emulator under user control.
type debugger struct {
	emu *emulator.Emulator
	out io.Writer
}

var debugCompleter = readline.NewPrefixCompleter(
	readline.PcItem("step"),
	readline.PcItem("run"),
	readline.PcItem("mem"),
	readline.PcItem("pc"),
	readline.PcItem("list"),
	readline.PcItem("set"),
	readline.PcItem("budget"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

const debugHelp = `step [N]          execute N instructions (default 1)
run               execute until the machine halts
mem               show memory
pc                show the next instruction
list              show the program
set ADDR VALUE    write VALUE to memory cell ADDR
budget N          allow N more steps
help              show this help
quit              leave the debugger
`

// interact runs the debugger prompt until quit or end of input.
func interact(emu *emulator.Emulator, input io.Reader, out io.Writer) (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "regmach> ",
		AutoComplete: debugCompleter,
		Stdin:        io.NopCloser(input),
		Stdout:       out,
	})
	if err != nil {
		return
	}
	defer rl.Close()

	dbg := &debugger{emu: emu, out: out}
	dbg.where()

	for {
		var line string
		line, err = rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var quit bool
		quit, err = dbg.command(line)
		if err != nil {
			translate.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			err = nil
			return
		}
	}
}

func (dbg *debugger) argUint(args []string, index int, def uint32) (value uint32, err error) {
	if len(args) <= index {
		value = def
		return
	}

	v, err := strconv.ParseUint(args[index], 10, 32)
	if err != nil {
		err = ErrCommandArgument
		return
	}
	value = uint32(v)
	return
}

// where shows the next instruction, or why the machine halted.
func (dbg *debugger) where() {
	emu := dbg.emu
	if !emu.Running() {
		translate.Fprintf(dbg.out, "halted (%v) after %d steps\n", emu.Halt(), emu.Steps())
		return
	}

	ins, _ := emu.Program.At(emu.Pc())
	translate.Fprintf(dbg.out, "next %d: %v\n", emu.Index(), ins)
}

// command executes one debugger command line.
func (dbg *debugger) command(line string) (quit bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}

	emu := dbg.emu
	switch args[0] {
	case "step", "s":
		var count uint32
		count, err = dbg.argUint(args, 1, 1)
		if err != nil {
			return
		}
		for n := uint32(0); n < count; n++ {
			var done bool
			done, err = emu.Tick()
			if err != nil || done {
				break
			}
		}
		if err != nil {
			return
		}
		dbg.where()
	case "run", "r":
		err = emu.Run()
		if err != nil {
			return
		}
		dbg.where()
	case "mem", "m":
		err = listing.Memory(dbg.out, emu.Machine.Memory())
	case "pc":
		dbg.where()
	case "list", "l":
		err = listing.Program(dbg.out, emu.Program)
	case "set":
		if len(args) != 3 {
			err = ErrCommandArgument
			return
		}
		var address uint32
		address, err = dbg.argUint(args, 1, 0)
		if err != nil {
			return
		}
		var value int64
		value, err = strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			err = ErrCommandArgument
			return
		}
		emu.Machine.SetCell(address, int32(value))
	case "budget", "b":
		if len(args) != 2 {
			err = ErrCommandArgument
			return
		}
		var steps uint32
		steps, err = dbg.argUint(args, 1, 0)
		if err != nil {
			return
		}
		emu.Machine.SetStepBudget(steps)
	case "help", "h", "?":
		_, err = io.WriteString(dbg.out, debugHelp)
	case "quit", "q", "exit":
		quit = true
	default:
		err = ErrCommandUnknown
	}

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/regmach/check"
	"github.com/ezrec/regmach/config"
	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/listing"
	"github.com/ezrec/regmach/machine"
	"github.com/ezrec/regmach/seed"
	"github.com/ezrec/regmach/translate"
)

var Version = "dev"

type options struct {
	version      bool
	verbose      bool
	printProgram bool
	printMemory  bool
	printTree    bool
	debug        bool
	steps        uint32
	noRun        bool
	config       string
	checks       []string
	saveMemory   string
	interactive  bool
}

func newCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "regmach [flags] PROGRAM [MEMORY]",
		Short:         f("Parser and interpreter for a simple register machine"),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.BoolVarP(&opts.version, "version", "V", false, f("Show version"))
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, f("Print verbose output"))
	flags.BoolVarP(&opts.printProgram, "print-program", "P", false, f("Print the program as it was parsed"))
	flags.BoolVarP(&opts.printMemory, "print-memory", "M", false, f("Print the memory as it was parsed"))
	flags.BoolVarP(&opts.printTree, "print-tree", "T", false, f("Print the parsed program as a tree"))
	flags.BoolVarP(&opts.debug, "debug", "d", false, f("Print the current instruction and memory for every executed instruction"))
	flags.Uint32VarP(&opts.steps, "maximum-steps", "s", 0, f("Maximum number of executed instructions"))
	flags.BoolVarP(&opts.noRun, "no-run", "n", false, f("Do not run the program"))
	flags.StringVarP(&opts.config, "config", "c", "", f("YAML run configuration file"))
	flags.StringArrayVarP(&opts.checks, "check", "k", nil, f("Expression over final memory R that must hold"))
	flags.StringVarP(&opts.saveMemory, "save-memory", "o", "", f("Write the final memory to a file"))
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, f("Step the program interactively"))

	return cmd
}

// settings merges the configuration file with the flags. Flags given on
// the command line win.
func settings(cmd *cobra.Command, opts *options) (cfg *config.Config, err error) {
	cfg = &config.Config{}
	if len(opts.config) != 0 {
		cfg, err = config.Load(opts.config)
		if err != nil {
			return
		}
	}

	flags := cmd.Flags()
	if flags.Changed("maximum-steps") {
		steps := opts.steps
		cfg.Steps = &steps
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	cfg.Checks = append(cfg.Checks, opts.checks...)

	return
}

func loadProgram(path string, verbose bool) (prog *machine.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	parser := &machine.Parser{Verbose: verbose}
	prog, err = parser.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

func loadMemory(path string) (cells map[uint32]int32, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cells, err = seed.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

func saveMemory(path string, cells map[uint32]int32) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	return seed.Write(ouf, cells)
}

func run(cmd *cobra.Command, opts *options, args []string) (err error) {
	out := cmd.OutOrStdout()

	if opts.version {
		translate.Fprintf(out, "regmach %v\n", Version)
		return
	}

	if len(args) == 0 {
		err = ErrProgramRequired
		return
	}

	cfg, err := settings(cmd, opts)
	if err != nil {
		return
	}

	if cfg.Verbose {
		log.Printf("regmach: loading %v", args[0])
	}
	prog, err := loadProgram(args[0], cfg.Verbose)
	if err != nil {
		return
	}
	if cfg.Verbose {
		log.Printf("regmach: loaded %d instructions", prog.Len())
	}

	if opts.printProgram {
		translate.Fprintf(out, "Machine program:\n")
		listing.Program(out, prog)
	}
	if opts.printTree {
		fmt.Fprint(out, listing.Tree(prog).String())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Debug = cfg.Debug
	emu.Program = prog
	emu.Budget = cfg.Steps
	emu.Seed(cfg.Memory)

	if len(args) > 1 {
		var cells map[uint32]int32
		cells, err = loadMemory(args[1])
		if err != nil {
			return
		}
		emu.Seed(cells)
	}

	if opts.printMemory && len(emu.InitialMemory) != 0 {
		translate.Fprintf(out, "Machine memory before execution:\n")
		listing.Memory(out, emu.InitialMemory)
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	// A fault still reports the memory it left behind.
	var fault error
	switch {
	case opts.noRun:
	case opts.interactive:
		err = interact(emu, cmd.InOrStdin(), out)
		if err != nil {
			return
		}
		if emu.Fault() != nil {
			fault = &emulator.ErrRuntime{LineNo: emu.LineNo(), Index: emu.Index(), Err: emu.Fault()}
		}
	default:
		if cfg.Verbose {
			log.Printf("regmach: starting execution")
		}
		fault = emu.Run()
		if cfg.Verbose {
			log.Printf("regmach: finished execution, %v after %d steps", emu.Halt(), emu.Steps())
		}
	}

	final := emu.Machine.Memory()

	translate.Fprintf(out, "Machine memory after execution:\n")
	listing.Memory(out, final)

	if fault != nil {
		err = fault
		return
	}

	if len(opts.saveMemory) != 0 {
		err = saveMemory(opts.saveMemory, final)
		if err != nil {
			return
		}
	}

	if len(cfg.Checks) != 0 {
		chk := &check.Check{Exprs: cfg.Checks}
		var failed []string
		failed, err = chk.Run(final)
		if err != nil {
			return
		}
		for _, expr := range failed {
			translate.Fprintf(out, "check failed: %v\n", expr)
		}
		if len(failed) != 0 {
			err = ErrCheckFailed
			return
		}
	}

	return
}

func main() {
	cmd := newCommand()
	err := cmd.Execute()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

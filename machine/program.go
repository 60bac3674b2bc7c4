package machine

import (
	"iter"
	"strings"
)

// Program is a loaded instruction list.
type Program struct {
	Instructions []Instruction
	LineNo       []int // Source line of each instruction, if parsed.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// At returns the instruction at the 0-based program counter.
func (prog *Program) At(pc uint32) (ins Instruction, ok bool) {
	if uint64(pc) >= uint64(len(prog.Instructions)) {
		return
	}
	return prog.Instructions[pc], true
}

// Line returns the source line of the instruction at pc, or 0 if unknown.
func (prog *Program) Line(pc uint32) int {
	if uint64(pc) >= uint64(len(prog.LineNo)) {
		return 0
	}
	return prog.LineNo[pc]
}

// Numbered iterates over the instructions with their 1-based numbers.
func (prog *Program) Numbered() iter.Seq2[int, Instruction] {
	return func(yield func(int, Instruction) bool) {
		for n, ins := range prog.Instructions {
			if !yield(n+1, ins) {
				return
			}
		}
	}
}

// String renders the program as parseable text, one instruction per line.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, ins := range prog.Instructions {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

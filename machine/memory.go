package machine

import (
	"iter"
	"maps"

	"github.com/ezrec/regmach/internal"
)

// Memory is the sparse cell store of the machine.
// Cells have no default value; only written cells can be read.
type Memory struct {
	cells map[uint32]int32
}

// NewMemory creates memory pre-seeded with a copy of cells.
func NewMemory(cells map[uint32]int32) (mem *Memory) {
	mem = &Memory{cells: make(map[uint32]int32, len(cells))}
	maps.Copy(mem.cells, cells)
	return
}

// Get reads a cell.
func (mem *Memory) Get(address uint32) (value int32, err error) {
	value, ok := mem.cells[address]
	if !ok {
		err = ErrUninitialized(address)
	}
	return
}

// Set writes a cell, creating it if needed.
func (mem *Memory) Set(address uint32, value int32) {
	if mem.cells == nil {
		mem.cells = make(map[uint32]int32)
	}
	mem.cells[address] = value
}

// Len returns the number of initialized cells.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Snapshot returns a copy of all initialized cells.
func (mem *Memory) Snapshot() (cells map[uint32]int32) {
	cells = make(map[uint32]int32, len(mem.cells))
	maps.Copy(cells, mem.cells)
	return
}

// Cells iterates over the initialized cells in ascending address order.
func (mem *Memory) Cells() iter.Seq2[uint32, int32] {
	return internal.SortedSeq2(mem.cells)
}

// Reset forgets all cells.
func (mem *Memory) Reset() {
	clear(mem.cells)
}

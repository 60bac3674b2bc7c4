// Package machine implements the register machine and its parser.
//
// A program is a flat list of two instruction kinds, arithmetic assignment
// and conditional jump, over a sparse memory of signed 32-bit cells. Cells
// are addressed directly (R[5]) or indirectly through other cells (R[R[5]])
// to any nesting depth written in the source text. Memory has no default
// value; reading a cell that was never written is a fault.
//
// The parser is a deterministic recursive descent parser. Jump targets are
// 1-based instruction numbers and are not checked at load time; jumping past
// the end of the program halts the machine.
package machine

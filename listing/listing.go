// Package listing renders programs and memory for people.
package listing

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/ezrec/regmach/internal"
	"github.com/ezrec/regmach/machine"
)

// Program writes one numbered instruction per line.
// Numbers are the 1-based jump targets.
func Program(w io.Writer, prog *machine.Program) (err error) {
	for n, ins := range prog.Numbered() {
		_, err = fmt.Fprintf(w, "%3d: %v\n", n, ins)
		if err != nil {
			return
		}
	}
	return
}

// Memory writes one cell per line in ascending address order.
func Memory(w io.Writer, cells map[uint32]int32) (err error) {
	for address, value := range internal.SortedSeq2(cells) {
		_, err = fmt.Fprintf(w, "%3d: %v\n", address, value)
		if err != nil {
			return
		}
	}
	return
}

// Tree builds the parse tree of a program.
func Tree(prog *machine.Program) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue("program")

	for n, ins := range prog.Numbered() {
		branch := tree.AddMetaBranch(n, ins)
		switch ins := ins.(type) {
		case *machine.Arithmetic:
			addRegister(branch.AddMetaBranch("target", ins.Target), ins.Target)
			addOperand(branch, "left", ins.Left)
			branch.AddMetaNode("operator", ins.Operator)
			addOperand(branch, "right", ins.Right)
		case *machine.ConditionalJump:
			addOperand(branch, "left", ins.Left)
			branch.AddMetaNode("relation", ins.Relation)
			addOperand(branch, "right", ins.Right)
			branch.AddMetaNode("goto", ins.Target)
		}
	}

	return tree
}

func addOperand(tree treeprint.Tree, meta string, op machine.Operand) {
	switch op := op.(type) {
	case machine.Integer:
		tree.AddMetaNode(meta, int32(op))
	case machine.Register:
		addRegister(tree.AddMetaBranch(meta, op), op)
	}
}

// addRegister adds the address chain of a register.
func addRegister(tree treeprint.Tree, reg machine.Register) {
	switch addr := reg.Address.(type) {
	case machine.Raw:
		tree.AddMetaNode("address", uint32(addr))
	case machine.Indirect:
		addRegister(tree.AddMetaBranch("address", addr.Register), addr.Register)
	}
}

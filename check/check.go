// Package check evaluates assertions about machine memory.
//
// An assertion is a Starlark expression. The memory is bound to the dict R,
// so `R[3] == 42` and `R[1] + R[2] > 0` read the same way as the program
// that produced them. Reading a cell that was never written is an error.
package check

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regmach/internal"
)

// Check is a set of memory assertions.
type Check struct {
	Exprs []string
}

// memoryDict converts memory into a frozen Starlark dict.
func memoryDict(cells map[uint32]int32) *starlark.Dict {
	dict := starlark.NewDict(len(cells))
	for address, value := range internal.SortedSeq2(cells) {
		// Keys are unique, SetKey cannot fail on a fresh dict.
		_ = dict.SetKey(starlark.MakeUint64(uint64(address)), starlark.MakeInt64(int64(value)))
	}
	dict.Freeze()
	return dict
}

// Eval evaluates a single assertion against memory.
func Eval(expr string, cells map[uint32]int32) (ok bool, err error) {
	thread := &starlark.Thread{Name: "check"}
	opts := &syntax.FileOptions{}
	pred := starlark.StringDict{
		"R": memoryDict(cells),
	}

	prog := "rc = (" + expr + ")\n"
	dict, err := starlark.ExecFileOptions(opts, thread, "check", prog, pred)
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = &ErrExpression{Expr: expr, Err: ErrNoResult}
		return
	}

	ok = bool(rc.Truth())
	return
}

// Run evaluates every assertion, returning those which failed.
// Evaluation stops at the first expression error.
func (chk *Check) Run(cells map[uint32]int32) (failed []string, err error) {
	for _, expr := range chk.Exprs {
		var ok bool
		ok, err = Eval(expr, cells)
		if err != nil {
			return
		}
		if !ok {
			failed = append(failed, expr)
		}
	}
	return
}

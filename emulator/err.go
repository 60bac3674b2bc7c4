package emulator

import (
	"github.com/ezrec/regmach/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int // Source line of the faulting instruction, 0 if unknown.
	Index  int // 1-based instruction number.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("instruction %d %v", err.Index, err.Err)
	}
	return f("line %d instruction %d %v", err.LineNo, err.Index, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

package machine

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	// Runtime errors
	ErrUninitializedRead = errors.New(f("uninitialized read"))
	ErrDivideByZero      = errors.New(f("division by zero"))
	ErrProgramMissing    = errors.New(f("no program loaded"))
	ErrProgramLoaded     = errors.New(f("program already loaded"))

	// Parser errors
	ErrRegisterExpected   = errors.New(f("register expected"))
	ErrAddressExpected    = errors.New(f("address expected"))
	ErrBracketExpected    = errors.New(f("']' expected"))
	ErrAssignExpected     = errors.New(f("':=' expected"))
	ErrOperandExpected    = errors.New(f("operand expected"))
	ErrOperatorExpected   = errors.New(f("operator expected"))
	ErrRelationExpected   = errors.New(f("relation expected"))
	ErrGotoExpected       = errors.New(f("'goto' expected"))
	ErrTargetExpected     = errors.New(f("jump target expected"))
	ErrSpaceExpected      = errors.New(f("whitespace expected"))
	ErrNumberRange        = errors.New(f("number out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrUninitialized is returned when a memory cell is read before it was
// ever written.
type ErrUninitialized uint32

func (err ErrUninitialized) Error() string {
	return f("memory cell %d has not been initialized", uint32(err))
}

func (err ErrUninitialized) Is(target error) bool {
	return target == ErrUninitializedRead
}

// ErrSyntax locates a parse failure in the program text.
type ErrSyntax struct {
	LineNo int    // 1-based line of the failure.
	Column int    // 1-based column of the failure.
	Line   string // Text of the failing line.
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d column %d '%v' %v", err.LineNo, err.Column, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

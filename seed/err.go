package seed

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrSeparatorMissing = errors.New(f("':' missing"))
	ErrAddressInvalid   = errors.New(f("address invalid"))
	ErrValueInvalid     = errors.New(f("value invalid"))
)

// ErrSyntax locates a malformed memory seed line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

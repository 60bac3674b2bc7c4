package main

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrProgramRequired = errors.New(f("program file required"))
	ErrCheckFailed     = errors.New(f("memory check failed"))
	ErrCommandUnknown  = errors.New(f("unknown command"))
	ErrCommandArgument = errors.New(f("invalid command argument"))
)

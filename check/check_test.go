package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEval(t *testing.T) {
	assert := assert.New(t)

	cells := map[uint32]int32{1: 2, 2: 42, 4294967295: -1}

	table := [](struct {
		expr string
		ok   bool
	}){
		{"R[2] == 42", true},
		{"R[2] == 41", false},
		{"R[1] + R[2] == 44", true},
		{"R[R[1]] == 42", true},
		{"R[4294967295] < 0", true},
		{"2 in R and 3 not in R", true},
		{"len(R) == 3", true},
		{"R[2] // R[1] == 21", true},
	}

	for _, entry := range table {
		ok, err := Eval(entry.expr, cells)
		assert.NoError(err, entry.expr)
		assert.Equal(entry.ok, ok, entry.expr)
	}
}

func TestEval_Errors(t *testing.T) {
	assert := assert.New(t)

	cells := map[uint32]int32{1: 1}

	for _, expr := range []string{
		"R[5] == 0",
		"R[1] ==",
		"R.clear()",
		"undefined == 1",
	} {
		_, err := Eval(expr, cells)
		assert.Error(err, expr)

		var exprErr *ErrExpression
		if assert.True(errors.As(err, &exprErr), expr) {
			assert.Equal(expr, exprErr.Expr)
		}
	}
}

func TestCheck_Run(t *testing.T) {
	assert := assert.New(t)

	chk := &Check{Exprs: []string{"R[1] == 1", "R[1] == 2", "R[1] > 0", "R[1] < 0"}}
	failed, err := chk.Run(map[uint32]int32{1: 1})
	assert.NoError(err)
	assert.Equal([]string{"R[1] == 2", "R[1] < 0"}, failed)

	chk.Exprs = append(chk.Exprs, "R[2]")
	_, err = chk.Run(map[uint32]int32{1: 1})
	assert.Error(err)
}

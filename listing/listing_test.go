package listing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regmach/machine"
)

func parse(t *testing.T, program ...string) *machine.Program {
	p := &machine.Parser{}
	prog, err := p.ParseString(strings.Join(program, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"R[1]:=7 div 2",
		"if R[1]>=3 goto 1",
	)

	buf := &bytes.Buffer{}
	assert.NoError(Program(buf, prog))
	assert.Equal("  1: R[1] := 7 / 2;\n  2: if R[1] >= 3 goto 1;\n", buf.String())
}

func TestProgram_Reparse(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"R[R[1]] := -1 * R[R[R[2]]]",
		"if -5 != R[0] goto 0",
	)

	buf := &bytes.Buffer{}
	assert.NoError(Program(buf, prog))

	// Strip the line numbers, the rest is program text.
	var text []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		_, ins, ok := strings.Cut(line, ": ")
		assert.True(ok, line)
		text = append(text, ins)
	}

	again := parse(t, text...)
	assert.Equal(prog.Instructions, again.Instructions)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	assert.NoError(Memory(buf, map[uint32]int32{10: -1, 2: 20, 1000: 3}))
	assert.Equal("  2: 20\n 10: -1\n1000: 3\n", buf.String())

	buf.Reset()
	assert.NoError(Memory(buf, nil))
	assert.Equal("", buf.String())
}

func TestTree(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"R[R[1]]:=5-R[2]",
		"if R[1]<0 goto 1",
	)

	text := Tree(prog).String()
	assert.True(strings.HasPrefix(text, "program\n"), text)
	assert.Contains(text, "[1]  R[R[1]] := 5 - R[2];")
	assert.Contains(text, "[target]  R[R[1]]")
	assert.Contains(text, "[address]  R[1]")
	assert.Contains(text, "[address]  1")
	assert.Contains(text, "[left]  5")
	assert.Contains(text, "[operator]  -")
	assert.Contains(text, "[right]  R[2]")
	assert.Contains(text, "[2]  if R[1] < 0 goto 1;")
	assert.Contains(text, "[relation]  <")
	assert.Contains(text, "[goto]  1")
}

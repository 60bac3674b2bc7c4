package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaw_Resolve(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for _, raw := range []uint32{0, 1, 42, 0x7fffffff, 0xffffffff} {
		address, err := Raw(raw).Resolve(mem)
		assert.NoError(err)
		assert.Equal(raw, address)
	}
}

func TestIndirect_Resolve(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		memory   map[uint32]int32
		register Register
		address  uint32
	}){
		{"direct", map[uint32]int32{1: 2}, DirectRegister(1), 1},
		{"single", map[uint32]int32{1: 2}, IndirectRegister(DirectRegister(1)), 2},
		{"double", map[uint32]int32{1: 2, 2: 7}, IndirectRegister(IndirectRegister(DirectRegister(1))), 7},
		{"self", map[uint32]int32{3: 3}, IndirectRegister(IndirectRegister(DirectRegister(3))), 3},
		{"negative", map[uint32]int32{1: -1}, IndirectRegister(DirectRegister(1)), 0xffffffff},
		{"min", map[uint32]int32{1: -0x80000000}, IndirectRegister(DirectRegister(1)), 0x80000000},
	}

	for _, entry := range table {
		mem := NewMemory(entry.memory)
		address, err := entry.register.Resolve(mem)
		assert.NoError(err, entry.name)
		assert.Equal(entry.address, address, entry.name)
	}
}

func TestIndirect_Resolve_Uninitialized(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(map[uint32]int32{1: 2})
	_, err := IndirectRegister(IndirectRegister(DirectRegister(1))).Resolve(mem)
	assert.ErrorIs(err, ErrUninitializedRead)
	assert.Equal(ErrUninitialized(2), err)
}

func TestRegister_Evaluate(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(map[uint32]int32{1: 2, 2: 42})

	value, err := DirectRegister(2).Evaluate(mem)
	assert.NoError(err)
	assert.Equal(int32(42), value)

	value, err = IndirectRegister(DirectRegister(1)).Evaluate(mem)
	assert.NoError(err)
	assert.Equal(int32(42), value)

	_, err = IndirectRegister(DirectRegister(2)).Evaluate(mem)
	assert.Equal(ErrUninitialized(42), err)
}

func TestRegister_Depth(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, DirectRegister(0).Depth())
	assert.Equal(3, IndirectRegister(IndirectRegister(DirectRegister(0))).Depth())
}

func TestOperand_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-7", Integer(-7).String())
	assert.Equal("R[3]", DirectRegister(3).String())
	assert.Equal("R[R[R[3]]]", IndirectRegister(IndirectRegister(DirectRegister(3))).String())
}

func TestInteger_Evaluate(t *testing.T) {
	assert := assert.New(t)

	value, err := Integer(-5).Evaluate(&Memory{})
	assert.NoError(err)
	assert.Equal(int32(-5), value)
}

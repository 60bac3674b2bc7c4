package machine

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Get_Uninitialized(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	_, err := mem.Get(5)
	assert.Error(err)
	assert.True(errors.Is(err, ErrUninitializedRead))
	assert.Equal(ErrUninitialized(5), err)
}

func TestMemory_SetGet(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Set(5, -12)
	value, err := mem.Get(5)
	assert.NoError(err)
	assert.Equal(int32(-12), value)

	mem.Set(5, 7)
	value, err = mem.Get(5)
	assert.NoError(err)
	assert.Equal(int32(7), value)
	assert.Equal(1, mem.Len())
}

func TestMemory_Snapshot(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(map[uint32]int32{1: 10, 2: 20})
	snap := mem.Snapshot()
	assert.Equal(map[uint32]int32{1: 10, 2: 20}, snap)

	snap[1] = 99
	value, err := mem.Get(1)
	assert.NoError(err)
	assert.Equal(int32(10), value)

	assert.NotNil((&Memory{}).Snapshot())
}

func TestMemory_Cells(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(map[uint32]int32{30: 3, 1: 1, 0xffffffff: -1, 7: 0})
	addresses := slices.Collect(maps.Keys(maps.Collect(mem.Cells())))
	slices.Sort(addresses)

	var ordered []uint32
	for address := range mem.Cells() {
		ordered = append(ordered, address)
	}
	assert.Equal([]uint32{1, 7, 30, 0xffffffff}, ordered)
	assert.Equal(ordered, addresses)
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(map[uint32]int32{1: 1})
	mem.Reset()
	assert.Equal(0, mem.Len())
	_, err := mem.Get(1)
	assert.ErrorIs(err, ErrUninitializedRead)
}

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	assert.Equal(8, mem.Capacity())

	for addr := range int64(8) {
		value, err := mem.Read(addr)
		assert.NoError(err)
		assert.Equal(int64(0), value)
	}

	assert.NoError(mem.Write(0, -5))
	assert.NoError(mem.Write(7, 1<<50))

	value, err := mem.Read(0)
	assert.NoError(err)
	assert.Equal(int64(-5), value)

	value, err = mem.Read(7)
	assert.NoError(err)
	assert.Equal(int64(1<<50), value)

	mem.Reset()
	value, err = mem.Read(7)
	assert.NoError(err)
	assert.Equal(int64(0), value)
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)

	for _, addr := range []int64{-1, 8, 1 << 40} {
		_, err := mem.Read(addr)
		assert.ErrorIs(err, ErrMemoryOutOfBounds)
		assert.ErrorIs(err, ErrAddress(addr))

		err = mem.Write(addr, 1)
		assert.ErrorIs(err, ErrMemoryOutOfBounds)
	}

	assert.Equal(make([]int64, 8), mem.Data)

	empty := NewMemory(0)
	_, err := empty.Read(0)
	assert.ErrorIs(err, ErrMemoryOutOfBounds)
}

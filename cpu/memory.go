package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE = 65536 // Default data memory capacity, in cells.
)

// Memory is the data memory, a fixed number of integer cells.
type Memory struct {
	Data []int64
}

// NewMemory creates a zeroed memory of size cells.
func NewMemory(size uint) (mem *Memory) {
	mem = &Memory{
		Data: make([]int64, size),
	}

	return
}

// Capacity returns the number of cells.
func (mem *Memory) Capacity() int {
	return len(mem.Data)
}

func (mem *Memory) check(address int64) (err error) {
	if address < 0 || address >= int64(len(mem.Data)) {
		err = errors.Join(ErrMemoryOutOfBounds, ErrAddress(address))
	}
	return
}

// Read returns the value of the cell at address.
func (mem *Memory) Read(address int64) (value int64, err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	value = mem.Data[address]
	return
}

// Write sets the cell at address to value.
func (mem *Memory) Write(address int64, value int64) (err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	mem.Data[address] = value
	return
}

// Reset zeros all cells.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

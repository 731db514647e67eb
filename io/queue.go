package io

// Queue implements a circular FIFO of integers.
// It has a fixed capacity and separate read/write positions.
type Queue struct {
	Capacity int // Capacity in values.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64
}

var _ Channel = (*Queue)(nil)

// NewQueue creates a queue with the given capacity, preloaded with values.
// The capacity grows to fit the values.
func NewQueue(capacity int, values ...int64) (queue *Queue) {
	queue = &Queue{Capacity: max(capacity, len(values))}
	queue.Rewind()
	for _, value := range values {
		_ = queue.Send(value)
	}

	return
}

// Rewind resets the queue to empty, resetting indices and
// reinitializing the data buffer.
func (queue *Queue) Rewind() {
	queue.ReadIndex = 0
	queue.WriteIndex = 0
	queue.Size = 0
	queue.Data = make([]int64, queue.Capacity)
}

// Receive removes and returns the oldest value.
// Returns ErrInputExhausted if the queue is empty.
func (queue *Queue) Receive() (value int64, err error) {
	if queue.Size == 0 {
		err = ErrInputExhausted
		return
	}

	value = queue.Data[queue.ReadIndex]
	queue.ReadIndex++
	if queue.ReadIndex == queue.Capacity {
		queue.ReadIndex = 0
	}
	queue.Size--

	return
}

// Send appends a value at the current write position.
// Returns ErrChannelFull if the queue has reached capacity.
func (queue *Queue) Send(value int64) (err error) {
	if queue.Size >= queue.Capacity {
		err = ErrChannelFull
		return
	}

	queue.Data[queue.WriteIndex] = value

	queue.WriteIndex++
	if queue.WriteIndex == queue.Capacity {
		queue.WriteIndex = 0
	}
	queue.Size++

	return
}

// Values returns the queued values, oldest first, without removing them.
func (queue *Queue) Values() (values []int64) {
	index := queue.ReadIndex
	for range queue.Size {
		values = append(values, queue.Data[index])
		index++
		if index == queue.Capacity {
			index = 0
		}
	}

	return
}

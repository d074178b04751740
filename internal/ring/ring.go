package ring

// Buffer is a fixed-capacity FIFO ring buffer. It is not safe for
// concurrent use; callers are expected to provide their own locking.
type Buffer[T any] struct {
	items []T
	head  int
	count int
}

// New constructs a Buffer with the given capacity. Capacity must be at least 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		panic("ring: capacity must be at least 1")
	}
	return &Buffer[T]{
		items: make([]T, capacity),
	}
}

// Push appends v to the tail of the buffer and reports whether it fit.
func (b *Buffer[T]) Push(v T) bool {
	if b.count == len(b.items) {
		return false
	}
	b.items[(b.head+b.count)%len(b.items)] = v
	b.count++
	return true
}

// Pop removes and returns the value at the head of the buffer.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	v := b.items[b.head]
	b.items[b.head] = zero // release the slot so popped values can be collected
	b.head = (b.head + 1) % len(b.items)
	b.count--
	return v, true
}

// Len returns the number of buffered values.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Full reports whether the buffer is at capacity.
func (b *Buffer[T]) Full() bool {
	return b.count == len(b.items)
}

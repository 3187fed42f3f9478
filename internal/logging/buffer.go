package logging

import (
	"fmt"
	"io"
	"sync"
)

// CircularBuffer is a thread-safe circular buffer that implements [io.Writer].
// It keeps the most recent entries and overwrites the oldest when full.
type CircularBuffer struct {
	entries  [][]byte
	size     int
	capacity int
	head     int
	mu       sync.RWMutex
	full     bool
}

// NewCircularBuffer creates a new circular buffer with the specified capacity.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = 100 // Default capacity.
	}

	return &CircularBuffer{
		entries:  make([][]byte, capacity),
		capacity: capacity,
	}
}

// Write implements [io.Writer]. The data is copied.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)

	cb.entries[cb.head] = entry
	cb.head = (cb.head + 1) % cb.capacity

	if !cb.full {
		cb.size++
		if cb.size == cb.capacity {
			cb.full = true
		}
	}

	return len(p), nil
}

// Entries returns a copy of all current entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.size == 0 {
		return nil
	}

	result := make([][]byte, 0, cb.size)
	start := 0
	if cb.full {
		start = cb.head
	}

	for i := range cb.size {
		entry := cb.entries[(start+i)%cb.capacity]
		if entry == nil {
			continue
		}

		dup := make([]byte, len(entry))
		copy(dup, entry)
		result = append(result, dup)
	}

	return result
}

// Size returns the current number of entries in the buffer.
func (cb *CircularBuffer) Size() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.size
}

// Capacity returns the maximum number of entries the buffer can hold.
func (cb *CircularBuffer) Capacity() int {
	return cb.capacity
}

// IsFull returns true if the buffer has reached its maximum capacity.
func (cb *CircularBuffer) IsFull() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.full
}

// Clear removes all entries from the buffer.
func (cb *CircularBuffer) Clear() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.size = 0
	cb.head = 0
	cb.full = false

	for i := range cb.entries {
		cb.entries[i] = nil
	}
}

// WriteTo writes all current entries to w, oldest first.
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range cb.Entries() {
		written, writeErr := w.Write(entry)
		total += int64(written)

		if writeErr != nil {
			return total, fmt.Errorf("writing entry: %w", writeErr)
		}
	}

	return total, nil
}

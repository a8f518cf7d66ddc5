package boa

// Queue buffers direction intents between simulation steps.
// It is a plain FIFO: reversals are filtered when an entry is consumed, not
// when it is added. A capacity of zero means unbounded.
type Queue struct {
	items    []Direction
	capacity int
}

// NewQueue creates a queue holding at most capacity entries (0 = unbounded).
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: max(capacity, 0)}
}

// Enqueue appends d. It returns false when a bounded queue is full and the
// intent was dropped.
func (q *Queue) Enqueue(d Direction) bool {
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, d)
	return true
}

// Dequeue pops the oldest intent.
func (q *Queue) Dequeue() (Direction, bool) {
	if len(q.items) == 0 {
		return None, false
	}
	d := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return d, true
}

// Len returns the number of pending intents.
func (q *Queue) Len() int {
	return len(q.items)
}

// Capacity returns the bound, 0 when unbounded.
func (q *Queue) Capacity() int {
	return q.capacity
}

// Pending returns a copy of the buffered intents, oldest first.
func (q *Queue) Pending() []Direction {
	out := make([]Direction, len(q.items))
	copy(out, q.items)
	return out
}

// Clear drops every pending intent.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}

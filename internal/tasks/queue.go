package tasks

import "sync"

// Queue is an unbounded FIFO hand-off between the button handler
// (producer, runs on the watcher goroutine) and the processor
// (single consumer). Strictly ordered: insertion order = processing
// order, no priority, no deduplication.
type Queue struct {
	mu    sync.Mutex
	items []Task
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a task at the tail. Never blocks, never fails.
func (q *Queue) Enqueue(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, t)
}

// TryDequeue removes and returns the head task. Non-blocking: the
// second return is false when the queue is empty.
func (q *Queue) TryDequeue() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Task{}, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

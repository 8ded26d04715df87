package notify

import (
	"context"
	"sync"
)

// MemoryQueue: очередь внутри процесса. Enqueue не блокируется: при
// переполнении запрос отклоняется с ErrQueueFull.
type MemoryQueue struct {
	requests  chan Request
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1
	}
	return &MemoryQueue{
		requests: make(chan Request, size),
		done:     make(chan struct{}),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, req Request) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.requests <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Request, error) {
	select {
	case req := <-q.requests:
		return req, nil
	case <-q.done:
		return Request{}, ErrQueueClosed
	case <-ctx.Done():
		return Request{}, ctx.Err()
	}
}

func (q *MemoryQueue) Len() int {
	return len(q.requests)
}

func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

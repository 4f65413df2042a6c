package syncutil

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/couchbase/prioritysync/log"
	"github.com/couchbase/prioritysync/pqutil"
)

// WaitQueue parks any number of waiters, each tagged with a priority, and wakes them one at a time lowest priority
// first. Waiters with the same priority are woken in an arbitrary order.
type WaitQueue struct {
	opts   WaitQueueOptions
	logger log.WrappedLogger

	lock    sync.Mutex
	waiters *pqutil.PriorityQueue[uint32, *Sender]

	woken   atomic.Uint64
	skipped atomic.Uint64
}

// NewWaitQueue returns an empty wait queue.
func NewWaitQueue(opts WaitQueueOptions) *WaitQueue {
	// Fill out any missing fields with the sane defaults
	opts.defaults()

	return &WaitQueue{
		opts:    opts,
		logger:  log.NewWrappedLogger(opts.Logger),
		waiters: pqutil.NewPriorityQueueWithOrder[uint32, *Sender](opts.Capacity, pqutil.OrderMinFirst),
	}
}

// Register a new waiter with the given priority, the returned receiver will be notified by a future call to
// 'ReleaseOne'. Once this function returns the waiter is visible to all subsequent calls to 'ReleaseOne'.
//
// NOTE: A waiter which is no longer interested must call 'Abandon' on the receiver so that it's skipped.
func (q *WaitQueue) Register(priority uint32) *Receiver {
	sender, receiver := NewSignal()

	q.lock.Lock()
	q.waiters.Enqueue(pqutil.Item[uint32, *Sender]{Payload: sender, Priority: priority})
	q.lock.Unlock()

	return receiver
}

// ReleaseOne wakes the live waiter with the lowest priority, abandoned waiters are discarded along the way. Returns a
// boolean indicating whether a waiter was woken; waking nobody because the queue is empty is not an error.
func (q *WaitQueue) ReleaseOne() bool {
	for {
		item, ok := q.pop()
		if !ok {
			return false
		}

		// The lock is not held here, sending never blocks but there's no reason to serialize it with 'Register'
		if item.Payload.Send() {
			q.woken.Inc()
			return true
		}

		q.skipped.Inc()
		q.logger.Tracef("%s Skipped abandoned waiter with priority %d", q.opts.LogPrefix, item.Priority)
	}
}

// Len returns the number of registered waiters, this includes abandoned waiters which have not yet been discarded.
func (q *WaitQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.waiters.Len()
}

// pop removes the waiter with the lowest priority whilst holding the lock.
func (q *WaitQueue) pop() (pqutil.Item[uint32, *Sender], bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.waiters.TryDequeue()
}

// Package syncutil provides synchronization primitives which order contending goroutines by priority.
package syncutil

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/couchbase/prioritysync/log"
)

// PriorityMutex is a mutual exclusion lock which protects a value of type T. When the lock is released, the waiting
// goroutine which requested the lowest priority value is woken first.
//
// NOTE: Fairness is relaxed; a woken goroutine is only told to try again, it may lose the lock to a goroutine which
// arrives at that moment and acquires it without waiting, in which case it goes back to waiting at its priority.
// Goroutines waiting at the same priority are woken in an arbitrary order.
type PriorityMutex[T any] struct {
	opts   PriorityMutexOptions
	logger log.WrappedLogger

	raw   sync.Mutex
	queue *WaitQueue
	value T

	fast      atomic.Uint64
	queued    atomic.Uint64
	cancelled atomic.Uint64
	waiting   atomic.Int64
}

// NewPriorityMutex returns an unlocked priority mutex which protects the given value.
func NewPriorityMutex[T any](value T) *PriorityMutex[T] {
	return NewPriorityMutexWithOptions(value, PriorityMutexOptions{})
}

// NewPriorityMutexWithOptions is similar to 'NewPriorityMutex' but allows logging and the wait queue to be configured.
func NewPriorityMutexWithOptions[T any](value T, opts PriorityMutexOptions) *PriorityMutex[T] {
	// Fill out any missing fields with the sane defaults
	opts.defaults()

	return &PriorityMutex[T]{
		opts:   opts,
		logger: log.NewWrappedLogger(opts.Logger),
		queue: NewWaitQueue(WaitQueueOptions{
			Capacity:  opts.QueueCapacity,
			LogPrefix: opts.LogPrefix,
			Logger:    opts.Logger,
		}),
		value: value,
	}
}

// Lock blocks until the lock is acquired, lower priorities are woken first when the lock is released.
func (m *PriorityMutex[T]) Lock(priority uint32) *Guard[T] {
	guard, _ := m.LockContext(context.Background(), priority)

	return guard
}

// LockContext is similar to 'Lock' but gives up waiting when the given context is cancelled, returning the context
// error. Giving up never results in a release of the lock being lost, the next waiter is woken instead.
func (m *PriorityMutex[T]) LockContext(ctx context.Context, priority uint32) (*Guard[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The uncontended case never touches the wait queue, there's nothing to order
	if m.raw.TryLock() {
		m.fast.Inc()
		return m.newGuard(false), nil
	}

	for {
		// Register before trying again, if the lock is released after this point the holder is guaranteed to see us
		receiver := m.queue.Register(priority)

		if m.raw.TryLock() {
			// We may have been notified in the meantime, it's fine to drop it since we're now the holder
			receiver.Abandon()
			m.queued.Inc()

			return m.newGuard(true), nil
		}

		m.logger.Tracef("%s Waiting for lock with priority %d", m.opts.LogPrefix, priority)

		if err := m.wait(ctx, receiver); err != nil {
			m.cancelled.Inc()
			m.logger.Debugf("%s Gave up waiting for lock with priority %d: %v", m.opts.LogPrefix, priority, err)

			return nil, err
		}

		if m.raw.TryLock() {
			m.queued.Inc()
			return m.newGuard(true), nil
		}
	}
}

// TryLock attempts to acquire the lock without blocking, returns a boolean indicating whether the lock was acquired.
func (m *PriorityMutex[T]) TryLock() (*Guard[T], bool) {
	if !m.raw.TryLock() {
		return nil, false
	}

	m.fast.Inc()

	return m.newGuard(false), true
}

// Do acquires the lock and runs the given function with the protected value, the lock is released once the function
// returns or panics.
func (m *PriorityMutex[T]) Do(ctx context.Context, priority uint32, fn func(value *T) error) error {
	guard, err := m.LockContext(ctx, priority)
	if err != nil {
		return err
	}

	defer guard.Unlock()

	return fn(guard.Value())
}

// Stats returns a snapshot of the mutex counters.
func (m *PriorityMutex[T]) Stats() Stats {
	return Stats{
		Fast:      m.fast.Load(),
		Queued:    m.queued.Load(),
		Woken:     m.queue.woken.Load(),
		Skipped:   m.queue.skipped.Load(),
		Cancelled: m.cancelled.Load(),
		Waiting:   m.waiting.Load(),
		Queue:     m.queue.Len(),
	}
}

// wait blocks on the given receiver until notified or the context is cancelled.
func (m *PriorityMutex[T]) wait(ctx context.Context, receiver *Receiver) error {
	m.waiting.Inc()
	defer m.waiting.Dec()

	err := receiver.Wait(ctx)
	if err != nil {
		m.abandon(receiver)
	}

	return err
}

// abandon gives up on the given receiver. If we were notified between the context being cancelled and abandoning the
// receiver, the notification is passed on otherwise the next waiter would never be woken.
func (m *PriorityMutex[T]) abandon(receiver *Receiver) {
	if receiver.Abandon() {
		m.queue.ReleaseOne()
	}
}

// unlock releases the raw lock then wakes the next waiter; the order matters, a waiter woken beforehand would fail to
// acquire the lock and go back to waiting.
func (m *PriorityMutex[T]) unlock() {
	m.raw.Unlock()
	m.queue.ReleaseOne()
}

func (m *PriorityMutex[T]) newGuard(queued bool) *Guard[T] {
	return &Guard[T]{parent: m, queued: queued}
}

// Guard is proof that a 'PriorityMutex' is held, it provides access to the protected value until 'Unlock' is called.
//
// NOTE: A guard must not be shared between goroutines, and must always be unlocked; 'defer guard.Unlock()' is the
// expected usage.
type Guard[T any] struct {
	parent   *PriorityMutex[T]
	queued   bool
	released atomic.Bool
}

// Queued returns a boolean indicating whether the lock was contended, and the guard was only obtained after
// registering with the wait queue.
func (g *Guard[T]) Queued() bool {
	return g.queued
}

// Value returns a pointer to the protected value, the pointer must not be used after 'Unlock' has been called.
func (g *Guard[T]) Value() *T {
	if g.released.Load() {
		panic("syncutil: use of a released PriorityMutex guard")
	}

	return &g.parent.value
}

// Unlock releases the lock and wakes the next waiter. Subsequent calls are a no-op, allowing an early unlock to be
// combined with a deferred one.
func (g *Guard[T]) Unlock() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}

	g.parent.unlock()
}

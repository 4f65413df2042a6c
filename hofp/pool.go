// Package hofp exposes a generic higher order function pool which abstracts aways the logic/error handling required to
// perform tasks concurrently by wrapping complex tasks into a common 'func(context.Context) error' interface.
package hofp

import (
	"context"
	"sync"

	"github.com/couchbase/prioritysync/log"
	"github.com/couchbase/prioritysync/pqutil"
)

// Function is a higher order function to be executed by the worker pool, where possible, the function should honor the
// cancellation of the given context and return as quickly/cleanly as possible.
type Function func(ctx context.Context) error

// Pool is a generic higher order function worker pool which executes the provided functions concurrently using a
// configurable number of workers. Functions which are buffered waiting for a worker are dispatched lowest priority
// first.
//
// NOTE: Fails fast in the event of an error, subsequent attempts to use the worker pool will return the error which
// caused the pool to stop processing requests.
type Pool struct {
	opts   Options
	logger log.WrappedLogger

	// slots bounds the number of buffered functions, ready carries one token per buffered function
	slots chan struct{}
	ready chan struct{}

	pending     *pqutil.PriorityQueue[uint32, Function]
	pendingLock sync.Mutex

	err error

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	cleanup sync.Once

	lock sync.RWMutex
}

// NewPool returns a new higher order function worker pool with the provided number of workers.
func NewPool(opts Options) *Pool {
	// Fill out any missing fields with the sane defaults
	opts.defaults()

	ctx, cancel := context.WithCancel(opts.Context)

	buffer := opts.Size * opts.BufferMultiplier

	pool := &Pool{
		opts:    opts,
		logger:  log.NewWrappedLogger(opts.Logger),
		slots:   make(chan struct{}, buffer),
		ready:   make(chan struct{}, buffer),
		pending: pqutil.NewPriorityQueueWithOrder[uint32, Function](buffer, pqutil.OrderMinFirst),
		ctx:     ctx,
		cancel:  cancel,
	}

	pool.wg.Add(opts.Size)

	for w := 0; w < opts.Size; w++ {
		go pool.work()
	}

	return pool
}

// work will process the provided functions until it hits the first error, at which point the pool will begin teardown.
func (p *Pool) work() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case _, ok := <-p.ready:
			if !ok {
				return
			}

			err := p.next()(p.ctx)

			if err == nil {
				continue
			}

			// The worker pool may already be tearing down, in which case we should log the function error so that it's
			// not missed whilst debugging.
			if !p.setErr(err) {
				p.logger.Errorf("%s Failed to execute function: %v", p.opts.LogPrefix, err)
			}

			return
		}
	}
}

// next dequeues the buffered function with the lowest priority, freeing its slot.
//
// NOTE: Must only be called after receiving a token from 'ready', which guarantees there's a buffered function.
func (p *Pool) next() Function {
	p.pendingLock.Lock()
	item := p.pending.Dequeue()
	p.pendingLock.Unlock()

	<-p.slots

	return item.Payload
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.opts.Size
}

// Queue a function for execution by the worker pool, returns an error if the worker pool has encountered an error and
// is tearing down. This return value should be used to prematurely stop queuing work, or to initiate teardown of the
// wrapping workload.
//
// NOTE: Functions queued using 'Queue' have priority zero, meaning they're dispatched before any buffered function
// queued with a non-zero priority.
func (p *Pool) Queue(fn Function) error {
	return p.QueueWithPriority(0, fn)
}

// QueueWithPriority is similar to 'Queue' but where functions are buffered waiting for a worker, they're dispatched in
// order of priority, lowest first. Functions with the same priority are dispatched in an arbitrary order.
func (p *Pool) QueueWithPriority(priority uint32, fn Function) error {
	if err := p.getErr(); err != nil {
		return err
	}

	select {
	case p.slots <- struct{}{}:
	case <-p.ctx.Done():
		return p.getErr()
	}

	p.pendingLock.Lock()
	p.pending.Enqueue(pqutil.Item[uint32, Function]{Payload: fn, Priority: priority})
	p.pendingLock.Unlock()

	// Can't block, there's always room for a token whilst we hold a slot
	p.ready <- struct{}{}

	return p.getErr()
}

// Stop the worker pool gracefully executing any remaining functions. Subsequent calls to 'Stop' will only return the
// error which caused the pool to tear down (if there was one).
func (p *Pool) Stop() error {
	p.cleanup.Do(func() {
		close(p.ready)
		p.wg.Wait()
		p.cancel()
	})

	return p.getErr()
}

// getErr is thread safe getter for the internal error attribute.
func (p *Pool) getErr() error {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.err
}

// setErr is a thread safe setter for the internal error attribute, returns a boolean indicating if this is the first
// error which indicates that the worker pool has begun tear down.
func (p *Pool) setErr(err error) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	// This is a secondary error, we're already tearing down ignore the request
	if p.err != nil {
		return false
	}

	// Set the error and begin teardown
	p.err = err
	p.cancel()

	return true
}

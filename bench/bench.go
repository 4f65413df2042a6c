// Package bench runs a contention workload against a 'syncutil.PriorityMutex' and reports how closely the order in
// which tasks acquired the lock followed their priorities.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/couchbase/prioritysync/hofp"
	"github.com/couchbase/prioritysync/log"
	"github.com/couchbase/prioritysync/syncutil"
)

// state is the value protected by the mutex, acquisitions are appended in the order they happened.
type state struct {
	counter      int
	acquisitions []Acquisition
}

// Run executes the contention workload described by the given options, every task acquires the mutex once at a
// random priority, increments a counter, holds the lock then releases it.
func Run(ctx context.Context, opts Options) (*Report, error) {
	// Fill out any missing fields with the sane defaults
	opts.defaults()

	if err := opts.validate(); err != nil {
		return nil, err
	}

	var (
		logger = log.NewWrappedLogger(opts.Logger)
		mutex  = syncutil.NewPriorityMutexWithOptions(
			state{acquisitions: make([]Acquisition, 0, opts.Tasks)},
			syncutil.PriorityMutexOptions{QueueCapacity: opts.Tasks, Logger: opts.Logger},
		)
		random = rand.New(rand.NewSource(opts.Seed))
		clock  atomic.Uint64
		report = &Report{RunID: uuid.NewString(), Tasks: opts.Tasks, Seed: opts.Seed}
	)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	logger.Infof("%s Starting run %s with %d tasks across %d workers", opts.LogPrefix, report.RunID, opts.Tasks,
		opts.Workers)

	pool := hofp.NewPool(hofp.Options{
		Context:   ctx,
		Size:      opts.Workers,
		LogPrefix: opts.LogPrefix,
		Logger:    opts.Logger,
	})

	// Unlock is idempotent, the deferred call only matters when returning early
	release := func() {}
	if opts.Parked {
		release = mutex.Lock(0).Unlock
	}

	defer release()

	start := time.Now()

	for i := 0; i < opts.Tasks; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				release()
				_ = pool.Stop()
				return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
			}
		}

		var (
			id       = i
			priority = uint32(random.Int63n(int64(opts.MaxPriority)))
		)

		err := pool.QueueWithPriority(priority, func(ctx context.Context) error {
			return task(ctx, mutex, &clock, id, priority, opts.Hold)
		})
		if err != nil {
			release()
			_ = pool.Stop()

			return nil, fmt.Errorf("failed to queue task %d: %w", id, err)
		}
	}

	if opts.Parked {
		if err := waitParked(ctx, mutex, opts.Tasks); err != nil {
			release()
			_ = pool.Stop()

			return nil, fmt.Errorf("failed to wait for tasks to park: %w", err)
		}

		logger.Infof("%s All %d tasks are waiting, releasing the lock", opts.LogPrefix, opts.Tasks)
		release()
	}

	if err := pool.Stop(); err != nil {
		return nil, fmt.Errorf("failed to run tasks: %w", err)
	}

	// Workers stop early once the context is cancelled, so the counter is expected to be short
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	report.Elapsed = time.Since(start)
	report.Stats = mutex.Stats()

	guard := mutex.Lock(0)
	defer guard.Unlock()

	report.Final = guard.Value().counter
	report.Acquisitions = guard.Value().acquisitions
	report.Inversions = CountInversions(report.Acquisitions)

	logger.Infof("%s Finished run %s in %s with %d inversions", opts.LogPrefix, report.RunID, report.Elapsed,
		report.Inversions)

	if report.Final != opts.Tasks {
		return report, fmt.Errorf("%w: counter is %d after %d tasks", ErrLostUpdate, report.Final, opts.Tasks)
	}

	return report, nil
}

// waitParked blocks until the given number of goroutines are waiting for the mutex.
func waitParked(ctx context.Context, mutex *syncutil.PriorityMutex[state], tasks int) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for mutex.Stats().Waiting < int64(tasks) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// task acquires the mutex once, recording when it asked for and when it obtained the lock using a shared logical clock.
func task(
	ctx context.Context,
	mutex *syncutil.PriorityMutex[state],
	clock *atomic.Uint64,
	id int,
	priority uint32,
	hold time.Duration,
) error {
	requested := clock.Inc()

	guard, err := mutex.LockContext(ctx, priority)
	if err != nil {
		return fmt.Errorf("task %d failed to acquire lock: %w", id, err)
	}

	defer guard.Unlock()

	value := guard.Value()

	// Read then write without any atomicity, overlapping holders would lose an update
	counter := value.counter

	value.acquisitions = append(value.acquisitions, Acquisition{
		Task:      id,
		Priority:  priority,
		Queued:    guard.Queued(),
		Requested: requested,
		Acquired:  clock.Inc(),
	})

	time.Sleep(hold)

	value.counter = counter + 1

	return nil
}

package bench

import (
	"time"

	"github.com/couchbase/prioritysync/log"
	"github.com/couchbase/prioritysync/system"
)

// Options encapsulates the available options which can be used when running a contention benchmark.
type Options struct {
	// Tasks is the number of tasks which will contend for the mutex, each acquires it exactly once. Defaults to 1000.
	Tasks int

	// MaxPriority is the exclusive upper bound of the uniformly distributed priorities given to each task. Defaults to
	// 1000.
	MaxPriority uint32

	// Hold is how long each task holds the lock. Defaults to 100µs.
	Hold time.Duration

	// Workers is the number of goroutines used to run tasks, defaults to the number of tasks so that every task
	// contends at once.
	Workers int

	// HostWorkers sizes a defaulted worker pool to the host, see 'system.NumWorkers', rather than one goroutine per
	// task. Tasks then contend in smaller cohorts.
	HostWorkers bool

	// Parked holds the lock until every task is waiting for it before releasing it, so that the acquisition order can
	// be compared against task priorities. Requires a worker per task.
	Parked bool

	// Rate limits the number of tasks started per second, zero means tasks are started as fast as possible.
	Rate float64

	// Seed is used to generate task priorities, zero means a time based seed is used.
	Seed int64

	// LogPrefix is the prefix used when logging. Defaults to '(bench)'.
	LogPrefix string

	// Logger is the passed Logger struct that implements the Log method for logger the user wants to use.
	Logger log.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *Options) defaults() {
	if o.Tasks == 0 {
		o.Tasks = 1000
	}

	if o.MaxPriority == 0 {
		o.MaxPriority = 1000
	}

	if o.Hold == 0 {
		o.Hold = 100 * time.Microsecond
	}

	if o.Workers == 0 && o.HostWorkers {
		o.Workers = system.NumWorkers(o.Tasks)
	}

	if o.Workers == 0 {
		o.Workers = o.Tasks
	}

	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}

	if o.LogPrefix == "" {
		o.LogPrefix = "(bench)"
	}
}

// validate returns an error if the options can't be used to run a benchmark, it expects defaults to have been filled.
func (o *Options) validate() error {
	if o.Tasks < 0 {
		return ErrInvalidOptions{field: "tasks", reason: "must not be negative"}
	}

	if o.Workers < 0 {
		return ErrInvalidOptions{field: "workers", reason: "must not be negative"}
	}

	if o.Hold < 0 {
		return ErrInvalidOptions{field: "hold", reason: "must not be negative"}
	}

	if o.Rate < 0 {
		return ErrInvalidOptions{field: "rate", reason: "must not be negative"}
	}

	if o.Parked && o.Workers < o.Tasks {
		return ErrInvalidOptions{field: "parked", reason: "requires at least one worker per task"}
	}

	return nil
}

package syncutil

import "github.com/couchbase/prioritysync/log"

// WaitQueueOptions encapsulates the available options which can be used when creating a wait queue.
type WaitQueueOptions struct {
	// Capacity is the initial capacity of the underlying priority queue, it may grow beyond this value.
	Capacity int

	// LogPrefix is the prefix used when logging waiter events. Defaults to '(waitq)'.
	LogPrefix string

	// Logger is the passed Logger struct that implements the Log method for logger the user wants to use.
	Logger log.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *WaitQueueOptions) defaults() {
	if o.LogPrefix == "" {
		o.LogPrefix = "(waitq)"
	}
}

// PriorityMutexOptions encapsulates the available options which can be used when creating a priority mutex.
type PriorityMutexOptions struct {
	// QueueCapacity is the initial capacity of the wait queue.
	QueueCapacity int

	// LogPrefix is the prefix used when logging lock events. Defaults to '(pmutex)'.
	LogPrefix string

	// Logger is the passed Logger struct that implements the Log method for logger the user wants to use.
	Logger log.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *PriorityMutexOptions) defaults() {
	if o.LogPrefix == "" {
		o.LogPrefix = "(pmutex)"
	}
}

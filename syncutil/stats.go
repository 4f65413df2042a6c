package syncutil

// Stats is a point in time snapshot of the counters maintained by a 'PriorityMutex'.
type Stats struct {
	// Fast is the number of acquisitions which succeeded immediately without touching the wait queue.
	Fast uint64 `json:"fast"`

	// Queued is the number of acquisitions which registered with the wait queue before succeeding.
	Queued uint64 `json:"queued"`

	// Woken is the number of waiters which have been notified that the lock was released.
	Woken uint64 `json:"woken"`

	// Skipped is the number of abandoned waiters discarded when releasing the lock.
	Skipped uint64 `json:"skipped"`

	// Cancelled is the number of acquisitions which gave up because their context was cancelled.
	Cancelled uint64 `json:"cancelled"`

	// Waiting is the number of goroutines currently blocked waiting to be notified.
	Waiting int64 `json:"waiting"`

	// Queue is the number of entries in the wait queue, including abandoned entries not yet discarded.
	Queue int `json:"queue"`
}

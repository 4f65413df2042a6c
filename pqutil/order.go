package pqutil

import "golang.org/x/exp/constraints"

// Order determines which end of the priority range is dequeued first.
type Order int

const (
	// OrderMaxFirst dequeues the item with the highest priority first.
	OrderMaxFirst Order = iota

	// OrderMinFirst dequeues the item with the lowest priority first, this is useful where a priority represents a rank
	// e.g. zero is served before one.
	OrderMinFirst
)

// before returns a boolean indicating whether an item with priority 'a' should be dequeued before one with 'b'.
func before[P constraints.Ordered](order Order, a, b P) bool {
	if order == OrderMinFirst {
		return a < b
	}

	return a > b
}

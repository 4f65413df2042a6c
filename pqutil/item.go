package pqutil

import "golang.org/x/exp/constraints"

// Item encapsulates a payload and its priority.
type Item[P constraints.Ordered, T any] struct {
	Payload  T
	Priority P
}

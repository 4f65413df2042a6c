package bench

import (
	"errors"
	"fmt"
)

// ErrLostUpdate is returned when the protected counter doesn't match the number of completed tasks, which would mean
// two tasks held the lock at the same time.
var ErrLostUpdate = errors.New("lost update")

// ErrInvalidOptions is returned when the benchmark options are invalid.
type ErrInvalidOptions struct {
	field  string
	reason string
}

func (e ErrInvalidOptions) Error() string {
	return fmt.Sprintf("invalid option '%s': %s", e.field, e.reason)
}

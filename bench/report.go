package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/slices"

	"github.com/couchbase/prioritysync/syncutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Acquisition records a single task obtaining the lock; 'Requested' and 'Acquired' are ticks of a logical clock shared
// by every task in the run.
type Acquisition struct {
	Task      int    `json:"task"`
	Priority  uint32 `json:"priority"`
	Queued    bool   `json:"queued"`
	Requested uint64 `json:"requested"`
	Acquired  uint64 `json:"acquired"`
}

// Report summarizes a benchmark run.
type Report struct {
	RunID   string        `json:"run_id"`
	Seed    int64         `json:"seed"`
	Tasks   int           `json:"tasks"`
	Final   int           `json:"final"`
	Elapsed time.Duration `json:"elapsed"`

	// Inversions is the number of pairs of queued tasks which acquired the lock in the opposite order to their
	// priorities, see 'CountInversions'.
	Inversions int `json:"inversions"`

	Stats        syncutil.Stats `json:"stats"`
	Acquisitions []Acquisition  `json:"acquisitions,omitempty"`
}

// CountInversions returns the number of pairs (a, b) where 'a' acquired the lock before 'b', 'b' had a lower priority
// and had already asked for the lock by the time 'a' obtained it. Only acquisitions which had to queue are considered,
// a task which finds the lock free is entitled to it regardless of priority.
//
// NOTE: A task may have asked for the lock but not yet registered with the wait queue when another task is woken, so
// this is an upper bound on the number of true inversions; with relaxed fairness it's expected to be small but not
// necessarily zero.
func CountInversions(acquisitions []Acquisition) int {
	queued := make([]Acquisition, 0, len(acquisitions))

	for _, a := range acquisitions {
		if a.Queued {
			queued = append(queued, a)
		}
	}

	var inversions int

	for i, a := range queued {
		for _, b := range queued[i+1:] {
			if b.Requested < a.Acquired && b.Priority < a.Priority {
				inversions++
			}
		}
	}

	return inversions
}

// Priorities returns the priorities of the given acquisitions in the order they acquired the lock.
func Priorities(acquisitions []Acquisition) []uint32 {
	priorities := make([]uint32, 0, len(acquisitions))

	for _, a := range acquisitions {
		priorities = append(priorities, a.Priority)
	}

	return priorities
}

// Sorted returns a boolean indicating whether the queued acquisitions happened in non-decreasing priority order.
func Sorted(acquisitions []Acquisition) bool {
	queued := make([]Acquisition, 0, len(acquisitions))

	for _, a := range acquisitions {
		if a.Queued {
			queued = append(queued, a)
		}
	}

	return slices.IsSorted(Priorities(queued))
}

// WriteJSON encodes the report as JSON to the given writer.
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// WriteText writes a human readable summary of the report to the given writer.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	rows := []struct {
		name  string
		value any
	}{
		{"Run", r.RunID},
		{"Seed", r.Seed},
		{"Tasks", r.Tasks},
		{"Final value", r.Final},
		{"Elapsed", r.Elapsed},
		{"Fast acquisitions", r.Stats.Fast},
		{"Queued acquisitions", r.Stats.Queued},
		{"Wakeups", r.Stats.Woken},
		{"Skipped waiters", r.Stats.Skipped},
		{"Cancelled waiters", r.Stats.Cancelled},
		{"Inversions", r.Inversions},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%v\n", row.name, row.value); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Package system exposes information about the host which is used to size concurrent workloads.
package system

import (
	"runtime"
	"sync"

	"github.com/couchbase/prioritysync/maths"
)

var (
	numCPU     int
	numCPUOnce sync.Once
)

// NumCPU returns three quarters of GOMAXPROCS, and at least one. Worker pools default to this size so that lock holders
// still get scheduled promptly while the pool is busy.
func NumCPU() int {
	numCPUOnce.Do(func() {
		numCPU = maths.Max(1, int(float64(runtime.GOMAXPROCS(0))*0.75))
	})

	return numCPU
}

// NumWorkers is similar to 'NumCPU' but never returns more workers than there are tasks; a non-positive number of
// tasks is treated as unknown.
func NumWorkers(tasks int) int {
	if tasks <= 0 {
		return NumCPU()
	}

	return maths.Min(NumCPU(), tasks)
}

// Command pmbench runs a contention benchmark against a priority mutex, every task acquires the lock once at a random
// priority and the report shows how closely the acquisition order followed those priorities.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/couchbase/prioritysync/bench"
	"github.com/couchbase/prioritysync/log"
)

var (
	tasks       = flag.Int("tasks", 1000, "number of tasks contending for the lock")
	maxPriority = flag.Uint("max-priority", 1000, "exclusive upper bound of the random task priorities")
	hold        = flag.Duration("hold", 100*time.Microsecond, "how long each task holds the lock")
	workers     = flag.Int("workers", 0, "number of goroutines running tasks, defaults to the number of tasks")
	hostWorkers = flag.Bool("host-workers", false, "size the default worker pool to the host rather than one per task")
	parked      = flag.Bool("parked", false, "hold the lock until every task is waiting, then check the release order")
	rate        = flag.Float64("rate", 0, "maximum number of tasks started per second, zero is unlimited")
	seed        = flag.Int64("seed", 0, "seed used to generate priorities, zero uses the current time")
	asJSON      = flag.Bool("json", false, "output the report, including every acquisition, as JSON")
	verbose     = flag.Bool("verbose", false, "log every wait and skipped waiter")
	profile     = flag.String("profile", "", "write a CPU profile to the given file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pmbench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *maxPriority == 0 || *maxPriority > uint(^uint32(0)) {
		return fmt.Errorf("max-priority must be between 1 and %d", ^uint32(0))
	}

	if *profile != "" {
		file, err := os.Create(*profile)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		defer file.Close()

		if err := pprof.StartCPUProfile(file); err != nil {
			return fmt.Errorf("failed to start profile: %w", err)
		}

		defer pprof.StopCPUProfile()
	}

	logger := &log.StdoutLogger{MinLevel: log.LevelInfo}
	if *verbose {
		logger.MinLevel = log.LevelTrace
	}

	// Logging would end up in the middle of the JSON output
	var opts bench.Options
	if !*asJSON {
		opts.Logger = logger
	}

	opts.Tasks = *tasks
	opts.MaxPriority = uint32(*maxPriority)
	opts.Hold = *hold
	opts.Workers = *workers
	opts.HostWorkers = *hostWorkers
	opts.Parked = *parked
	opts.Rate = *rate
	opts.Seed = *seed

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := bench.Run(ctx, opts)
	if err != nil && !errors.Is(err, bench.ErrLostUpdate) {
		return err
	}

	// A lost update still produces a report, it's the most useful thing to look at
	if *asJSON {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else if err := report.WriteText(os.Stdout); err != nil {
		return err
	}

	return err
}

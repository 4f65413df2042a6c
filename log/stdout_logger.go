package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StdoutLogger is the standard output logger for printing all logs into the commandline.
type StdoutLogger struct {
	// MinLevel is the least verbose level which will be printed, defaults to trace i.e. everything is printed.
	MinLevel Level

	// out is where log lines are written, nil means stdout; only overridden in tests.
	out io.Writer

	lock sync.Mutex
}

// Log method for the StdoutLogger which adds prefix dependant on the level and prints message inputted to terminal.
func (s *StdoutLogger) Log(level Level, msg string, args ...any) {
	if level < s.MinLevel {
		return
	}

	line := time.Now().Format(time.RFC3339Nano) + " " + level.String() + ": " + fmt.Sprintf(msg, args...)

	s.lock.Lock()
	defer s.lock.Unlock()

	out := s.out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, line)
}

package syncutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/prioritysync/log"
	"github.com/couchbase/prioritysync/testutil"
)

// notified returns a boolean indicating whether the receiver has been sent a notification.
func notified(r *Receiver) bool {
	select {
	case <-r.Done():
		return true
	default:
		return false
	}
}

func TestNewWaitQueue(t *testing.T) {
	queue := NewWaitQueue(WaitQueueOptions{Capacity: 16})
	require.Equal(t, "(waitq)", queue.opts.LogPrefix)
	require.Zero(t, queue.Len())
}

func TestWaitQueueReleaseOneEmpty(t *testing.T) {
	queue := NewWaitQueue(WaitQueueOptions{})
	require.False(t, queue.ReleaseOne())
	require.Zero(t, queue.woken.Load())
}

func TestWaitQueueReleaseOneLowestFirst(t *testing.T) {
	var (
		queue      = NewWaitQueue(WaitQueueOptions{})
		priorities = []uint32{5, 1, 9, 0, 3}
		receivers  = make(map[uint32]*Receiver)
	)

	for _, p := range priorities {
		receivers[p] = queue.Register(p)
	}

	require.Equal(t, len(priorities), queue.Len())

	for _, expected := range []uint32{0, 1, 3, 5, 9} {
		require.True(t, queue.ReleaseOne())
		require.True(t, notified(receivers[expected]))

		for p, r := range receivers {
			if p > expected {
				require.False(t, notified(r))
			}
		}
	}

	require.Zero(t, queue.Len())
	require.False(t, queue.ReleaseOne())
	require.Equal(t, uint64(5), queue.woken.Load())
}

func TestWaitQueueReleaseOneSkipsAbandoned(t *testing.T) {
	var (
		queue = NewWaitQueue(WaitQueueOptions{})
		a     = queue.Register(0)
		b     = queue.Register(1)
		c     = queue.Register(2)
	)

	require.False(t, a.Abandon())
	require.False(t, b.Abandon())

	require.True(t, queue.ReleaseOne())
	require.True(t, notified(c))
	require.Equal(t, uint64(2), queue.skipped.Load())
	require.Zero(t, queue.Len())
}

func TestWaitQueueReleaseOneAllAbandoned(t *testing.T) {
	queue := NewWaitQueue(WaitQueueOptions{})

	for i := 0; i < 3; i++ {
		queue.Register(uint32(i)).Abandon()
	}

	require.False(t, queue.ReleaseOne())
	require.Zero(t, queue.Len())
	require.Equal(t, uint64(3), queue.skipped.Load())
}

func TestWaitQueueLogsSkipped(t *testing.T) {
	var (
		logger = testutil.NewPermissiveMockLogger()
		queue  = NewWaitQueue(WaitQueueOptions{Logger: logger, LogPrefix: "(test)"})
	)

	queue.Register(7).Abandon()
	require.False(t, queue.ReleaseOne())

	logger.AssertCalled(t, "Log", log.LevelTrace, "(test) Skipped abandoned waiter with priority 7")
	logger.AssertNumberOfCalls(t, "Log", 1)
}

func TestWaitQueueNoLogWhenWoken(t *testing.T) {
	var (
		logger = &testutil.MockLogger{}
		queue  = NewWaitQueue(WaitQueueOptions{Logger: logger})
	)

	queue.Register(1)
	require.True(t, queue.ReleaseOne())

	logger.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestWaitQueueConcurrentRegisterRelease(t *testing.T) {
	const waiters = 256

	var (
		queue = NewWaitQueue(WaitQueueOptions{})
		wg    sync.WaitGroup
	)

	wg.Add(waiters)

	for i := 0; i < waiters; i++ {
		go func(p uint32) {
			defer wg.Done()
			assert.NoError(t, queue.Register(p).Wait(context.Background()))
		}(uint32(i % 16))
	}

	// Every waiter must eventually be woken exactly once, registration may still be in progress
	var released int
	for released < waiters {
		if queue.ReleaseOne() {
			released++
		}
	}

	wg.Wait()

	require.Zero(t, queue.Len())
	require.False(t, queue.ReleaseOne())
	require.Equal(t, uint64(waiters), queue.woken.Load())
}

package syncutil

import (
	"context"

	"go.uber.org/atomic"
)

const (
	signalPending int32 = iota
	signalSent
	signalConsumed
	signalAbandoned
)

// signal is the state shared between a 'Sender' and its 'Receiver'.
type signal struct {
	state atomic.Int32
	done  chan struct{}
}

// Sender is the producing half of a single use signal.
type Sender struct {
	signal *signal
}

// Receiver is the consuming half of a single use signal.
type Receiver struct {
	signal *signal
}

// NewSignal returns a connected sender/receiver pair, exactly one notification may be delivered from the sender to the
// receiver.
func NewSignal() (*Sender, *Receiver) {
	s := &signal{done: make(chan struct{})}

	return &Sender{signal: s}, &Receiver{signal: s}
}

// Send delivers the notification, returns a boolean indicating whether it was delivered; false is returned if the
// receiver has been abandoned, or the notification has already been sent.
func (s *Sender) Send() bool {
	if !s.signal.state.CompareAndSwap(signalPending, signalSent) {
		return false
	}

	close(s.signal.done)

	return true
}

// Wait blocks until the notification is delivered, or the given context is cancelled in which case the context error
// is returned.
//
// NOTE: Returning an error does not abandon the receiver, callers which give up waiting must call 'Abandon'.
func (r *Receiver) Wait(ctx context.Context) error {
	select {
	case <-r.signal.done:
		r.signal.state.CompareAndSwap(signalSent, signalConsumed)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel which is closed once the notification has been delivered.
func (r *Receiver) Done() <-chan struct{} {
	return r.signal.done
}

// Abandon marks the receiver as no longer interested, any future 'Send' will fail. Returns a boolean indicating whether
// a notification had already been delivered but not consumed by 'Wait'; in this case the caller now owns that
// notification and is responsible for passing it on.
func (r *Receiver) Abandon() bool {
	if r.signal.state.CompareAndSwap(signalPending, signalAbandoned) {
		return false
	}

	return r.signal.state.CompareAndSwap(signalSent, signalAbandoned)
}

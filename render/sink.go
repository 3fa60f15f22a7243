package render

import "errors"

// ErrSinkClosed is returned by a Sink whose receiver has gone away.
// ChanSink also returns it when its buffer is full.
var ErrSinkClosed = errors.New("send failed: sink closed")

// Sink is an unbounded FIFO the interpreter sends Commands to. Send
// must not block the producer; a closed sink reports ErrSinkClosed
// instead of blocking or panicking.
type Sink interface {
	Send(Command) error
}

// ChanSink adapts a buffered channel to Sink. It is the concrete sink
// used by the service package: the consumer owns the receive end. The
// sink applies no pacing of its own.
type ChanSink struct {
	ch     chan Command
	closed chan struct{}
}

// NewChanSink creates a ChanSink backed by a channel of the given
// buffer size. The buffer does not grow: it holds at most buffer
// commands that the consumer has not yet received.
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{
		ch:     make(chan Command, buffer),
		closed: make(chan struct{}),
	}
}

// Send enqueues cmd without blocking. It returns ErrSinkClosed once
// Close has been called, and also when the buffer is full: a full
// buffer makes the send fail rather than block, so the caller always
// gets an immediate result. Close may run concurrently with a Send from the
// interpreter's worker goroutine (an API session can be torn down
// mid-run); the recover turns the resulting "send on closed channel"
// panic into the same ErrSinkClosed a pre-close check would give.
func (s *ChanSink) Send(cmd Command) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrSinkClosed
		}
	}()

	select {
	case <-s.closed:
		return ErrSinkClosed
	default:
	}
	select {
	case s.ch <- cmd:
		return nil
	default:
		return ErrSinkClosed
	}
}

// Recv exposes the receive side for the consumer.
func (s *ChanSink) Recv() <-chan Command {
	return s.ch
}

// Close marks the sink closed and closes the receive channel so a
// consumer's "range Recv()" loop terminates. Close may run while a
// Send is in flight; that Send then reports ErrSinkClosed (see Send).
// Closing twice is a no-op.
func (s *ChanSink) Close() {
	select {
	case <-s.closed:
	default:
		close(s.closed)
		close(s.ch)
	}
}
